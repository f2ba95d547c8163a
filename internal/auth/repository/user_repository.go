package repository

import (
	"errors"
	"strings"
	"time"

	authdomain "taskbot/internal/auth/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) FindByID(id uint) (*authdomain.User, error) {
	return r.first("id = ?", id)
}

func (r *userRepository) FindByTelegramID(telegramID int64) (*authdomain.User, error) {
	return r.first("telegram_id = ?", telegramID)
}

func (r *userRepository) FindByUsername(username string) (*authdomain.User, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, nil
	}
	return r.first("LOWER(username) = LOWER(?)", username)
}

// GetOrCreate upserts on telegram_id so concurrent first messages from the same
// account cannot create two rows.
func (r *userRepository) GetOrCreate(telegramID int64, username string) (*authdomain.User, error) {
	now := time.Now()
	user := &authdomain.User{
		TelegramID: telegramID,
		Username:   username,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "telegram_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}

	// On conflict the primary key is not reliably returned, so read the row back.
	return r.FindByTelegramID(telegramID)
}

func (r *userRepository) List() ([]*authdomain.User, error) {
	var users []*authdomain.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) ListUsernames() ([]string, error) {
	var usernames []string
	err := r.db.Model(&authdomain.User{}).
		Where("username <> ?", "").
		Order("username ASC").
		Pluck("username", &usernames).Error
	return usernames, err
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&authdomain.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) first(query string, args ...interface{}) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
