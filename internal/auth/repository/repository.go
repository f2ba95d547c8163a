package repository

import authdomain "taskbot/internal/auth/domain"

// UserRepository defines the interface for Telegram user data access
type UserRepository interface {
	// FindByID finds a user by primary key
	FindByID(id uint) (*authdomain.User, error)

	// FindByTelegramID finds a user by Telegram account id
	FindByTelegramID(telegramID int64) (*authdomain.User, error)

	// FindByUsername finds a user by handle (case-insensitive, without "@")
	FindByUsername(username string) (*authdomain.User, error)

	// GetOrCreate returns the user for telegramID, creating it on first contact
	// and refreshing the stored username otherwise
	GetOrCreate(telegramID int64, username string) (*authdomain.User, error)

	// List returns all users ordered by id
	List() ([]*authdomain.User, error)

	// ListUsernames returns every non-empty handle
	ListUsernames() ([]string, error)

	// Count returns the number of known users
	Count() (int64, error)
}
