package domain

import (
	"strconv"
	"time"
)

// User is a Telegram account known to the bot
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TelegramID int64     `json:"telegram_id" gorm:"uniqueIndex;not null"`
	Username   string    `json:"username" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Handle returns "@username", or the numeric Telegram id for accounts without one.
func (u *User) Handle() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return "id" + strconv.FormatInt(u.TelegramID, 10)
}

// Admin is the dashboard principal authenticated with the fixed credentials
type Admin struct {
	Username string `json:"username"`
}
