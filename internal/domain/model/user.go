package model

import "time"

// Telegramのユーザー。TelegramIDは外部ID（一意・不変）
type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TelegramID int64     `gorm:"not null;uniqueIndex" json:"telegram_id"`
	FullName   string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Username   *string   `gorm:"type:varchar(255)" json:"username,omitempty"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
