package models

import "time"

// User represents an application login identity. Verification happens
// out-of-band: a one-time code is delivered to the user's Telegram chat
// and the account stays unverified until the code is confirmed.
type User struct {
	Base
	Username         string     `gorm:"uniqueIndex;not null" json:"username"`
	Password         string     `gorm:"not null" json:"-"`
	TelegramChatID   string     `gorm:"uniqueIndex;not null" json:"telegram_chat_id"`
	IsVerified       bool       `gorm:"default:false" json:"is_verified"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	Profiles []Profile `gorm:"foreignKey:UserID" json:"profiles,omitempty"`
	OTPLogs  []OTPLog  `gorm:"foreignKey:UserID" json:"-"`
}
