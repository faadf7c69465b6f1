package models

import "time"

// OTPLog stores a single issued one-time code for a user. Only the
// SHA-256 hash of the code is persisted. A row is consumable at most
// once: every verification outcome (success, expiry, exhaustion) and
// every reissue marks it used, and a used row never matches again.
type OTPLog struct {
	Base
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	OTPHash    string    `gorm:"size:64;not null" json:"-"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	RetryCount int       `gorm:"default:0" json:"retry_count"`
	IsUsed     bool      `gorm:"default:false;index" json:"is_used"`
}
