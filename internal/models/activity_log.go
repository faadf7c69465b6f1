package models

// ActivityLog records user actions (request method and path) for a
// lightweight audit trail. Writes are best-effort and asynchronous.
type ActivityLog struct {
	Base
	UserID    string `gorm:"type:uuid;not null;index" json:"user_id"`
	Action    string `gorm:"size:256;not null" json:"action"`
	IPAddress string `gorm:"size:45" json:"ip_address"`
}
