package models

import "time"

// Profile is a named finance context owned by a user (e.g. "Personal",
// "Family"). Every account, category, budget, loan and investment is
// scoped to exactly one profile. There is no global "active" profile:
// callers always state which profile an operation targets, and the
// service layer verifies profile ownership before touching any row.
type Profile struct {
	Base
	UserID     string     `gorm:"type:uuid;not null;index;uniqueIndex:idx_profile_user_name" json:"user_id"`
	Name       string     `gorm:"not null;uniqueIndex:idx_profile_user_name" json:"name"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`

	Accounts    []Account    `gorm:"foreignKey:ProfileID" json:"accounts,omitempty"`
	Categories  []Category   `gorm:"foreignKey:ProfileID" json:"categories,omitempty"`
	Budgets     []Budget     `gorm:"foreignKey:ProfileID" json:"budgets,omitempty"`
	Loans       []Loan       `gorm:"foreignKey:ProfileID" json:"loans,omitempty"`
	Investments []Investment `gorm:"foreignKey:ProfileID" json:"investments,omitempty"`
}
