package models

// Category represents a transaction category. A nil ProfileID marks a
// global default category: visible to every profile but read-only.
type Category struct {
	Base
	ProfileID *string `gorm:"type:uuid;index" json:"profile_id,omitempty"`
	Name      string  `gorm:"not null" json:"name"`
	ParentID  *string `gorm:"type:uuid" json:"parent_id,omitempty"`
	Icon      string  `gorm:"size:64" json:"icon"`
	Color     string  `gorm:"size:20" json:"color"`
	IsIncome  bool    `gorm:"default:false" json:"is_income"`

	// Relationships
	Parent       *Category     `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children     []Category    `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}

// IsGlobal reports whether the category is a shared default (no owner).
func (c *Category) IsGlobal() bool {
	return c.ProfileID == nil
}
