package models

// AccountType represents the kind of account
type AccountType string

const (
	AccountTypeBank       AccountType = "bank"
	AccountTypeCash       AccountType = "cash"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeMobile     AccountType = "mobile"
)

// Account represents a financial account within a profile. Balance is
// stored in cents and is maintained incrementally by the transaction
// service: it always equals the net signed effect of the transactions
// posted against the account.
type Account struct {
	Base
	ProfileID  string      `gorm:"type:uuid;not null;index" json:"profile_id"`
	Name       string      `gorm:"not null" json:"name"`
	Type       AccountType `gorm:"not null" json:"type"`
	Currency   string      `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Balance    int64       `gorm:"type:bigint;not null;default:0" json:"balance"`
	ColorTheme string      `gorm:"size:20" json:"color_theme"`
	Icon       string      `gorm:"size:64" json:"icon"`
	IsArchived bool        `gorm:"default:false" json:"is_archived"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
	TransfersIn  []Transaction `gorm:"foreignKey:TransferToAccountID" json:"transfers_in,omitempty"`
}
