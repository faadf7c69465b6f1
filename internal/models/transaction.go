package models

import "time"

// TransactionType represents the monetary direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction represents a financial transaction posted against an
// account. Amount is always positive; the type carries the sign.
// Transfers are double-entry: the owning account is debited and
// TransferToAccountID is credited.
type Transaction struct {
	Base
	AccountID   string          `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID  *string         `gorm:"type:uuid" json:"category_id,omitempty"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Description string          `gorm:"size:256" json:"description"`
	Tags        string          `gorm:"size:128" json:"tags"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	IsRecurring bool            `gorm:"default:false" json:"is_recurring"`

	// For transfers
	TransferToAccountID *string `gorm:"type:uuid" json:"transfer_to_account_id,omitempty"`

	// Relationships
	Account           Account   `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	TransferToAccount *Account  `gorm:"foreignKey:TransferToAccountID" json:"transfer_to_account,omitempty"`
	Category          *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
