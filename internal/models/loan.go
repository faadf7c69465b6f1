package models

import "time"

// LoanType distinguishes money lent out from money borrowed.
type LoanType string

const (
	LoanTypeGiven LoanType = "given"
	LoanTypeTaken LoanType = "taken"
)

// LoanStatus represents the repayment state of a loan.
type LoanStatus string

const (
	LoanStatusActive LoanStatus = "active"
	LoanStatusPaid   LoanStatus = "paid"
)

// Loan tracks money given to or taken from a counterparty. Amounts are
// in cents; RemainingBalance decreases as payments are recorded and the
// status flips to paid when it reaches zero.
type Loan struct {
	Base
	ProfileID        string     `gorm:"type:uuid;not null;index" json:"profile_id"`
	CounterpartyName string     `gorm:"size:128;not null" json:"counterparty_name"`
	Type             LoanType   `gorm:"not null" json:"type"`
	TotalAmount      int64      `gorm:"type:bigint;not null" json:"total_amount"`
	RemainingBalance int64      `gorm:"type:bigint;not null" json:"remaining_balance"`
	InterestRate     float64    `gorm:"default:0" json:"interest_rate"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	Status           LoanStatus `gorm:"not null;default:'active'" json:"status"`
}
