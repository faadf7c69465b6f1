package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency holds an ISO 4217 code and its exchange rate relative to the
// base currency. Rates are fractional, so they are stored as decimals
// rather than integer cents.
type Currency struct {
	Base
	Code         string          `gorm:"size:3;uniqueIndex;not null" json:"code"`
	Symbol       string          `gorm:"size:5" json:"symbol"`
	ExchangeRate decimal.Decimal `gorm:"type:numeric(18,6);not null" json:"exchange_rate"`
	LastUpdated  time.Time       `json:"last_updated"`
}
