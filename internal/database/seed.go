package database

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/models"
)

// SeedCurrencies inserts the default currency table if it is empty.
// Exchange rates are relative to USD.
func SeedCurrencies(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Currency{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	currencies := []models.Currency{
		{Code: "USD", Symbol: "$", ExchangeRate: decimal.NewFromInt(1), LastUpdated: now},
		{Code: "BDT", Symbol: "৳", ExchangeRate: decimal.NewFromInt(120), LastUpdated: now},
		{Code: "EUR", Symbol: "€", ExchangeRate: decimal.NewFromFloat(0.92), LastUpdated: now},
		{Code: "GBP", Symbol: "£", ExchangeRate: decimal.NewFromFloat(0.79), LastUpdated: now},
	}
	return db.Create(&currencies).Error
}

// SeedCategories inserts the shared default categories (no owning
// profile) if none exist yet. These are readable by every profile but
// cannot be edited or deleted.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Where("profile_id IS NULL").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		// Expense
		{Name: "Food & Drinks", Icon: "ph-hamburger"},
		{Name: "Shopping", Icon: "ph-shopping-bag"},
		{Name: "Housing", Icon: "ph-house-line"},
		{Name: "Transportation", Icon: "ph-car"},
		{Name: "Utilities", Icon: "ph-lightbulb"},
		{Name: "Entertainment", Icon: "ph-ticket"},
		{Name: "Health", Icon: "ph-first-aid"},
		// Income
		{Name: "Salary", Icon: "ph-money", IsIncome: true},
		{Name: "Business", Icon: "ph-briefcase", IsIncome: true},
		{Name: "Gifts", Icon: "ph-gift", IsIncome: true},
		{Name: "Investment Return", Icon: "ph-chart-line-up", IsIncome: true},
	}
	return db.Create(&categories).Error
}

// Seed runs all seeders.
func Seed(db *gorm.DB) error {
	if err := SeedCurrencies(db); err != nil {
		return err
	}
	return SeedCategories(db)
}
