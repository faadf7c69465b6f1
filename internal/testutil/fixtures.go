package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a verified user with a hashed password and a
// unique username and Telegram chat ID.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a verified user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:       username,
		Password:       string(hash),
		TelegramChatID: fmt.Sprintf("%d", 100000+nextID()),
		IsVerified:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProfile creates a profile for the given user.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID string) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		UserID: userID,
		Name:   fmt.Sprintf("Profile %d", nextID()),
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestAccount creates a bank account with zero balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, profileID string) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, profileID, 0)
}

// CreateTestAccountWithBalance creates a bank account with the given balance (in cents).
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, profileID string, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		ProfileID: profileID,
		Name:      fmt.Sprintf("Test Account %d", nextID()),
		Type:      models.AccountTypeBank,
		Balance:   balance,
		Currency:  "USD",
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a profile-owned expense category.
func CreateTestCategory(t *testing.T, db *gorm.DB, profileID string) *models.Category {
	t.Helper()

	category := &models.Category{
		ProfileID: &profileID,
		Name:      fmt.Sprintf("Test Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestGlobalCategory creates a shared default category with no owner.
func CreateTestGlobalCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: fmt.Sprintf("Global Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test global category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction of the given type and
// amount (in cents) without touching the account balance.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID string, txType models.TransactionType, amount int64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		AccountID: accountID,
		Type:      txType,
		Amount:    amount,
		Date:      time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a monthly budget for the given category.
func CreateTestBudget(t *testing.T, db *gorm.DB, profileID, categoryID string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		ProfileID:  profileID,
		CategoryID: categoryID,
		Amount:     10000, // $100.00
		Period:     models.BudgetPeriodMonthly,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestLoan creates an active loan of the given type and amount (in cents).
func CreateTestLoan(t *testing.T, db *gorm.DB, profileID string, loanType models.LoanType, amount int64) *models.Loan {
	t.Helper()

	loan := &models.Loan{
		ProfileID:        profileID,
		CounterpartyName: fmt.Sprintf("Counterparty %d", nextID()),
		Type:             loanType,
		TotalAmount:      amount,
		RemainingBalance: amount,
		Status:           models.LoanStatusActive,
	}
	if err := db.Create(loan).Error; err != nil {
		t.Fatalf("failed to create test loan: %v", err)
	}
	return loan
}

// CreateTestInvestment creates a stock holding valued at its principal.
func CreateTestInvestment(t *testing.T, db *gorm.DB, profileID string, principal int64) *models.Investment {
	t.Helper()

	investment := &models.Investment{
		ProfileID:       profileID,
		Name:            fmt.Sprintf("Test Holding %d", nextID()),
		AssetType:       models.AssetTypeStock,
		PrincipalAmount: principal,
		CurrentValue:    principal,
		LastUpdated:     time.Now(),
	}
	if err := db.Create(investment).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return investment
}

// CreateTestCurrency creates a currency with the given code and rate.
func CreateTestCurrency(t *testing.T, db *gorm.DB, code, rate string) *models.Currency {
	t.Helper()

	parsed, err := decimal.NewFromString(rate)
	if err != nil {
		t.Fatalf("invalid test rate %q: %v", rate, err)
	}

	currency := &models.Currency{
		Code:         code,
		ExchangeRate: parsed,
		LastUpdated:  time.Now(),
	}
	if err := db.Create(currency).Error; err != nil {
		t.Fatalf("failed to create test currency: %v", err)
	}
	return currency
}
