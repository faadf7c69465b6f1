package services

import (
	"context"
	"io"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// Messenger is the outbound Telegram collaborator. Implementations
// report delivery success or failure and nothing else.
type Messenger interface {
	SendMessage(ctx context.Context, chatID, text string) error
	SendDocument(ctx context.Context, chatID, path, caption string) error
}

// Dispatcher runs a delivery job in the background so it cannot block
// or fail the request that triggered it.
type Dispatcher interface {
	Dispatch(job func() error)
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password, telegramChatID string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByChatID(telegramChatID string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	MarkVerified(userID string) error
	UpdatePassword(userID, newPassword string) error
	RecordLogin(userID string) error
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// OTPServicer defines the contract for the one-time-password workflow.
type OTPServicer interface {
	// CreateOTPForUser invalidates any previously unused codes, issues a
	// fresh one and attempts Telegram delivery. The stored code survives
	// a delivery failure; delivered reports the delivery outcome.
	CreateOTPForUser(user *models.User) (delivered bool, err error)
	// VerifyOTP checks a candidate code. It returns nil on success and
	// ErrOTPInvalid, ErrOTPExpired or ErrOTPExhausted otherwise. Every
	// outcome consumes the matched code.
	VerifyOTP(userID, code string) error
}

// ProfileServicer defines the contract for profile management.
type ProfileServicer interface {
	CreateProfile(userID, name string) (*models.Profile, error)
	GetUserProfiles(userID string) ([]models.Profile, error)
	GetProfileByID(userID, profileID string) (*models.Profile, error)
	RenameProfile(userID, profileID, name string) (*models.Profile, error)
	SwitchProfile(userID, profileID string) (*models.Profile, error)
	DeleteProfile(userID, profileID string) error
}

// AccountUpdateFields holds the optional fields of an account update.
type AccountUpdateFields struct {
	Name       *string
	Type       *models.AccountType
	Currency   *string
	ColorTheme *string
	Icon       *string
	IsArchived *bool
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID, profileID, name string, accountType models.AccountType, currency string, initialBalance int64, colorTheme, icon string) (*models.Account, error)
	GetProfileAccounts(userID, profileID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(userID, profileID, accountID string) (*models.Account, error)
	UpdateAccount(userID, profileID, accountID string, fields AccountUpdateFields) (*models.Account, error)
	// DeleteAccount removes the account and, explicitly, every
	// transaction posted against it.
	DeleteAccount(userID, profileID, accountID string) error
}

// CategoryServicer defines the contract for category-related business logic.
// Reads include global default categories (nil profile); writes to
// global categories are rejected.
type CategoryServicer interface {
	CreateCategory(userID, profileID, name, icon, color string, isIncome bool, parentID *string) (*models.Category, error)
	GetProfileCategories(userID, profileID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, profileID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, profileID, categoryID string, name, icon, color *string, isIncome *bool) (*models.Category, error)
	DeleteCategory(userID, profileID, categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
	MinAmount  *int64
	MaxAmount  *int64
	AccountID  *string
}

// TransactionUpdateFields holds the optional fields of a transaction update.
type TransactionUpdateFields struct {
	AccountID   *string
	CategoryID  *string
	Type        *models.TransactionType
	Amount      *int64
	Description *string
	Tags        *string
	Date        *time.Time
}

// TransactionServicer defines the contract for transaction-related
// business logic, including the balance reconciliation rules.
type TransactionServicer interface {
	CreateTransaction(userID, profileID, accountID string, categoryID *string, transactionType models.TransactionType, amount int64, description, tags string, date time.Time) (*models.Transaction, error)
	CreateTransfer(userID, profileID, fromAccountID, toAccountID string, amount int64, description string, date time.Time) (*models.Transaction, error)
	GetProfileTransactions(userID, profileID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, profileID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, profileID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, profileID, transactionID string) error
}

// BudgetProgress contains spending vs budget data for a budget's current period.
type BudgetProgress struct {
	BudgetID   string  `json:"budget_id"`
	Budgeted   int64   `json:"budgeted"`
	Spent      int64   `json:"spent"`
	Remaining  int64   `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, profileID, categoryID string, amount int64, period models.BudgetPeriod, startDate, endDate *time.Time) (*models.Budget, error)
	GetProfileBudgets(userID, profileID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, profileID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, profileID, budgetID string, categoryID *string, amount *int64, period *models.BudgetPeriod, endDate *time.Time) (*models.Budget, error)
	DeleteBudget(userID, profileID, budgetID string) error
	GetBudgetProgress(userID, profileID, budgetID string) (*BudgetProgress, error)
}

// LoanUpdateFields holds the optional fields of a loan update.
type LoanUpdateFields struct {
	CounterpartyName *string
	Type             *models.LoanType
	TotalAmount      *int64
	InterestRate     *float64
	DueDate          *time.Time
	Status           *models.LoanStatus
}

// LoanServicer defines the contract for loan tracking.
type LoanServicer interface {
	CreateLoan(userID, profileID, counterpartyName string, loanType models.LoanType, totalAmount int64, interestRate float64, dueDate *time.Time) (*models.Loan, error)
	GetProfileLoans(userID, profileID string, page pagination.PageRequest) (*pagination.PageResponse[models.Loan], error)
	GetLoanByID(userID, profileID, loanID string) (*models.Loan, error)
	UpdateLoan(userID, profileID, loanID string, fields LoanUpdateFields) (*models.Loan, error)
	// RecordPayment reduces the remaining balance and marks the loan
	// paid when it reaches zero.
	RecordPayment(userID, profileID, loanID string, amount int64) (*models.Loan, error)
	DeleteLoan(userID, profileID, loanID string) error
}

// InvestmentServicer defines the contract for investment tracking.
type InvestmentServicer interface {
	CreateInvestment(userID, profileID, name string, assetType models.AssetType, principal int64) (*models.Investment, error)
	GetProfileInvestments(userID, profileID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	GetInvestmentByID(userID, profileID, investmentID string) (*models.Investment, error)
	UpdateInvestment(userID, profileID, investmentID string, name *string, assetType *models.AssetType, principal, currentValue *int64) (*models.Investment, error)
	DeleteInvestment(userID, profileID, investmentID string) error
}

// CurrencyServicer defines the contract for currency lookups and
// base-currency conversion.
type CurrencyServicer interface {
	ListCurrencies() ([]models.Currency, error)
	GetByCode(code string) (*models.Currency, error)
	UpdateRate(code string, rate string) (*models.Currency, error)
	// ConvertToBase converts an amount in cents of the given currency
	// into base-currency cents, rounding half up.
	ConvertToBase(amount int64, code string) (int64, error)
}

// MonthlyTotals is one point of the trailing income/expense series.
type MonthlyTotals struct {
	Month   string `json:"month"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// CategorySpend is one slice of the expense-by-category breakdown.
type CategorySpend struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// DashboardSummary aggregates the profile's headline metrics.
type DashboardSummary struct {
	NetWorth           int64                `json:"net_worth"`
	MonthlyIncome      int64                `json:"monthly_income"`
	MonthlyExpense     int64                `json:"monthly_expense"`
	SavingsRate        float64              `json:"savings_rate"`
	Series             []MonthlyTotals      `json:"series"`
	CategoryBreakdown  []CategorySpend      `json:"category_breakdown"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
}

// ReportServicer defines the contract for dashboard reporting.
type ReportServicer interface {
	GetDashboard(userID, profileID string, now time.Time) (*DashboardSummary, error)
	MonthlyIncomeExpense(userID, profileID string, month time.Month, year int) (income, expense int64, err error)
}

// ExportServicer renders a profile's transactions as tabular rows.
type ExportServicer interface {
	WriteCSV(userID, profileID string, w io.Writer) error
	WriteXLSX(userID, profileID string, w io.Writer) error
	// Snapshot writes an XLSX file to the export directory and pushes it
	// to the user's Telegram chat in the background. The local file is
	// the source of truth; delivery failure is only logged.
	Snapshot(userID, profileID string) (path string, err error)
}

// ActivityServicer defines the contract for activity logging.
type ActivityServicer interface {
	Record(userID, action, ipAddress string)
	GetUserActivity(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.ActivityLog], error)
}
