package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// reportService aggregates dashboard metrics for a profile. All date
// windows are computed in Go and passed as plain range predicates so
// the queries behave the same on every supported database.
type reportService struct {
	db              *gorm.DB
	profileService  ProfileServicer
	currencyService CurrencyServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, profileService ProfileServicer, currencyService CurrencyServicer) ReportServicer {
	return &reportService{db: db, profileService: profileService, currencyService: currencyService}
}

const trailingMonths = 6

// GetDashboard assembles the profile's headline numbers: net worth,
// the current month's income and expense, a trailing monthly series,
// the month's expense-by-category breakdown and the latest
// transactions.
func (s *reportService) GetDashboard(userID, profileID string, now time.Time) (*DashboardSummary, error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	netWorth, err := s.netWorth(profileID)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	income, expense, err := s.incomeExpenseBetween(profileID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		NetWorth:       netWorth,
		MonthlyIncome:  income,
		MonthlyExpense: expense,
	}
	if income > 0 {
		summary.SavingsRate = float64(income-expense) / float64(income) * 100
	}

	summary.Series = make([]MonthlyTotals, 0, trailingMonths)
	for i := trailingMonths - 1; i >= 0; i-- {
		start := monthStart.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		in, out, err := s.incomeExpenseBetween(profileID, start, end)
		if err != nil {
			return nil, err
		}
		summary.Series = append(summary.Series, MonthlyTotals{
			Month:   start.Format("2006-01"),
			Income:  in,
			Expense: out,
		})
	}

	summary.CategoryBreakdown, err = s.categoryBreakdown(profileID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	if err := s.profileTransactions(profileID).
		Preload("Account").Preload("Category").
		Order("transactions.date DESC").
		Limit(5).
		Find(&summary.RecentTransactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return summary, nil
}

// MonthlyIncomeExpense returns the income and expense totals for one
// calendar month.
func (s *reportService) MonthlyIncomeExpense(userID, profileID string, month time.Month, year int) (int64, int64, error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return 0, 0, err
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return s.incomeExpenseBetween(profileID, start, start.AddDate(0, 1, 0))
}

// netWorth is account balances converted to the base currency plus
// investment values, which are stored in base-currency cents already.
// Loans are tracked separately and stay out of the figure. Transfers
// cancel out by construction, so no transaction scan is needed.
func (s *reportService) netWorth(profileID string) (int64, error) {
	var balances []struct {
		Currency string
		Total    int64
	}
	err := s.db.Model(&models.Account{}).
		Where("profile_id = ?", profileID).
		Select("currency, COALESCE(SUM(balance), 0) AS total").
		Group("currency").
		Scan(&balances).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts int64
	for _, b := range balances {
		converted, err := s.currencyService.ConvertToBase(b.Total, b.Currency)
		if err != nil {
			return 0, err
		}
		accounts += converted
	}

	var investments int64
	err = s.db.Model(&models.Investment{}).
		Where("profile_id = ?", profileID).
		Select("COALESCE(SUM(current_value), 0)").
		Scan(&investments).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return accounts + investments, nil
}

func (s *reportService) profileTransactions(profileID string) *gorm.DB {
	return s.db.Model(&models.Transaction{}).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.profile_id = ? AND accounts.deleted_at IS NULL", profileID)
}

func (s *reportService) incomeExpenseBetween(profileID string, start, end time.Time) (int64, int64, error) {
	sum := func(transactionType models.TransactionType) (int64, error) {
		var total int64
		err := s.profileTransactions(profileID).
			Where("transactions.type = ?", transactionType).
			Where("transactions.date >= ? AND transactions.date < ?", start, end).
			Select("COALESCE(SUM(transactions.amount), 0)").
			Scan(&total).Error
		if err != nil {
			return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return total, nil
	}

	income, err := sum(models.TransactionTypeIncome)
	if err != nil {
		return 0, 0, err
	}
	expense, err := sum(models.TransactionTypeExpense)
	if err != nil {
		return 0, 0, err
	}
	return income, expense, nil
}

// categoryBreakdown sums the window's expenses per category, largest
// first. Uncategorised spending is reported under "Uncategorized".
func (s *reportService) categoryBreakdown(profileID string, start, end time.Time) ([]CategorySpend, error) {
	var rows []CategorySpend
	err := s.profileTransactions(profileID).
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.type = ?", models.TransactionTypeExpense).
		Where("transactions.date >= ? AND transactions.date < ?", start, end).
		Select("COALESCE(categories.name, 'Uncategorized') AS category, SUM(transactions.amount) AS amount").
		Group("COALESCE(categories.name, 'Uncategorized')").
		Order("amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}
