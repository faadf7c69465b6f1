package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// budgetService handles budget business logic.
type budgetService struct {
	db              *gorm.DB
	profileService  ProfileServicer
	categoryService CategoryServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, profileService ProfileServicer, categoryService CategoryServicer) BudgetServicer {
	return &budgetService{db: db, profileService: profileService, categoryService: categoryService}
}

// CreateBudget sets a spending plan for a category. The category must
// be visible to the profile (its own or a global default).
func (s *budgetService) CreateBudget(userID, profileID, categoryID string, amount int64, period models.BudgetPeriod, startDate, endDate *time.Time) (*models.Budget, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if _, err := s.categoryService.GetCategoryByID(userID, profileID, categoryID); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		ProfileID:  profileID,
		CategoryID: categoryID,
		Amount:     amount,
		Period:     period,
		StartDate:  startDate,
		EndDate:    endDate,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetProfileBudgets retrieves a paginated list of the profile's budgets.
func (s *budgetService) GetProfileBudgets(userID, profileID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	page.Defaults()

	query := s.db.Model(&models.Budget{}).Where("profile_id = ?", profileID)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := query.Preload("Category").
		Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID retrieves a budget scoped to the user's profile.
func (s *budgetService) GetBudgetByID(userID, profileID, budgetID string) (*models.Budget, error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	var budget models.Budget
	err := s.db.Preload("Category").
		Where("id = ? AND profile_id = ?", budgetID, profileID).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget edits a budget's category, amount, period or end date.
func (s *budgetService) UpdateBudget(userID, profileID, budgetID string, categoryID *string, amount *int64, period *models.BudgetPeriod, endDate *time.Time) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, profileID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if categoryID != nil {
		if _, err := s.categoryService.GetCategoryByID(userID, profileID, *categoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *categoryID
	}
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *amount
	}
	if period != nil {
		updates["period"] = *period
	}
	if endDate != nil {
		updates["end_date"] = *endDate
	}
	if len(updates) == 0 {
		return budget, nil
	}

	if err := s.db.Model(budget).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// DeleteBudget removes a budget.
func (s *budgetService) DeleteBudget(userID, profileID, budgetID string) error {
	budget, err := s.GetBudgetByID(userID, profileID, budgetID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetProgress sums the expense transactions in the budget's
// category over its current period and compares them to the budgeted
// amount.
func (s *budgetService) GetBudgetProgress(userID, profileID, budgetID string) (*BudgetProgress, error) {
	budget, err := s.GetBudgetByID(userID, profileID, budgetID)
	if err != nil {
		return nil, err
	}

	periodStart, periodEnd := currentPeriod(budget, time.Now())

	var spent int64
	err = s.db.Model(&models.Transaction{}).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.profile_id = ? AND accounts.deleted_at IS NULL", profileID).
		Where("transactions.category_id = ?", budget.CategoryID).
		Where("transactions.type = ?", models.TransactionTypeExpense).
		Where("transactions.date >= ? AND transactions.date < ?", periodStart, periodEnd).
		Select("COALESCE(SUM(transactions.amount), 0)").
		Scan(&spent).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	progress := &BudgetProgress{
		BudgetID:  budget.ID,
		Budgeted:  budget.Amount,
		Spent:     spent,
		Remaining: budget.Amount - spent,
	}
	if budget.Amount > 0 {
		progress.Percentage = float64(spent) / float64(budget.Amount) * 100
	}
	return progress, nil
}

// currentPeriod returns the half-open [start, end) window the budget is
// currently in: the calendar month or year containing now, clamped to
// the budget's own start and end dates when set.
func currentPeriod(budget *models.Budget, now time.Time) (time.Time, time.Time) {
	var start, end time.Time
	switch budget.Period {
	case models.BudgetPeriodYearly:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(1, 0, 0)
	default:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)
	}
	if budget.StartDate != nil && budget.StartDate.After(start) {
		start = *budget.StartDate
	}
	if budget.EndDate != nil && budget.EndDate.Before(end) {
		end = *budget.EndDate
	}
	return start, end
}
