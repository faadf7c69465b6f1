package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// loanService handles loan tracking business logic.
type loanService struct {
	db             *gorm.DB
	profileService ProfileServicer
}

// NewLoanService creates a new LoanServicer.
func NewLoanService(db *gorm.DB, profileService ProfileServicer) LoanServicer {
	return &loanService{db: db, profileService: profileService}
}

// CreateLoan records a new loan. The remaining balance starts equal to
// the total amount.
func (s *loanService) CreateLoan(userID, profileID, counterpartyName string, loanType models.LoanType, totalAmount int64, interestRate float64, dueDate *time.Time) (*models.Loan, error) {
	if totalAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than zero")
	}
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	loan := &models.Loan{
		ProfileID:        profileID,
		CounterpartyName: counterpartyName,
		Type:             loanType,
		TotalAmount:      totalAmount,
		RemainingBalance: totalAmount,
		InterestRate:     interestRate,
		DueDate:          dueDate,
		Status:           models.LoanStatusActive,
	}
	if err := s.db.Create(loan).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return loan, nil
}

// GetProfileLoans retrieves a paginated list of the profile's loans,
// active ones first.
func (s *loanService) GetProfileLoans(userID, profileID string, page pagination.PageRequest) (*pagination.PageResponse[models.Loan], error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	page.Defaults()

	query := s.db.Model(&models.Loan{}).Where("profile_id = ?", profileID)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var loans []models.Loan
	if err := query.Scopes(pagination.Paginate(page)).
		Order("status ASC, created_at DESC").
		Find(&loans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(loans, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetLoanByID retrieves a loan scoped to the user's profile.
func (s *loanService) GetLoanByID(userID, profileID, loanID string) (*models.Loan, error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	var loan models.Loan
	err := s.db.Where("id = ? AND profile_id = ?", loanID, profileID).First(&loan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &loan, nil
}

// UpdateLoan edits a loan's descriptive fields. Raising the total
// amount of an active loan grows the remaining balance by the same
// difference so payments already recorded stay accounted for.
func (s *loanService) UpdateLoan(userID, profileID, loanID string, fields LoanUpdateFields) (*models.Loan, error) {
	loan, err := s.GetLoanByID(userID, profileID, loanID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.CounterpartyName != nil {
		updates["counterparty_name"] = *fields.CounterpartyName
	}
	if fields.Type != nil {
		updates["type"] = *fields.Type
	}
	if fields.TotalAmount != nil {
		if *fields.TotalAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than zero")
		}
		diff := *fields.TotalAmount - loan.TotalAmount
		remaining := loan.RemainingBalance + diff
		if remaining < 0 {
			remaining = 0
		}
		updates["total_amount"] = *fields.TotalAmount
		updates["remaining_balance"] = remaining
		if remaining == 0 {
			updates["status"] = models.LoanStatusPaid
		} else {
			updates["status"] = models.LoanStatusActive
		}
	}
	if fields.InterestRate != nil {
		updates["interest_rate"] = *fields.InterestRate
	}
	if fields.DueDate != nil {
		updates["due_date"] = *fields.DueDate
	}
	if fields.Status != nil {
		updates["status"] = *fields.Status
		if *fields.Status == models.LoanStatusPaid {
			updates["remaining_balance"] = int64(0)
		}
	}
	if len(updates) == 0 {
		return loan, nil
	}

	if err := s.db.Model(loan).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return loan, nil
}

// RecordPayment reduces the remaining balance by the payment amount and
// marks the loan paid when it reaches zero. Overpayments clamp to zero.
func (s *loanService) RecordPayment(userID, profileID, loanID string, amount int64) (*models.Loan, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment amount must be greater than zero")
	}

	loan, err := s.GetLoanByID(userID, profileID, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status == models.LoanStatusPaid {
		return nil, apperrors.ErrLoanAlreadyPaid
	}

	remaining := loan.RemainingBalance - amount
	if remaining < 0 {
		remaining = 0
	}

	updates := map[string]interface{}{"remaining_balance": remaining}
	if remaining == 0 {
		updates["status"] = models.LoanStatusPaid
	}
	if err := s.db.Model(loan).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return loan, nil
}

// DeleteLoan removes a loan record.
func (s *loanService) DeleteLoan(userID, profileID, loanID string) error {
	loan, err := s.GetLoanByID(userID, profileID, loanID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(loan).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
