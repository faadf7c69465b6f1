package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// investmentService handles investment tracking business logic.
type investmentService struct {
	db             *gorm.DB
	profileService ProfileServicer
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB, profileService ProfileServicer) InvestmentServicer {
	return &investmentService{db: db, profileService: profileService}
}

// CreateInvestment records a holding. The current value starts at the
// principal until a revaluation comes in.
func (s *investmentService) CreateInvestment(userID, profileID, name string, assetType models.AssetType, principal int64) (*models.Investment, error) {
	if principal <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "principal must be greater than zero")
	}
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	investment := &models.Investment{
		ProfileID:       profileID,
		Name:            name,
		AssetType:       assetType,
		PrincipalAmount: principal,
		CurrentValue:    principal,
		LastUpdated:     time.Now(),
	}
	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// GetProfileInvestments retrieves a paginated list of the profile's holdings.
func (s *investmentService) GetProfileInvestments(userID, profileID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	page.Defaults()

	query := s.db.Model(&models.Investment{}).Where("profile_id = ?", profileID)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := query.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetInvestmentByID retrieves a holding scoped to the user's profile.
func (s *investmentService) GetInvestmentByID(userID, profileID, investmentID string) (*models.Investment, error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	var investment models.Investment
	err := s.db.Where("id = ? AND profile_id = ?", investmentID, profileID).First(&investment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// UpdateInvestment edits a holding. Setting the current value stamps
// the revaluation time.
func (s *investmentService) UpdateInvestment(userID, profileID, investmentID string, name *string, assetType *models.AssetType, principal, currentValue *int64) (*models.Investment, error) {
	investment, err := s.GetInvestmentByID(userID, profileID, investmentID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil {
		updates["name"] = *name
	}
	if assetType != nil {
		updates["asset_type"] = *assetType
	}
	if principal != nil {
		if *principal <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "principal must be greater than zero")
		}
		updates["principal_amount"] = *principal
	}
	if currentValue != nil {
		if *currentValue < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current value cannot be negative")
		}
		updates["current_value"] = *currentValue
		updates["last_updated"] = time.Now()
	}
	if len(updates) == 0 {
		return investment, nil
	}

	if err := s.db.Model(investment).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// DeleteInvestment removes a holding.
func (s *investmentService) DeleteInvestment(userID, profileID, investmentID string) error {
	investment, err := s.GetInvestmentByID(userID, profileID, investmentID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(investment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
