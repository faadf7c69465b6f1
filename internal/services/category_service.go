package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// categoryService handles category business logic. Categories come in
// two flavours: profile-owned rows and seeded global defaults with a
// nil profile. Globals are visible to every profile but read-only.
type categoryService struct {
	db             *gorm.DB
	profileService ProfileServicer
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, profileService ProfileServicer) CategoryServicer {
	return &categoryService{db: db, profileService: profileService}
}

// CreateCategory creates a profile-owned category.
func (s *categoryService) CreateCategory(userID, profileID, name, icon, color string, isIncome bool, parentID *string) (*models.Category, error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	if parentID != nil {
		if _, err := s.visibleCategory(profileID, *parentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		ProfileID: &profileID,
		Name:      name,
		Icon:      icon,
		Color:     color,
		IsIncome:  isIncome,
		ParentID:  parentID,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetProfileCategories lists the profile's own categories together with
// the global defaults.
func (s *categoryService) GetProfileCategories(userID, profileID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	page.Defaults()

	query := s.db.Model(&models.Category{}).
		Where("profile_id = ? OR profile_id IS NULL", profileID)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := query.Scopes(pagination.Paginate(page)).
		Order("profile_id IS NULL, name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves a category visible to the profile, either
// its own or a global default.
func (s *categoryService) GetCategoryByID(userID, profileID, categoryID string) (*models.Category, error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}
	return s.visibleCategory(profileID, categoryID)
}

// UpdateCategory edits a profile-owned category. Global defaults cannot
// be modified.
func (s *categoryService) UpdateCategory(userID, profileID, categoryID string, name, icon, color *string, isIncome *bool) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, profileID, categoryID)
	if err != nil {
		return nil, err
	}
	if category.IsGlobal() {
		return nil, apperrors.ErrCategoryReadOnly
	}

	updates := make(map[string]interface{})
	if name != nil {
		updates["name"] = *name
	}
	if icon != nil {
		updates["icon"] = *icon
	}
	if color != nil {
		updates["color"] = *color
	}
	if isIncome != nil {
		updates["is_income"] = *isIncome
	}
	if len(updates) == 0 {
		return category, nil
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// DeleteCategory removes a profile-owned category. Transactions that
// referenced it keep existing with their category cleared. Global
// defaults cannot be deleted.
func (s *categoryService) DeleteCategory(userID, profileID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, profileID, categoryID)
	if err != nil {
		return err
	}
	if category.IsGlobal() {
		return apperrors.ErrCategoryReadOnly
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.Budget{}).
			Where("category_id = ?", category.ID).
			Delete(&models.Budget{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.Category{}).
			Where("parent_id = ?", category.ID).
			Update("parent_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

func (s *categoryService) visibleCategory(profileID, categoryID string) (*models.Category, error) {
	var category models.Category
	err := s.db.
		Where("id = ? AND (profile_id = ? OR profile_id IS NULL)", categoryID, profileID).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}
