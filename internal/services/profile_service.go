package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// profileService handles profile management. A profile is the scoping
// boundary for all finance entities; every other service resolves the
// (userID, profileID) pair through GetProfileByID before touching data.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// CreateProfile creates a named profile for the user.
func (s *profileService) CreateProfile(userID, name string) (*models.Profile, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "profile name is required")
	}

	var count int64
	if err := s.db.Model(&models.Profile{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateProfile
	}

	profile := &models.Profile{UserID: userID, Name: name}
	if err := s.db.Create(profile).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return profile, nil
}

// GetUserProfiles lists all profiles owned by the user.
func (s *profileService) GetUserProfiles(userID string) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&profiles).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return profiles, nil
}

// GetProfileByID retrieves a profile by ID if the user owns it.
func (s *profileService) GetProfileByID(userID, profileID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("id = ? AND user_id = ?", profileID, userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// RenameProfile changes a profile's name.
func (s *profileService) RenameProfile(userID, profileID, name string) (*models.Profile, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "profile name is required")
	}

	profile, err := s.GetProfileByID(userID, profileID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Profile{}).
		Where("user_id = ? AND name = ? AND id != ?", userID, name, profileID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateProfile
	}

	if err := s.db.Model(profile).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return profile, nil
}

// SwitchProfile stamps the profile as most recently used. Scoping never
// depends on this: callers still pass the profile ID explicitly on
// every operation, so a switch cannot race a concurrent request.
func (s *profileService) SwitchProfile(userID, profileID string) (*models.Profile, error) {
	profile, err := s.GetProfileByID(userID, profileID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.Model(profile).Update("last_used_at", now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	profile.LastUsedAt = &now
	return profile, nil
}

// DeleteProfile removes a profile. Child entities are expected to be
// cleaned up by their own services first; the handler enforces this
// by refusing to delete a profile that still has accounts.
func (s *profileService) DeleteProfile(userID, profileID string) error {
	profile, err := s.GetProfileByID(userID, profileID)
	if err != nil {
		return err
	}

	var accounts int64
	if err := s.db.Model(&models.Account{}).Where("profile_id = ?", profileID).Count(&accounts).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if accounts > 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "profile still has accounts; delete them first")
	}

	if err := s.db.Delete(profile).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
