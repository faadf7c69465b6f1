package services

import (
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// activityService persists a lightweight audit trail of user actions.
// Writes happen in the background and never surface errors to the
// request that produced them.
type activityService struct {
	db         *gorm.DB
	dispatcher Dispatcher
}

// NewActivityService creates a new ActivityServicer.
func NewActivityService(db *gorm.DB, dispatcher Dispatcher) ActivityServicer {
	return &activityService{db: db, dispatcher: dispatcher}
}

// Record writes an activity row in the background. Failures are logged
// and dropped.
func (s *activityService) Record(userID, action, ipAddress string) {
	entry := &models.ActivityLog{
		UserID:    userID,
		Action:    action,
		IPAddress: ipAddress,
	}
	s.dispatcher.Dispatch(func() error {
		if err := s.db.Create(entry).Error; err != nil {
			logger.Get().Warnf("activity log write failed for user %s: %v", userID, err)
			return err
		}
		return nil
	})
}

// GetUserActivity retrieves the user's activity trail, newest first.
func (s *activityService) GetUserActivity(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.ActivityLog], error) {
	page.Defaults()

	query := s.db.Model(&models.ActivityLog{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.ActivityLog
	if err := query.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
