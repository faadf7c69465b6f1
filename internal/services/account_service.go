package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// accountService handles account-related business logic.
type accountService struct {
	db             *gorm.DB
	profileService ProfileServicer
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB, profileService ProfileServicer) AccountServicer {
	return &accountService{db: db, profileService: profileService}
}

// CreateAccount creates a new account in a profile. A positive initial
// balance is recorded as an opening income transaction so the balance
// invariant holds from the very first row.
func (s *accountService) CreateAccount(
	userID, profileID, name string,
	accountType models.AccountType,
	currency string,
	initialBalance int64,
	colorTheme, icon string,
) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	if currency == "" {
		currency = "USD"
	}
	if colorTheme == "" {
		colorTheme = "#4f46e5"
	}

	account := &models.Account{
		ProfileID:  profileID,
		Name:       name,
		Type:       accountType,
		Currency:   currency,
		Balance:    initialBalance,
		ColorTheme: colorTheme,
		Icon:       icon,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if initialBalance > 0 {
			opening := &models.Transaction{
				AccountID:   account.ID,
				Type:        models.TransactionTypeIncome,
				Amount:      initialBalance,
				Description: "Initial balance",
				Date:        time.Now(),
			}
			if err := tx.Create(opening).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetProfileAccounts retrieves a paginated list of accounts in a profile.
func (s *accountService) GetProfileAccounts(userID, profileID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Account{}).Where("profile_id = ? AND is_archived = ?", profileID, false)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountByID retrieves an account if it belongs to the user's profile.
func (s *accountService) GetAccountByID(userID, profileID, accountID string) (*models.Account, error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	var account models.Account
	if err := s.db.Where("id = ? AND profile_id = ?", accountID, profileID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount updates an account's descriptive fields. Balance is
// never set directly; it only moves through transactions.
func (s *accountService) UpdateAccount(userID, profileID, accountID string, fields AccountUpdateFields) (*models.Account, error) {
	account, err := s.GetAccountByID(userID, profileID, accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Type != nil {
		updates["type"] = *fields.Type
	}
	if fields.Currency != nil && *fields.Currency != "" {
		updates["currency"] = *fields.Currency
	}
	if fields.ColorTheme != nil {
		updates["color_theme"] = *fields.ColorTheme
	}
	if fields.Icon != nil {
		updates["icon"] = *fields.Icon
	}
	if fields.IsArchived != nil {
		updates["is_archived"] = *fields.IsArchived
	}

	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", account.ID).First(account).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return account, nil
}

// DeleteAccount removes the account together with every transaction
// posted against it, as one explicit procedure. Transfer rows on other
// accounts that point at this one keep their debit effect but lose the
// dangling destination reference.
func (s *accountService) DeleteAccount(userID, profileID, accountID string) error {
	account, err := s.GetAccountByID(userID, profileID, accountID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", account.ID).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&models.Transaction{}).
			Where("transfer_to_account_id = ?", account.ID).
			Update("transfer_to_account_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Delete(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return nil
	})
}
