package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// transactionService handles transaction business logic and keeps each
// account's stored balance equal to the net signed effect of the
// transactions posted against it. Every mutation runs inside a single
// database transaction: ownership is checked before any balance moves,
// so a rejected operation leaves no partial state behind.
type transactionService struct {
	db             *gorm.DB
	profileService ProfileServicer
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, profileService ProfileServicer, accountService AccountServicer) TransactionServicer {
	return &transactionService{db: db, profileService: profileService, accountService: accountService}
}

// adjustBalance shifts an account balance by delta cents.
func adjustBalance(tx *gorm.DB, accountID string, delta int64) error {
	result := tx.Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// applyEffect applies (sign = +1) or reverses (sign = -1) a
// transaction's monetary effect. Income credits the owning account and
// expense debits it. Transfers are double-entry: the owning account is
// debited and the destination credited.
func applyEffect(tx *gorm.DB, t *models.Transaction, sign int64) error {
	switch t.Type {
	case models.TransactionTypeIncome:
		return adjustBalance(tx, t.AccountID, sign*t.Amount)
	case models.TransactionTypeExpense:
		return adjustBalance(tx, t.AccountID, -sign*t.Amount)
	case models.TransactionTypeTransfer:
		if err := adjustBalance(tx, t.AccountID, -sign*t.Amount); err != nil {
			return err
		}
		if t.TransferToAccountID != nil {
			return adjustBalance(tx, *t.TransferToAccountID, sign*t.Amount)
		}
		return nil
	default:
		return apperrors.ErrInvalidTransactionType
	}
}

// CreateTransaction records an income or expense against an account and
// applies its effect to the account balance. Transfers go through
// CreateTransfer.
func (s *transactionService) CreateTransaction(
	userID, profileID, accountID string,
	categoryID *string,
	transactionType models.TransactionType,
	amount int64,
	description, tags string,
	date time.Time,
) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if transactionType != models.TransactionTypeIncome && transactionType != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}

	// Ownership check happens before any balance mutation.
	account, err := s.accountService.GetAccountByID(userID, profileID, accountID)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		if err := s.checkCategoryVisible(profileID, *categoryID); err != nil {
			return nil, err
		}
	}

	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		AccountID:   account.ID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Description: description,
		Tags:        tags,
		Date:        date,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return applyEffect(tx, transaction, +1)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// CreateTransfer moves money between two accounts of the same profile:
// the source is debited and the destination credited atomically.
func (s *transactionService) CreateTransfer(
	userID, profileID, fromAccountID, toAccountID string,
	amount int64,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if fromAccountID == toAccountID {
		return nil, apperrors.ErrSameAccountTransfer
	}

	from, err := s.accountService.GetAccountByID(userID, profileID, fromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.accountService.GetAccountByID(userID, profileID, toAccountID)
	if err != nil {
		return nil, err
	}

	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		AccountID:           from.ID,
		Type:                models.TransactionTypeTransfer,
		Amount:              amount,
		Description:         description,
		Date:                date,
		TransferToAccountID: &to.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return applyEffect(tx, transaction, +1)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetProfileTransactions retrieves a paginated, filtered list of
// transactions across all accounts in the profile, newest first.
func (s *transactionService) GetProfileTransactions(userID, profileID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Transaction{}).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.profile_id = ? AND accounts.deleted_at IS NULL", profileID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Account").Preload("Category").
		Scopes(pagination.Paginate(page)).
		Order("transactions.date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("transactions.date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("transactions.date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("transactions.type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("transactions.category_id = ?", *f.CategoryID)
	}
	if f.MinAmount != nil {
		q = q.Where("transactions.amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("transactions.amount <= ?", *f.MaxAmount)
	}
	if f.AccountID != nil {
		q = q.Where("transactions.account_id = ?", *f.AccountID)
	}
	return q
}

// GetTransactionByID retrieves a transaction if it is posted against an
// account of the user's profile.
func (s *transactionService) GetTransactionByID(userID, profileID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Joins("JOIN profiles ON profiles.id = accounts.profile_id").
		Where("transactions.id = ? AND accounts.profile_id = ? AND profiles.user_id = ?", transactionID, profileID, userID).
		Where("accounts.deleted_at IS NULL AND profiles.deleted_at IS NULL").
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction edits a transaction by reversing the old effect on
// the old account and applying the new effect on the (possibly
// different) new account, in that order, inside one database
// transaction. Changing the type to or from transfer is rejected.
func (s *transactionService) UpdateTransaction(userID, profileID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, profileID, transactionID)
	if err != nil {
		return nil, err
	}

	newType := transaction.Type
	if fields.Type != nil {
		newType = *fields.Type
	}
	oldIsTransfer := transaction.Type == models.TransactionTypeTransfer
	newIsTransfer := newType == models.TransactionTypeTransfer
	if oldIsTransfer != newIsTransfer {
		return nil, apperrors.ErrInvalidTypeChange
	}

	if fields.Amount != nil && *fields.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	newAccountID := transaction.AccountID
	if fields.AccountID != nil {
		// The new account must live in the same profile; reject before
		// touching any balance.
		account, err := s.accountService.GetAccountByID(userID, profileID, *fields.AccountID)
		if err != nil {
			return nil, err
		}
		if oldIsTransfer && transaction.TransferToAccountID != nil && account.ID == *transaction.TransferToAccountID {
			return nil, apperrors.ErrSameAccountTransfer
		}
		newAccountID = account.ID
	}

	if fields.CategoryID != nil {
		if err := s.checkCategoryVisible(profileID, *fields.CategoryID); err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Reverse the old effect first, then apply the new one.
		if err := applyEffect(tx, transaction, -1); err != nil {
			return err
		}

		transaction.AccountID = newAccountID
		transaction.Type = newType
		if fields.Amount != nil {
			transaction.Amount = *fields.Amount
		}
		if fields.CategoryID != nil {
			transaction.CategoryID = fields.CategoryID
		}
		if fields.Description != nil {
			transaction.Description = *fields.Description
		}
		if fields.Tags != nil {
			transaction.Tags = *fields.Tags
		}
		if fields.Date != nil {
			transaction.Date = *fields.Date
		}

		if err := applyEffect(tx, transaction, +1); err != nil {
			return err
		}

		if err := tx.Save(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// DeleteTransaction reverses the transaction's effect and removes the
// record, restoring the account to the balance it would have had absent
// the transaction.
func (s *transactionService) DeleteTransaction(userID, profileID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, profileID, transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := applyEffect(tx, transaction, -1); err != nil {
			return err
		}
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// checkCategoryVisible verifies a category is either owned by the
// profile or a shared global default.
func (s *transactionService) checkCategoryVisible(profileID, categoryID string) error {
	var count int64
	err := s.db.Model(&models.Category{}).
		Where("id = ? AND (profile_id = ? OR profile_id IS NULL)", categoryID, profileID).
		Count(&count).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
