package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	t.Run("success_with_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		acctSvc := NewAccountService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)

		account, err := acctSvc.CreateAccount(user.ID, profile.ID, "Wallet", models.AccountTypeCash, "", 0, "", "")
		testutil.AssertNoError(t, err)

		if account.Currency != "USD" {
			t.Errorf("expected default currency USD, got %s", account.Currency)
		}
		if account.ColorTheme == "" {
			t.Error("expected a default color theme")
		}
		if account.Balance != 0 {
			t.Errorf("expected zero balance, got %d", account.Balance)
		}
	})

	t.Run("initial_balance_posts_opening_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		acctSvc := NewAccountService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)

		account, err := acctSvc.CreateAccount(user.ID, profile.ID, "Checking", models.AccountTypeBank, "USD", 250000, "", "")
		testutil.AssertNoError(t, err)

		if account.Balance != 250000 {
			t.Errorf("expected balance 250000, got %d", account.Balance)
		}

		var opening models.Transaction
		if err := db.Where("account_id = ?", account.ID).First(&opening).Error; err != nil {
			t.Fatalf("expected an opening transaction: %v", err)
		}
		if opening.Type != models.TransactionTypeIncome {
			t.Errorf("expected income opening transaction, got %s", opening.Type)
		}
		if opening.Amount != 250000 {
			t.Errorf("expected opening amount 250000, got %d", opening.Amount)
		}
		if opening.Description != "Initial balance" {
			t.Errorf("unexpected opening description %q", opening.Description)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		acctSvc := NewAccountService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)

		_, err := acctSvc.CreateAccount(user.ID, profile.ID, "", models.AccountTypeBank, "USD", 0, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("other_users_profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		acctSvc := NewAccountService(db, profSvc)
		owner := testutil.CreateTestUser(t, db)
		ownerProfile := testutil.CreateTestProfile(t, db, owner.ID)
		intruder := testutil.CreateTestUser(t, db)

		_, err := acctSvc.CreateAccount(intruder.ID, ownerProfile.ID, "Sneaky", models.AccountTypeBank, "USD", 0, "", "")
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}

func TestGetProfileAccounts(t *testing.T) {
	t.Run("excludes_archived", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		acctSvc := NewAccountService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		active := testutil.CreateTestAccount(t, db, profile.ID)
		archived := testutil.CreateTestAccount(t, db, profile.ID)

		archive := true
		_, err := acctSvc.UpdateAccount(user.ID, profile.ID, archived.ID, AccountUpdateFields{IsArchived: &archive})
		testutil.AssertNoError(t, err)

		page, err := acctSvc.GetProfileAccounts(user.ID, profile.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Fatalf("expected 1 active account, got %d", page.TotalItems)
		}
		if page.Data[0].ID != active.ID {
			t.Error("expected the non-archived account to be listed")
		}
	})
}

func TestUpdateAccount(t *testing.T) {
	t.Run("balance_never_updated_directly", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		acctSvc := NewAccountService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		account := testutil.CreateTestAccountWithBalance(t, db, profile.ID, 7000)

		name := "Renamed"
		bankType := models.AccountTypeBank
		updated, err := acctSvc.UpdateAccount(user.ID, profile.ID, account.ID, AccountUpdateFields{Name: &name, Type: &bankType})
		testutil.AssertNoError(t, err)

		if updated.Name != "Renamed" {
			t.Errorf("expected name Renamed, got %s", updated.Name)
		}
		if updated.Balance != 7000 {
			t.Errorf("update must not touch the balance, got %d", updated.Balance)
		}
	})

	t.Run("wrong_profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		acctSvc := NewAccountService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		other := testutil.CreateTestProfile(t, db, user.ID)
		account := testutil.CreateTestAccount(t, db, profile.ID)

		name := "Hijacked"
		_, err := acctSvc.UpdateAccount(user.ID, other.ID, account.ID, AccountUpdateFields{Name: &name})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("cascades_transactions_and_clears_transfer_refs", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		acctSvc := NewAccountService(db, profSvc)
		txSvc := NewTransactionService(db, profSvc, acctSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		keep := testutil.CreateTestAccountWithBalance(t, db, profile.ID, 50000)
		doomed := testutil.CreateTestAccountWithBalance(t, db, profile.ID, 10000)

		_, err := txSvc.CreateTransaction(user.ID, profile.ID, doomed.ID, nil, models.TransactionTypeExpense, 1000, "", "", time.Now())
		testutil.AssertNoError(t, err)
		inbound, err := txSvc.CreateTransfer(user.ID, profile.ID, keep.ID, doomed.ID, 5000, "", time.Now())
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, acctSvc.DeleteAccount(user.ID, profile.ID, doomed.ID))

		_, err = acctSvc.GetAccountByID(user.ID, profile.ID, doomed.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")

		var count int64
		db.Model(&models.Transaction{}).Where("account_id = ?", doomed.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected the account's transactions gone, got %d", count)
		}

		// The transfer posted from the surviving account stays, with its
		// destination reference cleared.
		var surviving models.Transaction
		if err := db.Where("id = ?", inbound.ID).First(&surviving).Error; err != nil {
			t.Fatalf("expected the outbound transfer row to survive: %v", err)
		}
		if surviving.TransferToAccountID != nil {
			t.Error("expected transfer destination reference to be cleared")
		}
	})
}
