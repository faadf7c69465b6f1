package testutil_test

import (
	"testing"

	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "profiles", "currencies", "accounts", "categories", "transactions", "budgets", "loans", "investments", "otp_logs", "activity_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have a non-empty ID")
	}

	profile := testutil.CreateTestProfile(t, db, user.ID)
	account := testutil.CreateTestAccountWithBalance(t, db, profile.ID, 5000)
	if account.Balance != 5000 {
		t.Errorf("expected balance 5000, got %d", account.Balance)
	}

	global := testutil.CreateTestGlobalCategory(t, db)
	if !global.IsGlobal() {
		t.Error("expected a nil-profile category to be global")
	}

	owned := testutil.CreateTestCategory(t, db, profile.ID)
	if owned.IsGlobal() {
		t.Error("expected a profile-owned category to not be global")
	}

	tx := testutil.CreateTestTransaction(t, db, account.ID, models.TransactionTypeExpense, 1500)
	if tx.Amount != 1500 {
		t.Errorf("expected amount 1500, got %d", tx.Amount)
	}
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, errors.ErrAccountNotFound, "ACCOUNT_NOT_FOUND")
}
