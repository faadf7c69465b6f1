package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("success_with_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		catSvc := NewCategoryService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		parent := testutil.CreateTestCategory(t, db, profile.ID)

		category, err := catSvc.CreateCategory(user.ID, profile.ID, "Restaurants", "🍽️", "#ff8800", false, &parent.ID)
		testutil.AssertNoError(t, err)
		if category.ParentID == nil || *category.ParentID != parent.ID {
			t.Error("expected parent to be recorded")
		}
		if category.ProfileID == nil || *category.ProfileID != profile.ID {
			t.Error("expected category to be owned by the profile")
		}
	})

	t.Run("global_parent_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		catSvc := NewCategoryService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		global := testutil.CreateTestGlobalCategory(t, db)

		_, err := catSvc.CreateCategory(user.ID, profile.ID, "Takeout", "", "", false, &global.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("parent_from_other_profile_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		catSvc := NewCategoryService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		other := testutil.CreateTestProfile(t, db, user.ID)
		foreign := testutil.CreateTestCategory(t, db, other.ID)

		_, err := catSvc.CreateCategory(user.ID, profile.ID, "Orphan", "", "", false, &foreign.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestGetProfileCategories(t *testing.T) {
	t.Run("includes_globals_excludes_other_profiles", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		catSvc := NewCategoryService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		other := testutil.CreateTestProfile(t, db, user.ID)
		own := testutil.CreateTestCategory(t, db, profile.ID)
		global := testutil.CreateTestGlobalCategory(t, db)
		foreign := testutil.CreateTestCategory(t, db, other.ID)

		page, err := catSvc.GetProfileCategories(user.ID, profile.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 2 {
			t.Fatalf("expected 2 visible categories, got %d", page.TotalItems)
		}
		seen := map[string]bool{}
		for _, c := range page.Data {
			seen[c.ID] = true
		}
		if !seen[own.ID] || !seen[global.ID] {
			t.Error("expected own and global categories to be listed")
		}
		if seen[foreign.ID] {
			t.Error("another profile's category must not be listed")
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("global_is_read_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		catSvc := NewCategoryService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		global := testutil.CreateTestGlobalCategory(t, db)

		name := "Renamed"
		_, err := catSvc.UpdateCategory(user.ID, profile.ID, global.ID, &name, nil, nil, nil)
		testutil.AssertAppError(t, err, "CATEGORY_READ_ONLY")
	})

	t.Run("own_category_updated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		catSvc := NewCategoryService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, profile.ID)

		name := "Utilities"
		isIncome := false
		updated, err := catSvc.UpdateCategory(user.ID, profile.ID, category.ID, &name, nil, nil, &isIncome)
		testutil.AssertNoError(t, err)
		if updated.Name != "Utilities" {
			t.Errorf("expected name Utilities, got %s", updated.Name)
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("global_is_read_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		catSvc := NewCategoryService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		global := testutil.CreateTestGlobalCategory(t, db)

		err := catSvc.DeleteCategory(user.ID, profile.ID, global.ID)
		testutil.AssertAppError(t, err, "CATEGORY_READ_ONLY")
	})

	t.Run("clears_transactions_budgets_and_children", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		acctSvc := NewAccountService(db, profSvc)
		catSvc := NewCategoryService(db, profSvc)
		txSvc := NewTransactionService(db, profSvc, acctSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		account := testutil.CreateTestAccountWithBalance(t, db, profile.ID, 10000)
		category := testutil.CreateTestCategory(t, db, profile.ID)
		child, err := catSvc.CreateCategory(user.ID, profile.ID, "Child", "", "", false, &category.ID)
		testutil.AssertNoError(t, err)
		budget := testutil.CreateTestBudget(t, db, profile.ID, category.ID)

		tx, err := txSvc.CreateTransaction(user.ID, profile.ID, account.ID, &category.ID, models.TransactionTypeExpense, 1000, "", "", time.Now())
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, catSvc.DeleteCategory(user.ID, profile.ID, category.ID))

		var reloaded models.Transaction
		if err := db.Where("id = ?", tx.ID).First(&reloaded).Error; err != nil {
			t.Fatalf("transaction must survive its category: %v", err)
		}
		if reloaded.CategoryID != nil {
			t.Error("expected transaction category cleared")
		}

		var budgets int64
		db.Model(&models.Budget{}).Where("id = ?", budget.ID).Count(&budgets)
		if budgets != 0 {
			t.Error("expected the category's budget to be deleted")
		}

		var orphan models.Category
		if err := db.Where("id = ?", child.ID).First(&orphan).Error; err != nil {
			t.Fatalf("child category must survive: %v", err)
		}
		if orphan.ParentID != nil {
			t.Error("expected child parent reference cleared")
		}
	})
}
