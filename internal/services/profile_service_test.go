package services

import (
	"testing"

	"fintrack/internal/testutil"
)

func TestCreateProfile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		user := testutil.CreateTestUser(t, db)

		profile, err := profSvc.CreateProfile(user.ID, "Personal")
		testutil.AssertNoError(t, err)
		if profile.Name != "Personal" {
			t.Errorf("expected name Personal, got %s", profile.Name)
		}
	})

	t.Run("duplicate_name_for_same_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := profSvc.CreateProfile(user.ID, "Family")
		testutil.AssertNoError(t, err)
		_, err = profSvc.CreateProfile(user.ID, "Family")
		testutil.AssertAppError(t, err, "DUPLICATE_PROFILE")
	})

	t.Run("same_name_allowed_for_different_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		_, err := profSvc.CreateProfile(alice.ID, "Business")
		testutil.AssertNoError(t, err)
		_, err = profSvc.CreateProfile(bob.ID, "Business")
		testutil.AssertNoError(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := profSvc.CreateProfile(user.ID, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetProfileByID(t *testing.T) {
	t.Run("other_users_profile_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		owner := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, owner.ID)
		intruder := testutil.CreateTestUser(t, db)

		_, err := profSvc.GetProfileByID(intruder.ID, profile.ID)
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}

func TestRenameProfile(t *testing.T) {
	t.Run("rename_to_existing_name_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := profSvc.CreateProfile(user.ID, "Personal")
		testutil.AssertNoError(t, err)
		second, err := profSvc.CreateProfile(user.ID, "Family")
		testutil.AssertNoError(t, err)

		_, err = profSvc.RenameProfile(user.ID, second.ID, "Personal")
		testutil.AssertAppError(t, err, "DUPLICATE_PROFILE")

		// Renaming to its own current name is a no-op, not a conflict.
		renamed, err := profSvc.RenameProfile(user.ID, second.ID, "Family")
		testutil.AssertNoError(t, err)
		if renamed.Name != "Family" {
			t.Errorf("expected name Family, got %s", renamed.Name)
		}
	})
}

func TestSwitchProfile(t *testing.T) {
	t.Run("stamps_last_used", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)

		if profile.LastUsedAt != nil {
			t.Fatal("expected fresh profile to have no last_used_at")
		}

		switched, err := profSvc.SwitchProfile(user.ID, profile.ID)
		testutil.AssertNoError(t, err)
		if switched.LastUsedAt == nil {
			t.Error("expected last_used_at to be set after switch")
		}
	})
}

func TestDeleteProfile(t *testing.T) {
	t.Run("refused_while_accounts_remain", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		testutil.CreateTestAccount(t, db, profile.ID)

		err := profSvc.DeleteProfile(user.ID, profile.ID)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_profile_deleted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)

		testutil.AssertNoError(t, profSvc.DeleteProfile(user.ID, profile.ID))
		_, err := profSvc.GetProfileByID(user.ID, profile.ID)
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}
