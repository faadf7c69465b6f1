package services

import (
	"testing"

	"fintrack/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("success_unverified", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)

		user, err := userSvc.CreateUser("Alice", "secret123", "555001")
		testutil.AssertNoError(t, err)

		if user.Username != "alice" {
			t.Errorf("expected lowercased username, got %s", user.Username)
		}
		if user.IsVerified {
			t.Error("new users must start unverified")
		}
		if user.Password == "secret123" {
			t.Error("password must not be stored in plaintext")
		}
		if !userSvc.VerifyPassword(user, "secret123") {
			t.Error("stored hash must verify against the original password")
		}
		if userSvc.VerifyPassword(user, "wrong") {
			t.Error("wrong password must not verify")
		}
	})

	t.Run("duplicate_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)

		_, err := userSvc.CreateUser("bob", "secret123", "555002")
		testutil.AssertNoError(t, err)

		// Case differences do not make a new identity.
		_, err = userSvc.CreateUser("BOB", "other456", "555003")
		testutil.AssertAppError(t, err, "DUPLICATE_USER")
	})

	t.Run("duplicate_chat_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)

		_, err := userSvc.CreateUser("carol", "secret123", "555004")
		testutil.AssertNoError(t, err)
		_, err = userSvc.CreateUser("dave", "secret123", "555004")
		testutil.AssertAppError(t, err, "DUPLICATE_USER")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)

		_, err := userSvc.CreateUser("", "secret123", "555005")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = userSvc.CreateUser("erin", "", "555005")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = userSvc.CreateUser("erin", "secret123", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestMarkVerified(t *testing.T) {
	t.Run("flips_flag", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)

		user, err := userSvc.CreateUser("frank", "secret123", "555006")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, userSvc.MarkVerified(user.ID))

		reloaded, err := userSvc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if !reloaded.IsVerified {
			t.Error("expected user to be verified")
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)

		err := userSvc.MarkVerified("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestUpdatePassword(t *testing.T) {
	t.Run("old_password_stops_working", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)

		user, err := userSvc.CreateUser("grace", "oldpass123", "555007")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, userSvc.UpdatePassword(user.ID, "newpass456"))

		reloaded, err := userSvc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if userSvc.VerifyPassword(reloaded, "oldpass123") {
			t.Error("old password must not verify after a reset")
		}
		if !userSvc.VerifyPassword(reloaded, "newpass456") {
			t.Error("new password must verify")
		}
	})
}

func TestRefreshTokenHash(t *testing.T) {
	t.Run("store_and_read_back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, userSvc.StoreRefreshTokenHash(user.ID, "deadbeef"))

		hash, err := userSvc.GetRefreshTokenHash(user.ID)
		testutil.AssertNoError(t, err)
		if hash != "deadbeef" {
			t.Errorf("expected stored hash back, got %q", hash)
		}

		// Logout clears it.
		testutil.AssertNoError(t, userSvc.StoreRefreshTokenHash(user.ID, ""))
		hash, err = userSvc.GetRefreshTokenHash(user.ID)
		testutil.AssertNoError(t, err)
		if hash != "" {
			t.Errorf("expected cleared hash, got %q", hash)
		}
	})
}
