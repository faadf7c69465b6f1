package services

import (
	"testing"

	"fintrack/internal/testutil"
)

func TestGetByCode(t *testing.T) {
	t.Run("unknown_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		curSvc := NewCurrencyService(db)

		_, err := curSvc.GetByCode("XXX")
		testutil.AssertAppError(t, err, "CURRENCY_NOT_FOUND")
	})
}

func TestUpdateRate(t *testing.T) {
	t.Run("replaces_rate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		curSvc := NewCurrencyService(db)
		testutil.CreateTestCurrency(t, db, "EUR", "1.05")

		updated, err := curSvc.UpdateRate("EUR", "1.10")
		testutil.AssertNoError(t, err)
		if updated.ExchangeRate.String() != "1.1" {
			t.Errorf("expected rate 1.1, got %s", updated.ExchangeRate)
		}
	})

	t.Run("non_positive_rate_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		curSvc := NewCurrencyService(db)
		testutil.CreateTestCurrency(t, db, "EUR", "1.05")

		_, err := curSvc.UpdateRate("EUR", "0")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = curSvc.UpdateRate("EUR", "-2")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = curSvc.UpdateRate("EUR", "abc")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestConvertToBase(t *testing.T) {
	t.Run("multiplies_and_rounds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		curSvc := NewCurrencyService(db)
		// One taka worth 0.0091 base units.
		testutil.CreateTestCurrency(t, db, "BDT", "0.0091")

		// 10000 cents * 0.0091 = 91.
		converted, err := curSvc.ConvertToBase(10000, "BDT")
		testutil.AssertNoError(t, err)
		if converted != 91 {
			t.Errorf("expected 91, got %d", converted)
		}

		// 5500 * 0.0091 = 50.05, rounds down to 50.
		converted, err = curSvc.ConvertToBase(5500, "BDT")
		testutil.AssertNoError(t, err)
		if converted != 50 {
			t.Errorf("expected 50, got %d", converted)
		}

		// 6100 * 0.0091 = 55.51, rounds up to 56.
		converted, err = curSvc.ConvertToBase(6100, "BDT")
		testutil.AssertNoError(t, err)
		if converted != 56 {
			t.Errorf("expected 56, got %d", converted)
		}
	})

	t.Run("identity_rate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		curSvc := NewCurrencyService(db)
		testutil.CreateTestCurrency(t, db, "USD", "1")

		converted, err := curSvc.ConvertToBase(12345, "USD")
		testutil.AssertNoError(t, err)
		if converted != 12345 {
			t.Errorf("expected 12345, got %d", converted)
		}
	})

	t.Run("base_currency_needs_no_stored_rate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		curSvc := NewCurrencyService(db)

		converted, err := curSvc.ConvertToBase(500, "USD")
		testutil.AssertNoError(t, err)
		if converted != 500 {
			t.Errorf("expected 500, got %d", converted)
		}
	})
}
