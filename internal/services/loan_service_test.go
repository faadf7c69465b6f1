package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestCreateLoan(t *testing.T) {
	t.Run("remaining_starts_at_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		loanSvc := NewLoanService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)

		loan, err := loanSvc.CreateLoan(user.ID, profile.ID, "Alice", models.LoanTypeGiven, 100000, 5.5, nil)
		testutil.AssertNoError(t, err)

		if loan.RemainingBalance != 100000 {
			t.Errorf("expected remaining 100000, got %d", loan.RemainingBalance)
		}
		if loan.Status != models.LoanStatusActive {
			t.Errorf("expected active status, got %s", loan.Status)
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		loanSvc := NewLoanService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)

		_, err := loanSvc.CreateLoan(user.ID, profile.ID, "Bob", models.LoanTypeTaken, 0, 0, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestRecordPayment(t *testing.T) {
	t.Run("reduces_remaining", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		loanSvc := NewLoanService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		loan := testutil.CreateTestLoan(t, db, profile.ID, models.LoanTypeTaken, 50000)

		_, err := loanSvc.RecordPayment(user.ID, profile.ID, loan.ID, 20000)
		testutil.AssertNoError(t, err)

		reloaded, err := loanSvc.GetLoanByID(user.ID, profile.ID, loan.ID)
		testutil.AssertNoError(t, err)
		if reloaded.RemainingBalance != 30000 {
			t.Errorf("expected remaining 30000, got %d", reloaded.RemainingBalance)
		}
		if reloaded.Status != models.LoanStatusActive {
			t.Errorf("expected loan to stay active, got %s", reloaded.Status)
		}
	})

	t.Run("overpayment_clamps_to_zero_and_marks_paid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		loanSvc := NewLoanService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		loan := testutil.CreateTestLoan(t, db, profile.ID, models.LoanTypeGiven, 10000)

		_, err := loanSvc.RecordPayment(user.ID, profile.ID, loan.ID, 15000)
		testutil.AssertNoError(t, err)

		reloaded, err := loanSvc.GetLoanByID(user.ID, profile.ID, loan.ID)
		testutil.AssertNoError(t, err)
		if reloaded.RemainingBalance != 0 {
			t.Errorf("expected remaining 0, got %d", reloaded.RemainingBalance)
		}
		if reloaded.Status != models.LoanStatusPaid {
			t.Errorf("expected paid status, got %s", reloaded.Status)
		}
	})

	t.Run("payment_on_paid_loan_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		loanSvc := NewLoanService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		loan := testutil.CreateTestLoan(t, db, profile.ID, models.LoanTypeTaken, 10000)

		_, err := loanSvc.RecordPayment(user.ID, profile.ID, loan.ID, 10000)
		testutil.AssertNoError(t, err)

		_, err = loanSvc.RecordPayment(user.ID, profile.ID, loan.ID, 100)
		testutil.AssertAppError(t, err, "LOAN_ALREADY_PAID")
	})

	t.Run("other_profiles_loan_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		loanSvc := NewLoanService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		other := testutil.CreateTestProfile(t, db, user.ID)
		loan := testutil.CreateTestLoan(t, db, profile.ID, models.LoanTypeTaken, 10000)

		_, err := loanSvc.RecordPayment(user.ID, other.ID, loan.ID, 100)
		testutil.AssertAppError(t, err, "LOAN_NOT_FOUND")
	})
}

func TestUpdateLoan(t *testing.T) {
	t.Run("raising_total_grows_remaining", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		loanSvc := NewLoanService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		loan := testutil.CreateTestLoan(t, db, profile.ID, models.LoanTypeTaken, 50000)

		_, err := loanSvc.RecordPayment(user.ID, profile.ID, loan.ID, 20000)
		testutil.AssertNoError(t, err)

		newTotal := int64(60000)
		_, err = loanSvc.UpdateLoan(user.ID, profile.ID, loan.ID, LoanUpdateFields{TotalAmount: &newTotal})
		testutil.AssertNoError(t, err)

		reloaded, err := loanSvc.GetLoanByID(user.ID, profile.ID, loan.ID)
		testutil.AssertNoError(t, err)
		// 30000 remaining plus the 10000 the total grew by.
		if reloaded.RemainingBalance != 40000 {
			t.Errorf("expected remaining 40000, got %d", reloaded.RemainingBalance)
		}
	})

	t.Run("marking_paid_zeroes_remaining", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		loanSvc := NewLoanService(db, profSvc)
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		loan := testutil.CreateTestLoan(t, db, profile.ID, models.LoanTypeGiven, 50000)

		paid := models.LoanStatusPaid
		_, err := loanSvc.UpdateLoan(user.ID, profile.ID, loan.ID, LoanUpdateFields{Status: &paid})
		testutil.AssertNoError(t, err)

		reloaded, err := loanSvc.GetLoanByID(user.ID, profile.ID, loan.ID)
		testutil.AssertNoError(t, err)
		if reloaded.RemainingBalance != 0 {
			t.Errorf("expected remaining 0, got %d", reloaded.RemainingBalance)
		}
		if reloaded.Status != models.LoanStatusPaid {
			t.Errorf("expected paid status, got %s", reloaded.Status)
		}
	})
}
