package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestFormatCents(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1234, "12.34"},
		{200000, "2000.00"},
		{-5050, "-50.50"},
	}
	for _, c := range cases {
		if got := formatCents(c.amount); got != c.want {
			t.Errorf("formatCents(%d) = %q, want %q", c.amount, got, c.want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	t.Run("header_and_rows_in_storage_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		acctSvc := NewAccountService(db, profSvc)
		txSvc := NewTransactionService(db, profSvc, acctSvc)
		userSvc := NewUserService(db)
		messenger := &fakeMessenger{}
		exportSvc := NewExportService(db, profSvc, userSvc, messenger, syncDispatcher{}, t.TempDir())
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		account := testutil.CreateTestAccountWithBalance(t, db, profile.ID, 100000)
		category := testutil.CreateTestCategory(t, db, profile.ID)

		// The expense is created first but dated later; rows follow
		// creation order, not transaction dates.
		_, err := txSvc.CreateTransaction(user.ID, profile.ID, account.ID, &category.ID, models.TransactionTypeExpense, 5000, "Coffee", "",
			time.Date(2026, time.May, 2, 10, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)
		_, err = txSvc.CreateTransaction(user.ID, profile.ID, account.ID, nil, models.TransactionTypeIncome, 200000, "Salary", "",
			time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)

		var buf bytes.Buffer
		testutil.AssertNoError(t, exportSvc.WriteCSV(user.ID, profile.ID, &buf))

		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d records", len(records))
		}

		wantHeader := "Date,Account,Type,Category,Amount,Description"
		if got := strings.Join(records[0], ","); got != wantHeader {
			t.Errorf("unexpected header %q", got)
		}

		coffee := records[1]
		if coffee[0] != "2026-05-02" || coffee[1] != account.Name || coffee[2] != "expense" ||
			coffee[3] != category.Name || coffee[4] != "50.00" || coffee[5] != "Coffee" {
			t.Errorf("unexpected first row %v", coffee)
		}

		salary := records[2]
		if salary[0] != "2026-05-01" || salary[2] != "income" || salary[3] != "Uncategorized" ||
			salary[4] != "2000.00" || salary[5] != "Salary" {
			t.Errorf("unexpected second row %v", salary)
		}
	})

	t.Run("other_users_profile_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		userSvc := NewUserService(db)
		exportSvc := NewExportService(db, profSvc, userSvc, &fakeMessenger{}, syncDispatcher{}, t.TempDir())
		owner := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, owner.ID)
		intruder := testutil.CreateTestUser(t, db)

		var buf bytes.Buffer
		err := exportSvc.WriteCSV(intruder.ID, profile.ID, &buf)
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}

func TestWriteXLSX(t *testing.T) {
	t.Run("produces_spreadsheet_bytes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		acctSvc := NewAccountService(db, profSvc)
		txSvc := NewTransactionService(db, profSvc, acctSvc)
		userSvc := NewUserService(db)
		exportSvc := NewExportService(db, profSvc, userSvc, &fakeMessenger{}, syncDispatcher{}, t.TempDir())
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		account := testutil.CreateTestAccountWithBalance(t, db, profile.ID, 10000)

		_, err := txSvc.CreateTransaction(user.ID, profile.ID, account.ID, nil, models.TransactionTypeExpense, 1000, "", "", time.Now())
		testutil.AssertNoError(t, err)

		var buf bytes.Buffer
		testutil.AssertNoError(t, exportSvc.WriteXLSX(user.ID, profile.ID, &buf))

		// XLSX files are zip archives; checking the magic bytes is enough
		// to know a workbook was actually produced.
		if buf.Len() == 0 || !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
			t.Error("expected a non-empty zip-packaged workbook")
		}
	})
}

func TestSnapshot(t *testing.T) {
	t.Run("writes_file_and_dispatches_delivery", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		acctSvc := NewAccountService(db, profSvc)
		txSvc := NewTransactionService(db, profSvc, acctSvc)
		userSvc := NewUserService(db)
		messenger := &fakeMessenger{}
		exportSvc := NewExportService(db, profSvc, userSvc, messenger, syncDispatcher{}, t.TempDir())
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)
		account := testutil.CreateTestAccountWithBalance(t, db, profile.ID, 10000)

		_, err := txSvc.CreateTransaction(user.ID, profile.ID, account.ID, nil, models.TransactionTypeExpense, 1000, "", "", time.Now())
		testutil.AssertNoError(t, err)

		path, err := exportSvc.Snapshot(user.ID, profile.ID)
		testutil.AssertNoError(t, err)
		if !strings.HasSuffix(path, ".xlsx") {
			t.Errorf("expected an xlsx path, got %s", path)
		}

		if len(messenger.documents) != 1 {
			t.Fatalf("expected one dispatched document, got %d", len(messenger.documents))
		}
		if messenger.documents[0] != path {
			t.Errorf("expected the written file to be delivered, got %s", messenger.documents[0])
		}
	})

	t.Run("delivery_failure_keeps_local_file", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		profSvc := NewProfileService(db)
		userSvc := NewUserService(db)
		messenger := &fakeMessenger{sendErr: errTelegramDown}
		exportSvc := NewExportService(db, profSvc, userSvc, messenger, syncDispatcher{}, t.TempDir())
		user := testutil.CreateTestUser(t, db)
		profile := testutil.CreateTestProfile(t, db, user.ID)

		path, err := exportSvc.Snapshot(user.ID, profile.ID)
		testutil.AssertNoError(t, err)
		if path == "" {
			t.Error("expected a local file path even when delivery fails")
		}
	})
}
