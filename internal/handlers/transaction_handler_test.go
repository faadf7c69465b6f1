package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn      func(userID, profileID, accountID string, categoryID *string, transactionType models.TransactionType, amount int64, description, tags string, date time.Time) (*models.Transaction, error)
	createTransferFn         func(userID, profileID, fromAccountID, toAccountID string, amount int64, description string, date time.Time) (*models.Transaction, error)
	getProfileTransactionsFn func(userID, profileID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getTransactionByIDFn     func(userID, profileID, transactionID string) (*models.Transaction, error)
	updateTransactionFn      func(userID, profileID, transactionID string, fields services.TransactionUpdateFields) (*models.Transaction, error)
	deleteTransactionFn      func(userID, profileID, transactionID string) error
}

func (m *mockTransactionService) CreateTransaction(userID, profileID, accountID string, categoryID *string, transactionType models.TransactionType, amount int64, description, tags string, date time.Time) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, profileID, accountID, categoryID, transactionType, amount, description, tags, date)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) CreateTransfer(userID, profileID, fromAccountID, toAccountID string, amount int64, description string, date time.Time) (*models.Transaction, error) {
	if m.createTransferFn != nil {
		return m.createTransferFn(userID, profileID, fromAccountID, toAccountID, amount, description, date)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetProfileTransactions(userID, profileID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getProfileTransactionsFn != nil {
		return m.getProfileTransactionsFn(userID, profileID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionByID(userID, profileID, transactionID string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, profileID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(userID, profileID, transactionID string, fields services.TransactionUpdateFields) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(userID, profileID, transactionID, fields)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, profileID, transactionID string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, profileID, transactionID)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

const testAccountID = "0192a1b2-0000-7000-8000-000000000003"
const testTransactionID = "0192a1b2-0000-7000-8000-000000000004"

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("/profiles/:profileID", injectUserID(testUserID))
	auth.POST("/transactions", handler.Create)
	auth.POST("/transactions/transfer", handler.CreateTransfer)
	auth.GET("/transactions", handler.List)
	auth.GET("/transactions/:transactionID", handler.Get)
	auth.PUT("/transactions/:transactionID", handler.Update)
	auth.DELETE("/transactions/:transactionID", handler.Delete)
	return r
}

func TestTransactionHandler_Create(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(userID, profileID, accountID string, _ *string, txType models.TransactionType, amount int64, _, _ string, _ time.Time) (*models.Transaction, error) {
				return &models.Transaction{
					Base:      models.Base{ID: testTransactionID},
					AccountID: accountID,
					Type:      txType,
					Amount:    amount,
				}, nil
			},
		}
		handler := NewTransactionHandler(txSvc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/profiles/"+testProfileID+"/transactions",
			`{"account_id":"`+testAccountID+`","type":"income","amount":5000,"description":"Salary"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
		if tx["amount"].(float64) != 5000 {
			t.Errorf("expected amount 5000, got %v", tx["amount"])
		}
	})

	t.Run("returns 400 on zero amount", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/profiles/"+testProfileID+"/transactions",
			`{"account_id":"`+testAccountID+`","type":"expense","amount":0}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on transfer type", func(t *testing.T) {
		// Transfers have their own endpoint; the plain create only binds
		// income and expense.
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/profiles/"+testProfileID+"/transactions",
			`{"account_id":"`+testAccountID+`","type":"transfer","amount":1000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed profile id", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/profiles/not-a-uuid/transactions",
			`{"account_id":"`+testAccountID+`","type":"income","amount":1000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when account not found", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(_, _, _ string, _ *string, _ models.TransactionType, _ int64, _, _ string, _ time.Time) (*models.Transaction, error) {
				return nil, apperrors.ErrAccountNotFound
			},
		}
		handler := NewTransactionHandler(txSvc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/profiles/"+testProfileID+"/transactions",
			`{"account_id":"`+testAccountID+`","type":"income","amount":1000}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ACCOUNT_NOT_FOUND")
	})
}

func TestTransactionHandler_CreateTransfer(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransferFn: func(_, _, fromID, toID string, amount int64, _ string, _ time.Time) (*models.Transaction, error) {
				return &models.Transaction{
					Base:                models.Base{ID: testTransactionID},
					AccountID:           fromID,
					Type:                models.TransactionTypeTransfer,
					Amount:              amount,
					TransferToAccountID: &toID,
				}, nil
			},
		}
		handler := NewTransactionHandler(txSvc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/profiles/"+testProfileID+"/transactions/transfer",
			`{"from_account_id":"`+testAccountID+`","to_account_id":"`+testTransactionID+`","amount":3000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("surfaces same account rejection", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransferFn: func(_, _, _, _ string, _ int64, _ string, _ time.Time) (*models.Transaction, error) {
				return nil, apperrors.ErrSameAccountTransfer
			},
		}
		handler := NewTransactionHandler(txSvc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/profiles/"+testProfileID+"/transactions/transfer",
			`{"from_account_id":"`+testAccountID+`","to_account_id":"`+testAccountID+`","amount":3000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SAME_ACCOUNT_TRANSFER")
	})
}

func TestTransactionHandler_List(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		var gotPage pagination.PageRequest
		txSvc := &mockTransactionService{
			getProfileTransactionsFn: func(_, _ string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				gotPage = page
				gotFilter = filter
				resp := pagination.NewPageResponse([]models.Transaction{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		handler := NewTransactionHandler(txSvc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/profiles/"+testProfileID+"/transactions?page=2&page_size=10&type=expense&min_amount=100", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPage.Page != 2 || gotPage.PageSize != 10 {
			t.Errorf("expected page 2 size 10, got %+v", gotPage)
		}
		if gotFilter.Type == nil || *gotFilter.Type != models.TransactionTypeExpense {
			t.Error("expected the type filter to be bound")
		}
		if gotFilter.MinAmount == nil || *gotFilter.MinAmount != 100 {
			t.Error("expected the min amount filter to be bound")
		}
	})

	t.Run("returns 400 on bad type filter", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/profiles/"+testProfileID+"/transactions?type=bogus", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_Update(t *testing.T) {
	t.Run("surfaces invalid type change", func(t *testing.T) {
		txSvc := &mockTransactionService{
			updateTransactionFn: func(_, _, _ string, _ services.TransactionUpdateFields) (*models.Transaction, error) {
				return nil, apperrors.ErrInvalidTypeChange
			},
		}
		handler := NewTransactionHandler(txSvc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "PUT", "/profiles/"+testProfileID+"/transactions/"+testTransactionID,
			`{"type":"transfer"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_TYPE_CHANGE")
	})
}

func TestTransactionHandler_Delete(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		txSvc := &mockTransactionService{
			deleteTransactionFn: func(_, _, _ string) error {
				return apperrors.ErrTransactionNotFound
			},
		}
		handler := NewTransactionHandler(txSvc)
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "DELETE", "/profiles/"+testProfileID+"/transactions/"+testTransactionID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "DELETE", "/profiles/"+testProfileID+"/transactions/"+testTransactionID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
