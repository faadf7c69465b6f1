package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the transaction creation payload.
// Amounts are integer cents and always positive; the type carries the
// direction.
type CreateTransactionRequest struct {
	AccountID   string     `json:"account_id" binding:"required,uuid"`
	CategoryID  *string    `json:"category_id" binding:"omitempty,uuid"`
	Type        string     `json:"type" binding:"required,oneof=income expense"`
	Amount      int64      `json:"amount" binding:"required,gt=0"`
	Description string     `json:"description" binding:"omitempty,max=256"`
	Tags        string     `json:"tags" binding:"omitempty,max=128"`
	Date        *time.Time `json:"date"`
}

// CreateTransferRequest represents the transfer creation payload.
type CreateTransferRequest struct {
	FromAccountID string     `json:"from_account_id" binding:"required,uuid"`
	ToAccountID   string     `json:"to_account_id" binding:"required,uuid"`
	Amount        int64      `json:"amount" binding:"required,gt=0"`
	Description   string     `json:"description" binding:"omitempty,max=256"`
	Date          *time.Time `json:"date"`
}

// UpdateTransactionRequest represents the transaction update payload.
type UpdateTransactionRequest struct {
	AccountID   *string    `json:"account_id" binding:"omitempty,uuid"`
	CategoryID  *string    `json:"category_id" binding:"omitempty,uuid"`
	Type        *string    `json:"type" binding:"omitempty,transaction_type"`
	Amount      *int64     `json:"amount" binding:"omitempty,gt=0"`
	Description *string    `json:"description" binding:"omitempty,max=256"`
	Tags        *string    `json:"tags" binding:"omitempty,max=128"`
	Date        *time.Time `json:"date"`
}

// ListTransactionsRequest holds the list filters bound from the query string.
type ListTransactionsRequest struct {
	pagination.PageRequest
	FromDate   *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"to_date" time_format:"2006-01-02"`
	Type       *string    `form:"type" binding:"omitempty,transaction_type"`
	CategoryID *string    `form:"category_id" binding:"omitempty,uuid"`
	AccountID  *string    `form:"account_id" binding:"omitempty,uuid"`
	MinAmount  *int64     `form:"min_amount" binding:"omitempty,gte=0"`
	MaxAmount  *int64     `form:"max_amount" binding:"omitempty,gte=0"`
}

// Create records an income or expense
// @Summary     Create a transaction
// @Description Record an income or expense and apply its effect to the account balance
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       request body CreateTransactionRequest true "Transaction data"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /profiles/{profileID}/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	profileID, err := getProfileID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}

	transaction, err := h.transactionService.CreateTransaction(userID, profileID, req.AccountID, req.CategoryID, models.TransactionType(req.Type), req.Amount, req.Description, req.Tags, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// CreateTransfer moves money between accounts
// @Summary     Create a transfer
// @Description Debit the source account and credit the destination atomically
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       request body CreateTransferRequest true "Transfer data"
// @Success     201 {object} models.Transaction "Transfer created"
// @Failure     400 {object} ErrorResponse "Same source and destination"
// @Router      /profiles/{profileID}/transactions/transfer [post]
func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	profileID, err := getProfileID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}

	transaction, err := h.transactionService.CreateTransfer(userID, profileID, req.FromAccountID, req.ToAccountID, req.Amount, req.Description, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// List lists transactions with filters
// @Summary     List transactions
// @Description List the profile's transactions newest first, with optional date, type, category, account and amount filters
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       from_date query string false "Start date (YYYY-MM-DD)"
// @Param       to_date query string false "End date (YYYY-MM-DD)"
// @Param       type query string false "Transaction type"
// @Param       category_id query string false "Category ID"
// @Param       account_id query string false "Account ID"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Transactions"
// @Router      /profiles/{profileID}/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	profileID, err := getProfileID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TransactionFilter{
		FromDate:   req.FromDate,
		ToDate:     req.ToDate,
		CategoryID: req.CategoryID,
		AccountID:  req.AccountID,
		MinAmount:  req.MinAmount,
		MaxAmount:  req.MaxAmount,
	}
	if req.Type != nil {
		transactionType := models.TransactionType(*req.Type)
		filter.Type = &transactionType
	}

	transactions, err := h.transactionService.GetProfileTransactions(userID, profileID, req.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// Get retrieves one transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       transactionID path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /profiles/{profileID}/transactions/{transactionID} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	profileID, err := getProfileID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "transactionID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, profileID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// Update edits a transaction
// @Summary     Update a transaction
// @Description Reverse the old balance effect and apply the new one atomically; type changes to or from transfer are rejected
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       transactionID path string true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid type change"
// @Router      /profiles/{profileID}/transactions/{transactionID} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	profileID, err := getProfileID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "transactionID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.TransactionUpdateFields{
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		Tags:        req.Tags,
		Date:        req.Date,
	}
	if req.Type != nil {
		transactionType := models.TransactionType(*req.Type)
		fields.Type = &transactionType
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, profileID, transactionID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// Delete removes a transaction
// @Summary     Delete a transaction
// @Description Reverse the transaction's balance effect and remove it
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       transactionID path string true "Transaction ID"
// @Success     200 {object} map[string]string "Transaction deleted"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /profiles/{profileID}/transactions/{transactionID} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	profileID, err := getProfileID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c, "transactionID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, profileID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "transaction deleted"})
}
