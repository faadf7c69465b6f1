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

// LoanHandler handles loan tracking requests.
type LoanHandler struct {
	loanService services.LoanServicer
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanService services.LoanServicer) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// CreateLoanRequest represents the loan creation payload.
type CreateLoanRequest struct {
	CounterpartyName string     `json:"counterparty_name" binding:"required,min=1,max=128"`
	Type             string     `json:"type" binding:"required,loan_type"`
	TotalAmount      int64      `json:"total_amount" binding:"required,gt=0"`
	InterestRate     float64    `json:"interest_rate" binding:"omitempty,gte=0"`
	DueDate          *time.Time `json:"due_date"`
}

// UpdateLoanRequest represents the loan update payload.
type UpdateLoanRequest struct {
	CounterpartyName *string    `json:"counterparty_name" binding:"omitempty,min=1,max=128"`
	Type             *string    `json:"type" binding:"omitempty,loan_type"`
	TotalAmount      *int64     `json:"total_amount" binding:"omitempty,gt=0"`
	InterestRate     *float64   `json:"interest_rate" binding:"omitempty,gte=0"`
	DueDate          *time.Time `json:"due_date"`
	Status           *string    `json:"status" binding:"omitempty,loan_status"`
}

// LoanPaymentRequest represents a repayment against a loan.
type LoanPaymentRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// Create records a loan
// @Summary     Create a loan
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       request body CreateLoanRequest true "Loan data"
// @Success     201 {object} models.Loan "Loan created"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profiles/{profileID}/loans [post]
func (h *LoanHandler) Create(c *gin.Context) {
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

	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	loan, err := h.loanService.CreateLoan(userID, profileID, req.CounterpartyName, models.LoanType(req.Type), req.TotalAmount, req.InterestRate, req.DueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"loan": loan})
}

// List lists the profile's loans
// @Summary     List loans
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Loan] "Loans"
// @Router      /profiles/{profileID}/loans [get]
func (h *LoanHandler) List(c *gin.Context) {
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

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	loans, err := h.loanService.GetProfileLoans(userID, profileID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loans)
}

// Get retrieves one loan
// @Summary     Get a loan
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       loanID path string true "Loan ID"
// @Success     200 {object} models.Loan "Loan"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Router      /profiles/{profileID}/loans/{loanID} [get]
func (h *LoanHandler) Get(c *gin.Context) {
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
	loanID, err := parsePathID(c, "loanID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	loan, err := h.loanService.GetLoanByID(userID, profileID, loanID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// Update edits a loan
// @Summary     Update a loan
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       loanID path string true "Loan ID"
// @Param       request body UpdateLoanRequest true "Fields to update"
// @Success     200 {object} models.Loan "Loan updated"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Router      /profiles/{profileID}/loans/{loanID} [put]
func (h *LoanHandler) Update(c *gin.Context) {
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
	loanID, err := parsePathID(c, "loanID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.LoanUpdateFields{
		CounterpartyName: req.CounterpartyName,
		TotalAmount:      req.TotalAmount,
		InterestRate:     req.InterestRate,
		DueDate:          req.DueDate,
	}
	if req.Type != nil {
		loanType := models.LoanType(*req.Type)
		fields.Type = &loanType
	}
	if req.Status != nil {
		status := models.LoanStatus(*req.Status)
		fields.Status = &status
	}

	loan, err := h.loanService.UpdateLoan(userID, profileID, loanID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// RecordPayment records a repayment
// @Summary     Record a loan payment
// @Description Reduce the remaining balance; the loan flips to paid at zero
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       loanID path string true "Loan ID"
// @Param       request body LoanPaymentRequest true "Payment amount"
// @Success     200 {object} models.Loan "Loan updated"
// @Failure     400 {object} ErrorResponse "Loan already paid"
// @Router      /profiles/{profileID}/loans/{loanID}/payments [post]
func (h *LoanHandler) RecordPayment(c *gin.Context) {
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
	loanID, err := parsePathID(c, "loanID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LoanPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	loan, err := h.loanService.RecordPayment(userID, profileID, loanID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// Delete removes a loan
// @Summary     Delete a loan
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       loanID path string true "Loan ID"
// @Success     200 {object} map[string]string "Loan deleted"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Router      /profiles/{profileID}/loans/{loanID} [delete]
func (h *LoanHandler) Delete(c *gin.Context) {
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
	loanID, err := parsePathID(c, "loanID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.loanService.DeleteLoan(userID, profileID, loanID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "loan deleted"})
}
