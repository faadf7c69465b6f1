package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the account creation payload.
type CreateAccountRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=64"`
	Type           string `json:"type" binding:"required,account_type"`
	Currency       string `json:"currency" binding:"omitempty,iso4217"`
	InitialBalance int64  `json:"initial_balance" binding:"omitempty,min=0"`
	ColorTheme     string `json:"color_theme" binding:"omitempty,hex_color"`
	Icon           string `json:"icon" binding:"omitempty,max=64"`
}

// UpdateAccountRequest represents the account update payload. Balance
// is deliberately absent: it only moves through transactions.
type UpdateAccountRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=64"`
	Type       *string `json:"type" binding:"omitempty,account_type"`
	Currency   *string `json:"currency" binding:"omitempty,iso4217"`
	ColorTheme *string `json:"color_theme" binding:"omitempty,hex_color"`
	Icon       *string `json:"icon" binding:"omitempty,max=64"`
	IsArchived *bool   `json:"is_archived"`
}

// Create creates an account
// @Summary     Create an account
// @Description Create an account in a profile, optionally with an opening balance posted as an income transaction
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       request body CreateAccountRequest true "Account data"
// @Success     201 {object} models.Account "Account created"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profiles/{profileID}/accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
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

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(userID, profileID, req.Name, models.AccountType(req.Type), req.Currency, req.InitialBalance, req.ColorTheme, req.Icon)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// List lists the profile's accounts
// @Summary     List accounts
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Account] "Accounts"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profiles/{profileID}/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
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

	accounts, err := h.accountService.GetProfileAccounts(userID, profileID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// Get retrieves one account
// @Summary     Get an account
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       accountID path string true "Account ID"
// @Success     200 {object} models.Account "Account"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /profiles/{profileID}/accounts/{accountID} [get]
func (h *AccountHandler) Get(c *gin.Context) {
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
	accountID, err := parsePathID(c, "accountID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(userID, profileID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// Update edits an account
// @Summary     Update an account
// @Description Edit account fields; the balance cannot be set directly
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       accountID path string true "Account ID"
// @Param       request body UpdateAccountRequest true "Fields to update"
// @Success     200 {object} models.Account "Account updated"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /profiles/{profileID}/accounts/{accountID} [put]
func (h *AccountHandler) Update(c *gin.Context) {
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
	accountID, err := parsePathID(c, "accountID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.AccountUpdateFields{
		Name:       req.Name,
		Currency:   req.Currency,
		ColorTheme: req.ColorTheme,
		Icon:       req.Icon,
		IsArchived: req.IsArchived,
	}
	if req.Type != nil {
		accountType := models.AccountType(*req.Type)
		fields.Type = &accountType
	}

	account, err := h.accountService.UpdateAccount(userID, profileID, accountID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// Delete removes an account and its transactions
// @Summary     Delete an account
// @Description Delete an account together with every transaction posted against it
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       accountID path string true "Account ID"
// @Success     200 {object} map[string]string "Account deleted"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /profiles/{profileID}/accounts/{accountID} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
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
	accountID, err := parsePathID(c, "accountID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(userID, profileID, accountID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
