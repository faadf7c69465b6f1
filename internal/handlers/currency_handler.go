package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// CurrencyHandler handles currency lookup and rate requests.
type CurrencyHandler struct {
	currencyService services.CurrencyServicer
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(currencyService services.CurrencyServicer) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

// UpdateRateRequest carries a new exchange rate as a decimal string.
type UpdateRateRequest struct {
	Rate string `json:"rate" binding:"required"`
}

// List lists the known currencies
// @Summary     List currencies
// @Tags        currencies
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Currency "Currencies"
// @Router      /currencies [get]
func (h *CurrencyHandler) List(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currencies": currencies})
}

// Get retrieves one currency
// @Summary     Get a currency
// @Tags        currencies
// @Produce     json
// @Security    BearerAuth
// @Param       code path string true "ISO 4217 code"
// @Success     200 {object} models.Currency "Currency"
// @Failure     404 {object} ErrorResponse "Unknown currency"
// @Router      /currencies/{code} [get]
func (h *CurrencyHandler) Get(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	currency, err := h.currencyService.GetByCode(code)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currency": currency})
}

// UpdateRate replaces a currency's exchange rate
// @Summary     Update an exchange rate
// @Tags        currencies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       code path string true "ISO 4217 code"
// @Param       request body UpdateRateRequest true "New rate"
// @Success     200 {object} models.Currency "Currency updated"
// @Failure     400 {object} ErrorResponse "Invalid rate"
// @Router      /currencies/{code} [put]
func (h *CurrencyHandler) UpdateRate(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	var req UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	currency, err := h.currencyService.UpdateRate(code, req.Rate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"currency": currency})
}
