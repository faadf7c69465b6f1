package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// InvestmentHandler handles investment tracking requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// CreateInvestmentRequest represents the investment creation payload.
type CreateInvestmentRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=128"`
	AssetType string `json:"asset_type" binding:"required,asset_type"`
	Principal int64  `json:"principal" binding:"required,gt=0"`
}

// UpdateInvestmentRequest represents the investment update payload.
type UpdateInvestmentRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=128"`
	AssetType    *string `json:"asset_type" binding:"omitempty,asset_type"`
	Principal    *int64  `json:"principal" binding:"omitempty,gt=0"`
	CurrentValue *int64  `json:"current_value" binding:"omitempty,gte=0"`
}

// Create records a holding
// @Summary     Create an investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       request body CreateInvestmentRequest true "Investment data"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profiles/{profileID}/investments [post]
func (h *InvestmentHandler) Create(c *gin.Context) {
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

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.CreateInvestment(userID, profileID, req.Name, models.AssetType(req.AssetType), req.Principal)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// List lists the profile's holdings
// @Summary     List investments
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Investments"
// @Router      /profiles/{profileID}/investments [get]
func (h *InvestmentHandler) List(c *gin.Context) {
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

	investments, err := h.investmentService.GetProfileInvestments(userID, profileID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, investments)
}

// Get retrieves one holding
// @Summary     Get an investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       investmentID path string true "Investment ID"
// @Success     200 {object} models.Investment "Investment"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /profiles/{profileID}/investments/{investmentID} [get]
func (h *InvestmentHandler) Get(c *gin.Context) {
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
	investmentID, err := parsePathID(c, "investmentID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetInvestmentByID(userID, profileID, investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// Update edits a holding
// @Summary     Update an investment
// @Description Edit a holding; setting current_value stamps the revaluation time
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       investmentID path string true "Investment ID"
// @Param       request body UpdateInvestmentRequest true "Fields to update"
// @Success     200 {object} models.Investment "Investment updated"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /profiles/{profileID}/investments/{investmentID} [put]
func (h *InvestmentHandler) Update(c *gin.Context) {
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
	investmentID, err := parsePathID(c, "investmentID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var assetType *models.AssetType
	if req.AssetType != nil {
		a := models.AssetType(*req.AssetType)
		assetType = &a
	}

	investment, err := h.investmentService.UpdateInvestment(userID, profileID, investmentID, req.Name, assetType, req.Principal, req.CurrentValue)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// Delete removes a holding
// @Summary     Delete an investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       investmentID path string true "Investment ID"
// @Success     200 {object} map[string]string "Investment deleted"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /profiles/{profileID}/investments/{investmentID} [delete]
func (h *InvestmentHandler) Delete(c *gin.Context) {
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
	investmentID, err := parsePathID(c, "investmentID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.DeleteInvestment(userID, profileID, investmentID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "investment deleted"})
}
