package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// ReportHandler handles dashboard reporting requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MonthlyRequest holds the month selector bound from the query string.
type MonthlyRequest struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
}

// Dashboard returns the profile's headline metrics
// @Summary     Get the dashboard
// @Description Net worth, current-month income and expense, savings rate, trailing monthly series, category breakdown and recent transactions
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Success     200 {object} services.DashboardSummary "Dashboard"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profiles/{profileID}/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
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

	summary, err := h.reportService.GetDashboard(userID, profileID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Monthly returns one month's totals
// @Summary     Get monthly totals
// @Description Income and expense totals for one calendar month
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       month query int true "Month (1-12)"
// @Param       year query int true "Year"
// @Success     200 {object} services.MonthlyTotals "Totals"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profiles/{profileID}/reports/monthly [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
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

	var req MonthlyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, expense, err := h.reportService.MonthlyIncomeExpense(userID, profileID, time.Month(req.Month), req.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month":   time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
		"income":  income,
		"expense": expense,
	})
}
