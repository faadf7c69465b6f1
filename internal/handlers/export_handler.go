package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// ExportHandler handles transaction export requests.
type ExportHandler struct {
	exportService services.ExportServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService services.ExportServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func exportFilename(ext string) string {
	return fmt.Sprintf("transactions_%s.%s", time.Now().Format("20060102"), ext)
}

// CSV downloads the profile's transactions as CSV
// @Summary     Export transactions as CSV
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Success     200 {string} string "CSV file"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profiles/{profileID}/export/csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
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

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename("csv")+`"`)

	if err := h.exportService.WriteCSV(userID, profileID, c.Writer); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// XLSX downloads the profile's transactions as a spreadsheet
// @Summary     Export transactions as XLSX
// @Tags        export
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Success     200 {string} string "XLSX file"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profiles/{profileID}/export/xlsx [get]
func (h *ExportHandler) XLSX(c *gin.Context) {
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

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename("xlsx")+`"`)

	if err := h.exportService.WriteXLSX(userID, profileID, c.Writer); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Snapshot writes an export server-side and pushes it to Telegram
// @Summary     Snapshot transactions to Telegram
// @Description Write an XLSX export to the server's export directory and push it to the user's Telegram chat in the background
// @Tags        export
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Success     202 {object} map[string]string "Snapshot created, delivery queued"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profiles/{profileID}/export/snapshot [post]
func (h *ExportHandler) Snapshot(c *gin.Context) {
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

	path, err := h.exportService.Snapshot(userID, profileID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"path": path})
}
