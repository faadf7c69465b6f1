package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// exportService renders a profile's transaction history as CSV or XLSX
// and can push a snapshot to the owner's Telegram chat.
type exportService struct {
	db             *gorm.DB
	profileService ProfileServicer
	userService    UserServicer
	messenger      Messenger
	dispatcher     Dispatcher
	exportDir      string
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB, profileService ProfileServicer, userService UserServicer, messenger Messenger, dispatcher Dispatcher, exportDir string) ExportServicer {
	return &exportService{
		db:             db,
		profileService: profileService,
		userService:    userService,
		messenger:      messenger,
		dispatcher:     dispatcher,
		exportDir:      exportDir,
	}
}

var exportHeader = []string{"Date", "Account", "Type", "Category", "Amount", "Description"}

// exportRows loads the profile's transactions in storage order with
// their account and category names resolved.
func (s *exportService) exportRows(userID, profileID string) ([][]string, error) {
	if _, err := s.profileService.GetProfileByID(userID, profileID); err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	err := s.db.Model(&models.Transaction{}).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.profile_id = ? AND accounts.deleted_at IS NULL", profileID).
		Preload("Account").Preload("Category").
		Order("transactions.created_at ASC, transactions.id ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		categoryName := "Uncategorized"
		if t.Category != nil {
			categoryName = t.Category.Name
		}
		rows = append(rows, []string{
			t.Date.Format("2006-01-02"),
			t.Account.Name,
			string(t.Type),
			categoryName,
			formatCents(t.Amount),
			t.Description,
		})
	}
	return rows, nil
}

// formatCents renders integer cents as a plain decimal string.
func formatCents(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}

// WriteCSV streams the profile's transactions as CSV.
func (s *exportService) WriteCSV(userID, profileID string, w io.Writer) error {
	rows, err := s.exportRows(userID, profileID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// WriteXLSX streams the profile's transactions as a single-sheet
// spreadsheet.
func (s *exportService) WriteXLSX(userID, profileID string, w io.Writer) error {
	rows, err := s.exportRows(userID, profileID)
	if err != nil {
		return err
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Transactions"
	index, err := file.NewSheet(sheet)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	writeRow := func(n int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, n)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		converted := make([]interface{}, len(values))
		for i, v := range values {
			converted[i] = v
		}
		if err := file.SetSheetRow(sheet, cell, &converted); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	}

	if err := writeRow(1, exportHeader); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(i+2, row); err != nil {
			return err
		}
	}

	if _, err := file.WriteTo(w); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Snapshot writes an XLSX export to the export directory and pushes it
// to the user's Telegram chat in the background. The local file is the
// deliverable; a failed Telegram delivery is logged and otherwise
// ignored.
func (s *exportService) Snapshot(userID, profileID string) (string, error) {
	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	name := fmt.Sprintf("transactions_%s_%s.xlsx", profileID, time.Now().Format("20060102_150405"))
	path := filepath.Join(s.exportDir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.WriteXLSX(userID, profileID, out); err != nil {
		out.Close()
		os.Remove(path)
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	chatID := user.TelegramChatID
	s.dispatcher.Dispatch(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.messenger.SendDocument(ctx, chatID, path, "Your transaction export"); err != nil {
			logger.Get().Warnf("telegram export delivery failed for chat %s: %v", chatID, err)
			return err
		}
		return nil
	})

	return path, nil
}
