package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

const otpLength = 6

// otpService implements the one-time-password workflow: issue, hash,
// deliver, verify, expire, rate-limit. Codes are numeric, stored only
// as SHA-256 hashes, and consumable exactly once.
type otpService struct {
	db            *gorm.DB
	messenger     Messenger
	expiryMinutes int
	maxRetries    int
}

// NewOTPService creates a new OTPServicer.
func NewOTPService(db *gorm.DB, messenger Messenger, expiryMinutes, maxRetries int) OTPServicer {
	return &otpService{
		db:            db,
		messenger:     messenger,
		expiryMinutes: expiryMinutes,
		maxRetries:    maxRetries,
	}
}

// GenerateOTP returns a random numeric code of the given length.
func GenerateOTP(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}

// HashOTP returns the hex-encoded SHA-256 digest of a code.
func HashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// CreateOTPForUser invalidates all previously unused codes for the
// user, stores a fresh hashed code with an expiry, and attempts
// delivery to the user's Telegram chat. The stored code is NOT rolled
// back when delivery fails; the caller decides how to surface that.
func (s *otpService) CreateOTPForUser(user *models.User) (bool, error) {
	code, err := GenerateOTP(otpLength)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	expiry := time.Now().Add(time.Duration(s.expiryMinutes) * time.Minute)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Invalidate old OTPs
		if err := tx.Model(&models.OTPLog{}).
			Where("user_id = ? AND is_used = ?", user.ID, false).
			Update("is_used", true).Error; err != nil {
			return err
		}

		entry := &models.OTPLog{
			UserID:    user.ID,
			OTPHash:   HashOTP(code),
			ExpiresAt: expiry,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	text := fmt.Sprintf("Your Personal Finance App OTP is: %s\nExpires in %d minutes.", code, s.expiryMinutes)
	if err := s.messenger.SendMessage(context.Background(), user.TelegramChatID, text); err != nil {
		logger.Get().Warnw("OTP delivery failed",
			"user_id", user.ID,
			"error", err,
		)
		return false, nil
	}

	return true, nil
}

// VerifyOTP checks a candidate code against the user's unused OTPs.
// Whatever the outcome, a matched row is marked used and can never
// satisfy a later lookup.
func (s *otpService) VerifyOTP(userID, code string) error {
	candidateHash := HashOTP(code)

	var entry models.OTPLog
	err := s.db.Where("user_id = ? AND otp_hash = ? AND is_used = ?", userID, candidateHash, false).
		First(&entry).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// Wrong code: charge a retry against the latest active OTP.
		return s.recordFailedAttempt(userID)
	}

	if time.Now().After(entry.ExpiresAt) {
		if err := s.markUsed(&entry); err != nil {
			return err
		}
		return apperrors.ErrOTPExpired
	}

	if entry.RetryCount >= s.maxRetries {
		if err := s.markUsed(&entry); err != nil {
			return err
		}
		return apperrors.ErrOTPExhausted
	}

	return s.markUsed(&entry)
}

func (s *otpService) recordFailedAttempt(userID string) error {
	var latest models.OTPLog
	err := s.db.Where("user_id = ? AND is_used = ?", userID, false).
		Order("created_at DESC").
		First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrOTPInvalid
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	latest.RetryCount++
	updates := map[string]interface{}{"retry_count": latest.RetryCount}
	if latest.RetryCount >= s.maxRetries {
		updates["is_used"] = true
	}
	if err := s.db.Model(&latest).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return apperrors.ErrOTPInvalid
}

func (s *otpService) markUsed(entry *models.OTPLog) error {
	if err := s.db.Model(entry).Update("is_used", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
