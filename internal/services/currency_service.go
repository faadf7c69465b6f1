package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// BaseCurrency is the currency all aggregate amounts are reported in.
const BaseCurrency = "USD"

// currencyService handles currency lookups and base-currency conversion.
// Exchange rates express how many base-currency units one unit of the
// currency is worth.
type currencyService struct {
	db *gorm.DB
}

// NewCurrencyService creates a new CurrencyServicer.
func NewCurrencyService(db *gorm.DB) CurrencyServicer {
	return &currencyService{db: db}
}

// ListCurrencies returns all known currencies ordered by code.
func (s *currencyService) ListCurrencies() ([]models.Currency, error) {
	var currencies []models.Currency
	if err := s.db.Order("code ASC").Find(&currencies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return currencies, nil
}

// GetByCode retrieves a currency by its ISO 4217 code.
func (s *currencyService) GetByCode(code string) (*models.Currency, error) {
	var currency models.Currency
	err := s.db.Where("code = ?", code).First(&currency).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCurrencyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &currency, nil
}

// UpdateRate replaces a currency's exchange rate. The rate arrives as a
// decimal string so no float precision is lost on the way in.
func (s *currencyService) UpdateRate(code string, rate string) (*models.Currency, error) {
	parsed, err := decimal.NewFromString(rate)
	if err != nil || parsed.IsNegative() || parsed.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rate must be a positive decimal")
	}

	currency, lookupErr := s.GetByCode(code)
	if lookupErr != nil {
		return nil, lookupErr
	}

	updates := map[string]interface{}{
		"exchange_rate": parsed,
		"last_updated":  time.Now(),
	}
	if err := s.db.Model(currency).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	currency.ExchangeRate = parsed
	return currency, nil
}

// ConvertToBase converts an amount in cents of the given currency into
// base-currency cents, rounding half up. Base-currency amounts pass
// through untouched.
func (s *currencyService) ConvertToBase(amount int64, code string) (int64, error) {
	if code == BaseCurrency {
		return amount, nil
	}
	currency, err := s.GetByCode(code)
	if err != nil {
		return 0, err
	}
	converted := decimal.NewFromInt(amount).Mul(currency.ExchangeRate)
	return converted.Round(0).IntPart(), nil
}
