package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/helvita/ledger-backend/internal/apperrors"
	"github.com/helvita/ledger-backend/internal/core/domain"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/helvita/ledger-backend/internal/dto"
	"github.com/helvita/ledger-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// fallbackRates are static tables used when the live provider is down.
// Rates for other base currencies are derived by inverse lookup. A pair with
// no direct or inverse entry fails with ErrExternalService rather than
// pretending a rate exists.
var fallbackRates = map[string]map[string]string{
	"USD": {
		"CAD": "1.36", "EUR": "0.93", "GBP": "0.79", "JPY": "151.50",
		"AUD": "1.52", "CHF": "0.90", "CNY": "7.23", "NZD": "1.66", "HKD": "7.82",
	},
	"EUR": {
		"USD": "1.08", "CAD": "1.47", "GBP": "0.85", "JPY": "163.20",
		"AUD": "1.64", "CHF": "0.97", "CNY": "7.80", "NZD": "1.79", "HKD": "8.44",
	},
	"GBP": {
		"USD": "1.27", "CAD": "1.72", "EUR": "1.17", "JPY": "191.70",
		"AUD": "1.92", "CHF": "1.14", "CNY": "9.16", "NZD": "2.10", "HKD": "9.91",
	},
}

// ExchangeRateService quotes conversion rates, preferring the live provider
// and falling back to static tables.
type ExchangeRateService struct {
	provider      portssvc.RateProvider
	feePercentage decimal.Decimal
}

// NewExchangeRateService creates the rate service. feePercentage is the
// platform exchange fee in percent (e.g. 0.5).
func NewExchangeRateService(provider portssvc.RateProvider, feePercentage decimal.Decimal) *ExchangeRateService {
	return &ExchangeRateService{
		provider:      provider,
		feePercentage: feePercentage,
	}
}

// Ensure ExchangeRateService implements the facade
var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// GetExchangeRate returns the rate for fromCurrency -> toCurrency.
// Identical codes yield exactly 1 without touching the provider.
func (s *ExchangeRateService) GetExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fromCurrency = strings.ToUpper(fromCurrency)
	toCurrency = strings.ToUpper(toCurrency)

	if !domain.IsSupportedCurrency(fromCurrency) || !domain.IsSupportedCurrency(toCurrency) {
		return decimal.Zero, fmt.Errorf("%w: unsupported currency pair %s/%s", apperrors.ErrValidation, fromCurrency, toCurrency)
	}
	if fromCurrency == toCurrency {
		return decimal.NewFromInt(1), nil
	}

	rates, err := s.provider.GetRates(ctx, fromCurrency)
	if err == nil {
		if rate, ok := rates[toCurrency]; ok && rate.IsPositive() {
			return rate, nil
		}
		logger.Warn("Live provider response missing requested currency",
			slog.String("from", fromCurrency), slog.String("to", toCurrency))
	} else {
		logger.Warn("Live rate provider unavailable, using fallback rates",
			slog.String("from", fromCurrency), slog.String("error", err.Error()))
	}

	return s.fallbackRate(fromCurrency, toCurrency)
}

// fallbackRate consults the static tables: first the direct pair, then the
// inverse of the reverse pair.
func (s *ExchangeRateService) fallbackRate(fromCurrency, toCurrency string) (decimal.Decimal, error) {
	if table, ok := fallbackRates[fromCurrency]; ok {
		if raw, ok := table[toCurrency]; ok {
			return decimal.RequireFromString(raw), nil
		}
	}
	if table, ok := fallbackRates[toCurrency]; ok {
		if raw, ok := table[fromCurrency]; ok {
			inverse := decimal.RequireFromString(raw)
			return decimal.NewFromInt(1).DivRound(inverse, 8), nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: no rate available for %s/%s", apperrors.ErrExternalService, fromCurrency, toCurrency)
}

// CalculateFee returns amount * feePercentage / 100.
func (s *ExchangeRateService) CalculateFee(amount decimal.Decimal, feePercentage decimal.Decimal) decimal.Decimal {
	return amount.Mul(feePercentage).Div(decimal.NewFromInt(100))
}

// DefaultFeePercentage is the platform exchange fee in percent.
func (s *ExchangeRateService) DefaultFeePercentage() decimal.Decimal {
	return s.feePercentage
}

// ConvertAmount quotes a conversion of a concrete amount: the fee is taken
// from the source amount and the remainder converts at the quoted rate.
func (s *ExchangeRateService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (*dto.ConversionResult, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	rate, err := s.GetExchangeRate(ctx, fromCurrency, toCurrency)
	if err != nil {
		return nil, err
	}

	fee := s.CalculateFee(amount, s.feePercentage)
	net := amount.Sub(fee)
	converted := net.Mul(rate)

	return &dto.ConversionResult{
		FromCurrency:    strings.ToUpper(fromCurrency),
		ToCurrency:      strings.ToUpper(toCurrency),
		Rate:            rate,
		OriginalAmount:  amount,
		Fee:             fee,
		NetAmount:       net,
		ConvertedAmount: converted,
	}, nil
}
