package services

import (
	"context"

	"github.com/helvita/ledger-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateSvcFacade quotes conversion rates and fees.
type ExchangeRateSvcFacade interface {
	// GetExchangeRate returns the rate for from -> to. Identical codes yield
	// exactly 1 without a provider call. When the live provider fails, a
	// static fallback table is consulted; if no fallback pair exists the
	// error wraps apperrors.ErrExternalService.
	GetExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error)
	ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (*dto.ConversionResult, error)
	// CalculateFee returns amount * feePercentage / 100.
	CalculateFee(amount decimal.Decimal, feePercentage decimal.Decimal) decimal.Decimal
	// DefaultFeePercentage is the platform exchange fee (percent).
	DefaultFeePercentage() decimal.Decimal
}

// RateProvider is the external live-rate collaborator. Best effort: callers
// must tolerate failure.
type RateProvider interface {
	// GetRates returns the conversion rates from baseCurrency to every quoted
	// currency.
	GetRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error)
}
