package utils

import (
	"testing"

	"github.com/helvita/ledger-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithCurrencyPrecision(t *testing.T) {
	usd, _ := domain.CurrencyByCode("USD")
	jpy, _ := domain.CurrencyByCode("JPY")

	// Two-decimal currencies round to cents
	assert.Equal(t, "12.35", FormatWithCurrencyPrecision(decimal.RequireFromString("12.3456"), usd))
	assert.Equal(t, "100.00", FormatWithCurrencyPrecision(decimal.NewFromInt(100), usd))

	// JPY has no decimal places
	assert.Equal(t, "12", FormatWithCurrencyPrecision(decimal.RequireFromString("12.3456"), jpy))
	assert.Equal(t, "1500", FormatWithCurrencyPrecision(decimal.NewFromInt(1500), jpy))
}

func TestFormatBalance(t *testing.T) {
	account := &domain.CurrencyAccount{
		AccountID:    "acc-1",
		CurrencyCode: "EUR",
		Balance:      decimal.RequireFromString("1234.5"),
	}

	formatted := FormatBalance(account)

	assert.Equal(t, "1234.50", formatted.Amount)
	assert.Equal(t, "€", formatted.Symbol)
	assert.Equal(t, "EUR", formatted.Currency)
	assert.Equal(t, "€1234.50", formatted.Formatted)
}

func TestFormatAmount(t *testing.T) {
	deposit := &domain.CurrencyTransaction{
		Type:         domain.Deposit,
		Amount:       decimal.RequireFromString("50.5"),
		CurrencyCode: "USD",
	}
	withdrawal := &domain.CurrencyTransaction{
		Type:         domain.Withdrawal,
		Amount:       decimal.RequireFromString("25.25"),
		CurrencyCode: "USD",
	}
	fee := &domain.CurrencyTransaction{
		Type:         domain.Fee,
		Amount:       decimal.RequireFromString("0.5"),
		CurrencyCode: "USD",
	}

	// Credits are signed positive, debits negative
	assert.Equal(t, "+$50.50", FormatAmount(deposit).Formatted)
	assert.Equal(t, "-$25.25", FormatAmount(withdrawal).Formatted)
	assert.Equal(t, "-$0.50", FormatAmount(fee).Formatted)
}

func TestFormatAmount_ExchangeLegs(t *testing.T) {
	rate := decimal.RequireFromString("0.90")
	converted := decimal.RequireFromString("89.55")
	original := decimal.NewFromInt(100)
	fee := decimal.RequireFromString("0.5")

	out := &domain.CurrencyTransaction{
		Type:         domain.Exchange,
		Amount:       original,
		CurrencyCode: "USD",
		Metadata:     domain.ExchangeOutMetadata("EUR", rate, converted, fee),
	}
	in := &domain.CurrencyTransaction{
		Type:         domain.Exchange,
		Amount:       converted,
		CurrencyCode: "EUR",
		Metadata:     domain.ExchangeInMetadata("USD", rate, original, fee),
	}

	// Both legs carry the exchange type; the out-leg still shows as a debit.
	assert.Equal(t, "-$100.00", FormatAmount(out).Formatted)
	assert.Equal(t, "+€89.55", FormatAmount(in).Formatted)
}
