package utils

import (
	"github.com/helvita/ledger-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the display precision
// of the given currency.
// Example: 12.3456 with USD (2 decimals) returns "12.35"; with JPY "12".
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.StringFixed(int32(currency.Decimals))
}

// FormatBalance builds the display representation of an account balance.
func FormatBalance(account *domain.CurrencyAccount) domain.FormattedBalance {
	currency, _ := domain.CurrencyByCode(account.CurrencyCode)
	amount := FormatWithCurrencyPrecision(account.Balance, currency)
	return domain.FormattedBalance{
		Amount:    amount,
		Symbol:    currency.Symbol,
		Currency:  currency.Code,
		Formatted: currency.Symbol + amount,
	}
}

// FormatAmount builds the display representation of a transaction amount,
// signed by the debit/credit direction of its type. Both legs of an exchange
// share the exchange type; the out-leg is recognized by its target-currency
// metadata.
func FormatAmount(txn *domain.CurrencyTransaction) domain.FormattedAmount {
	currency, _ := domain.CurrencyByCode(txn.CurrencyCode)
	amount := FormatWithCurrencyPrecision(txn.Amount, currency)
	sign := "+"
	if txn.Type.IsDebit() || (txn.Type == domain.Exchange && txn.Metadata.ToCurrency != "") {
		sign = "-"
	}
	return domain.FormattedAmount{
		Amount:    amount,
		Symbol:    currency.Symbol,
		Currency:  currency.Code,
		Formatted: sign + currency.Symbol + amount,
	}
}
