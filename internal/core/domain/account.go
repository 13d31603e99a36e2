package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyAccount is a per-user, per-currency balance record.
// The balance never goes negative and is mutated exclusively through the
// ledger engine; every mutation appends a CurrencyTransaction in the same
// atomic unit.
type CurrencyAccount struct {
	AccountID           string          `json:"accountID"`
	UserID              string          `json:"userID"`
	CurrencyCode        string          `json:"currencyCode"`
	AccountNumber       string          `json:"accountNumber"` // generated, human-readable, unique
	Balance             decimal.Decimal `json:"balance"`
	IsActive            bool            `json:"isActive"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate,omitempty"`
	AuditFields
}

// FormattedBalance is a display representation of an account balance.
type FormattedBalance struct {
	Amount    string `json:"amount"`
	Symbol    string `json:"symbol"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}
