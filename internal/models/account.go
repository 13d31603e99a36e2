package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyAccount is the database shape of a currency account row.
type CurrencyAccount struct {
	AccountID           string          `db:"account_id"`
	UserID              string          `db:"user_id"`
	CurrencyCode        string          `db:"currency_code"`
	AccountNumber       string          `db:"account_number"`
	Balance             decimal.Decimal `db:"balance"`
	IsActive            bool            `db:"is_active"`
	LastTransactionDate *time.Time      `db:"last_transaction_date"` // Nullable
	AuditFields
}
