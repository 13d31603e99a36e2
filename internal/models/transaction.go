package models

import (
	"github.com/shopspring/decimal"
)

// CurrencyTransaction is the database shape of a ledger entry row.
// Metadata is stored as jsonb and marshalled at the repository boundary.
type CurrencyTransaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	AccountID     string          `db:"account_id"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	Description   string          `db:"description"`
	Status        string          `db:"status"`
	Metadata      []byte          `db:"metadata"` // jsonb
	AuditFields
}
