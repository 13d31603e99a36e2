package repositories

import (
	"context"
	"time"

	"github.com/helvita/ledger-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for currency accounts.
type AccountReader interface {
	// FindAccountByID returns the account regardless of owner or state.
	FindAccountByID(ctx context.Context, accountID string) (*domain.CurrencyAccount, error)
	// FindActiveAccount returns the account only if it belongs to userID and
	// is active; otherwise apperrors.ErrNotFound.
	FindActiveAccount(ctx context.Context, userID, accountID string) (*domain.CurrencyAccount, error)
	// FindActiveAccountByCurrency returns the user's active account for a
	// currency, or apperrors.ErrNotFound.
	FindActiveAccountByCurrency(ctx context.Context, userID, currencyCode string) (*domain.CurrencyAccount, error)
	// ListAccountsByUser returns the user's active accounts sorted by currency.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.CurrencyAccount, error)
}

// AccountWriter defines write operations for currency accounts.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.CurrencyAccount) error
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTxOps are the operations the ledger engine runs inside a database
// transaction. Rows are locked up front so concurrent mutations against the
// same account serialize.
type AccountTxOps interface {
	// LockAccountsForUpdate locks the given accounts (FOR UPDATE, IDs sorted
	// by the caller for a deterministic lock order) and returns them keyed by
	// account ID. Only active accounts owned by userID are returned; a
	// missing account yields apperrors.ErrNotFound.
	LockAccountsForUpdate(ctx context.Context, tx pgx.Tx, userID string, accountIDs []string) (map[string]domain.CurrencyAccount, error)
	// ApplyBalanceChange atomically adds delta (negative for debits) to the
	// account balance, guarded so the result cannot go negative, and stamps
	// lastTransactionDate. Returns the new balance. A guard violation yields
	// apperrors.ErrInsufficientBalance.
	ApplyBalanceChange(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error)
}

// AccountRepositoryWithTx is the full account repository contract, including
// the ability to run a function within a single database transaction.
type AccountRepositoryWithTx interface {
	AccountReader
	AccountWriter
	AccountTxOps
	// WithTx begins a transaction, runs fn, and commits; any error from fn
	// rolls the whole unit back.
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
