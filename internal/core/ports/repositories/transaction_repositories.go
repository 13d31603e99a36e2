package repositories

import (
	"context"

	"github.com/helvita/ledger-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionRepository persists and queries immutable ledger entries.
type TransactionRepository interface {
	// SaveTransactionInTx inserts a ledger entry within the caller's
	// transaction, in the same atomic unit as the balance update it records.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.CurrencyTransaction) error
	// ListTransactionsByAccount returns a page of entries for one account,
	// newest first, plus the total entry count for the account.
	ListTransactionsByAccount(ctx context.Context, userID, accountID string, limit, offset int) ([]domain.CurrencyTransaction, int64, error)
	// ListRecentTransactionsByUser returns the user's most recent entries
	// across all accounts, newest first.
	ListRecentTransactionsByUser(ctx context.Context, userID string, limit int) ([]domain.CurrencyTransaction, error)
}
