package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/helvita/ledger-backend/internal/apperrors"
	"github.com/helvita/ledger-backend/internal/core/domain"
	portsrepo "github.com/helvita/ledger-backend/internal/core/ports/repositories"
	"github.com/helvita/ledger-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, user_id, account_id, type, amount, currency_code, balance_after, description, status, metadata, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepository
var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.CurrencyTransaction) (models.CurrencyTransaction, error) {
	metadata, err := json.Marshal(d.Metadata)
	if err != nil {
		return models.CurrencyTransaction{}, fmt.Errorf("failed to marshal transaction metadata: %w", err)
	}
	return models.CurrencyTransaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		AccountID:     d.AccountID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		BalanceAfter:  d.BalanceAfter,
		Description:   d.Description,
		Status:        string(d.Status),
		Metadata:      metadata,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}, nil
}

func toDomainTransaction(m models.CurrencyTransaction) (domain.CurrencyTransaction, error) {
	var metadata domain.TransactionMetadata
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return domain.CurrencyTransaction{}, fmt.Errorf("failed to unmarshal metadata for transaction %s: %w", m.TransactionID, err)
		}
	}
	return domain.CurrencyTransaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		AccountID:     m.AccountID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		BalanceAfter:  m.BalanceAfter,
		Description:   m.Description,
		Status:        domain.TransactionStatus(m.Status),
		Metadata:      metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

func scanTransaction(row pgx.Row) (domain.CurrencyTransaction, error) {
	var m models.CurrencyTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.Type,
		&m.Amount,
		&m.CurrencyCode,
		&m.BalanceAfter,
		&m.Description,
		&m.Status,
		&m.Metadata,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.CurrencyTransaction{}, err
	}
	return toDomainTransaction(m)
}

// SaveTransactionInTx inserts a ledger entry within an existing database
// transaction so the entry and its balance change commit or roll back as one.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.CurrencyTransaction) error {
	m, err := toModelTransaction(txn)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO currency_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.AccountID,
		m.Type,
		m.Amount,
		m.CurrencyCode,
		m.BalanceAfter,
		m.Description,
		m.Status,
		m.Metadata,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
			}
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// ListTransactionsByAccount returns one page of an account's ledger entries,
// newest first, plus the total entry count for pagination.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, userID, accountID string, limit, offset int) ([]domain.CurrencyTransaction, int64, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM currency_transactions
		WHERE user_id = $1 AND account_id = $2;
	`
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, userID, accountID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for account %s: %w", accountID, err)
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM currency_transactions
		WHERE user_id = $1 AND account_id = $2
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, userID, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var txns []domain.CurrencyTransaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, total, nil
}

// ListRecentTransactionsByUser returns the user's most recent ledger entries
// across all accounts.
func (r *PgxTransactionRepository) ListRecentTransactionsByUser(ctx context.Context, userID string, limit int) ([]domain.CurrencyTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM currency_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var txns []domain.CurrencyTransaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}
