package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/helvita/ledger-backend/internal/apperrors"
	"github.com/helvita/ledger-backend/internal/core/domain"
	portsrepo "github.com/helvita/ledger-backend/internal/core/ports/repositories"
	"github.com/helvita/ledger-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, user_id, currency_code, account_number, balance, is_active, last_transaction_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for currency account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// Helper to convert domain.CurrencyAccount to models.CurrencyAccount for DB storage
func toModelAccount(d domain.CurrencyAccount) models.CurrencyAccount {
	return models.CurrencyAccount{
		AccountID:           d.AccountID,
		UserID:              d.UserID,
		CurrencyCode:        d.CurrencyCode,
		AccountNumber:       d.AccountNumber,
		Balance:             d.Balance,
		IsActive:            d.IsActive,
		LastTransactionDate: d.LastTransactionDate,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.CurrencyAccount from DB to domain.CurrencyAccount
func toDomainAccount(m models.CurrencyAccount) domain.CurrencyAccount {
	return domain.CurrencyAccount{
		AccountID:           m.AccountID,
		UserID:              m.UserID,
		CurrencyCode:        m.CurrencyCode,
		AccountNumber:       m.AccountNumber,
		Balance:             m.Balance,
		IsActive:            m.IsActive,
		LastTransactionDate: m.LastTransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanAccount(row pgx.Row) (domain.CurrencyAccount, error) {
	var m models.CurrencyAccount
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.CurrencyCode,
		&m.AccountNumber,
		&m.Balance,
		&m.IsActive,
		&m.LastTransactionDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.CurrencyAccount{}, err
	}
	return toDomainAccount(m), nil
}

// SaveAccount inserts a new currency account. A unique violation on the
// one-active-account-per-currency index maps to apperrors.ErrDuplicate.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.CurrencyAccount) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO currency_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.UserID,
		m.CurrencyCode,
		m.AccountNumber,
		m.Balance,
		m.IsActive,
		m.LastTransactionDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: active %s account already exists for user %s", apperrors.ErrDuplicate, m.CurrencyCode, m.UserID)
			}
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID regardless of owner or state.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.CurrencyAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM currency_accounts
		WHERE account_id = $1;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

// FindActiveAccount retrieves an active account owned by the given user.
func (r *PgxAccountRepository) FindActiveAccount(ctx context.Context, userID, accountID string) (*domain.CurrencyAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM currency_accounts
		WHERE account_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active account %s for user %s: %w", accountID, userID, err)
	}
	return &acc, nil
}

// FindActiveAccountByCurrency retrieves the user's active account in a currency.
func (r *PgxAccountRepository) FindActiveAccountByCurrency(ctx context.Context, userID, currencyCode string) (*domain.CurrencyAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM currency_accounts
		WHERE user_id = $1 AND currency_code = $2 AND is_active = TRUE;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, userID, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active %s account for user %s: %w", currencyCode, userID, err)
	}
	return &acc, nil
}

// ListAccountsByUser returns the user's active accounts sorted by currency code.
func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.CurrencyAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM currency_accounts
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY currency_code;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	var accounts []domain.CurrencyAccount
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks the account inactive. The account must belong to
// the user and carry a zero balance; a non-matching row yields ErrNotFound so
// callers can distinguish via a prior read.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE currency_accounts
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $2
		WHERE account_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, userID, now)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// LockAccountsForUpdate locks the given account rows FOR UPDATE within tx.
// IDs are sorted before locking so concurrent multi-account transactions
// acquire locks in the same order and cannot deadlock.
func (r *PgxAccountRepository) LockAccountsForUpdate(ctx context.Context, tx pgx.Tx, userID string, accountIDs []string) (map[string]domain.CurrencyAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.CurrencyAccount{}, nil
	}

	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	query := `
		SELECT ` + accountColumns + `
		FROM currency_accounts
		WHERE account_id = ANY($1) AND user_id = $2 AND is_active = TRUE
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, sorted, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.CurrencyAccount, len(sorted))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	for _, id := range sorted {
		if _, ok := accountsMap[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accountsMap, nil
}

// ApplyBalanceChange adds delta to the account balance within tx, guarded so
// the balance cannot go negative even if the in-memory check raced. Returns
// the resulting balance.
func (r *PgxAccountRepository) ApplyBalanceChange(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE currency_accounts
		SET balance = balance + $2, last_transaction_date = $3, last_updated_at = $3
		WHERE account_id = $1 AND balance + $2 >= 0
		RETURNING balance;
	`
	var newBalance decimal.Decimal
	err := tx.QueryRow(ctx, query, accountID, delta, now).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientBalance, accountID)
		}
		return decimal.Zero, fmt.Errorf("failed to apply balance change to account %s: %w", accountID, err)
	}
	return newBalance, nil
}

// WithTx begins a transaction, runs fn, and commits. Any error from fn rolls
// the whole unit back.
func (r *PgxAccountRepository) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := fn(tx); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
