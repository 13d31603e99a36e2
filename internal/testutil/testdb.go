// Package testutil provides database helpers for integration tests. Each
// test gets its own PostgreSQL container with the real schema applied.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/helvita/ledger-backend/internal/utils"
	"github.com/helvita/ledger-backend/pkg/database"
)

// SetupTestPool starts a PostgreSQL container, applies the migrations, and
// returns a connection pool. The container and pool are cleaned up with the
// test.
func SetupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("ledger_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	pool, err := database.NewPgxPool(ctx, connStr, true)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := runMigrations(ctx, pool); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return pool
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrationsDir := findMigrationsDir()

	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var upFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			upFiles = append(upFiles, e.Name())
		}
	}
	sort.Strings(upFiles)

	for _, f := range upFiles {
		content, err := os.ReadFile(filepath.Join(migrationsDir, f))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", f, err)
		}
		if _, err := pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("execute migration %s: %w", f, err)
		}
	}

	return nil
}

// Walk up from CWD to find the project root migrations directory.
// go test sets CWD to the package under test, so we may need to traverse up.
func findMigrationsDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "migrations"
	}
	for range 10 {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	return "migrations"
}

// SeedUser inserts a user row and returns its ID.
func SeedUser(t *testing.T, pool *pgxpool.Pool, email string) string {
	t.Helper()
	userID := uuid.NewString()
	now := time.Now()

	_, err := pool.Exec(context.Background(), `
		INSERT INTO users (user_id, email, name, password_hash, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, 'Test User', 'not-a-real-hash', $3, $1, $3, $1);
	`, userID, email, now)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return userID
}

// SeedAccount inserts an active currency account with the given balance and
// returns its ID.
func SeedAccount(t *testing.T, pool *pgxpool.Pool, userID, currencyCode string, balance decimal.Decimal) string {
	t.Helper()
	accountID := uuid.NewString()
	now := time.Now()

	accountNumber, err := utils.GenerateAccountNumber(currencyCode, now)
	if err != nil {
		t.Fatalf("generate account number: %v", err)
	}

	_, err = pool.Exec(context.Background(), `
		INSERT INTO currency_accounts (account_id, user_id, currency_code, account_number, balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $2, $6, $2);
	`, accountID, userID, currencyCode, accountNumber, balance, now)
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return accountID
}

// AccountBalance reads an account's current balance directly.
func AccountBalance(t *testing.T, pool *pgxpool.Pool, accountID string) decimal.Decimal {
	t.Helper()
	var balance decimal.Decimal
	err := pool.QueryRow(context.Background(),
		`SELECT balance FROM currency_accounts WHERE account_id = $1;`, accountID).Scan(&balance)
	if err != nil {
		t.Fatalf("read balance: %v", err)
	}
	return balance
}

// CountTransactions counts an account's ledger entries directly.
func CountTransactions(t *testing.T, pool *pgxpool.Pool, accountID string) int {
	t.Helper()
	var count int
	err := pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM currency_transactions WHERE account_id = $1;`, accountID).Scan(&count)
	if err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return count
}
