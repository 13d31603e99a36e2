package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helvita/ledger-backend/internal/apperrors"
	"github.com/helvita/ledger-backend/internal/core/domain"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/helvita/ledger-backend/internal/core/services"
	"github.com/helvita/ledger-backend/internal/events/kafka"
	"github.com/helvita/ledger-backend/internal/repositories/database/pgsql"
	"github.com/helvita/ledger-backend/internal/testutil"
)

func setupLedgerEngine(t *testing.T) (*pgxpool.Pool, *services.CurrencyService) {
	t.Helper()
	pool := testutil.SetupTestPool(t)
	repos := pgsql.NewRepositoryProvider(pool)
	svc := services.NewCurrencyService(repos.AccountRepo, repos.TransactionRepo, kafka.NoopPublisher{})
	return pool, svc
}

func TestConcurrentWithdrawals_NoOverdraft(t *testing.T) {
	pool, svc := setupLedgerEngine(t)
	ctx := context.Background()

	userID := testutil.SeedUser(t, pool, "overdraft@test.com")
	accountID := testutil.SeedAccount(t, pool, userID, "USD", decimal.NewFromInt(100))

	// Two withdrawals of 70 against a balance of 100: only one may commit.
	var wg sync.WaitGroup
	results := make(chan error, 2)

	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.ProcessTransaction(ctx, userID, accountID,
				domain.Withdrawal, decimal.NewFromInt(70), "cash out", domain.TransactionMetadata{})
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	var successes, failures int
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
			failures++
		}
	}

	assert.Equal(t, 1, successes, "exactly one withdrawal should succeed")
	assert.Equal(t, 1, failures, "exactly one withdrawal should fail")

	balance := testutil.AccountBalance(t, pool, accountID)
	assert.True(t, balance.Equal(decimal.NewFromInt(30)), "balance must be 30, got %s", balance)
	assert.Equal(t, 1, testutil.CountTransactions(t, pool, accountID))
}

func TestProcessLegs_FailedLegRestoresAppliedBalances(t *testing.T) {
	pool, svc := setupLedgerEngine(t)
	ctx := context.Background()

	userID := testutil.SeedUser(t, pool, "rollback@test.com")
	firstID := testutil.SeedAccount(t, pool, userID, "USD", decimal.NewFromInt(100))
	secondID := testutil.SeedAccount(t, pool, userID, "EUR", decimal.NewFromInt(10))

	// The first debit applies cleanly; the second overdraws its account, so
	// the whole unit must roll back including the already-applied first leg.
	_, err := svc.ProcessLegs(ctx, userID, []portssvc.LedgerLeg{
		{AccountID: firstID, Type: domain.Withdrawal, Amount: decimal.NewFromInt(50), Debit: true},
		{AccountID: secondID, Type: domain.Withdrawal, Amount: decimal.NewFromInt(500), Debit: true},
	})

	require.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	firstBalance := testutil.AccountBalance(t, pool, firstID)
	assert.True(t, firstBalance.Equal(decimal.NewFromInt(100)), "first account must keep 100, got %s", firstBalance)
	secondBalance := testutil.AccountBalance(t, pool, secondID)
	assert.True(t, secondBalance.Equal(decimal.NewFromInt(10)), "second account must keep 10, got %s", secondBalance)

	assert.Equal(t, 0, testutil.CountTransactions(t, pool, firstID))
	assert.Equal(t, 0, testutil.CountTransactions(t, pool, secondID))
}

func TestProcessLegs_ExchangeCommitsBothLegs(t *testing.T) {
	pool, svc := setupLedgerEngine(t)
	ctx := context.Background()

	userID := testutil.SeedUser(t, pool, "exchange@test.com")
	fromID := testutil.SeedAccount(t, pool, userID, "USD", decimal.NewFromInt(200))
	toID := testutil.SeedAccount(t, pool, userID, "EUR", decimal.NewFromInt(10))

	gross := decimal.NewFromInt(100)
	converted := decimal.RequireFromString("89.55")

	txns, err := svc.ProcessLegs(ctx, userID, []portssvc.LedgerLeg{
		{AccountID: fromID, Type: domain.Exchange, Amount: gross, Debit: true},
		{AccountID: toID, Type: domain.Exchange, Amount: converted},
	})

	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, domain.Exchange, txns[0].Type)
	assert.Equal(t, domain.Exchange, txns[1].Type)
	assert.True(t, txns[0].BalanceAfter.Equal(decimal.NewFromInt(100)))
	assert.True(t, txns[1].BalanceAfter.Equal(decimal.RequireFromString("99.55")))

	fromBalance := testutil.AccountBalance(t, pool, fromID)
	assert.True(t, fromBalance.Equal(decimal.NewFromInt(100)), "source must be debited, got %s", fromBalance)
	toBalance := testutil.AccountBalance(t, pool, toID)
	assert.True(t, toBalance.Equal(decimal.RequireFromString("99.55")), "target must be credited, got %s", toBalance)

	assert.Equal(t, 1, testutil.CountTransactions(t, pool, fromID))
	assert.Equal(t, 1, testutil.CountTransactions(t, pool, toID))
}
