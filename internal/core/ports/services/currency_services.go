package services

import (
	"context"

	"github.com/helvita/ledger-backend/internal/core/domain"
	"github.com/helvita/ledger-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerLeg describes one half of a multi-account ledger operation. Debit
// states the direction explicitly rather than deriving it from Type: both
// legs of a currency exchange persist as type exchange, yet one debits and
// one credits.
type LedgerLeg struct {
	AccountID   string
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Debit       bool
	Description string
	Metadata    domain.TransactionMetadata
}

// CurrencySvcFacade is the ledger engine: account lifecycle plus every
// balance mutation, each applied atomically with its ledger entry.
type CurrencySvcFacade interface {
	CreateAccount(ctx context.Context, userID, currencyCode string) (*domain.CurrencyAccount, error)
	ListAccounts(ctx context.Context, userID string) ([]domain.CurrencyAccount, error)
	GetAccount(ctx context.Context, userID, accountID string) (*domain.CurrencyAccount, error)
	DeactivateAccount(ctx context.Context, userID, accountID string) error

	ProcessTransaction(ctx context.Context, userID, accountID string, txnType domain.TransactionType, amount decimal.Decimal, description string, metadata domain.TransactionMetadata) (*domain.CurrencyTransaction, decimal.Decimal, error)
	TransferBetweenAccounts(ctx context.Context, userID, fromAccountID, toAccountID string, amount decimal.Decimal, description string) error
	// ProcessLegs applies all legs in one atomic unit; either every leg's
	// balance change and ledger entry commit or none do.
	ProcessLegs(ctx context.Context, userID string, legs []LedgerLeg) ([]domain.CurrencyTransaction, error)

	GetAccountBalance(ctx context.Context, userID, accountID string) (*dto.BalanceResponse, error)
	ListTransactions(ctx context.Context, userID, accountID string, page, limit int) (*dto.ListTransactionsResponse, error)
	ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.CurrencyTransaction, error)
	SupportedCurrencies() []domain.Currency
}
