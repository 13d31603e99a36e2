package services

import (
	"context"

	"github.com/helvita/ledger-backend/internal/core/domain"
	"github.com/helvita/ledger-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// BankIntegrationSvcFacade orchestrates multi-step ledger operations that
// involve the external bank-link collaborator or two currency accounts.
type BankIntegrationSvcFacade interface {
	FundFromBank(ctx context.Context, userID, accountID string, amount decimal.Decimal, description string) (*dto.BankTransferResult, error)
	WithdrawToBank(ctx context.Context, userID, accountID string, amount decimal.Decimal, description string) (*dto.BankTransferResult, error)
	ExchangeCurrency(ctx context.Context, userID, fromAccountID, toAccountID string, amount decimal.Decimal) (*dto.ExchangeResult, error)
	GetBankAccountInfo(ctx context.Context, userID string) (*dto.BankInfoResponse, error)
	// LinkBank validates the access token against the provider and stores it.
	LinkBank(ctx context.Context, userID, accessToken string) (*dto.BankInfoResponse, error)
	UnlinkBank(ctx context.Context, userID string) error
}

// BankLinkProvider lists the accounts behind a user's bank connection.
type BankLinkProvider interface {
	ListLinkedAccounts(ctx context.Context, accessToken string) ([]domain.BankAccount, error)
}
