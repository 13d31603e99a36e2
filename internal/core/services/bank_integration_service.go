package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/helvita/ledger-backend/internal/apperrors"
	"github.com/helvita/ledger-backend/internal/core/domain"
	portsrepo "github.com/helvita/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/helvita/ledger-backend/internal/dto"
	"github.com/helvita/ledger-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// BankIntegrationService orchestrates operations that cross the boundary to
// the user's linked bank or between two currency accounts. The ledger work
// itself is delegated to the currency service.
type BankIntegrationService struct {
	userRepo     portsrepo.UserRepository
	bankProvider portssvc.BankLinkProvider
	currencySvc  portssvc.CurrencySvcFacade
	rateSvc      portssvc.ExchangeRateSvcFacade
}

// NewBankIntegrationService creates the bank integration service.
func NewBankIntegrationService(userRepo portsrepo.UserRepository, bankProvider portssvc.BankLinkProvider, currencySvc portssvc.CurrencySvcFacade, rateSvc portssvc.ExchangeRateSvcFacade) *BankIntegrationService {
	return &BankIntegrationService{
		userRepo:     userRepo,
		bankProvider: bankProvider,
		currencySvc:  currencySvc,
		rateSvc:      rateSvc,
	}
}

// Ensure BankIntegrationService implements the facade
var _ portssvc.BankIntegrationSvcFacade = (*BankIntegrationService)(nil)

// linkedBankAccount resolves the user's primary linked bank account.
func (s *BankIntegrationService) linkedBankAccount(ctx context.Context, userID string) (*domain.BankAccount, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasLinkedBank() {
		return nil, apperrors.ErrBankNotLinked
	}

	bankAccounts, err := s.bankProvider.ListLinkedAccounts(ctx, user.BankAccessToken)
	if err != nil {
		return nil, err
	}
	if len(bankAccounts) == 0 {
		return nil, apperrors.ErrNoBankAccounts
	}
	return &bankAccounts[0], nil
}

// FundFromBank deposits into a currency account from the user's linked bank.
func (s *BankIntegrationService) FundFromBank(ctx context.Context, userID, accountID string, amount decimal.Decimal, description string) (*dto.BankTransferResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	bankAccount, err := s.linkedBankAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	if description == "" {
		description = fmt.Sprintf("Deposit from %s", bankAccount.Name)
	}

	txn, newBalance, err := s.currencySvc.ProcessTransaction(ctx, userID, accountID,
		domain.Deposit, amount, description,
		domain.BankDepositMetadata(bankAccount.ID, bankAccount.Name))
	if err != nil {
		return nil, err
	}

	logger.Info("Account funded from bank",
		slog.String("account_id", accountID),
		slog.String("transaction_id", txn.TransactionID))

	return &dto.BankTransferResult{
		Transaction: dto.ToTransactionResponse(txn),
		NewBalance:  newBalance,
		BankAccount: bankAccount,
	}, nil
}

// WithdrawToBank pays out from a currency account to the user's linked bank.
func (s *BankIntegrationService) WithdrawToBank(ctx context.Context, userID, accountID string, amount decimal.Decimal, description string) (*dto.BankTransferResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	bankAccount, err := s.linkedBankAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	if description == "" {
		description = fmt.Sprintf("Withdrawal to %s", bankAccount.Name)
	}

	txn, newBalance, err := s.currencySvc.ProcessTransaction(ctx, userID, accountID,
		domain.Withdrawal, amount, description,
		domain.BankWithdrawalMetadata())
	if err != nil {
		return nil, err
	}

	logger.Info("Withdrawal to bank completed",
		slog.String("account_id", accountID),
		slog.String("transaction_id", txn.TransactionID))

	return &dto.BankTransferResult{
		Transaction: dto.ToTransactionResponse(txn),
		NewBalance:  newBalance,
		BankAccount: bankAccount,
	}, nil
}

// ExchangeCurrency converts funds between two of the user's accounts held in
// different currencies. The full source amount is debited; the fee is taken
// from it and the remainder converts at the quoted rate. Both legs commit in
// one atomic ledger unit.
func (s *BankIntegrationService) ExchangeCurrency(ctx context.Context, userID, fromAccountID, toAccountID string, amount decimal.Decimal) (*dto.ExchangeResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if fromAccountID == toAccountID {
		return nil, fmt.Errorf("%w: cannot exchange within the same account", apperrors.ErrValidation)
	}

	fromAccount, err := s.currencySvc.GetAccount(ctx, userID, fromAccountID)
	if err != nil {
		return nil, err
	}
	toAccount, err := s.currencySvc.GetAccount(ctx, userID, toAccountID)
	if err != nil {
		return nil, err
	}
	if fromAccount.CurrencyCode == toAccount.CurrencyCode {
		return nil, fmt.Errorf("%w: accounts hold the same currency, use a transfer instead", apperrors.ErrValidation)
	}

	quote, err := s.rateSvc.ConvertAmount(ctx, amount, fromAccount.CurrencyCode, toAccount.CurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrExternalService) {
			logger.Warn("Exchange aborted, no rate available",
				slog.String("from", fromAccount.CurrencyCode),
				slog.String("to", toAccount.CurrencyCode))
		}
		return nil, err
	}

	outDescription := fmt.Sprintf("Exchange %s to %s", quote.FromCurrency, quote.ToCurrency)
	inDescription := fmt.Sprintf("Exchange from %s", quote.FromCurrency)

	txns, err := s.currencySvc.ProcessLegs(ctx, userID, []portssvc.LedgerLeg{
		{
			AccountID:   fromAccountID,
			Type:        domain.Exchange,
			Amount:      quote.OriginalAmount,
			Debit:       true,
			Description: outDescription,
			Metadata:    domain.ExchangeOutMetadata(quote.ToCurrency, quote.Rate, quote.ConvertedAmount, quote.Fee),
		},
		{
			AccountID:   toAccountID,
			Type:        domain.Exchange,
			Amount:      quote.ConvertedAmount,
			Description: inDescription,
			Metadata:    domain.ExchangeInMetadata(quote.FromCurrency, quote.Rate, quote.OriginalAmount, quote.Fee),
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Currency exchange completed",
		slog.String("from_account", fromAccountID),
		slog.String("to_account", toAccountID),
		slog.String("rate", quote.Rate.String()))

	return &dto.ExchangeResult{
		FromCurrency:    quote.FromCurrency,
		ToCurrency:      quote.ToCurrency,
		OriginalAmount:  quote.OriginalAmount,
		ConvertedAmount: quote.ConvertedAmount,
		ExchangeRate:    quote.Rate,
		Fee:             quote.Fee,
		Transactions:    dto.ToTransactionResponses(txns),
	}, nil
}

// LinkBank validates the access token by listing the accounts behind it,
// then stores the token on the user.
func (s *BankIntegrationService) LinkBank(ctx context.Context, userID, accessToken string) (*dto.BankInfoResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if accessToken == "" {
		return nil, fmt.Errorf("%w: access token is required", apperrors.ErrValidation)
	}

	bankAccounts, err := s.bankProvider.ListLinkedAccounts(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if len(bankAccounts) == 0 {
		return nil, apperrors.ErrNoBankAccounts
	}

	if err := s.userRepo.UpdateBankAccessToken(ctx, userID, accessToken, time.Now()); err != nil {
		logger.Error("Failed to store bank access token", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Bank account linked", slog.Int("accounts", len(bankAccounts)))
	return &dto.BankInfoResponse{Connected: true, Accounts: bankAccounts}, nil
}

// UnlinkBank clears the stored access token.
func (s *BankIntegrationService) UnlinkBank(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateBankAccessToken(ctx, userID, "", time.Now()); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to clear bank access token", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// GetBankAccountInfo reports whether a bank is linked and which accounts the
// connection exposes. An unlinked user is not an error here.
func (s *BankIntegrationService) GetBankAccountInfo(ctx context.Context, userID string) (*dto.BankInfoResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasLinkedBank() {
		return &dto.BankInfoResponse{Connected: false, Accounts: []domain.BankAccount{}}, nil
	}

	bankAccounts, err := s.bankProvider.ListLinkedAccounts(ctx, user.BankAccessToken)
	if err != nil {
		return nil, err
	}
	return &dto.BankInfoResponse{Connected: true, Accounts: bankAccounts}, nil
}
