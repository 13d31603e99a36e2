package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/helvita/ledger-backend/internal/apperrors"
	"github.com/helvita/ledger-backend/internal/core/domain"
	portsrepo "github.com/helvita/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/helvita/ledger-backend/internal/dto"
	"github.com/helvita/ledger-backend/internal/middleware"
	"github.com/helvita/ledger-backend/internal/utils"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CurrencyService is the ledger engine. Every balance mutation goes through
// ProcessLegs, which applies the balance change and writes the ledger entry
// in a single database transaction.
type CurrencyService struct {
	accountRepo     portsrepo.AccountRepositoryWithTx
	transactionRepo portsrepo.TransactionRepository
	publisher       portssvc.EventPublisher
}

// NewCurrencyService creates the ledger engine service.
func NewCurrencyService(accountRepo portsrepo.AccountRepositoryWithTx, transactionRepo portsrepo.TransactionRepository, publisher portssvc.EventPublisher) *CurrencyService {
	return &CurrencyService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		publisher:       publisher,
	}
}

// Ensure CurrencyService implements the facade
var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

// CreateAccount opens a new account in the given currency for the user.
// At most one active account per currency is allowed.
func (s *CurrencyService) CreateAccount(ctx context.Context, userID, currencyCode string) (*domain.CurrencyAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.IsSupportedCurrency(currencyCode) {
		return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, currencyCode)
	}

	existing, err := s.accountRepo.FindActiveAccountByCurrency(ctx, userID, currencyCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for existing account", slog.String("error", err.Error()), slog.String("currency", currencyCode))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: active %s account already exists", apperrors.ErrDuplicate, currencyCode)
	}

	now := time.Now()
	accountNumber, err := utils.GenerateAccountNumber(currencyCode, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate account number: %w", err)
	}

	account := domain.CurrencyAccount{
		AccountID:     uuid.NewString(),
		UserID:        userID,
		CurrencyCode:  currencyCode,
		AccountNumber: accountNumber,
		Balance:       decimal.Zero,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		}
		return nil, err
	}

	logger.Info("Currency account created", slog.String("account_id", account.AccountID), slog.String("currency", currencyCode))
	return &account, nil
}

// ListAccounts returns the user's active accounts.
func (s *CurrencyService) ListAccounts(ctx context.Context, userID string) ([]domain.CurrencyAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, err
	}
	if accounts == nil {
		return []domain.CurrencyAccount{}, nil
	}
	return accounts, nil
}

// GetAccount returns the user's active account by ID.
func (s *CurrencyService) GetAccount(ctx context.Context, userID, accountID string) (*domain.CurrencyAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindActiveAccount(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// DeactivateAccount soft-closes an account. The ledger history stays intact;
// only zero-balance accounts can be closed.
func (s *CurrencyService) DeactivateAccount(ctx context.Context, userID, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindActiveAccount(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account %s still holds a balance", apperrors.ErrValidation, accountID)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Currency account deactivated", slog.String("account_id", accountID))
	return nil
}

// validateLegs checks types and amounts before any database work.
func validateLegs(legs []portssvc.LedgerLeg) error {
	if len(legs) == 0 {
		return fmt.Errorf("%w: no legs to process", apperrors.ErrValidation)
	}
	for _, leg := range legs {
		if !leg.Type.IsValid() {
			return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, leg.Type)
		}
		if !leg.Amount.IsPositive() {
			return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
	}
	return nil
}

// ProcessLegs applies every leg in one database transaction. All touched
// account rows are locked up front in sorted ID order, each leg's balance
// change is applied with the non-negative guard, and the ledger entry is
// written with the resulting balance snapshot. If any leg fails, nothing
// commits.
func (s *CurrencyService) ProcessLegs(ctx context.Context, userID string, legs []portssvc.LedgerLeg) ([]domain.CurrencyTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateLegs(legs); err != nil {
		return nil, err
	}

	idSet := make(map[string]struct{}, len(legs))
	for _, leg := range legs {
		idSet[leg.AccountID] = struct{}{}
	}
	accountIDs := make([]string, 0, len(idSet))
	for id := range idSet {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	now := time.Now()
	txns := make([]domain.CurrencyTransaction, 0, len(legs))

	err := s.accountRepo.WithTx(ctx, func(tx pgx.Tx) error {
		accounts, err := s.accountRepo.LockAccountsForUpdate(ctx, tx, userID, accountIDs)
		if err != nil {
			return err
		}

		// Track running balances so multiple legs against the same account
		// within one unit pre-check against the projected balance.
		running := make(map[string]decimal.Decimal, len(accounts))
		for id, acc := range accounts {
			running[id] = acc.Balance
		}

		for _, leg := range legs {
			account := accounts[leg.AccountID]
			delta := leg.Amount
			if leg.Debit {
				delta = leg.Amount.Neg()
			}

			if projected := running[leg.AccountID].Add(delta); projected.IsNegative() {
				return fmt.Errorf("%w: account %s has balance %s, needs %s",
					apperrors.ErrInsufficientBalance, leg.AccountID,
					running[leg.AccountID].String(), leg.Amount.String())
			}

			newBalance, err := s.accountRepo.ApplyBalanceChange(ctx, tx, leg.AccountID, delta, now)
			if err != nil {
				return err
			}
			running[leg.AccountID] = newBalance

			transactionID, err := utils.GenerateTransactionID(account.CurrencyCode, now)
			if err != nil {
				return fmt.Errorf("failed to generate transaction ID: %w", err)
			}

			txn := domain.CurrencyTransaction{
				TransactionID: transactionID,
				UserID:        userID,
				AccountID:     leg.AccountID,
				Type:          leg.Type,
				Amount:        leg.Amount,
				CurrencyCode:  account.CurrencyCode,
				BalanceAfter:  newBalance,
				Description:   leg.Description,
				Status:        domain.StatusCompleted,
				Metadata:      leg.Metadata,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     userID,
					LastUpdatedAt: now,
					LastUpdatedBy: userID,
				},
			}

			if err := s.transactionRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
				return err
			}
			txns = append(txns, txn)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientBalance) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Ledger unit failed", slog.String("error", err.Error()))
		}
		return nil, err
	}

	// Events are best effort; the ledger entries are already committed.
	for i := range txns {
		if pubErr := s.publisher.PublishTransactionCompleted(ctx, txns[i]); pubErr != nil {
			logger.Warn("Failed to publish transaction event",
				slog.String("transaction_id", txns[i].TransactionID),
				slog.String("error", pubErr.Error()))
		}
	}

	return txns, nil
}

// ProcessTransaction applies a single-account mutation (deposit, withdrawal,
// fee) and returns the ledger entry plus the new balance.
func (s *CurrencyService) ProcessTransaction(ctx context.Context, userID, accountID string, txnType domain.TransactionType, amount decimal.Decimal, description string, metadata domain.TransactionMetadata) (*domain.CurrencyTransaction, decimal.Decimal, error) {
	txns, err := s.ProcessLegs(ctx, userID, []portssvc.LedgerLeg{{
		AccountID:   accountID,
		Type:        txnType,
		Amount:      amount,
		Debit:       txnType.IsDebit(),
		Description: description,
		Metadata:    metadata,
	}})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return &txns[0], txns[0].BalanceAfter, nil
}

// TransferBetweenAccounts moves funds between two of the user's accounts in
// the same currency: a transfer_out leg and a transfer_in leg, atomically.
func (s *CurrencyService) TransferBetweenAccounts(ctx context.Context, userID, fromAccountID, toAccountID string, amount decimal.Decimal, description string) error {
	if fromAccountID == toAccountID {
		return fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}

	fromAccount, err := s.accountRepo.FindActiveAccount(ctx, userID, fromAccountID)
	if err != nil {
		return err
	}
	toAccount, err := s.accountRepo.FindActiveAccount(ctx, userID, toAccountID)
	if err != nil {
		return err
	}
	if fromAccount.CurrencyCode != toAccount.CurrencyCode {
		return fmt.Errorf("%w: transfer requires matching currencies, got %s and %s",
			apperrors.ErrValidation, fromAccount.CurrencyCode, toAccount.CurrencyCode)
	}

	if description == "" {
		description = fmt.Sprintf("Transfer between %s accounts", fromAccount.CurrencyCode)
	}

	_, err = s.ProcessLegs(ctx, userID, []portssvc.LedgerLeg{
		{
			AccountID:   fromAccountID,
			Type:        domain.TransferOut,
			Amount:      amount,
			Debit:       true,
			Description: description,
			Metadata:    domain.TransferOutMetadata(toAccountID),
		},
		{
			AccountID:   toAccountID,
			Type:        domain.TransferIn,
			Amount:      amount,
			Description: description,
			Metadata:    domain.TransferInMetadata(fromAccountID),
		},
	})
	return err
}

// GetAccountBalance returns the current balance with its display form.
func (s *CurrencyService) GetAccountBalance(ctx context.Context, userID, accountID string) (*dto.BalanceResponse, error) {
	account, err := s.accountRepo.FindActiveAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		AccountID:    account.AccountID,
		Balance:      account.Balance,
		CurrencyCode: account.CurrencyCode,
		Formatted:    utils.FormatBalance(account),
	}, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListTransactions returns one page of an account's ledger history, newest
// first.
func (s *CurrencyService) ListTransactions(ctx context.Context, userID, accountID string, page, limit int) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindActiveAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := (page - 1) * limit

	txns, total, err := s.transactionRepo.ListTransactionsByAccount(ctx, userID, accountID, limit, offset)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Pagination: dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// ListRecentTransactions returns the user's latest ledger entries across all
// accounts.
func (s *CurrencyService) ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.CurrencyTransaction, error) {
	if limit < 1 || limit > maxPageSize {
		limit = 10
	}
	txns, err := s.transactionRepo.ListRecentTransactionsByUser(ctx, userID, limit)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list recent transactions", slog.String("error", err.Error()))
		return nil, err
	}
	if txns == nil {
		return []domain.CurrencyTransaction{}, nil
	}
	return txns, nil
}

// SupportedCurrencies returns the static currency descriptor set.
func (s *CurrencyService) SupportedCurrencies() []domain.Currency {
	return domain.SupportedCurrencies
}
