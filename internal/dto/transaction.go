package dto

import (
	"time"

	"github.com/helvita/ledger-backend/internal/core/domain"
	"github.com/helvita/ledger-backend/internal/utils"
	"github.com/shopspring/decimal"
)

// MutationRequest is the body for deposit/withdraw style operations.
type MutationRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// TransactionResponse mirrors domain.CurrencyTransaction for the API surface.
type TransactionResponse struct {
	TransactionID   string                     `json:"transactionID"`
	AccountID       string                     `json:"accountID"`
	Type            domain.TransactionType     `json:"type"`
	Amount          decimal.Decimal            `json:"amount"`
	CurrencyCode    string                     `json:"currencyCode"`
	BalanceAfter    decimal.Decimal            `json:"balanceAfter"`
	Description     string                     `json:"description"`
	Status          domain.TransactionStatus   `json:"status"`
	Metadata        domain.TransactionMetadata `json:"metadata"`
	FormattedAmount domain.FormattedAmount     `json:"formattedAmount"`
	CreatedAt       time.Time                  `json:"createdAt"`
}

// ToTransactionResponse converts a ledger entry to its API shape.
func ToTransactionResponse(txn *domain.CurrencyTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		Type:            txn.Type,
		Amount:          txn.Amount,
		CurrencyCode:    txn.CurrencyCode,
		BalanceAfter:    txn.BalanceAfter,
		Description:     txn.Description,
		Status:          txn.Status,
		Metadata:        txn.Metadata,
		FormattedAmount: utils.FormatAmount(txn),
		CreatedAt:       txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of ledger entries.
func ToTransactionResponses(txns []domain.CurrencyTransaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// MutationResponse is returned from deposit/withdraw operations.
type MutationResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	NewBalance  decimal.Decimal     `json:"newBalance"`
}

// ListTransactionsParams are the query parameters for the ledger history.
type ListTransactionsParams struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

// Pagination describes a page of results.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ListTransactionsResponse is a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   Pagination            `json:"pagination"`
}
