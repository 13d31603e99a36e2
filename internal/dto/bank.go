package dto

import (
	"github.com/helvita/ledger-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankTransferRequest is the body for funding from, or withdrawing to, a
// linked bank account.
type BankTransferRequest struct {
	AccountID     string          `json:"accountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	BankAccountID string          `json:"bankAccountID"`
	Description   string          `json:"description"`
}

// BankTransferResult reports the outcome of a bank-backed funding or
// withdrawal operation.
type BankTransferResult struct {
	Transaction TransactionResponse `json:"transaction"`
	NewBalance  decimal.Decimal     `json:"newBalance"`
	BankAccount *domain.BankAccount `json:"bankAccount,omitempty"`
}

// LinkBankRequest carries the access token obtained from the bank link flow.
type LinkBankRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
}

// BankInfoResponse describes the user's linked bank accounts.
type BankInfoResponse struct {
	Connected bool                 `json:"connected"`
	Accounts  []domain.BankAccount `json:"accounts"`
}
