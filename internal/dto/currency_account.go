package dto

import (
	"time"

	"github.com/helvita/ledger-backend/internal/core/domain"
	"github.com/helvita/ledger-backend/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a currency account.
type CreateAccountRequest struct {
	CurrencyCode string `json:"currency" binding:"required,supportedcurrency"`
}

// AccountResponse mirrors domain.CurrencyAccount for the API surface.
type AccountResponse struct {
	AccountID           string                  `json:"accountID"`
	CurrencyCode        string                  `json:"currencyCode"`
	AccountNumber       string                  `json:"accountNumber"`
	Balance             decimal.Decimal         `json:"balance"`
	FormattedBalance    domain.FormattedBalance `json:"formattedBalance"`
	IsActive            bool                    `json:"isActive"`
	LastTransactionDate *time.Time              `json:"lastTransactionDate,omitempty"`
	CreatedAt           time.Time               `json:"createdAt"`
}

// ToAccountResponse converts a domain.CurrencyAccount to its API shape.
func ToAccountResponse(acc *domain.CurrencyAccount) AccountResponse {
	return AccountResponse{
		AccountID:           acc.AccountID,
		CurrencyCode:        acc.CurrencyCode,
		AccountNumber:       acc.AccountNumber,
		Balance:             acc.Balance,
		FormattedBalance:    utils.FormatBalance(acc),
		IsActive:            acc.IsActive,
		LastTransactionDate: acc.LastTransactionDate,
		CreatedAt:           acc.CreatedAt,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.CurrencyAccount) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsResponse wraps the account list.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// BalanceResponse is the result of a balance query.
type BalanceResponse struct {
	AccountID    string                  `json:"accountID"`
	Balance      decimal.Decimal         `json:"balance"`
	CurrencyCode string                  `json:"currency"`
	Formatted    domain.FormattedBalance `json:"formatted"`
}

// CurrencyResponse describes one supported currency.
type CurrencyResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// SupportedCurrenciesResponse wraps the supported currency descriptors.
type SupportedCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// ToSupportedCurrenciesResponse converts the static descriptor set.
func ToSupportedCurrenciesResponse(currencies []domain.Currency) SupportedCurrenciesResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		res[i] = CurrencyResponse{Code: c.Code, Name: c.Name, Symbol: c.Symbol, Decimals: c.Decimals}
	}
	return SupportedCurrenciesResponse{Currencies: res}
}
