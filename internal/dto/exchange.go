package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRequest is the body for converting funds between two accounts
// held in different currencies.
type ExchangeRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description"`
}

// ExchangeResult reports the outcome of a currency exchange.
type ExchangeResult struct {
	FromCurrency    string                `json:"fromCurrency"`
	ToCurrency      string                `json:"toCurrency"`
	OriginalAmount  decimal.Decimal       `json:"originalAmount"`
	ConvertedAmount decimal.Decimal       `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal       `json:"exchangeRate"`
	Fee             decimal.Decimal       `json:"fee"`
	Transactions    []TransactionResponse `json:"transactions"`
}

// ConversionResult is a rate quote applied to a concrete amount.
type ConversionResult struct {
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	Rate            decimal.Decimal `json:"rate"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	Fee             decimal.Decimal `json:"fee"`
	NetAmount       decimal.Decimal `json:"netAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
}

// RateQuoteParams are the query parameters for a rate quote.
type RateQuoteParams struct {
	From   string          `form:"from" binding:"required,supportedcurrency"`
	To     string          `form:"to" binding:"required,supportedcurrency"`
	Amount decimal.Decimal `form:"amount"`
}

// RateQuoteResponse is the response for an exchange rate lookup.
type RateQuoteResponse struct {
	FromCurrency    string           `json:"fromCurrency"`
	ToCurrency      string           `json:"toCurrency"`
	Rate            decimal.Decimal  `json:"rate"`
	FeePercentage   decimal.Decimal  `json:"feePercentage"`
	OriginalAmount  *decimal.Decimal `json:"originalAmount,omitempty"`
	Fee             *decimal.Decimal `json:"fee,omitempty"`
	NetAmount       *decimal.Decimal `json:"netAmount,omitempty"`
	ConvertedAmount *decimal.Decimal `json:"convertedAmount,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
}
