package domain

import "github.com/shopspring/decimal"

// TransactionType classifies a ledger entry. Debit types reduce the account
// balance, credit types increase it.
type TransactionType string

const (
	Deposit     TransactionType = "deposit"
	Withdrawal  TransactionType = "withdrawal"
	TransferIn  TransactionType = "transfer_in"
	TransferOut TransactionType = "transfer_out"
	Exchange    TransactionType = "exchange"
	Fee         TransactionType = "fee"
)

// IsDebit reports whether the type belongs to the debit set.
func (t TransactionType) IsDebit() bool {
	switch t {
	case Withdrawal, TransferOut, Fee:
		return true
	}
	return false
}

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case Deposit, Withdrawal, TransferIn, TransferOut, Exchange, Fee:
		return true
	}
	return false
}

// TransactionStatus is the lifecycle state of a ledger entry.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
)

// TransactionMetadata carries the per-type context of a ledger entry.
// Go has no tagged unions, so each transaction type populates only its own
// fields and leaves the rest zero; the constructors below enforce that.
// Stored as jsonb.
type TransactionMetadata struct {
	// Exchange legs
	FromCurrency    string           `json:"fromCurrency,omitempty"`
	ToCurrency      string           `json:"toCurrency,omitempty"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate,omitempty"`
	OriginalAmount  *decimal.Decimal `json:"originalAmount,omitempty"`
	ConvertedAmount *decimal.Decimal `json:"convertedAmount,omitempty"`
	ExchangeFee     *decimal.Decimal `json:"fee,omitempty"`

	// Internal transfers
	FromAccountID string `json:"fromAccount,omitempty"`
	ToAccountID   string `json:"toAccount,omitempty"`

	// Bank-backed operations
	Source        string `json:"source,omitempty"`      // e.g. "bank"
	Destination   string `json:"destination,omitempty"` // e.g. "bank"
	BankAccountID string `json:"bankAccountId,omitempty"`
	BankName      string `json:"bankName,omitempty"`

	// External correlation
	ExternalReference string `json:"externalTransactionId,omitempty"`
}

// TransferOutMetadata tags the debit leg of an internal transfer.
func TransferOutMetadata(toAccountID string) TransactionMetadata {
	return TransactionMetadata{ToAccountID: toAccountID}
}

// TransferInMetadata tags the credit leg of an internal transfer.
func TransferInMetadata(fromAccountID string) TransactionMetadata {
	return TransactionMetadata{FromAccountID: fromAccountID}
}

// ExchangeOutMetadata tags the debit leg of a currency exchange.
func ExchangeOutMetadata(toCurrency string, rate, convertedAmount, fee decimal.Decimal) TransactionMetadata {
	return TransactionMetadata{
		ToCurrency:      toCurrency,
		ExchangeRate:    &rate,
		ConvertedAmount: &convertedAmount,
		ExchangeFee:     &fee,
	}
}

// ExchangeInMetadata tags the credit leg of a currency exchange.
func ExchangeInMetadata(fromCurrency string, rate, originalAmount, fee decimal.Decimal) TransactionMetadata {
	return TransactionMetadata{
		FromCurrency:   fromCurrency,
		ExchangeRate:   &rate,
		OriginalAmount: &originalAmount,
		ExchangeFee:    &fee,
	}
}

// BankDepositMetadata tags a deposit funded from a linked bank account.
func BankDepositMetadata(bankAccountID, bankName string) TransactionMetadata {
	return TransactionMetadata{Source: "bank", BankAccountID: bankAccountID, BankName: bankName}
}

// BankWithdrawalMetadata tags a withdrawal paid out to the linked bank.
func BankWithdrawalMetadata() TransactionMetadata {
	return TransactionMetadata{Destination: "bank"}
}

// CurrencyTransaction is one immutable ledger entry documenting a single
// balance mutation. Once created with status completed it is never mutated;
// BalanceAfter equals the account balance immediately following this entry.
type CurrencyTransaction struct {
	TransactionID string              `json:"transactionID"` // e.g. TXN-USD-MB3K2C1A-8F0Q2XNV
	UserID        string              `json:"userID"`
	AccountID     string              `json:"accountID"`
	Type          TransactionType     `json:"type"`
	Amount        decimal.Decimal     `json:"amount"` // positive magnitude
	CurrencyCode  string              `json:"currencyCode"`
	BalanceAfter  decimal.Decimal     `json:"balanceAfter"`
	Description   string              `json:"description"`
	Status        TransactionStatus   `json:"status"`
	Metadata      TransactionMetadata `json:"metadata"`
	AuditFields
}

// FormattedAmount is a display representation of a transaction amount,
// signed according to the debit/credit direction.
type FormattedAmount struct {
	Amount    string `json:"amount"`
	Symbol    string `json:"symbol"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}
