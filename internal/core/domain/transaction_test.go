package domain_test

import (
	"testing"

	"github.com/helvita/ledger-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionType_IsDebit(t *testing.T) {
	tests := []struct {
		name    string
		txnType domain.TransactionType
		want    bool
	}{
		{name: "deposit is a credit", txnType: domain.Deposit, want: false},
		{name: "withdrawal is a debit", txnType: domain.Withdrawal, want: true},
		{name: "transfer_in is a credit", txnType: domain.TransferIn, want: false},
		{name: "transfer_out is a debit", txnType: domain.TransferOut, want: true},
		{name: "exchange credits the target account", txnType: domain.Exchange, want: false},
		{name: "fee is a debit", txnType: domain.Fee, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.txnType.IsDebit())
		})
	}
}

func TestTransactionType_IsValid(t *testing.T) {
	for _, valid := range []domain.TransactionType{
		domain.Deposit, domain.Withdrawal, domain.TransferIn,
		domain.TransferOut, domain.Exchange, domain.Fee,
	} {
		assert.True(t, valid.IsValid(), "%s should be valid", valid)
	}

	assert.False(t, domain.TransactionType("chargeback").IsValid())
	assert.False(t, domain.TransactionType("").IsValid())
}

func TestExchangeMetadataConstructors(t *testing.T) {
	rate := decimal.RequireFromString("0.90")
	original := decimal.NewFromInt(100)
	converted := decimal.RequireFromString("89.55")
	fee := decimal.RequireFromString("0.5")

	out := domain.ExchangeOutMetadata("EUR", rate, converted, fee)
	assert.Equal(t, "EUR", out.ToCurrency)
	assert.Empty(t, out.FromCurrency)
	assert.True(t, out.ExchangeRate.Equal(rate))
	assert.True(t, out.ConvertedAmount.Equal(converted))
	assert.True(t, out.ExchangeFee.Equal(fee))
	assert.Nil(t, out.OriginalAmount)

	in := domain.ExchangeInMetadata("USD", rate, original, fee)
	assert.Equal(t, "USD", in.FromCurrency)
	assert.Empty(t, in.ToCurrency)
	assert.True(t, in.OriginalAmount.Equal(original))
	assert.Nil(t, in.ConvertedAmount)
}

func TestTransferMetadataConstructors(t *testing.T) {
	out := domain.TransferOutMetadata("acc-to")
	assert.Equal(t, "acc-to", out.ToAccountID)
	assert.Empty(t, out.FromAccountID)

	in := domain.TransferInMetadata("acc-from")
	assert.Equal(t, "acc-from", in.FromAccountID)
	assert.Empty(t, in.ToAccountID)
}

func TestBankMetadataConstructors(t *testing.T) {
	deposit := domain.BankDepositMetadata("bank-1", "Demo Checking")
	assert.Equal(t, "bank", deposit.Source)
	assert.Equal(t, "bank-1", deposit.BankAccountID)
	assert.Equal(t, "Demo Checking", deposit.BankName)

	withdrawal := domain.BankWithdrawalMetadata()
	assert.Equal(t, "bank", withdrawal.Destination)
	assert.Empty(t, withdrawal.Source)
}

func TestCurrencyByCode(t *testing.T) {
	usd, ok := domain.CurrencyByCode("USD")
	assert.True(t, ok)
	assert.Equal(t, "$", usd.Symbol)
	assert.Equal(t, 2, usd.Decimals)

	jpy, ok := domain.CurrencyByCode("JPY")
	assert.True(t, ok)
	assert.Equal(t, 0, jpy.Decimals)

	_, ok = domain.CurrencyByCode("XAU")
	assert.False(t, ok)
}
