package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAccountNumber(t *testing.T) {
	now := time.Now()

	number, err := GenerateAccountNumber("usd", now)
	assert.NoError(t, err)

	parts := strings.Split(number, "-")
	assert.Len(t, parts, 3, "Account number should be CUR-timestamp-suffix")
	assert.Equal(t, "USD", parts[0], "Currency code should be uppercased")
	assert.Len(t, parts[2], 6, "Random suffix should be 6 characters")

	// Two numbers generated at the same instant should still differ
	other, err := GenerateAccountNumber("usd", now)
	assert.NoError(t, err)
	assert.NotEqual(t, number, other)
}

func TestGenerateTransactionID(t *testing.T) {
	now := time.Now()

	id, err := GenerateTransactionID("eur", now)
	assert.NoError(t, err)

	parts := strings.Split(id, "-")
	assert.Len(t, parts, 4, "Transaction ID should be TXN-CUR-timestamp-suffix")
	assert.Equal(t, "TXN", parts[0])
	assert.Equal(t, "EUR", parts[1], "Currency code should be uppercased")
	assert.Len(t, parts[3], 8, "Random suffix should be 8 characters")

	other, err := GenerateTransactionID("eur", now)
	assert.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, CheckPasswordHash("hunter2hunter2", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}
