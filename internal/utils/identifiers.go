package utils

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// randomSuffix returns n cryptographically random characters from the
// uppercase base36 alphabet.
func randomSuffix(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i := range b {
		b[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return string(b), nil
}

// GenerateAccountNumber builds a human-readable unique account number of the
// form <CUR>-<unix-ms>-<RANDOM6>, e.g. "USD-1714501123456-8FQ2XN".
func GenerateAccountNumber(currencyCode string, now time.Time) (string, error) {
	suffix, err := randomSuffix(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%s", strings.ToUpper(currencyCode), now.UnixMilli(), suffix), nil
}

// GenerateTransactionID builds a human-readable unique transaction ID of the
// form TXN-<CUR>-<base36 unix-ms>-<RANDOM8>, e.g. "TXN-USD-LVCH3K2A-8F0Q2XNV".
func GenerateTransactionID(currencyCode string, now time.Time) (string, error) {
	suffix, err := randomSuffix(8)
	if err != nil {
		return "", err
	}
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return fmt.Sprintf("TXN-%s-%s-%s", strings.ToUpper(currencyCode), ts, suffix), nil
}
