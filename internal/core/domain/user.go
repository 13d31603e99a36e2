package domain

import "github.com/shopspring/decimal"

// User owns currency accounts and ledger entries. BankAccessToken is the
// opaque credential for the external bank-link provider; a non-empty token
// means the user has a linked bank connection.
type User struct {
	UserID          string `json:"userID"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	PasswordHash    string `json:"-"`
	BankAccessToken string `json:"-"`
	AuditFields
}

// HasLinkedBank reports whether the user has a linked bank connection.
func (u *User) HasLinkedBank() bool {
	return u.BankAccessToken != ""
}

// BankAccount is a summary of one account at the external bank-link
// provider. Mask is the last digits of the external account number.
type BankAccount struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Type    string           `json:"type"`
	Subtype string           `json:"subtype,omitempty"`
	Mask    string           `json:"mask"`
	Balance *decimal.Decimal `json:"balance,omitempty"`
}
