package models

// User is the database shape of a user row.
type User struct {
	UserID          string `db:"user_id"`
	Email           string `db:"email"`
	Name            string `db:"name"`
	PasswordHash    string `db:"password_hash"`
	BankAccessToken string `db:"bank_access_token"` // Nullable, empty when no bank is linked
	AuditFields
}
