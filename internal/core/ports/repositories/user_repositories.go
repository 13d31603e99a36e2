package repositories

import (
	"context"
	"time"

	"github.com/helvita/ledger-backend/internal/core/domain"
)

// UserRepository persists users and their bank-link credential.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateBankAccessToken(ctx context.Context, userID, token string, now time.Time) error
}
