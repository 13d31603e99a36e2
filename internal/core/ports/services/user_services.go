package services

import (
	"context"

	"github.com/helvita/ledger-backend/internal/core/domain"
	"github.com/helvita/ledger-backend/internal/dto"
)

// UserSvcFacade covers the minimal user lifecycle the ledger needs:
// registration, credential checks for token issuance, and lookups.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
