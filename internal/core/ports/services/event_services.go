package services

import (
	"context"

	"github.com/helvita/ledger-backend/internal/core/domain"
)

// EventPublisher emits ledger events to downstream consumers. Publishing is
// best effort and happens after the owning database transaction commits.
type EventPublisher interface {
	PublishTransactionCompleted(ctx context.Context, txn domain.CurrencyTransaction) error
	Close() error
}
