package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/helvita/ledger-backend/internal/core/domain"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/segmentio/kafka-go"
)

// transactionEvent is the wire shape of a completed-transaction event.
type transactionEvent struct {
	TransactionID string                     `json:"transactionID"`
	UserID        string                     `json:"userID"`
	AccountID     string                     `json:"accountID"`
	Type          domain.TransactionType     `json:"type"`
	Amount        string                     `json:"amount"`
	CurrencyCode  string                     `json:"currencyCode"`
	Status        domain.TransactionStatus   `json:"status"`
	Metadata      domain.TransactionMetadata `json:"metadata"`
	OccurredAt    time.Time                  `json:"occurredAt"`
}

// Publisher writes completed-transaction events to Kafka.
type Publisher struct {
	writer *kafka.Writer
}

// Ensure Publisher implements the EventPublisher port
var _ portssvc.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a Kafka-backed event publisher.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishTransactionCompleted emits one event per committed ledger entry,
// keyed by account so per-account ordering is preserved.
func (p *Publisher) PublishTransactionCompleted(ctx context.Context, txn domain.CurrencyTransaction) error {
	event := transactionEvent{
		TransactionID: txn.TransactionID,
		UserID:        txn.UserID,
		AccountID:     txn.AccountID,
		Type:          txn.Type,
		Amount:        txn.Amount.String(),
		CurrencyCode:  txn.CurrencyCode,
		Status:        txn.Status,
		Metadata:      txn.Metadata,
		OccurredAt:    txn.CreatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(txn.AccountID),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("failed to publish transaction event %s: %w", txn.TransactionID, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher discards events. Used when no brokers are configured.
type NoopPublisher struct{}

var _ portssvc.EventPublisher = (*NoopPublisher)(nil)

func (NoopPublisher) PublishTransactionCompleted(ctx context.Context, txn domain.CurrencyTransaction) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
