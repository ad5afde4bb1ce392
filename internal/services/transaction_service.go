package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pranithapadala/FinWell/internal/amqp"
	"github.com/pranithapadala/FinWell/internal/core"
)

// TransactionStore persists ledger records.
type TransactionStore interface {
	InsertTransaction(ctx context.Context, tx core.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
}

// EventPublisher publishes transaction events for the mirror worker.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, msg *amqp.TransactionEventMessage) error
}

// TransactionDraft is the raw user input for a new record, validated by
// Create.
type TransactionDraft struct {
	Date     string
	Category string
	Type     string
	Amount   string
	Note     string
}

// TransactionService orchestrates ledger writes across SQLite, the dashboard
// cache and AMQP.
type TransactionService struct {
	store      TransactionStore
	publisher  EventPublisher
	invalidate func(core.MonthKey)
}

// NewTransactionService wires the write path. publisher may be nil when the
// broker is not configured; invalidate may be nil when no cache is in front of
// the store.
func NewTransactionService(store TransactionStore, publisher EventPublisher, invalidate func(core.MonthKey)) *TransactionService {
	return &TransactionService{
		store:      store,
		publisher:  publisher,
		invalidate: invalidate,
	}
}

// Create validates the draft, stores the record and publishes a created event.
// The publish is best-effort: the record is durable locally before the broker
// is involved.
func (s *TransactionService) Create(ctx context.Context, draft TransactionDraft) (core.Transaction, error) {
	date, err := core.ParseDate(strings.TrimSpace(draft.Date))
	if err != nil {
		return core.Transaction{}, err
	}
	txType, err := core.ParseTxType(draft.Type)
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(core.NormalizeAmountInput(draft.Amount))
	if err != nil {
		return core.Transaction{}, err
	}
	category := strings.TrimSpace(draft.Category)
	if category == "" {
		category = core.DefaultCategory
	}

	tx := core.Transaction{
		ID:       uuid.NewString(),
		Date:     date,
		Category: category,
		Type:     txType,
		Amount:   amount,
		Note:     strings.TrimSpace(draft.Note),
	}

	if err := s.store.InsertTransaction(ctx, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.invalidateMonth(tx)
	s.publish(ctx, amqp.NewCreatedMessage(tx))

	return tx, nil
}

// Delete removes a record and publishes a deleted event. A missing id surfaces
// the store's not-found error unchanged.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	tx, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.invalidateMonth(tx)
	s.publish(ctx, amqp.NewDeletedMessage(id))

	return nil
}

func (s *TransactionService) invalidateMonth(tx core.Transaction) {
	if s.invalidate == nil {
		return
	}
	if t, err := core.ParseDate(tx.Date); err == nil {
		s.invalidate(core.MonthKey(t[:7]))
	}
}

func (s *TransactionService) publish(ctx context.Context, msg *amqp.TransactionEventMessage) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping event", "event", msg.Event, "id", msg.ID)
		return
	}
	if err := s.publisher.PublishTransactionEvent(ctx, msg); err != nil {
		// Don't fail the request, the record is already durable locally.
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"event", msg.Event, "id", msg.ID, "error", err)
	}
}
