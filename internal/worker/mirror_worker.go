package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pranithapadala/FinWell/internal/amqp"
	"github.com/pranithapadala/FinWell/internal/core"
	"github.com/pranithapadala/FinWell/internal/mirror"
)

// TransactionGetter reads one ledger record by id.
type TransactionGetter interface {
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
}

// MirrorWorker applies transaction events to the spreadsheet mirror.
type MirrorWorker struct {
	storage TransactionGetter
	mirror  mirror.RowMirror
}

func NewMirrorWorker(storage TransactionGetter, m mirror.RowMirror) *MirrorWorker {
	return &MirrorWorker{
		storage: storage,
		mirror:  m,
	}
}

// HandleTransactionEvent processes one event. A returned error requeues the
// delivery, so transient mirror failures are retried.
func (w *MirrorWorker) HandleTransactionEvent(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	switch msg.Event {
	case amqp.EventTransactionCreated:
		return w.handleCreated(ctx, msg)
	case amqp.EventTransactionDeleted:
		return w.handleDeleted(ctx, msg)
	default:
		// Unknown events are dropped, not requeued: a newer producer may
		// emit kinds this worker does not know.
		slog.WarnContext(ctx, "Dropping unknown transaction event", "event", msg.Event, "id", msg.ID)
		return nil
	}
}

func (w *MirrorWorker) handleCreated(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	tx := msg.Transaction()
	if tx.Date == "" {
		// Older producers published id-only events; read the record back.
		stored, err := w.storage.GetTransaction(ctx, msg.ID)
		if err != nil {
			return fmt.Errorf("get transaction from storage: %w", err)
		}
		tx = stored
	}

	if err := w.mirror.Append(ctx, tx); err != nil {
		return fmt.Errorf("mirror transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction mirrored",
		"id", tx.ID,
		"date", tx.Date,
		"amount_cents", tx.Amount.Cents)

	return nil
}

func (w *MirrorWorker) handleDeleted(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	if err := w.mirror.Remove(ctx, msg.ID); err != nil {
		return fmt.Errorf("remove mirrored transaction: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored transaction removed", "id", msg.ID)
	return nil
}
