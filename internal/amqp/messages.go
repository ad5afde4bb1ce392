package amqp

import (
	"encoding/json"
	"time"

	"github.com/pranithapadala/FinWell/internal/core"
)

// Event kinds carried on the transaction event queue.
const (
	EventTransactionCreated = "transaction.created"
	EventTransactionDeleted = "transaction.deleted"
)

// TransactionEventMessage notifies the mirror worker about a ledger change.
// Created events carry the full record so the worker can mirror without a
// read-back; deleted events only need the id, the worker locates the mirrored
// row by it.
type TransactionEventMessage struct {
	Event       string    `json:"event"`
	ID          string    `json:"id"`
	Date        string    `json:"date,omitempty"`
	Category    string    `json:"category,omitempty"`
	Type        string    `json:"type,omitempty"`
	AmountCents int64     `json:"amount_cents,omitempty"`
	Note        string    `json:"note,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewCreatedMessage builds the event for a freshly stored transaction.
func NewCreatedMessage(tx core.Transaction) *TransactionEventMessage {
	return &TransactionEventMessage{
		Event:       EventTransactionCreated,
		ID:          tx.ID,
		Date:        tx.Date,
		Category:    tx.Category,
		Type:        string(tx.Type),
		AmountCents: tx.Amount.Cents,
		Note:        tx.Note,
		Timestamp:   time.Now(),
	}
}

// NewDeletedMessage builds the event for a removed transaction.
func NewDeletedMessage(id string) *TransactionEventMessage {
	return &TransactionEventMessage{
		Event:     EventTransactionDeleted,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// Transaction reconstructs the record carried by a created event.
func (m *TransactionEventMessage) Transaction() core.Transaction {
	return core.Transaction{
		ID:       m.ID,
		Date:     m.Date,
		Category: m.Category,
		Type:     core.TxType(m.Type),
		Amount:   core.Money{Cents: m.AmountCents},
		Note:     m.Note,
	}
}

func (m *TransactionEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionEventMessageFromJSON(data []byte) (*TransactionEventMessage, error) {
	var msg TransactionEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
