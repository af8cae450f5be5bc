package events

import (
	"time"

	"github.com/amirasaad/payportal/pkg/domain/transaction"
	"github.com/google/uuid"
)

// EventType represents the type of an event in the system.
type EventType string

const (
	EventTypeTransactionCreated   EventType = "Transaction.Created"
	EventTypeTransactionVerified  EventType = "Transaction.Verified"
	EventTypeTransactionSubmitted EventType = "Transaction.Submitted"
)

func (t EventType) String() string { return string(t) }

// TransactionEvent carries the identity of a transaction whose status
// changed.
type TransactionEvent struct {
	EventType     EventType `json:"type"`
	TransactionID uuid.UUID `json:"transactionId"`
	SenderID      uuid.UUID `json:"senderId"`
	ReceiverID    uuid.UUID `json:"receiverId"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	// Actor is the staff member who acted, empty on creation.
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e *TransactionEvent) Type() string { return string(e.EventType) }

// NewTransactionEvent snapshots tx into an event of the given type.
func NewTransactionEvent(eventType EventType, tx *transaction.Transaction, actor string) *TransactionEvent {
	return &TransactionEvent{
		EventType:     eventType,
		TransactionID: tx.ID,
		SenderID:      tx.SenderID,
		ReceiverID:    tx.ReceiverID,
		Amount:        tx.Amount.StringFixed(transaction.AmountScale),
		Currency:      tx.Currency.String(),
		Status:        string(tx.Status),
		Actor:         actor,
		OccurredAt:    time.Now().UTC(),
	}
}
