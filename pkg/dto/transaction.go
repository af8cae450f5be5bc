package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyRead is the public identity of a transfer participant.
type PartyRead struct {
	ID            uuid.UUID `json:"id"`
	AccountNumber string    `json:"accountNumber"`
	FullName      string    `json:"fullName"`
}

// TransactionRead is a read-optimized DTO for transaction queries and API
// responses. Sender and Receiver are only populated by joined queries.
type TransactionRead struct {
	ID                    uuid.UUID           `json:"id"`
	SenderID              uuid.UUID           `json:"senderId"`
	ReceiverID            uuid.UUID           `json:"receiverId"`
	SenderAccountNumber   string              `json:"fromAccountNumber"`
	ReceiverAccountNumber string              `json:"toAccountNumber"`
	Amount                decimal.Decimal     `json:"amount"`
	Currency              string              `json:"currency"`
	TargetCurrency        string              `json:"targetCurrency,omitempty"`
	ConversionRate        decimal.NullDecimal `json:"conversionRate"`
	ConvertedAmount       decimal.NullDecimal `json:"convertedAmount"`
	SwiftCode             string              `json:"swiftCode"`
	PaymentMethod         string              `json:"paymentMethod"`
	Status                string              `json:"status"`
	Sender                *PartyRead          `json:"sender,omitempty"`
	Receiver              *PartyRead          `json:"receiver,omitempty"`
	CreatedAt             time.Time           `json:"createdAt"`
	UpdatedAt             time.Time           `json:"updatedAt"`
}

// TransactionCreate is a DTO for persisting a new transaction.
type TransactionCreate struct {
	ID                    uuid.UUID
	SenderID              uuid.UUID
	ReceiverID            uuid.UUID
	SenderAccountNumber   string
	ReceiverAccountNumber string
	Amount                decimal.Decimal
	Currency              string
	TargetCurrency        string
	ConversionRate        decimal.NullDecimal
	ConvertedAmount       decimal.NullDecimal
	SwiftCode             string
	PaymentMethod         string
	Status                string
	CreatedAt             time.Time
}
