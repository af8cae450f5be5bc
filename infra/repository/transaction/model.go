package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a persisted transfer request.
type Transaction struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primaryKey"`
	SenderID              uuid.UUID           `gorm:"type:uuid;not null;index"`
	ReceiverID            uuid.UUID           `gorm:"type:uuid;not null;index"`
	SenderAccountNumber   string              `gorm:"type:varchar(16);not null"`
	ReceiverAccountNumber string              `gorm:"type:varchar(16);not null"`
	Amount                decimal.Decimal     `gorm:"type:numeric(20,2);not null"`
	Currency              string              `gorm:"type:varchar(3);not null"`
	TargetCurrency        string              `gorm:"type:varchar(3)"`
	ConversionRate        decimal.NullDecimal `gorm:"type:numeric(20,8)"`
	ConvertedAmount       decimal.NullDecimal `gorm:"type:numeric(20,2)"`
	SwiftCode             string              `gorm:"type:varchar(11);not null"`
	PaymentMethod         string              `gorm:"type:varchar(32);not null"`
	Status                string              `gorm:"type:varchar(16);not null;index"`
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Sender   *Party `gorm:"foreignKey:SenderID"`
	Receiver *Party `gorm:"foreignKey:ReceiverID"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// Party is the subset of a users row joined onto a transaction.
type Party struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountNumber string
	FullName      string
}

// TableName maps Party onto the users table.
func (Party) TableName() string {
	return "users"
}
