package transaction

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound is returned when no transaction matches an id.
	ErrTransactionNotFound = fmt.Errorf("transaction %w", domain.ErrNotFound)

	ErrInvalidAmount        = fmt.Errorf("%w: amount must be positive with at most %d decimal places", domain.ErrValidation, AmountScale)
	ErrInvalidCurrency      = fmt.Errorf("%w: unsupported currency", domain.ErrValidation)
	ErrInvalidSwiftCode     = fmt.Errorf("%w: swift code must be 8-11 uppercase letters or digits", domain.ErrValidation)
	ErrInvalidPaymentMethod = fmt.Errorf("%w: unsupported payment method", domain.ErrValidation)
	ErrSelfTransfer         = fmt.Errorf("%w: sender and receiver accounts must differ", domain.ErrValidation)
	ErrInvalidRate          = fmt.Errorf("%w: conversion rate must be positive", domain.ErrValidation)

	// ErrInvalidTransition is returned when a status change is not allowed
	// from the current status.
	ErrInvalidTransition = fmt.Errorf("transaction %w", domain.ErrInvalidState)
)

// AmountScale is the number of decimal places accepted on amounts.
const AmountScale = 2

// RateScale is the number of decimal places stored for a conversion rate.
const RateScale = 8

var swiftPattern = regexp.MustCompile(`^[A-Z0-9]{8,11}$`)

// Transaction is a single transfer request between two customer accounts.
// Amount and the conversion snapshot are frozen at creation.
type Transaction struct {
	ID                    uuid.UUID
	SenderID              uuid.UUID
	ReceiverID            uuid.UUID
	SenderAccountNumber   string
	ReceiverAccountNumber string
	Amount                decimal.Decimal
	Currency              Currency
	TargetCurrency        Currency
	ConversionRate        decimal.NullDecimal
	ConvertedAmount       decimal.NullDecimal
	SwiftCode             string
	PaymentMethod         PaymentMethod
	Status                Status
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Party identifies one side of a transfer.
type Party struct {
	ID            uuid.UUID
	AccountNumber string
}

// Details carries the customer-supplied fields of a new transfer.
type Details struct {
	Amount         decimal.Decimal
	Currency       Currency
	TargetCurrency Currency
	SwiftCode      string
	PaymentMethod  PaymentMethod
}

// Normalize trims and upper-cases the free-text fields.
func (d Details) Normalize() Details {
	d.Currency = Currency(strings.ToUpper(strings.TrimSpace(string(d.Currency))))
	d.TargetCurrency = Currency(strings.ToUpper(strings.TrimSpace(string(d.TargetCurrency))))
	d.SwiftCode = strings.ToUpper(strings.TrimSpace(d.SwiftCode))
	d.PaymentMethod = PaymentMethod(strings.ToLower(strings.TrimSpace(string(d.PaymentMethod))))
	return d
}

// Validate checks the shape of the transfer fields. It never touches a
// store.
func (d Details) Validate() error {
	if err := ValidateAmount(d.Amount); err != nil {
		return err
	}
	if !d.Currency.IsValid() {
		return ErrInvalidCurrency
	}
	if d.TargetCurrency != "" && !d.TargetCurrency.IsValid() {
		return ErrInvalidCurrency
	}
	if !swiftPattern.MatchString(d.SwiftCode) {
		return ErrInvalidSwiftCode
	}
	if !d.PaymentMethod.IsValid() {
		return ErrInvalidPaymentMethod
	}
	return nil
}

// NeedsConversion reports whether a target currency different from the
// source currency was requested.
func (d Details) NeedsConversion() bool {
	return d.TargetCurrency != "" && d.TargetCurrency != d.Currency
}

// New creates a pending transaction between two resolved parties.
func New(sender, receiver Party, details Details) (*Transaction, error) {
	details = details.Normalize()
	if err := details.Validate(); err != nil {
		return nil, err
	}
	if sender.AccountNumber == receiver.AccountNumber ||
		(sender.ID != uuid.Nil && sender.ID == receiver.ID) {
		return nil, ErrSelfTransfer
	}
	now := time.Now().UTC()
	return &Transaction{
		ID:                    uuid.New(),
		SenderID:              sender.ID,
		ReceiverID:            receiver.ID,
		SenderAccountNumber:   sender.AccountNumber,
		ReceiverAccountNumber: receiver.AccountNumber,
		Amount:                details.Amount,
		Currency:              details.Currency,
		TargetCurrency:        details.TargetCurrency,
		SwiftCode:             details.SwiftCode,
		PaymentMethod:         details.PaymentMethod,
		Status:                StatusPending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// ApplyConversion freezes the rate rounded to RateScale and the converted
// amount, computed from that stored rate, rounded to AmountScale.
func (t *Transaction) ApplyConversion(rate decimal.Decimal) error {
	rate = rate.Round(RateScale)
	if !rate.IsPositive() {
		return ErrInvalidRate
	}
	t.ConversionRate = decimal.NewNullDecimal(rate)
	t.ConvertedAmount = decimal.NewNullDecimal(t.Amount.Mul(rate).Round(AmountScale))
	return nil
}

// ValidateAmount rejects zero, negative and over-precise amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return ErrInvalidAmount
	}
	return nil
}

// Verify moves a pending transaction to verified.
func (t *Transaction) Verify() error {
	return t.transition(StatusVerified)
}

// Submit moves a verified transaction to completed.
func (t *Transaction) Submit() error {
	return t.transition(StatusCompleted)
}

// Fail marks a non-terminal transaction as failed.
func (t *Transaction) Fail() error {
	return t.transition(StatusFailed)
}

func (t *Transaction) transition(to Status) error {
	if !t.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, t.Status, to)
	}
	t.Status = to
	t.UpdatedAt = time.Now().UTC()
	return nil
}
