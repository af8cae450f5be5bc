package transaction_test

import (
	"testing"

	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/amirasaad/payportal/pkg/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parties() (transaction.Party, transaction.Party) {
	return transaction.Party{ID: uuid.New(), AccountNumber: "1111222233"},
		transaction.Party{ID: uuid.New(), AccountNumber: "4444555566"}
}

func validDetails() transaction.Details {
	return transaction.Details{
		Amount:        decimal.RequireFromString("150.25"),
		Currency:      "usd",
		SwiftCode:     "abcdzaj0",
		PaymentMethod: "Bank_Transfer",
	}
}

func TestNew(t *testing.T) {
	sender, receiver := parties()
	tx, err := transaction.New(sender, receiver, validDetails())
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusPending, tx.Status)
	assert.Equal(t, transaction.USD, tx.Currency)
	assert.Equal(t, "ABCDZAJ0", tx.SwiftCode)
	assert.Equal(t, transaction.PaymentMethodBankTransfer, tx.PaymentMethod)
	assert.Equal(t, sender.ID, tx.SenderID)
	assert.Equal(t, receiver.AccountNumber, tx.ReceiverAccountNumber)
	assert.False(t, tx.ConversionRate.Valid)
	assert.NotEqual(t, uuid.Nil, tx.ID)
}

func TestNew_Validation(t *testing.T) {
	sender, receiver := parties()
	tests := []struct {
		name   string
		mutate func(*transaction.Details)
		want   error
	}{
		{"zero amount", func(d *transaction.Details) { d.Amount = decimal.Zero }, transaction.ErrInvalidAmount},
		{"negative amount", func(d *transaction.Details) { d.Amount = decimal.RequireFromString("-5") }, transaction.ErrInvalidAmount},
		{"three decimals", func(d *transaction.Details) { d.Amount = decimal.RequireFromString("10.001") }, transaction.ErrInvalidAmount},
		{"unknown currency", func(d *transaction.Details) { d.Currency = "BTC" }, transaction.ErrInvalidCurrency},
		{"unknown target currency", func(d *transaction.Details) { d.TargetCurrency = "XYZ" }, transaction.ErrInvalidCurrency},
		{"short swift", func(d *transaction.Details) { d.SwiftCode = "ABC12" }, transaction.ErrInvalidSwiftCode},
		{"long swift", func(d *transaction.Details) { d.SwiftCode = "ABCDEFGH1234" }, transaction.ErrInvalidSwiftCode},
		{"swift symbols", func(d *transaction.Details) { d.SwiftCode = "ABCD-ZAJ0" }, transaction.ErrInvalidSwiftCode},
		{"unknown method", func(d *transaction.Details) { d.PaymentMethod = "cash" }, transaction.ErrInvalidPaymentMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)
			tx, err := transaction.New(sender, receiver, d)
			assert.Nil(t, tx)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestNew_TwoDecimalsAccepted(t *testing.T) {
	sender, receiver := parties()
	d := validDetails()
	d.Amount = decimal.RequireFromString("0.01")
	_, err := transaction.New(sender, receiver, d)
	assert.NoError(t, err)
}

func TestNew_SelfTransfer(t *testing.T) {
	sender, _ := parties()
	_, err := transaction.New(sender, sender, validDetails())
	assert.ErrorIs(t, err, transaction.ErrSelfTransfer)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApplyConversion(t *testing.T) {
	sender, receiver := parties()
	d := validDetails()
	d.Amount = decimal.RequireFromString("100")
	d.TargetCurrency = "EUR"
	require.True(t, d.Normalize().NeedsConversion())

	tx, err := transaction.New(sender, receiver, d)
	require.NoError(t, err)
	require.NoError(t, tx.ApplyConversion(decimal.RequireFromString("0.92345")))

	assert.True(t, tx.ConvertedAmount.Valid)
	assert.Equal(t, "92.35", tx.ConvertedAmount.Decimal.StringFixed(2))
	assert.Equal(t, "0.92345", tx.ConversionRate.Decimal.String())
	assert.Equal(t, "100", tx.Amount.String())

	assert.ErrorIs(t, tx.ApplyConversion(decimal.Zero), transaction.ErrInvalidRate)
}

func TestApplyConversion_UsesStoredRate(t *testing.T) {
	sender, receiver := parties()
	d := validDetails()
	d.Amount = decimal.RequireFromString("10000000")
	d.TargetCurrency = "EUR"
	tx, err := transaction.New(sender, receiver, d)
	require.NoError(t, err)

	require.NoError(t, tx.ApplyConversion(decimal.RequireFromString("0.1234567849")))
	assert.Equal(t, "0.12345678", tx.ConversionRate.Decimal.String())
	assert.Equal(t, "1234567.80", tx.ConvertedAmount.Decimal.StringFixed(2))
	assert.True(t, tx.ConvertedAmount.Decimal.Equal(
		tx.Amount.Mul(tx.ConversionRate.Decimal).Round(transaction.AmountScale),
	))

	assert.ErrorIs(t, tx.ApplyConversion(decimal.RequireFromString("0.000000001")), transaction.ErrInvalidRate)
}

func TestNeedsConversion_SameCurrency(t *testing.T) {
	d := validDetails()
	d.TargetCurrency = "usd"
	assert.False(t, d.Normalize().NeedsConversion())
}

func TestLifecycle(t *testing.T) {
	sender, receiver := parties()
	tx, err := transaction.New(sender, receiver, validDetails())
	require.NoError(t, err)

	assert.ErrorIs(t, tx.Submit(), domain.ErrInvalidState)
	require.NoError(t, tx.Verify())
	assert.Equal(t, transaction.StatusVerified, tx.Status)
	assert.ErrorIs(t, tx.Verify(), transaction.ErrInvalidTransition)
	require.NoError(t, tx.Submit())
	assert.Equal(t, transaction.StatusCompleted, tx.Status)
	assert.True(t, tx.Status.IsTerminal())
	assert.ErrorIs(t, tx.Fail(), domain.ErrInvalidState)
}

func TestFail(t *testing.T) {
	sender, receiver := parties()
	tx, err := transaction.New(sender, receiver, validDetails())
	require.NoError(t, err)
	require.NoError(t, tx.Fail())
	assert.Equal(t, transaction.StatusFailed, tx.Status)
	assert.ErrorIs(t, tx.Verify(), domain.ErrInvalidState)
}

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, transaction.StatusPending.CanTransitionTo(transaction.StatusVerified))
	assert.False(t, transaction.StatusPending.CanTransitionTo(transaction.StatusCompleted))
	assert.False(t, transaction.StatusVerified.CanTransitionTo(transaction.StatusPending))
	assert.False(t, transaction.StatusCompleted.CanTransitionTo(transaction.StatusVerified))
	assert.True(t, transaction.StatusVerified.CanTransitionTo(transaction.StatusFailed))
	assert.False(t, transaction.Status("bogus").IsValid())
}
