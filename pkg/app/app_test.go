package app_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/payportal/infra/eventbus"
	"github.com/amirasaad/payportal/infra/lockout"
	"github.com/amirasaad/payportal/infra/provider"
	"github.com/amirasaad/payportal/internal/fixtures"
	"github.com/amirasaad/payportal/pkg/app"
	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/amirasaad/payportal/pkg/service/transfer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.App {
	return &config.App{
		Auth:              &config.Auth{Jwt: &config.Jwt{Secret: "app-secret", Expiry: time.Hour}},
		Audit:             &config.Audit{WriteTimeout: time.Second, Retention: time.Hour},
		ExchangeRateCache: &config.ExchangeRateCache{TTL: time.Minute},
	}
}

func TestNew_WiresTransferFlow(t *testing.T) {
	alice := &dto.UserRead{ID: uuid.New(), Username: "alice", FullName: "Alice Smith", AccountNumber: "12345678", Active: true}
	bob := &dto.UserRead{ID: uuid.New(), Username: "bob", FullName: "Bob Jones", AccountNumber: "87654321", Active: true}
	users := fixtures.NewUsers(alice, bob)
	bus := eventbus.NewWithMemory(slog.Default())

	a := app.New(&app.Deps{
		Uow:          fixtures.NewUnitOfWork(users, fixtures.NewTransactions(users), fixtures.NewLoginAttempts()),
		RateProvider: provider.NewStubExchangeRateProvider(),
		Lockout:      lockout.NewMemoryStore(),
		EventBus:     bus,
		Logger:       slog.Default(),
	}, testConfig())

	require.NotNil(t, a.AuthService)
	require.NotNil(t, a.TransferService)

	tx, err := a.TransferService.CreateTransfer(context.Background(), transfer.CreateTransferCommand{
		CallerAccountNumber: "12345678",
		FromAccountNumber:   "12345678",
		ToAccountNumber:     "87654321",
		Amount:              decimal.RequireFromString("10.00"),
		Currency:            "USD",
		TargetCurrency:      "EUR",
		SwiftCode:           "ABCDUS33",
		PaymentMethod:       "bank_transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", tx.Status)
	assert.True(t, tx.ConversionRate.Valid)
	assert.Len(t, bus.Published(), 1)
}
