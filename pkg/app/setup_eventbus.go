// Package app wires the services together and registers the event bus
// subscribers.
package app

import (
	"context"

	"github.com/amirasaad/payportal/pkg/domain/events"
	"github.com/amirasaad/payportal/pkg/eventbus"
)

// setupEventBus registers the transaction lifecycle subscribers.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	for _, t := range []events.EventType{
		events.EventTypeTransactionCreated,
		events.EventTypeTransactionVerified,
		events.EventTypeTransactionSubmitted,
	} {
		bus.Register(t.String(), a.logTransactionEvent)
	}
}

func (a *App) logTransactionEvent(_ context.Context, e eventbus.Event) error {
	te, ok := e.(*events.TransactionEvent)
	if !ok {
		a.Deps.Logger.Warn("unexpected event payload", "type", e.Type())
		return nil
	}
	a.Deps.Logger.Info(
		"transaction event",
		"type", te.Type(),
		"transactionID", te.TransactionID,
		"status", te.Status,
		"amount", te.Amount,
		"currency", te.Currency,
		"actor", te.Actor,
	)
	return nil
}
