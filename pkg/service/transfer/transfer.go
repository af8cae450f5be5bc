// Package transfer creates transfer requests and drives their review
// lifecycle.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/amirasaad/payportal/pkg/domain/events"
	"github.com/amirasaad/payportal/pkg/domain/transaction"
	"github.com/amirasaad/payportal/pkg/domain/user"
	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/amirasaad/payportal/pkg/eventbus"
	"github.com/amirasaad/payportal/pkg/metrics"
	"github.com/amirasaad/payportal/pkg/repository"
	repotx "github.com/amirasaad/payportal/pkg/repository/transaction"
	"github.com/amirasaad/payportal/pkg/service/exchange"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotOwnAccount is returned when a customer tries to send from an
// account that is not theirs.
var ErrNotOwnAccount = fmt.Errorf("%w: from account number does not belong to the caller", domain.ErrForbidden)

// AccountResolver looks up active customer accounts.
type AccountResolver interface {
	ResolveActiveAccount(ctx context.Context, accountNumber string) (*dto.UserRead, error)
}

// CreateTransferCommand is a customer's transfer request. CallerAccountNumber
// comes from the authenticated token, never from the body.
type CreateTransferCommand struct {
	CallerAccountNumber string
	FromAccountNumber   string
	ToAccountNumber     string
	Amount              decimal.Decimal
	Currency            string
	TargetCurrency      string
	SwiftCode           string
	PaymentMethod       string
}

type Service struct {
	uow       repository.UnitOfWork
	directory AccountResolver
	rates     exchange.RateSource
	bus       eventbus.Bus
	logger    *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	directory AccountResolver,
	rates exchange.RateSource,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:       uow,
		directory: directory,
		rates:     rates,
		bus:       bus,
		logger:    logger,
	}
}

// CreateTransfer validates, resolves and persists a pending transfer.
func (s *Service) CreateTransfer(
	ctx context.Context,
	cmd CreateTransferCommand,
) (*dto.TransactionRead, error) {
	log := s.logger.With("context", "CreateTransfer")
	from := strings.TrimSpace(cmd.FromAccountNumber)
	to := strings.TrimSpace(cmd.ToAccountNumber)
	details := transaction.Details{
		Amount:         cmd.Amount,
		Currency:       transaction.Currency(cmd.Currency),
		TargetCurrency: transaction.Currency(cmd.TargetCurrency),
		SwiftCode:      cmd.SwiftCode,
		PaymentMethod:  transaction.PaymentMethod(cmd.PaymentMethod),
	}.Normalize()

	if err := errors.Join(
		user.ValidateAccountNumber(from),
		user.ValidateAccountNumber(to),
		details.Validate(),
	); err != nil {
		return nil, err
	}
	if from == to {
		return nil, transaction.ErrSelfTransfer
	}
	if cmd.CallerAccountNumber != "" && cmd.CallerAccountNumber != from {
		log.Warn("transfer from foreign account rejected", "from", from)
		return nil, ErrNotOwnAccount
	}

	sender, receiver, err := s.resolveParties(ctx, from, to)
	if err != nil {
		return nil, err
	}

	tx, err := transaction.New(
		transaction.Party{ID: sender.ID, AccountNumber: sender.AccountNumber},
		transaction.Party{ID: receiver.ID, AccountNumber: receiver.AccountNumber},
		details,
	)
	if err != nil {
		return nil, err
	}
	if details.NeedsConversion() {
		rate, err := s.rates.Rate(ctx, details.Currency.String(), details.TargetCurrency.String())
		if err != nil {
			log.Error("exchange rate lookup failed", "error", err)
			if errors.Is(err, domain.ErrUnsupportedCurrencyPair) {
				return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
			}
			return nil, err
		}
		if err := tx.ApplyConversion(rate.Rate); err != nil {
			return nil, err
		}
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repotx.Repository](uow)
		if err != nil {
			return err
		}
		return repo.Create(ctx, &dto.TransactionCreate{
			ID:                    tx.ID,
			SenderID:              tx.SenderID,
			ReceiverID:            tx.ReceiverID,
			SenderAccountNumber:   tx.SenderAccountNumber,
			ReceiverAccountNumber: tx.ReceiverAccountNumber,
			Amount:                tx.Amount,
			Currency:              tx.Currency.String(),
			TargetCurrency:        tx.TargetCurrency.String(),
			ConversionRate:        tx.ConversionRate,
			ConvertedAmount:       tx.ConvertedAmount,
			SwiftCode:             tx.SwiftCode,
			PaymentMethod:         string(tx.PaymentMethod),
			Status:                string(tx.Status),
			CreatedAt:             tx.CreatedAt,
		})
	})
	if err != nil {
		log.Error("failed to persist transaction", "error", err)
		return nil, err
	}

	metrics.TransactionsCreatedTotal.WithLabelValues(tx.Currency.String()).Inc()
	s.emit(ctx, events.NewTransactionEvent(events.EventTypeTransactionCreated, tx, ""))
	log.Info("transaction created", "transactionID", tx.ID, "amount", tx.Amount, "currency", tx.Currency)
	return toRead(tx), nil
}

// resolveParties resolves both accounts so that a failure can name every
// missing side.
func (s *Service) resolveParties(
	ctx context.Context,
	from, to string,
) (sender, receiver *dto.UserRead, err error) {
	sender, fromErr := s.directory.ResolveActiveAccount(ctx, from)
	receiver, toErr := s.directory.ResolveActiveAccount(ctx, to)

	for _, e := range []error{fromErr, toErr} {
		if e != nil && !errors.Is(e, domain.ErrNotFound) {
			return nil, nil, e
		}
	}
	if fromErr != nil || toErr != nil {
		return nil, nil, &AccountResolutionError{
			FromMissing: fromErr != nil,
			ToMissing:   toErr != nil,
		}
	}
	return sender, receiver, nil
}

// ListPending returns every pending transaction, oldest first.
func (s *Service) ListPending(ctx context.Context) (txs []*dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repotx.Repository](uow)
		if err != nil {
			return err
		}
		txs, err = repo.ListByStatus(ctx, string(transaction.StatusPending))
		return err
	})
	return
}

// ListForUser returns transactions the user sent or received with both
// parties' public identity, newest first.
func (s *Service) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
) (txs []*dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repotx.Repository](uow)
		if err != nil {
			return err
		}
		txs, err = repo.ListByUser(ctx, userID)
		return err
	})
	return
}

// Verify moves a pending transaction to verified. Completed transactions
// are reported as not found.
func (s *Service) Verify(
	ctx context.Context,
	id uuid.UUID,
	actor string,
) (*dto.TransactionRead, error) {
	return s.advance(ctx, id, actor,
		transaction.StatusPending, transaction.StatusVerified,
		events.EventTypeTransactionVerified,
		func(current transaction.Status) error {
			if current == transaction.StatusCompleted {
				return transaction.ErrTransactionNotFound
			}
			return fmt.Errorf("%w: transaction is %s, expected pending", transaction.ErrInvalidTransition, current)
		},
	)
}

// Submit moves a verified transaction to completed.
func (s *Service) Submit(
	ctx context.Context,
	id uuid.UUID,
	actor string,
) (*dto.TransactionRead, error) {
	return s.advance(ctx, id, actor,
		transaction.StatusVerified, transaction.StatusCompleted,
		events.EventTypeTransactionSubmitted,
		func(current transaction.Status) error {
			return fmt.Errorf("%w: transaction is %s, expected verified", transaction.ErrInvalidTransition, current)
		},
	)
}

// advance performs one conditional status update. When no row changes,
// the current status is read back and passed to rejected.
func (s *Service) advance(
	ctx context.Context,
	id uuid.UUID,
	actor string,
	from, to transaction.Status,
	eventType events.EventType,
	rejected func(current transaction.Status) error,
) (updated *dto.TransactionRead, err error) {
	log := s.logger.With("context", "advance", "transactionID", id, "to", to)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repotx.Repository](uow)
		if err != nil {
			return err
		}
		changed, err := repo.TransitionStatus(ctx, id, string(from), string(to))
		if err != nil {
			return err
		}
		current, err := repo.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return transaction.ErrTransactionNotFound
		}
		if err != nil {
			return err
		}
		if !changed {
			return rejected(transaction.Status(current.Status))
		}
		updated = current
		return nil
	})
	if err != nil {
		metrics.TransactionTransitionsTotal.WithLabelValues(string(to), "rejected").Inc()
		log.Info("status transition rejected", "error", err)
		return nil, err
	}
	metrics.TransactionTransitionsTotal.WithLabelValues(string(to), "ok").Inc()
	s.emit(ctx, events.NewTransactionEvent(eventType, fromRead(updated), actor))
	log.Info("status transition applied", "actor", actor)
	return updated, nil
}

// emit publishes e; the state change is already committed so failures
// are only logged.
func (s *Service) emit(ctx context.Context, e *events.TransactionEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Error("failed to publish event", "type", e.Type(), "transactionID", e.TransactionID, "error", err)
	}
}

func toRead(tx *transaction.Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:                    tx.ID,
		SenderID:              tx.SenderID,
		ReceiverID:            tx.ReceiverID,
		SenderAccountNumber:   tx.SenderAccountNumber,
		ReceiverAccountNumber: tx.ReceiverAccountNumber,
		Amount:                tx.Amount,
		Currency:              tx.Currency.String(),
		TargetCurrency:        tx.TargetCurrency.String(),
		ConversionRate:        tx.ConversionRate,
		ConvertedAmount:       tx.ConvertedAmount,
		SwiftCode:             tx.SwiftCode,
		PaymentMethod:         string(tx.PaymentMethod),
		Status:                string(tx.Status),
		CreatedAt:             tx.CreatedAt,
		UpdatedAt:             tx.UpdatedAt,
	}
}

func fromRead(r *dto.TransactionRead) *transaction.Transaction {
	return &transaction.Transaction{
		ID:                    r.ID,
		SenderID:              r.SenderID,
		ReceiverID:            r.ReceiverID,
		SenderAccountNumber:   r.SenderAccountNumber,
		ReceiverAccountNumber: r.ReceiverAccountNumber,
		Amount:                r.Amount,
		Currency:              transaction.Currency(r.Currency),
		TargetCurrency:        transaction.Currency(r.TargetCurrency),
		ConversionRate:        r.ConversionRate,
		ConvertedAmount:       r.ConvertedAmount,
		SwiftCode:             r.SwiftCode,
		PaymentMethod:         transaction.PaymentMethod(r.PaymentMethod),
		Status:                transaction.Status(r.Status),
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}
