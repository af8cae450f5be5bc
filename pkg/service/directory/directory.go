// Package directory resolves customer account numbers to active users and
// toggles account activation.
package directory

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/amirasaad/payportal/pkg/domain"
	"github.com/amirasaad/payportal/pkg/domain/user"
	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/amirasaad/payportal/pkg/repository"
	repouser "github.com/amirasaad/payportal/pkg/repository/user"
)

// Service looks up and administers customer accounts.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// ResolveActiveAccount returns the active user owning accountNumber.
// Malformed numbers are rejected before the store is consulted; absent
// and inactive accounts both yield user.ErrUserNotFound.
func (s *Service) ResolveActiveAccount(
	ctx context.Context,
	accountNumber string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "ResolveActiveAccount")
	accountNumber = strings.TrimSpace(accountNumber)
	if err = user.ValidateAccountNumber(accountNumber); err != nil {
		log.Debug("rejected malformed account number")
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		u, err = repo.GetActiveByAccountNumber(ctx, accountNumber)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		log.Error("account lookup failed", "error", err)
		return nil, err
	}
	return u, nil
}

// SetActive enables or disables the account. Disabled accounts can neither
// log in nor take part in new transfers.
func (s *Service) SetActive(ctx context.Context, accountNumber string, active bool) error {
	accountNumber = strings.TrimSpace(accountNumber)
	if err := user.ValidateAccountNumber(accountNumber); err != nil {
		return err
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		return repo.SetActive(ctx, accountNumber, active)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return user.ErrUserNotFound
	}
	if err != nil {
		return err
	}
	s.logger.Info("account activation changed", "accountNumber", accountNumber, "active", active)
	return nil
}
