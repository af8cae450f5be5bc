package repository

import (
	"context"
	"fmt"
)

// UnitOfWork defines the contract for transactional work and type-safe
// repository access. Repositories obtained inside Do share its session.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an
	// error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns the repository registered for repoType, a nil
	// pointer to the repository interface:
	//
	//	repoAny, err := uow.GetRepository((*user.Repository)(nil))
	GetRepository(repoType any) (any, error)
}

// Get is a typed wrapper around UnitOfWork.GetRepository.
//
//	repo, err := repository.Get[user.Repository](uow)
func Get[T any](uow UnitOfWork) (T, error) {
	var zero T
	repoAny, err := uow.GetRepository((*T)(nil))
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected repository type %T", repoAny)
	}
	return repo, nil
}
