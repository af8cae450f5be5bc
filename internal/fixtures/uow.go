// Package fixtures provides in-memory collaborators for service and
// handler tests.
package fixtures

import (
	"context"
	"fmt"
	"reflect"

	"github.com/amirasaad/payportal/pkg/repository"
)

// UnitOfWork is an in-memory repository.UnitOfWork. Do runs fn directly,
// or returns DoErr when set. Repositories are matched by the interface
// they implement.
type UnitOfWork struct {
	repos []any
	DoErr error
}

func NewUnitOfWork(repos ...any) *UnitOfWork {
	return &UnitOfWork{repos: repos}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.DoErr != nil {
		return u.DoErr
	}
	return fn(u)
}

func (u *UnitOfWork) GetRepository(repoType any) (any, error) {
	t := reflect.TypeOf(repoType)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Interface {
		return nil, fmt.Errorf("unsupported repository type %T", repoType)
	}
	iface := t.Elem()
	for _, r := range u.repos {
		if reflect.TypeOf(r).Implements(iface) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("no repository registered for %s", iface)
}
