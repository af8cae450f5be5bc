package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/amirasaad/payportal/infra/repository/loginattempt"
	"github.com/amirasaad/payportal/infra/repository/transaction"
	"github.com/amirasaad/payportal/infra/repository/user"
	"github.com/amirasaad/payportal/pkg/repository"
	loginattemptrepo "github.com/amirasaad/payportal/pkg/repository/loginattempt"
	staffrepo "github.com/amirasaad/payportal/pkg/repository/staff"
	transactionrepo "github.com/amirasaad/payportal/pkg/repository/transaction"
	userrepo "github.com/amirasaad/payportal/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one
// abstraction. Repositories returned inside Do share its transaction.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB and installs the
// ErrorMapper plugin on it.
func NewUoW(db *gorm.DB) (*UoW, error) {
	if err := db.Use(ErrorMapper{}); err != nil && !errors.Is(err, gorm.ErrRegistered) {
		return nil, fmt.Errorf("install error mapper: %w", err)
	}
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*userrepo.Repository)(nil)):         func(db *gorm.DB) any { return user.New(db) },
			reflect.TypeOf((*staffrepo.Repository)(nil)):        func(db *gorm.DB) any { return user.NewStaff(db) },
			reflect.TypeOf((*transactionrepo.Repository)(nil)):  func(db *gorm.DB) any { return transaction.New(db) },
			reflect.TypeOf((*loginattemptrepo.Repository)(nil)): func(db *gorm.DB) any { return loginattempt.New(db) },
		},
	}, nil
}

// Do runs fn in a database transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
}

// GetRepository returns the repository registered for repoType, bound to
// the current transaction or, outside Do, to the base connection.
func (u *UoW) GetRepository(repoType any) (any, error) {
	constructor, ok := u.repoRegistry[reflect.TypeOf(repoType)]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %T", repoType)
	}
	session := u.tx
	if session == nil {
		session = u.db
	}
	return constructor(session), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
