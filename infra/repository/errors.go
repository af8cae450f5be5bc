package repository

import (
	"errors"
	"fmt"

	"github.com/amirasaad/payportal/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors. The
// original error stays in the chain so callers may still match it.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrAlreadyExists):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", domain.ErrAlreadyExists, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return err
}

// ErrorMapper is a GORM plugin that runs MapGormErrorToDomain after every
// statement, so repositories never leak GORM sentinels.
type ErrorMapper struct{}

// Name implements gorm.Plugin.
func (ErrorMapper) Name() string { return "payportal:error_mapper" }

// Initialize implements gorm.Plugin.
func (ErrorMapper) Initialize(db *gorm.DB) error {
	mapErr := func(tx *gorm.DB) {
		if tx.Error != nil {
			tx.Error = MapGormErrorToDomain(tx.Error)
		}
	}
	cb := db.Callback()
	return errors.Join(
		cb.Create().After("gorm:create").Register("payportal:map_create_error", mapErr),
		cb.Query().After("gorm:query").Register("payportal:map_query_error", mapErr),
		cb.Update().After("gorm:update").Register("payportal:map_update_error", mapErr),
		cb.Delete().After("gorm:delete").Register("payportal:map_delete_error", mapErr),
		cb.Row().After("gorm:row").Register("payportal:map_row_error", mapErr),
		cb.Raw().After("gorm:raw").Register("payportal:map_raw_error", mapErr),
	)
}
