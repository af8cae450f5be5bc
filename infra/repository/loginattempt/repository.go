package loginattempt

import (
	"context"
	"time"

	"github.com/amirasaad/payportal/pkg/dto"
	repo "github.com/amirasaad/payportal/pkg/repository/loginattempt"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a GORM-backed login audit repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *dto.LoginAttemptCreate) error {
	return r.db.WithContext(ctx).Create(&LoginAttempt{
		ID:              c.ID,
		Username:        c.Username,
		AccountNumber:   c.AccountNumber,
		IPAddress:       c.IPAddress,
		SuccessfulLogin: c.SuccessfulLogin,
		Timestamp:       c.Timestamp,
	}).Error
}

func (r *repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&LoginAttempt{})
	return res.RowsAffected, res.Error
}

var _ repo.Repository = (*repository)(nil)
