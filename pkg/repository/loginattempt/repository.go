package loginattempt

import (
	"context"
	"time"

	"github.com/amirasaad/payportal/pkg/dto"
)

// Repository defines the interface for the login audit trail.
type Repository interface {
	Create(ctx context.Context, create *dto.LoginAttemptCreate) error

	// DeleteOlderThan purges records stamped before cutoff and returns the
	// number removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
