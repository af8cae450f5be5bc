package staff

import (
	"context"

	"github.com/amirasaad/payportal/pkg/dto"
)

// Repository defines the interface for staff data access.
type Repository interface {
	Create(ctx context.Context, create *dto.StaffCreate) error
	GetByUsername(ctx context.Context, username string) (*dto.StaffRead, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
