package user

import (
	"context"

	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for customer data access.
type Repository interface {
	// Create inserts a new user record from a DTO.
	Create(ctx context.Context, create *dto.UserCreate) error

	// Get retrieves a user by its ID.
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)

	// GetByAccountNumber retrieves a user regardless of active flag.
	GetByAccountNumber(ctx context.Context, accountNumber string) (*dto.UserRead, error)

	// GetActiveByAccountNumber retrieves a user only when active.
	GetActiveByAccountNumber(ctx context.Context, accountNumber string) (*dto.UserRead, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByIDNumber(ctx context.Context, idNumber string) (bool, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)

	// SetActive toggles the active flag for the given account number.
	SetActive(ctx context.Context, accountNumber string, active bool) error
}
