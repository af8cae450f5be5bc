package transaction

import (
	"context"

	"github.com/amirasaad/payportal/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for transaction data access.
type Repository interface {
	// Create inserts a new transaction record from a DTO.
	Create(ctx context.Context, create *dto.TransactionCreate) error

	// Get retrieves a transaction by its ID.
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)

	// ListByStatus lists transactions in the given status, oldest first.
	ListByStatus(ctx context.Context, status string) ([]*dto.TransactionRead, error)

	// ListByUser lists transactions where the user is sender or receiver,
	// newest first, with both parties joined.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.TransactionRead, error)

	// TransitionStatus moves a transaction from one status to another in a
	// single conditional update. It reports whether a row changed.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
}
