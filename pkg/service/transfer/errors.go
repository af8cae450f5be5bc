package transfer

import (
	"github.com/amirasaad/payportal/pkg/domain"
)

// AccountResolutionError reports which side of a transfer could not be
// resolved to an active account. It matches domain.ErrNotFound.
type AccountResolutionError struct {
	FromMissing bool
	ToMissing   bool
}

func (e *AccountResolutionError) Error() string {
	switch {
	case e.FromMissing && e.ToMissing:
		return "Both account numbers not found"
	case e.FromMissing:
		return "From account number not found"
	default:
		return "To account number not found"
	}
}

func (e *AccountResolutionError) Unwrap() error {
	return domain.ErrNotFound
}
