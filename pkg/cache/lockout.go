package cache

import (
	"context"
	"time"
)

// LockoutState is the brute-force envelope for one client key.
type LockoutState struct {
	Failures    int
	LockedUntil *time.Time
}

// Locked reports whether the key is still blocked at now.
func (s LockoutState) Locked(now time.Time) bool {
	return s.LockedUntil != nil && now.Before(*s.LockedUntil)
}

// LockoutStore keeps short-lived failed-login counters.
type LockoutStore interface {
	Get(ctx context.Context, key string) (LockoutState, error)
	// RecordFailure increments the counter and, when lockUntil returns a
	// non-zero time for the new count, blocks the key until then. The
	// whole record expires after lifetime.
	RecordFailure(
		ctx context.Context,
		key string,
		lockUntil func(failures int) time.Time,
		lifetime time.Duration,
	) (LockoutState, error)
	Clear(ctx context.Context, key string) error
}
