package ports

import (
	"context"
	"time"
)

// DateCache stores computed unavailable dates per destination. Every
// Invalidate advances the destination's generation; SetDates only writes
// when the generation still matches the one read before the store fetch.
type DateCache interface {
	GetDates(ctx context.Context, destinationID int64) (dates []string, ok bool, err error)
	Generation(ctx context.Context, destinationID int64) (int64, error)
	// SetDates stores dates unless an Invalidate happened since generation
	// gen was read. stored reports whether the write took place.
	SetDates(ctx context.Context, destinationID int64, gen int64, dates []string) (stored bool, err error)
	Invalidate(ctx context.Context, destinationID int64) error
}

// ReservationLocker serialises availability-check-then-insert per destination.
type ReservationLocker interface {
	// Acquire blocks until the destination lock is held or ctx ends. The
	// returned func releases it.
	Acquire(ctx context.Context, destinationID int64) (release func(), err error)
}

// TokenDenylist records revoked token ids until they would have expired.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
