package ports

import (
	"context"
	"time"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

// ReservationRepository defines persistence for reservations. Listings are
// ordered by ascending ID.
type ReservationRepository interface {
	// CreateIfAvailable stores r and assigns its ID unless another reservation
	// of the same destination overlaps [r.CheckIn, r.CheckOut], in which case
	// it returns domain.ErrReservationConflict.
	CreateIfAvailable(ctx context.Context, r *domain.Reservation) error
	FindByDestination(ctx context.Context, destinationID int64) ([]domain.Reservation, error)
	// FindOverlapping returns reservations with CheckIn <= end and CheckOut >= start.
	FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.Reservation, error)
	CountByDestination(ctx context.Context, destinationID int64) (int64, error)
}
