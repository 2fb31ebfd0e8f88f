package ports

import (
	"context"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

// AvailabilityService answers which destinations are free and which days are
// taken. Inputs arrive as raw request strings and are validated here.
type AvailabilityService interface {
	// FindAvailableDestinations returns destinations without any reservation
	// overlapping [checkIn, checkOut]. Returns domain.ErrNoAvailability when
	// none qualify.
	FindAvailableDestinations(ctx context.Context, checkIn, checkOut string) ([]domain.Destination, error)
	// UnavailableDates enumerates the reserved days of a destination. With
	// distinct set, duplicates are removed and the result is sorted.
	UnavailableDates(ctx context.Context, destinationID string, distinct bool) ([]string, error)
}
