package ports

import (
	"context"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

// CreateReservationInput is the DTO passed from the transport layer to
// ReservationService. Dates are YYYY-MM-DD strings.
type CreateReservationInput struct {
	UserID        int64
	DestinationID int64
	CheckIn       string
	CheckOut      string
	TotalPrice    float64
}

// ReservationService defines use-case operations for reservations.
type ReservationService interface {
	Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	// ListByDestination returns the reservations of a destination, or
	// domain.ErrReservationsNotFound when there are none.
	ListByDestination(ctx context.Context, destinationID string) ([]domain.Reservation, error)
}
