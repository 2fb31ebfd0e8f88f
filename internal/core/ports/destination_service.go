package ports

import (
	"context"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

// CreateDestinationInput carries the fields of a new destination.
type CreateDestinationInput struct {
	Title       string
	Location    string
	Description string
	Price       float64
	Discount    int
}

// DestinationService defines use-case operations for destinations.
type DestinationService interface {
	Create(ctx context.Context, input CreateDestinationInput) (*domain.Destination, error)
	List(ctx context.Context) ([]domain.Destination, error)
	Get(ctx context.Context, id int64) (*domain.Destination, error)
	Update(ctx context.Context, id int64, patch domain.DestinationPatch) (*domain.Destination, error)
	Delete(ctx context.Context, id int64) error
}
