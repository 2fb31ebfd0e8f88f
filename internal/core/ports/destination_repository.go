package ports

import (
	"context"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

// DestinationRepository defines persistence for destinations. Every listing
// is ordered by ascending ID.
type DestinationRepository interface {
	// Create stores d and assigns its ID.
	Create(ctx context.Context, d *domain.Destination) error
	FindByID(ctx context.Context, id int64) (*domain.Destination, error)
	List(ctx context.Context) ([]domain.Destination, error)
	// ListExcluding returns every destination whose ID is not in ids.
	ListExcluding(ctx context.Context, ids []int64) ([]domain.Destination, error)
	Update(ctx context.Context, d *domain.Destination) error
	Delete(ctx context.Context, id int64) error
}
