package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

// ReservationRepository stores reservations. The overlap check in
// CreateIfAvailable is not atomic on its own; callers hold the destination
// lock around it.
type ReservationRepository struct {
	col *mongo.Collection
	ids counters
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(collectionReservations), ids: newCounters(db)}
}

func (r *ReservationRepository) CreateIfAvailable(ctx context.Context, res *domain.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, destinationOverlapFilter(res.DestinationID, res.CheckIn, res.CheckOut))
	if err != nil {
		return fmt.Errorf("count overlapping reservations: %w", err)
	}
	if n > 0 {
		return domain.ErrReservationConflict
	}

	id, err := r.ids.next(ctx, collectionReservations)
	if err != nil {
		return err
	}
	res.ID = id
	if _, err := r.col.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) FindByDestination(ctx context.Context, destinationID int64) ([]domain.Reservation, error) {
	return r.find(ctx, bson.M{"destination_id": destinationID})
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.Reservation, error) {
	return r.find(ctx, overlapFilter(start, end))
}

func (r *ReservationRepository) CountByDestination(ctx context.Context, destinationID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"destination_id": destinationID})
}

func (r *ReservationRepository) find(ctx context.Context, filter bson.M) ([]domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, byIDAsc())
	if err != nil {
		return nil, fmt.Errorf("find reservations: %w", err)
	}
	var out []domain.Reservation
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}
	for i := range out {
		out[i].CheckIn = out[i].CheckIn.UTC()
		out[i].CheckOut = out[i].CheckOut.UTC()
	}
	return out, nil
}
