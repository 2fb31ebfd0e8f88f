package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

type DestinationRepository struct {
	col *mongo.Collection
	ids counters
}

func NewDestinationRepository(db *mongo.Database) *DestinationRepository {
	return &DestinationRepository{col: db.Collection(collectionDestinations), ids: newCounters(db)}
}

func (r *DestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx, collectionDestinations)
	if err != nil {
		return err
	}
	d.ID = id
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert destination: %w", err)
	}
	return nil
}

func (r *DestinationRepository) FindByID(ctx context.Context, id int64) (*domain.Destination, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Destination
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDestinationNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	return r.ListExcluding(ctx, nil)
}

func (r *DestinationRepository) ListExcluding(ctx context.Context, ids []int64) ([]domain.Destination, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, excludeIDsFilter(ids), byIDAsc())
	if err != nil {
		return nil, fmt.Errorf("find destinations: %w", err)
	}
	out := make([]domain.Destination, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode destinations: %w", err)
	}
	return out, nil
}

func (r *DestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return fmt.Errorf("replace destination: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDestinationNotFound
	}
	return nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete destination: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDestinationNotFound
	}
	return nil
}
