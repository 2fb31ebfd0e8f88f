package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

var destinationColumns = []interface{}{"id", "title", "location", "description", "price", "discount"}

type DestinationRepository struct {
	db *sqlx.DB
}

func NewDestinationRepository(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func destinationRecord(d *domain.Destination) goqu.Record {
	return goqu.Record{
		"title":       d.Title,
		"location":    d.Location,
		"description": d.Description,
		"price":       d.Price,
		"discount":    d.Discount,
	}
}

func (r *DestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	query, args, err := dialect.Insert(tableDestinations).
		Rows(destinationRecord(d)).
		Returning("id").
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert destination: %w", err)
	}

	if err := r.db.GetContext(ctx, &d.ID, query, args...); err != nil {
		return fmt.Errorf("insert destination: %w", err)
	}
	return nil
}

func (r *DestinationRepository) FindByID(ctx context.Context, id int64) (*domain.Destination, error) {
	query, args, err := dialect.From(tableDestinations).
		Select(destinationColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select destination: %w", err)
	}

	var d domain.Destination
	if err := r.db.GetContext(ctx, &d, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDestinationNotFound
		}
		return nil, fmt.Errorf("select destination: %w", err)
	}
	return &d, nil
}

func (r *DestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	return r.ListExcluding(ctx, nil)
}

func (r *DestinationRepository) ListExcluding(ctx context.Context, ids []int64) ([]domain.Destination, error) {
	ds := dialect.From(tableDestinations).Select(destinationColumns...).Order(goqu.C("id").Asc())
	if len(ids) > 0 {
		ds = ds.Where(goqu.C("id").NotIn(ids))
	}
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list destinations: %w", err)
	}

	out := make([]domain.Destination, 0)
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	return out, nil
}

func (r *DestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	query, args, err := dialect.Update(tableDestinations).
		Set(destinationRecord(d)).
		Where(goqu.C("id").Eq(d.ID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update destination: %w", err)
	}
	return r.execOne(ctx, query, args)
}

func (r *DestinationRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := dialect.Delete(tableDestinations).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete destination: %w", err)
	}
	return r.execOne(ctx, query, args)
}

func (r *DestinationRepository) execOne(ctx context.Context, query string, args []interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return domain.ErrDestinationInUse
		}
		return fmt.Errorf("write destination: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDestinationNotFound
	}
	return nil
}
