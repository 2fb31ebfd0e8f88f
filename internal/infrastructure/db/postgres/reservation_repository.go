package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

var reservationColumns = []interface{}{
	"id", "user_id", "destination_id", "check_in_date", "check_out_date", "total_price", "created_at",
}

type ReservationRepository struct {
	db *sqlx.DB
}

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func overlapWhere(start, end time.Time) exp.ExpressionList {
	return goqu.And(
		goqu.C("check_in_date").Lte(end),
		goqu.C("check_out_date").Gte(start),
	)
}

// CreateIfAvailable checks and inserts inside one SERIALIZABLE transaction.
// The exclusion constraint catches anything the check misses.
func (r *ReservationRepository) CreateIfAvailable(ctx context.Context, res *domain.Reservation) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin reservation tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	countSQL, countArgs, err := dialect.From(tableReservations).
		Select(goqu.COUNT("*")).
		Where(goqu.C("destination_id").Eq(res.DestinationID), overlapWhere(res.CheckIn, res.CheckOut)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build overlap count: %w", err)
	}

	var n int64
	if err := tx.GetContext(ctx, &n, countSQL, countArgs...); err != nil {
		return mapReservationErr(err)
	}
	if n > 0 {
		return domain.ErrReservationConflict
	}

	insertSQL, insertArgs, err := dialect.Insert(tableReservations).
		Rows(goqu.Record{
			"user_id":        res.UserID,
			"destination_id": res.DestinationID,
			"check_in_date":  res.CheckIn,
			"check_out_date": res.CheckOut,
			"total_price":    res.TotalPrice,
			"created_at":     res.CreatedAt,
		}).
		Returning("id").
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert reservation: %w", err)
	}

	if err := tx.GetContext(ctx, &res.ID, insertSQL, insertArgs...); err != nil {
		return mapReservationErr(err)
	}
	if err := tx.Commit(); err != nil {
		return mapReservationErr(err)
	}
	return nil
}

func (r *ReservationRepository) FindByDestination(ctx context.Context, destinationID int64) ([]domain.Reservation, error) {
	return r.find(ctx, goqu.C("destination_id").Eq(destinationID))
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.Reservation, error) {
	return r.find(ctx, overlapWhere(start, end))
}

func (r *ReservationRepository) CountByDestination(ctx context.Context, destinationID int64) (int64, error) {
	query, args, err := dialect.From(tableReservations).
		Select(goqu.COUNT("*")).
		Where(goqu.C("destination_id").Eq(destinationID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build reservation count: %w", err)
	}

	var n int64
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return n, nil
}

func (r *ReservationRepository) find(ctx context.Context, where exp.Expression) ([]domain.Reservation, error) {
	query, args, err := dialect.From(tableReservations).
		Select(reservationColumns...).
		Where(where).
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select reservations: %w", err)
	}

	var out []domain.Reservation
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select reservations: %w", err)
	}
	for i := range out {
		out[i].CheckIn = domain.Day(out[i].CheckIn)
		out[i].CheckOut = domain.Day(out[i].CheckOut)
	}
	return out, nil
}

func mapReservationErr(err error) error {
	switch pgCode(err) {
	case codeExclusionViolation:
		return domain.ErrReservationConflict
	case codeSerializationFailure:
		return domain.ErrBookingInProgress
	case codeForeignKeyViolation:
		return domain.InvalidInput("user_id or destination_id does not exist")
	}
	return fmt.Errorf("reservation tx: %w", err)
}
