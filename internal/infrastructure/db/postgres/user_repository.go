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

var userColumns = []interface{}{"id", "name", "username", "password_hash", "role", "created_at"}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query, args, err := dialect.Insert(tableUsers).
		Rows(goqu.Record{
			"name":          user.Name,
			"username":      user.Username,
			"password_hash": user.PasswordHash,
			"role":          user.Role,
			"created_at":    user.CreatedAt,
		}).
		Returning("id").
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert user: %w", err)
	}

	if err := r.db.GetContext(ctx, &user.ID, query, args...); err != nil {
		if pgCode(err) == codeUniqueViolation {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, goqu.Ex{"id": id})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, goqu.Ex{"username": username})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, username, passwordHash, role string) error {
	query, args, err := dialect.Update(tableUsers).
		Set(goqu.Record{"password_hash": passwordHash, "role": role}).
		Where(goqu.Ex{"username": username}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, where goqu.Ex) (*domain.User, error) {
	query, args, err := dialect.From(tableUsers).
		Select(userColumns...).
		Where(where).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select user: %w", err)
	}

	var u domain.User
	if err := r.db.GetContext(ctx, &u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
