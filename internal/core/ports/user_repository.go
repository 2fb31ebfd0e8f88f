package ports

import (
	"context"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create stores user and assigns its ID. Returns domain.ErrUserExists when
	// the username is taken.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// UpdatePassword replaces the stored hash and role of an existing user.
	UpdatePassword(ctx context.Context, username, passwordHash, role string) error
}
