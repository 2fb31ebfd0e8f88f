package ports

import (
	"context"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name     string
	Username string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	// Logout revokes the given bearer token. Unparseable tokens are ignored.
	Logout(ctx context.Context, token string) error
	GetUser(ctx context.Context, username string) (*domain.User, error)
}
