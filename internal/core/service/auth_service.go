package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/traveluniverse/booking-system/internal/core/domain"
	"github.com/traveluniverse/booking-system/internal/core/ports"
)

// AuthService implements registration, login and logout.
type AuthService struct {
	repo      ports.UserRepository
	denylist  ports.TokenDenylist
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, denylist ports.TokenDenylist, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, denylist: denylist, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return nil, domain.InvalidInput("name is required")
	case strings.TrimSpace(in.Username) == "":
		return nil, domain.InvalidInput("username is required")
	case in.Password == "":
		return nil, domain.InvalidInput("password is required")
	case !domain.ValidRole(in.Role):
		return nil, domain.InvalidInput("role must be one of: admin customer")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         in.Name,
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user registered")
	return user, nil
}

// Login verifies the credentials and issues a signed access token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.generateToken(user)
}

// Logout adds the token id to the denylist until the token expires.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" || s.denylist == nil {
		return nil
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, s.keyFunc)
	if err != nil {
		s.log.Debug().Err(err).Msg("logout with unusable token ignored")
		return nil
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil
	}
	until := time.Now().Add(s.tokenTTL)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		until = exp.Time
	}
	return s.denylist.Revoke(ctx, jti, until)
}

func (s *AuthService) GetUser(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// EnsureAdmin creates the admin account, or resets its password and role when
// it already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	_, err := s.Register(ctx, ports.RegisterInput{Name: username, Username: username, Password: password, Role: domain.RoleAdmin})
	if !errors.Is(err, domain.ErrUserExists) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, username, string(hash), domain.RoleAdmin)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": user.Role,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return []byte(s.jwtSecret), nil
}
