// Package app assembles stores, coordination backends and services from
// configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/traveluniverse/booking-system/internal/api"
	"github.com/traveluniverse/booking-system/internal/api/handler"
	"github.com/traveluniverse/booking-system/internal/core/ports"
	"github.com/traveluniverse/booking-system/internal/core/service"
	"github.com/traveluniverse/booking-system/internal/infrastructure/config"
	"github.com/traveluniverse/booking-system/internal/infrastructure/db/memory"
	"github.com/traveluniverse/booking-system/internal/infrastructure/db/mongo"
	"github.com/traveluniverse/booking-system/internal/infrastructure/db/postgres"
	"github.com/traveluniverse/booking-system/internal/infrastructure/db/redis"
)

// App owns every long-lived dependency of the process.
type App struct {
	cfg *config.Config
	log zerolog.Logger

	destinations ports.DestinationRepository
	reservations ports.ReservationRepository
	users        ports.UserRepository
	locker       ports.ReservationLocker
	cache        ports.DateCache
	denylist     ports.TokenDenylist

	Auth         *service.AuthService
	Destinations *service.DestinationService
	Availability *service.AvailabilityService
	Reservations *service.ReservationService

	pingers map[string]handler.Pinger
	migrate func(ctx context.Context) error
	closers []func(ctx context.Context) error
}

// New connects the configured store and, when enabled, Redis, then builds the
// services on top of them.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{
		cfg:     cfg,
		log:     log,
		pingers: make(map[string]handler.Pinger),
		migrate: func(context.Context) error { return nil },
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	if err := a.openStore(ctx); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	if err := a.openCoordination(ctx); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	a.Auth = service.NewAuthService(a.users, a.denylist, cfg.JWTSecret, cfg.TokenTTL, log.With().Str("component", "auth").Logger())
	a.Destinations = service.NewDestinationService(a.destinations, a.reservations, a.cache, log.With().Str("component", "destinations").Logger())
	a.Availability = service.NewAvailabilityService(a.destinations, a.reservations, a.cache, log.With().Str("component", "availability").Logger())
	a.Reservations = service.NewReservationService(a.reservations, a.destinations, a.users, a.locker, a.cache, log.With().Str("component", "reservations").Logger())

	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func(ctx context.Context) error { return client.Disconnect(ctx) })
		a.useMongo(db)

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, a.cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })
		a.usePostgres(db)

	case config.DriverMemory:
		store := memory.NewStore()
		a.destinations, a.reservations, a.users = store.Destinations(), store.Reservations(), store.Users()
		a.pingers["store"] = store

	default:
		return fmt.Errorf("unknown store driver %q", a.cfg.StoreDriver)
	}

	a.log.Info().Str("driver", a.cfg.StoreDriver).Msg("store connected")
	return nil
}

func (a *App) useMongo(db *mongodriver.Database) {
	a.destinations = mongo.NewDestinationRepository(db)
	a.reservations = mongo.NewReservationRepository(db)
	a.users = mongo.NewUserRepository(db)
	a.pingers["mongo"] = mongo.Pinger{DB: db}
	a.migrate = func(ctx context.Context) error { return mongo.EnsureIndexes(ctx, db) }
}

func (a *App) usePostgres(db *sqlx.DB) {
	a.destinations = postgres.NewDestinationRepository(db)
	a.reservations = postgres.NewReservationRepository(db)
	a.users = postgres.NewUserRepository(db)
	a.pingers["postgres"] = postgres.Pinger{DB: db}
	a.migrate = func(ctx context.Context) error { return postgres.EnsureSchema(ctx, db) }
}

// openCoordination picks the reservation lock, date cache and token denylist.
// Without Redis they fall back to in-process versions and caching is off.
func (a *App) openCoordination(ctx context.Context) error {
	if !a.cfg.Redis.Enabled {
		a.locker = memory.NewLocker(a.cfg.Redis.LockTTL)
		a.denylist = memory.NewDenylist()
		a.log.Info().Msg("redis disabled, using in-process lock and denylist")
		return nil
	}

	client, err := redis.Connect(ctx, redis.Config{Addr: a.cfg.Redis.Addr, DB: a.cfg.Redis.DB})
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	a.useRedis(client)
	return nil
}

func (a *App) useRedis(client *goredis.Client) {
	lockLog := a.log.With().Str("component", "reservation_lock").Logger()
	a.locker = redis.NewReservationLock(client, a.cfg.Redis.LockTTL, lockLog)
	a.cache = redis.NewDateCache(client, a.cfg.Redis.CacheTTL)
	a.denylist = redis.NewTokenDenylist(client)
	a.pingers["redis"] = redis.Pinger{Client: client}
}

// Migrate creates the indexes or schema the configured store relies on.
func (a *App) Migrate(ctx context.Context) error {
	if err := a.migrate(ctx); err != nil {
		return fmt.Errorf("migrate %s: %w", a.cfg.StoreDriver, err)
	}
	return nil
}

// EnsureAdmin provisions the account named by ADMIN_USERNAME, if any.
func (a *App) EnsureAdmin(ctx context.Context) error {
	if a.cfg.AdminUsername == "" {
		return nil
	}
	if err := a.Auth.EnsureAdmin(ctx, a.cfg.AdminUsername, a.cfg.AdminPassword); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	a.log.Info().Str("username", a.cfg.AdminUsername).Msg("admin account ready")
	return nil
}

// Router builds the HTTP handler tree.
func (a *App) Router() *echo.Echo {
	return api.NewRouter(api.Deps{
		Auth:         a.Auth,
		Destinations: a.Destinations,
		Availability: a.Availability,
		Reservations: a.Reservations,
		Denylist:     a.denylist,
		JWTSecret:    a.cfg.JWTSecret,
		AllowOrigins: a.cfg.AllowOrigins(),
		Pingers:      a.pingers,
		Logger:       a.log,
	})
}

// Close releases connections in reverse order of opening.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
