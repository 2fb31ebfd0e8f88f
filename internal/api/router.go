package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/traveluniverse/booking-system/docs"
	"github.com/traveluniverse/booking-system/internal/api/handler"
	"github.com/traveluniverse/booking-system/internal/api/middleware"
	"github.com/traveluniverse/booking-system/internal/core/domain"
	"github.com/traveluniverse/booking-system/internal/core/ports"
)

const defaultRequestTimeout = 10 * time.Second

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth         ports.AuthService
	Destinations ports.DestinationService
	Availability ports.AvailabilityService
	Reservations ports.ReservationService
	Denylist     ports.TokenDenylist

	JWTSecret      string
	AllowOrigins   []string
	RequestTimeout time.Duration
	Pingers        map[string]handler.Pinger

	// MetricsRegisterer receives the HTTP metrics. Defaults to the global
	// prometheus registerer.
	MetricsRegisterer prometheus.Registerer
	Logger            zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	if d.RequestTimeout <= 0 {
		d.RequestTimeout = defaultRequestTimeout
	}
	if len(d.AllowOrigins) == 0 {
		d.AllowOrigins = []string{"*"}
	}
	if d.MetricsRegisterer == nil {
		d.MetricsRegisterer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.AllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "travel",
		Registerer: d.MetricsRegisterer,
	}))
	e.Use(echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
		Timeout: d.RequestTimeout,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	destinationHandler := handler.NewDestinationHandler(d.Destinations)
	availabilityHandler := handler.NewAvailabilityHandler(d.Availability)
	reservationHandler := handler.NewReservationHandler(d.Reservations)
	healthHandler := handler.NewHealthHandler(d.Pingers)

	auth := middleware.Auth(d.JWTSecret, d.Denylist)
	admin := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/user/:username", authHandler.GetUser, auth)

	// --- Destinations ---
	e.POST("/destination", destinationHandler.Create, auth, admin)
	e.GET("/destination", destinationHandler.List, auth)
	e.GET("/destination/:id", destinationHandler.Get, auth)
	e.PUT("/destination/:id", destinationHandler.Update, auth, admin)
	e.DELETE("/destination/:id", destinationHandler.Delete, auth, admin)

	// --- Availability ---
	e.GET("/available_destinations", availabilityHandler.Available, auth)
	e.GET("/unavailable_dates/:destination_id", availabilityHandler.UnavailableDates)

	// --- Reservations ---
	e.POST("/reservation", reservationHandler.Create, auth)
	e.GET("/reservation/:id", reservationHandler.ListByDestination, auth)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
