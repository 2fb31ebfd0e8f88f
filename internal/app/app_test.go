package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveluniverse/booking-system/internal/infrastructure/config"
)

const seedYAML = `
users:
  - name: Alice
    username: alice
    password: secret
    role: customer
  - name: Ops
    username: ops
    password: secret
    role: admin
destinations:
  - title: Bali
    location: Indonesia
    price: 120
    discount: 10
  - title: Rome
    location: Italy
    description: Old town
    price: 90
    discount: 0
reservations:
  - username: alice
    destination: Bali
    check_in_date: "2024-03-01"
    check_out_date: "2024-03-04"
    total_price: 360
  - username: alice
    destination: Bali
    check_in_date: "2024-03-04"
    check_out_date: "2024-03-06"
    total_price: 240
  - username: ops
    destination: Rome
    check_in_date: "2024-03-02"
    check_out_date: "2024-03-02"
    total_price: 90
`

func newMemoryApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Env:           "development",
		JWTSecret:     "app-test-secret",
		TokenTTL:      time.Hour,
		StoreDriver:   config.DriverMemory,
		AdminUsername: "root",
		AdminPassword: "root-pass",
	}
	a, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func TestNew_MemoryDriver(t *testing.T) {
	a := newMemoryApp(t)
	ctx := context.Background()

	require.NoError(t, a.Migrate(ctx))
	require.NoError(t, a.EnsureAdmin(ctx))

	token, err := a.Auth.Login(ctx, "root", "root-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Contains(t, a.pingers, "store")
	assert.Nil(t, a.cache)
}

func TestNew_GeneratesSecretWhenMissing(t *testing.T) {
	cfg := &config.Config{Env: "development", StoreDriver: config.DriverMemory}
	a, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.NoError(t, a.Close(context.Background()))
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), &config.Config{StoreDriver: "sqlite", JWTSecret: "x"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestDecodeSeed_RejectsUnknownKeys(t *testing.T) {
	_, err := DecodeSeed(strings.NewReader("hotels:\n  - name: x\n"))
	assert.Error(t, err)

	sf, err := DecodeSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, sf.Users)
}

func TestSeed(t *testing.T) {
	a := newMemoryApp(t)
	ctx := context.Background()

	sf, err := DecodeSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	report, err := a.Seed(ctx, sf, 2)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{
		UsersCreated:         2,
		DestinationsCreated:  2,
		ReservationsCreated:  2,
		ReservationsRejected: 1,
	}, report)

	dates, err := a.Availability.UnavailableDates(ctx, "1", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"}, dates)

	// Users already exist the second time round.
	again, err := a.Seed(ctx, &SeedFile{Users: sf.Users}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, again.UsersSkipped)
	assert.Zero(t, again.UsersCreated)
}

func TestSeed_InvalidReservationFailsRun(t *testing.T) {
	a := newMemoryApp(t)

	sf := &SeedFile{
		Users:        []SeedUser{{Name: "A", Username: "a", Password: "p", Role: "customer"}},
		Destinations: []SeedDestination{{Title: "Bali", Location: "Indonesia", Price: 100}},
		Reservations: []SeedReservation{
			{Username: "a", Destination: "Bali", CheckIn: "2024-01-01", CheckOut: "2024-01-02"},
			{Username: "a", Destination: "Bali", CheckIn: "2024-01-02", CheckOut: "2024-01-03"},
			{Username: "a", Destination: "Bali", CheckIn: "01/05/2024", CheckOut: "2024-01-06"},
		},
	}
	report, err := a.Seed(context.Background(), sf, 1)
	assert.ErrorContains(t, err, "1 of 3 failed")
	assert.Equal(t, 1, report.ReservationsCreated)
	assert.Equal(t, 1, report.ReservationsRejected)
	assert.Equal(t, 1, report.ReservationsFailed)
}

func TestSeed_UnknownDestination(t *testing.T) {
	a := newMemoryApp(t)

	sf := &SeedFile{
		Users:        []SeedUser{{Name: "A", Username: "a", Password: "p", Role: "customer"}},
		Reservations: []SeedReservation{{Username: "a", Destination: "Atlantis", CheckIn: "2024-01-01", CheckOut: "2024-01-02"}},
	}
	_, err := a.Seed(context.Background(), sf, 1)
	assert.ErrorContains(t, err, "Atlantis")
}

func TestRouter_ReadinessUsesStore(t *testing.T) {
	a := newMemoryApp(t)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store"`)
}
