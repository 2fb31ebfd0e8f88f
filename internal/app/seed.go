package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/traveluniverse/booking-system/internal/core/domain"
	"github.com/traveluniverse/booking-system/internal/core/ports"
	"github.com/traveluniverse/booking-system/internal/infrastructure/queue"
)

// SeedFile is the YAML document accepted by the seed command.
type SeedFile struct {
	Users        []SeedUser        `yaml:"users"`
	Destinations []SeedDestination `yaml:"destinations"`
	Reservations []SeedReservation `yaml:"reservations"`
}

type SeedUser struct {
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type SeedDestination struct {
	Title       string  `yaml:"title"`
	Location    string  `yaml:"location"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Discount    int     `yaml:"discount"`
}

// SeedReservation refers to its user by username and to its destination by
// title; both must appear earlier in the same file.
type SeedReservation struct {
	Username    string  `yaml:"username"`
	Destination string  `yaml:"destination"`
	CheckIn     string  `yaml:"check_in_date"`
	CheckOut    string  `yaml:"check_out_date"`
	TotalPrice  float64 `yaml:"total_price"`
}

// SeedReport counts what a seed run wrote.
type SeedReport struct {
	UsersCreated         int
	UsersSkipped         int
	DestinationsCreated  int
	ReservationsCreated  int
	ReservationsRejected int
	ReservationsFailed   int
}

// LoadSeedFile decodes a seed document from path.
func LoadSeedFile(path string) (*SeedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return DecodeSeed(f)
}

// DecodeSeed decodes a seed document, rejecting unknown keys.
func DecodeSeed(r io.Reader) (*SeedFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sf SeedFile
	if err := dec.Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &sf, nil
}

// Seed writes the users, destinations and reservations of sf. Existing
// usernames are skipped. Reservations go through the booking rules, so
// overlapping entries are rejected and counted rather than failing the run.
// Any other reservation error fails the run; the returned report still
// carries the counts.
func (a *App) Seed(ctx context.Context, sf *SeedFile, workers int) (SeedReport, error) {
	var report SeedReport

	for _, u := range sf.Users {
		_, err := a.Auth.Register(ctx, ports.RegisterInput{Name: u.Name, Username: u.Username, Password: u.Password, Role: u.Role})
		switch {
		case errors.Is(err, domain.ErrUserExists):
			report.UsersSkipped++
		case err != nil:
			return report, fmt.Errorf("seed user %q: %w", u.Username, err)
		default:
			report.UsersCreated++
		}
	}

	destIDs := make(map[string]int64, len(sf.Destinations))
	for _, d := range sf.Destinations {
		created, err := a.Destinations.Create(ctx, ports.CreateDestinationInput{
			Title:       d.Title,
			Location:    d.Location,
			Description: d.Description,
			Price:       d.Price,
			Discount:    d.Discount,
		})
		if err != nil {
			return report, fmt.Errorf("seed destination %q: %w", d.Title, err)
		}
		destIDs[d.Title] = created.ID
		report.DestinationsCreated++
	}

	batch := make([]ports.CreateReservationInput, 0, len(sf.Reservations))
	for _, r := range sf.Reservations {
		destID, ok := destIDs[r.Destination]
		if !ok {
			return report, fmt.Errorf("seed reservation: unknown destination %q", r.Destination)
		}
		user, err := a.Auth.GetUser(ctx, r.Username)
		if err != nil {
			return report, fmt.Errorf("seed reservation: user %q: %w", r.Username, err)
		}
		batch = append(batch, ports.CreateReservationInput{
			UserID:        user.ID,
			DestinationID: destID,
			CheckIn:       r.CheckIn,
			CheckOut:      r.CheckOut,
			TotalPrice:    r.TotalPrice,
		})
	}

	if len(batch) > 0 {
		d := queue.NewDispatcher(workers, a.Reservations, a.log.With().Str("component", "seed").Logger())
		d.Start(ctx)
		enqueueErr := d.EnqueueBatch(ctx, batch)
		stats := d.Close()
		report.ReservationsCreated = stats.Created
		report.ReservationsRejected = stats.Rejected
		// anything not created or rejected failed, including requests that
		// never made it into the queue
		report.ReservationsFailed = len(batch) - stats.Created - stats.Rejected

		if enqueueErr != nil {
			return report, fmt.Errorf("seed reservations: %w", enqueueErr)
		}
		if report.ReservationsFailed > 0 {
			return report, fmt.Errorf("seed reservations: %d of %d failed", report.ReservationsFailed, len(batch))
		}
	}

	a.log.Info().
		Int("users", report.UsersCreated).
		Int("destinations", report.DestinationsCreated).
		Int("reservations", report.ReservationsCreated).
		Int("rejected", report.ReservationsRejected).
		Msg("seed complete")
	return report, nil
}
