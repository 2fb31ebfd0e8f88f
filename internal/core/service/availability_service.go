package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/traveluniverse/booking-system/internal/core/domain"
	"github.com/traveluniverse/booking-system/internal/core/ports"
)

const (
	msgMissingDates      = "Please provide check_in_date and check_out_date parameters"
	msgInvalidDateFormat = "Invalid date format. Please provide dates in YYYY-MM-DD format"
	msgInvertedRange     = "check_in_date must be on or before check_out_date"
	msgInvalidDestID     = "Invalid destination ID"
)

// AvailabilityService computes free destinations and reserved days.
type AvailabilityService struct {
	destinations ports.DestinationRepository
	reservations ports.ReservationRepository
	cache        ports.DateCache // optional
	log          zerolog.Logger
}

// NewAvailabilityService wires the engine to its stores. cache may be nil.
func NewAvailabilityService(
	destinations ports.DestinationRepository,
	reservations ports.ReservationRepository,
	cache ports.DateCache,
	log zerolog.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		destinations: destinations,
		reservations: reservations,
		cache:        cache,
		log:          log,
	}
}

// FindAvailableDestinations returns every destination that has no reservation
// overlapping the closed interval [checkIn, checkOut].
func (s *AvailabilityService) FindAvailableDestinations(ctx context.Context, checkIn, checkOut string) ([]domain.Destination, error) {
	if checkIn == "" || checkOut == "" {
		return nil, domain.InvalidInput(msgMissingDates)
	}
	start, err := domain.ParseDate(checkIn)
	if err != nil {
		return nil, domain.InvalidInput(msgInvalidDateFormat)
	}
	end, err := domain.ParseDate(checkOut)
	if err != nil {
		return nil, domain.InvalidInput(msgInvalidDateFormat)
	}
	if start.After(end) {
		return nil, domain.InvalidInput(msgInvertedRange)
	}

	overlapping, err := s.reservations.FindOverlapping(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("find overlapping reservations: %w", err)
	}
	taken := domain.DestinationIDs(overlapping)

	available, err := s.destinations.ListExcluding(ctx, taken)
	if err != nil {
		return nil, fmt.Errorf("list available destinations: %w", err)
	}

	s.log.Debug().
		Str("check_in", checkIn).
		Str("check_out", checkOut).
		Int("conflicts", len(taken)).
		Int("available", len(available)).
		Msg("availability computed")

	if len(available) == 0 {
		return nil, domain.ErrNoAvailability
	}
	return available, nil
}

// UnavailableDates enumerates the reserved days of a destination in
// reservation order.
func (s *AvailabilityService) UnavailableDates(ctx context.Context, destinationID string, distinct bool) ([]string, error) {
	id, err := strconv.ParseInt(destinationID, 10, 64)
	if err != nil {
		return nil, domain.InvalidInput(msgInvalidDestID)
	}

	dates, err := s.reservedDays(ctx, id)
	if err != nil {
		return nil, err
	}
	if distinct {
		return domain.DistinctDates(dates), nil
	}
	return dates, nil
}

func (s *AvailabilityService) reservedDays(ctx context.Context, id int64) ([]string, error) {
	var (
		gen      int64
		cacheGen bool
	)
	if s.cache != nil {
		dates, ok, err := s.cache.GetDates(ctx, id)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Int64("destination_id", id).Msg("date cache read failed, using store")
		case ok:
			return dates, nil
		}

		// The generation must be read before the store so a booking that
		// lands in between makes the write-back below a no-op.
		if gen, err = s.cache.Generation(ctx, id); err != nil {
			s.log.Warn().Err(err).Int64("destination_id", id).Msg("date cache generation read failed")
		} else {
			cacheGen = true
		}
	}

	reservations, err := s.reservations.FindByDestination(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find reservations: %w", err)
	}
	dates := domain.UnavailableDates(reservations)

	if cacheGen {
		stored, err := s.cache.SetDates(ctx, id, gen, dates)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Int64("destination_id", id).Msg("date cache write failed")
		case !stored:
			s.log.Debug().Int64("destination_id", id).Msg("date cache write skipped, reservations changed")
		}
	}
	return dates, nil
}
