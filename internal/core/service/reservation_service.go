package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/traveluniverse/booking-system/internal/core/domain"
	"github.com/traveluniverse/booking-system/internal/core/ports"
)

type ReservationService struct {
	reservations ports.ReservationRepository
	destinations ports.DestinationRepository
	users        ports.UserRepository
	locker       ports.ReservationLocker
	cache        ports.DateCache // optional
	logger       zerolog.Logger
}

func NewReservationService(
	reservations ports.ReservationRepository,
	destinations ports.DestinationRepository,
	users ports.UserRepository,
	locker ports.ReservationLocker,
	cache ports.DateCache,
	logger zerolog.Logger,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		destinations: destinations,
		users:        users,
		locker:       locker,
		cache:        cache,
		logger:       logger,
	}
}

// Create books a destination for a user. The overlap check and the insert run
// under the destination lock so concurrent requests cannot double-book.
func (s *ReservationService) Create(ctx context.Context, input ports.CreateReservationInput) (*domain.Reservation, error) {
	checkIn, err := domain.ParseDate(input.CheckIn)
	if err != nil {
		return nil, domain.InvalidInput(msgInvalidDateFormat)
	}
	checkOut, err := domain.ParseDate(input.CheckOut)
	if err != nil {
		return nil, domain.InvalidInput(msgInvalidDateFormat)
	}
	if checkIn.After(checkOut) {
		return nil, domain.InvalidInput(msgInvertedRange)
	}
	if input.TotalPrice < 0 {
		return nil, domain.InvalidInput("total_price must not be negative")
	}

	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}
	if _, err := s.destinations.FindByID(ctx, input.DestinationID); err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, input.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("acquire reservation lock: %w", err)
	}
	defer release()

	r := &domain.Reservation{
		UserID:        input.UserID,
		DestinationID: input.DestinationID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		TotalPrice:    input.TotalPrice,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.reservations.CreateIfAvailable(ctx, r); err != nil {
		if errors.Is(err, domain.ErrReservationConflict) {
			s.logger.Info().
				Int64("destination_id", input.DestinationID).
				Str("check_in", input.CheckIn).
				Str("check_out", input.CheckOut).
				Msg("reservation rejected: dates taken")
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create reservation")
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, r.DestinationID); err != nil {
			s.logger.Warn().Err(err).Int64("destination_id", r.DestinationID).Msg("failed to invalidate date cache")
		}
	}

	s.logger.Info().
		Int64("reservation_id", r.ID).
		Int64("destination_id", r.DestinationID).
		Int64("user_id", r.UserID).
		Msg("reservation created")
	return r, nil
}

func (s *ReservationService) ListByDestination(ctx context.Context, destinationID string) ([]domain.Reservation, error) {
	id, err := strconv.ParseInt(destinationID, 10, 64)
	if err != nil {
		return nil, domain.InvalidInput(msgInvalidDestID)
	}

	list, err := s.reservations.FindByDestination(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find reservations: %w", err)
	}
	if len(list) == 0 {
		return nil, domain.ErrReservationsNotFound
	}
	return list, nil
}
