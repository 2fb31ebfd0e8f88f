package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/traveluniverse/booking-system/internal/core/domain"
	"github.com/traveluniverse/booking-system/internal/core/ports"
)

type DestinationService struct {
	destinations ports.DestinationRepository
	reservations ports.ReservationRepository
	cache        ports.DateCache // optional
	logger       zerolog.Logger
}

func NewDestinationService(
	destinations ports.DestinationRepository,
	reservations ports.ReservationRepository,
	cache ports.DateCache,
	logger zerolog.Logger,
) *DestinationService {
	return &DestinationService{
		destinations: destinations,
		reservations: reservations,
		cache:        cache,
		logger:       logger,
	}
}

func (s *DestinationService) Create(ctx context.Context, input ports.CreateDestinationInput) (*domain.Destination, error) {
	d := &domain.Destination{
		Title:       input.Title,
		Location:    input.Location,
		Description: input.Description,
		Price:       input.Price,
		Discount:    input.Discount,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	if err := s.destinations.Create(ctx, d); err != nil {
		s.logger.Error().Err(err).Msg("failed to create destination")
		return nil, fmt.Errorf("create destination: %w", err)
	}

	s.logger.Info().Int64("destination_id", d.ID).Str("title", d.Title).Msg("destination created")
	return d, nil
}

func (s *DestinationService) List(ctx context.Context) ([]domain.Destination, error) {
	list, err := s.destinations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	return list, nil
}

func (s *DestinationService) Get(ctx context.Context, id int64) (*domain.Destination, error) {
	return s.destinations.FindByID(ctx, id)
}

// Update applies patch to an existing destination. A missing destination is
// reported as domain.ErrDestinationNotFound before anything is written.
func (s *DestinationService) Update(ctx context.Context, id int64, patch domain.DestinationPatch) (*domain.Destination, error) {
	d, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.Apply(patch)
	if err := d.Validate(); err != nil {
		return nil, err
	}

	if err := s.destinations.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update destination: %w", err)
	}

	s.logger.Info().Int64("destination_id", id).Msg("destination updated")
	return d, nil
}

// Delete removes a destination that has no reservations.
func (s *DestinationService) Delete(ctx context.Context, id int64) error {
	if _, err := s.destinations.FindByID(ctx, id); err != nil {
		return err
	}

	n, err := s.reservations.CountByDestination(ctx, id)
	if err != nil {
		return fmt.Errorf("count reservations: %w", err)
	}
	if n > 0 {
		return domain.ErrDestinationInUse
	}

	if err := s.destinations.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete destination: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.logger.Warn().Err(err).Int64("destination_id", id).Msg("failed to invalidate date cache")
		}
	}

	s.logger.Info().Int64("destination_id", id).Msg("destination deleted")
	return nil
}
