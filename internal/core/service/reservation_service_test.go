package service

import (
	"context"
	"errors"
	"testing"

	"github.com/traveluniverse/booking-system/internal/core/domain"
	"github.com/traveluniverse/booking-system/internal/core/ports"
)

type reservationFixture struct {
	svc    *ReservationService
	res    *stubReservationRepo
	locker *stubLocker
	cache  *stubCache
}

func newReservationFixture(t *testing.T) reservationFixture {
	t.Helper()
	users := newStubUserRepo()
	if err := users.Create(context.Background(), &domain.User{Username: "alice", Role: domain.RoleCustomer}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	dests := newStubDestinationRepo(domain.Destination{ID: 1, Title: "Bali", Location: "Indonesia"})
	f := reservationFixture{
		res:    &stubReservationRepo{},
		locker: &stubLocker{},
		cache:  newStubCache(),
	}
	f.svc = NewReservationService(f.res, dests, users, f.locker, f.cache, discardLogger)
	return f
}

func bookingInput(checkIn, checkOut string) ports.CreateReservationInput {
	return ports.CreateReservationInput{UserID: 1, DestinationID: 1, CheckIn: checkIn, CheckOut: checkOut, TotalPrice: 300}
}

func TestReservationService_Create_Success(t *testing.T) {
	f := newReservationFixture(t)

	r, err := f.svc.Create(context.Background(), bookingInput("2024-01-01", "2024-01-03"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID == 0 || r.CreatedAt.IsZero() {
		t.Fatalf("expected stored reservation, got %+v", r)
	}
	if !r.CheckIn.Equal(date("2024-01-01")) || !r.CheckOut.Equal(date("2024-01-03")) {
		t.Fatalf("dates not parsed: %+v", r)
	}
	if len(f.locker.acquired) != 1 || f.locker.released != 1 {
		t.Fatalf("lock must be acquired and released once: %+v", f.locker)
	}
	if len(f.cache.invalidated) != 1 {
		t.Fatalf("expected date cache invalidation")
	}
}

func TestReservationService_Create_SameDayStayAllowed(t *testing.T) {
	f := newReservationFixture(t)

	if _, err := f.svc.Create(context.Background(), bookingInput("2024-01-01", "2024-01-01")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReservationService_Create_InvalidInput(t *testing.T) {
	f := newReservationFixture(t)

	inputs := []ports.CreateReservationInput{
		bookingInput("2024/01/01", "2024-01-02"),
		bookingInput("2024-01-01", ""),
		bookingInput("2024-01-05", "2024-01-01"),
		{UserID: 1, DestinationID: 1, CheckIn: "2024-01-01", CheckOut: "2024-01-02", TotalPrice: -5},
	}
	for i, in := range inputs {
		if _, err := f.svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
	if len(f.res.items) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestReservationService_Create_UnknownReferences(t *testing.T) {
	f := newReservationFixture(t)

	in := bookingInput("2024-01-01", "2024-01-02")
	in.UserID = 99
	if _, err := f.svc.Create(context.Background(), in); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	in = bookingInput("2024-01-01", "2024-01-02")
	in.DestinationID = 99
	if _, err := f.svc.Create(context.Background(), in); !errors.Is(err, domain.ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound, got %v", err)
	}
}

func TestReservationService_Create_Conflict(t *testing.T) {
	f := newReservationFixture(t)

	if _, err := f.svc.Create(context.Background(), bookingInput("2024-01-01", "2024-01-05")); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	// check-in on the previous check-out day still overlaps
	_, err := f.svc.Create(context.Background(), bookingInput("2024-01-05", "2024-01-07"))
	if !errors.Is(err, domain.ErrReservationConflict) {
		t.Fatalf("expected ErrReservationConflict, got %v", err)
	}
	if f.locker.released != 2 {
		t.Fatalf("lock must be released on conflict, released=%d", f.locker.released)
	}
}

func TestReservationService_Create_LockFailure(t *testing.T) {
	f := newReservationFixture(t)
	f.locker.err = domain.ErrBookingInProgress

	_, err := f.svc.Create(context.Background(), bookingInput("2024-01-01", "2024-01-02"))
	if !errors.Is(err, domain.ErrBookingInProgress) {
		t.Fatalf("expected ErrBookingInProgress, got %v", err)
	}
}

func TestReservationService_ListByDestination(t *testing.T) {
	f := newReservationFixture(t)
	_, _ = f.svc.Create(context.Background(), bookingInput("2024-01-01", "2024-01-02"))

	list, err := f.svc.ListByDestination(context.Background(), "1")
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected result: %v, %v", list, err)
	}

	if _, err := f.svc.ListByDestination(context.Background(), "2"); !errors.Is(err, domain.ErrReservationsNotFound) {
		t.Fatalf("expected ErrReservationsNotFound, got %v", err)
	}
	if _, err := f.svc.ListByDestination(context.Background(), "x"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
