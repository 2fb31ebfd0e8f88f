// Package memory keeps destinations, reservations and users in process
// memory. It backs STORE_DRIVER=memory and the end-to-end tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

// Store holds every collection behind one lock so reservation inserts can
// check for overlaps atomically.
type Store struct {
	mu           sync.RWMutex
	destinations map[int64]domain.Destination
	reservations map[int64]domain.Reservation
	users        map[int64]domain.User
	seq          map[string]int64
}

func NewStore() *Store {
	return &Store{
		destinations: make(map[int64]domain.Destination),
		reservations: make(map[int64]domain.Reservation),
		users:        make(map[int64]domain.User),
		seq:          make(map[string]int64),
	}
}

func (s *Store) Destinations() *DestinationRepository { return &DestinationRepository{s: s} }
func (s *Store) Reservations() *ReservationRepository { return &ReservationRepository{s: s} }
func (s *Store) Users() *UserRepository               { return &UserRepository{s: s} }

// Ping satisfies the readiness check.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) next(name string) int64 {
	s.seq[name]++
	return s.seq[name]
}

type DestinationRepository struct{ s *Store }

func (r *DestinationRepository) Create(_ context.Context, d *domain.Destination) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d.ID = r.s.next("destinations")
	r.s.destinations[d.ID] = *d
	return nil
}

func (r *DestinationRepository) FindByID(_ context.Context, id int64) (*domain.Destination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.destinations[id]
	if !ok {
		return nil, domain.ErrDestinationNotFound
	}
	return &d, nil
}

func (r *DestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	return r.ListExcluding(ctx, nil)
}

func (r *DestinationRepository) ListExcluding(_ context.Context, ids []int64) ([]domain.Destination, error) {
	skip := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		skip[id] = struct{}{}
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Destination, 0, len(r.s.destinations))
	for id, d := range r.s.destinations {
		if _, ok := skip[id]; !ok {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *DestinationRepository) Update(_ context.Context, d *domain.Destination) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.destinations[d.ID]; !ok {
		return domain.ErrDestinationNotFound
	}
	r.s.destinations[d.ID] = *d
	return nil
}

func (r *DestinationRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.destinations[id]; !ok {
		return domain.ErrDestinationNotFound
	}
	delete(r.s.destinations, id)
	return nil
}

type ReservationRepository struct{ s *Store }

func (r *ReservationRepository) CreateIfAvailable(_ context.Context, res *domain.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.reservations {
		if existing.DestinationID == res.DestinationID && existing.Overlaps(res.CheckIn, res.CheckOut) {
			return domain.ErrReservationConflict
		}
	}
	res.ID = r.s.next("reservations")
	r.s.reservations[res.ID] = *res
	return nil
}

func (r *ReservationRepository) FindByDestination(_ context.Context, destinationID int64) ([]domain.Reservation, error) {
	return r.filter(func(res domain.Reservation) bool { return res.DestinationID == destinationID }), nil
}

func (r *ReservationRepository) FindOverlapping(_ context.Context, start, end time.Time) ([]domain.Reservation, error) {
	return r.filter(func(res domain.Reservation) bool { return res.Overlaps(start, end) }), nil
}

func (r *ReservationRepository) CountByDestination(ctx context.Context, destinationID int64) (int64, error) {
	list, _ := r.FindByDestination(ctx, destinationID)
	return int64(len(list)), nil
}

func (r *ReservationRepository) filter(keep func(domain.Reservation) bool) []domain.Reservation {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Reservation
	for _, res := range r.s.reservations {
		if keep(res) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return domain.ErrUserExists
		}
	}
	user.ID = r.s.next("users")
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) UpdatePassword(_ context.Context, username, passwordHash, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, u := range r.s.users {
		if u.Username == username {
			u.PasswordHash = passwordHash
			u.Role = role
			r.s.users[id] = u
			return nil
		}
	}
	return domain.ErrUserNotFound
}
