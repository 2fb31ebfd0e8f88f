package service

import (
	"context"
	"sort"
	"time"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubDestinationRepo struct {
	byID      map[int64]*domain.Destination
	nextID    int64
	err       error // if set, every call returns this error
	updated   int
	deletedID int64
}

func newStubDestinationRepo(seed ...domain.Destination) *stubDestinationRepo {
	r := &stubDestinationRepo{byID: make(map[int64]*domain.Destination)}
	for _, d := range seed {
		clone := d
		r.byID[d.ID] = &clone
		if d.ID > r.nextID {
			r.nextID = d.ID
		}
	}
	return r
}

func (r *stubDestinationRepo) Create(_ context.Context, d *domain.Destination) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	d.ID = r.nextID
	clone := *d
	r.byID[d.ID] = &clone
	return nil
}

func (r *stubDestinationRepo) FindByID(_ context.Context, id int64) (*domain.Destination, error) {
	if r.err != nil {
		return nil, r.err
	}
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDestinationNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDestinationRepo) List(ctx context.Context) ([]domain.Destination, error) {
	return r.ListExcluding(ctx, nil)
}

func (r *stubDestinationRepo) ListExcluding(_ context.Context, ids []int64) ([]domain.Destination, error) {
	if r.err != nil {
		return nil, r.err
	}
	skip := make(map[int64]bool, len(ids))
	for _, id := range ids {
		skip[id] = true
	}
	out := make([]domain.Destination, 0, len(r.byID))
	for id, d := range r.byID {
		if !skip[id] {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubDestinationRepo) Update(_ context.Context, d *domain.Destination) error {
	if r.err != nil {
		return r.err
	}
	clone := *d
	r.byID[d.ID] = &clone
	r.updated++
	return nil
}

func (r *stubDestinationRepo) Delete(_ context.Context, id int64) error {
	if r.err != nil {
		return r.err
	}
	delete(r.byID, id)
	r.deletedID = id
	return nil
}

type stubReservationRepo struct {
	items     []domain.Reservation
	err       error
	findCalls int
	// afterFind runs once, after FindByDestination has taken its snapshot.
	afterFind func()
}

func (r *stubReservationRepo) CreateIfAvailable(_ context.Context, res *domain.Reservation) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.items {
		if existing.DestinationID == res.DestinationID && existing.Overlaps(res.CheckIn, res.CheckOut) {
			return domain.ErrReservationConflict
		}
	}
	res.ID = int64(len(r.items) + 1)
	r.items = append(r.items, *res)
	return nil
}

func (r *stubReservationRepo) FindByDestination(_ context.Context, destinationID int64) ([]domain.Reservation, error) {
	r.findCalls++
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Reservation
	for _, res := range r.items {
		if res.DestinationID == destinationID {
			out = append(out, res)
		}
	}
	if hook := r.afterFind; hook != nil {
		r.afterFind = nil
		hook()
	}
	return out, nil
}

func (r *stubReservationRepo) FindOverlapping(_ context.Context, start, end time.Time) ([]domain.Reservation, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Reservation
	for _, res := range r.items {
		if res.Overlaps(start, end) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *stubReservationRepo) CountByDestination(_ context.Context, destinationID int64) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, res := range r.items {
		if res.DestinationID == destinationID {
			n++
		}
	}
	return n, nil
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	user.ID = int64(len(r.users) + 1)
	r.users[user.Username] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, username, hash, role string) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.Role = role
	return nil
}

// ---------------------------------------------------------------------------
// Coordination stubs
// ---------------------------------------------------------------------------

type stubLocker struct {
	acquired []int64
	released int
	err      error
}

func (l *stubLocker) Acquire(_ context.Context, destinationID int64) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.acquired = append(l.acquired, destinationID)
	return func() { l.released++ }, nil
}

type stubCache struct {
	dates       map[int64][]string
	gens        map[int64]int64
	getErr      error
	invalidated []int64
	skipped     int
}

func newStubCache() *stubCache {
	return &stubCache{dates: make(map[int64][]string), gens: make(map[int64]int64)}
}

func (c *stubCache) GetDates(_ context.Context, id int64) ([]string, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	d, ok := c.dates[id]
	return d, ok, nil
}

func (c *stubCache) Generation(_ context.Context, id int64) (int64, error) {
	return c.gens[id], nil
}

func (c *stubCache) SetDates(_ context.Context, id int64, gen int64, dates []string) (bool, error) {
	if c.gens[id] != gen {
		c.skipped++
		return false, nil
	}
	c.dates[id] = dates
	return true, nil
}

func (c *stubCache) Invalidate(_ context.Context, id int64) error {
	c.gens[id]++
	delete(c.dates, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type stubDenylist struct {
	revoked map[string]time.Time
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Time)}
}

func (d *stubDenylist) Revoke(_ context.Context, jti string, until time.Time) error {
	d.revoked[jti] = until
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := d.revoked[jti]
	return ok, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func reservation(destinationID int64, checkIn, checkOut string) domain.Reservation {
	return domain.Reservation{DestinationID: destinationID, CheckIn: date(checkIn), CheckOut: date(checkOut)}
}
