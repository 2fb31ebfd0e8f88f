package memory

import (
	"context"
	"sync"
	"time"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

const defaultLockWait = 5 * time.Second

// Locker serialises bookings per destination inside one process.
type Locker struct {
	mu    sync.Mutex
	slots map[int64]chan struct{}
	wait  time.Duration
}

// NewLocker returns a Locker whose Acquire gives up after wait.
func NewLocker(wait time.Duration) *Locker {
	if wait <= 0 {
		wait = defaultLockWait
	}
	return &Locker{slots: make(map[int64]chan struct{}), wait: wait}
}

func (l *Locker) slot(id int64) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[id]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[id] = ch
	}
	return ch
}

// Acquire waits for the destination slot. Waiting longer than the lock wait
// reports domain.ErrBookingInProgress.
func (l *Locker) Acquire(ctx context.Context, destinationID int64) (func(), error) {
	ch := l.slot(destinationID)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, nil
	case <-timer.C:
		return nil, domain.ErrBookingInProgress
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Denylist remembers revoked token ids until their expiry.
type Denylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewDenylist() *Denylist {
	return &Denylist{revoked: make(map[string]time.Time), now: time.Now}
}

func (d *Denylist) Revoke(_ context.Context, jti string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = until
	return nil
}

func (d *Denylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.revoked[jti]
	if !ok {
		return false, nil
	}
	if d.now().After(until) {
		delete(d.revoked, jti)
		return false, nil
	}
	return true, nil
}
