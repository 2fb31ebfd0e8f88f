package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/traveluniverse/booking-system/internal/core/domain"
)

const (
	defaultLockTTL   = 5 * time.Second
	lockRetryBackoff = 25 * time.Millisecond
)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReservationLock is a per-destination mutex shared by every API replica.
// Key format: travel:lock:destination:<destination_id>
type ReservationLock struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewReservationLock(client *redis.Client, ttl time.Duration, log zerolog.Logger) *ReservationLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &ReservationLock{client: client, ttl: ttl, log: log}
}

// Acquire retries until the lock is taken, ctx ends, or one lock TTL has
// passed. Giving up reports domain.ErrBookingInProgress.
func (l *ReservationLock) Acquire(ctx context.Context, destinationID int64) (func(), error) {
	key := lockKey(destinationID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.ttl)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("reservation lock: %w", err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, domain.ErrBookingInProgress
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryBackoff):
		}
	}
}

func (l *ReservationLock) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("failed to release reservation lock")
	}
}

func lockKey(destinationID int64) string {
	return fmt.Sprintf("travel:lock:destination:%d", destinationID)
}
