package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// unreachableClient points at a port nothing listens on.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "travel:unavailable:42", dateCacheKey(42))
	assert.Equal(t, "travel:unavailable:42:gen", generationKey(42))
	assert.Equal(t, "travel:lock:destination:7", lockKey(7))
	assert.Equal(t, "travel:revoked:abc", revokedKey("abc"))
}

func TestConnect_FailsWithoutServer(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}

func TestDateCache_SurfacesConnectionErrors(t *testing.T) {
	cache := NewDateCache(unreachableClient(t), 0)

	dates, ok, err := cache.GetDates(context.Background(), 1)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Nil(t, dates)
	assert.Equal(t, defaultCacheTTL, cache.ttl)

	_, err = cache.Generation(context.Background(), 1)
	assert.Error(t, err)

	stored, err := cache.SetDates(context.Background(), 1, 0, []string{"2024-01-01"})
	assert.Error(t, err)
	assert.False(t, stored)

	assert.Error(t, cache.Invalidate(context.Background(), 1))
}

func TestReservationLock_SurfacesConnectionErrors(t *testing.T) {
	lock := NewReservationLock(unreachableClient(t), 0, zerolog.Nop())

	release, err := lock.Acquire(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, release)
	assert.Equal(t, defaultLockTTL, lock.ttl)
}

func TestTokenDenylist_ExpiredTokenNeedsNoEntry(t *testing.T) {
	d := NewTokenDenylist(unreachableClient(t))

	// no round trip for a token that has already expired
	assert.NoError(t, d.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))

	_, err := d.IsRevoked(context.Background(), "x")
	assert.Error(t, err)
}
