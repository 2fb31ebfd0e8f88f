package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 10 * time.Minute

// setIfGenerationScript writes the dates only while the generation key still
// holds the value the caller read before querying the store. A missing
// generation key counts as 0.
//
// KEYS[1] generation key, KEYS[2] dates key
// ARGV[1] expected generation, ARGV[2] payload, ARGV[3] ttl in milliseconds
var setIfGenerationScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1]) or "0"
if current ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
return 1
`)

// DateCache keeps the unavailable dates of each destination as a JSON array.
// Key formats:
//
//	travel:unavailable:<destination_id>      cached dates
//	travel:unavailable:<destination_id>:gen  invalidation counter
type DateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDateCache(client *redis.Client, ttl time.Duration) *DateCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &DateCache{client: client, ttl: ttl}
}

func (c *DateCache) GetDates(ctx context.Context, destinationID int64) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, dateCacheKey(destinationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("date cache get: %w", err)
	}

	dates := make([]string, 0)
	if err := json.Unmarshal(raw, &dates); err != nil {
		return nil, false, fmt.Errorf("date cache decode: %w", err)
	}
	return dates, true, nil
}

func (c *DateCache) Generation(ctx context.Context, destinationID int64) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(destinationID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("date cache generation: %w", err)
	}
	return gen, nil
}

func (c *DateCache) SetDates(ctx context.Context, destinationID int64, gen int64, dates []string) (bool, error) {
	raw, err := json.Marshal(dates)
	if err != nil {
		return false, err
	}

	keys := []string{generationKey(destinationID), dateCacheKey(destinationID)}
	n, err := setIfGenerationScript.Run(ctx, c.client, keys,
		strconv.FormatInt(gen, 10), raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("date cache set: %w", err)
	}
	return n == 1, nil
}

// Invalidate bumps the generation and drops the cached dates in one
// transaction.
func (c *DateCache) Invalidate(ctx context.Context, destinationID int64) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(destinationID))
		pipe.Del(ctx, dateCacheKey(destinationID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("date cache invalidate: %w", err)
	}
	return nil
}

func dateCacheKey(destinationID int64) string {
	return fmt.Sprintf("travel:unavailable:%d", destinationID)
}

func generationKey(destinationID int64) string {
	return dateCacheKey(destinationID) + ":gen"
}
