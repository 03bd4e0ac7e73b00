package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/temidayo/currency-exchange-service/internal/apperrors"
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	portsrepo "github.com/temidayo/currency-exchange-service/internal/core/ports/repositories"
)

// RedisRateCache keeps the freshest snapshot per currency pair in redis under a TTL.
// Entries expire on their own; readers fall through to the snapshot store on a miss.
type RedisRateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRateCache creates a redis-backed rate cache with the given entry TTL.
func NewRedisRateCache(client *redis.Client, ttl time.Duration) portsrepo.RateCache {
	return &RedisRateCache{
		client: client,
		ttl:    ttl,
	}
}

// Ensure implementation matches interface
var _ portsrepo.RateCache = (*RedisRateCache)(nil)

func cacheKey(pivot, quote domain.CurrencyCode) string {
	return fmt.Sprintf("rate:%s:%s", pivot, quote)
}

// Get returns the cached snapshot for the pair, or apperrors.ErrNotFound on a miss.
func (c *RedisRateCache) Get(ctx context.Context, pivot, quote domain.CurrencyCode) (*domain.CachedRate, error) {
	data, err := c.client.Get(ctx, cacheKey(pivot, quote)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: no cached rate for %s/%s", apperrors.ErrNotFound, pivot, quote)
		}
		return nil, fmt.Errorf("failed to read cached rate for %s/%s: %w", pivot, quote, err)
	}

	var cached domain.CachedRate
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to decode cached rate for %s/%s: %w", pivot, quote, err)
	}
	return &cached, nil
}

// Put overwrites the cached snapshot for the pair and resets its TTL.
func (c *RedisRateCache) Put(ctx context.Context, snapshot domain.RateSnapshot) error {
	cached := domain.CachedRate{
		RateSnapshot: snapshot,
		CachedAt:     time.Now().UTC(),
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to encode rate for cache: %w", err)
	}

	key := cacheKey(snapshot.PivotCurrency, snapshot.QuoteCurrency)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache rate for %s/%s: %w", snapshot.PivotCurrency, snapshot.QuoteCurrency, err)
	}
	return nil
}
