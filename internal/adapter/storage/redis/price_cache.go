package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"alias-wallet-orchestrator/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const priceKey = "price:unit"

// PriceCache implements ports.PriceCache using Redis, so all instances share
// one view of the last fetched unit price.
type PriceCache struct {
	client *goredis.Client
}

// NewPriceCache creates a new Redis-backed price cache.
func NewPriceCache(client *goredis.Client) *PriceCache {
	return &PriceCache{client: client}
}

// Get retrieves the cached unit price. Returns nil, nil when nothing is
// cached or the entry has expired.
func (c *PriceCache) Get(ctx context.Context) (*ports.UnitPrice, error) {
	val, err := c.client.Get(ctx, priceKey).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis price get: %w", err)
	}

	var price ports.UnitPrice
	if err := json.Unmarshal(val, &price); err != nil {
		return nil, fmt.Errorf("decode cached price: %w", err)
	}
	return &price, nil
}

// Set stores the unit price with a retention TTL. Staleness is judged by the
// caller from FetchedAt; the Redis expiry only bounds how long a stale value
// stays available as a fallback.
func (c *PriceCache) Set(ctx context.Context, price *ports.UnitPrice, ttl time.Duration) error {
	data, err := json.Marshal(price)
	if err != nil {
		return fmt.Errorf("encode price: %w", err)
	}
	if err := c.client.Set(ctx, priceKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis price set: %w", err)
	}
	return nil
}
