// Package statscache caches dashboard aggregates in Redis.
//
// Entries are keyed by a generation counter. Any lead mutation bumps the
// counter, which orphans every cached entry at once; orphans expire by TTL.
package statscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leadflow/leadflow-backend/internal/domain"
)

const (
	keyPrefix     = "leadflow:stats:"
	generationKey = keyPrefix + "gen"
)

// Cache is a Redis-backed store for domain.LeadStats.
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// New constructs a cache whose entries live for ttl.
func New(client redis.UniversalClient, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get loads the stats cached for scope. A miss returns nil stats and no
// error. The returned generation must be passed back to Set so that a result
// computed before a concurrent invalidation is never served.
func (c *Cache) Get(ctx context.Context, scope string) (*domain.LeadStats, int64, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, err
	}

	payload, err := c.client.Get(ctx, entryKey(gen, scope)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, nil
		}
		return nil, gen, fmt.Errorf("load stats: %w", err)
	}

	var stats domain.LeadStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, gen, fmt.Errorf("decode stats: %w", err)
	}
	return &stats, gen, nil
}

// Set stores stats for scope under generation gen.
func (c *Cache) Set(ctx context.Context, scope string, gen int64, stats *domain.LeadStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := c.client.Set(ctx, entryKey(gen, scope), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("persist stats: %w", err)
	}
	return nil
}

// Invalidate drops every cached scope by advancing the generation.
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("bump stats generation: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("load stats generation: %w", err)
	}
	return gen, nil
}

func entryKey(gen int64, scope string) string {
	return fmt.Sprintf("%s%d:%s", keyPrefix, gen, scope)
}
