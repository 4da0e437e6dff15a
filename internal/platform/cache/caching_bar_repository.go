// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stocksync/internal/feature/instruments/domain/entity"
)

const dateLayout = "2006-01-02"

// BarRepository is the full bar persistence surface this decorator wraps.
// It spans the read path used by the API and the write path used by the
// sync engine, so invalidation can happen where writes happen.
type BarRepository interface {
	FindRange(ctx context.Context, instrumentID uint, start, end time.Time) ([]entity.DailyBar, error)
	UpsertBatch(ctx context.Context, bars []entity.DailyBar) error
	LatestTradeDate(ctx context.Context, instrumentID uint) (time.Time, bool, error)
}

// CachingBarRepository decorates a BarRepository with Redis caching on the
// range-query path. It implements the decorator pattern, transparently
// adding caching without modifying the underlying repository.
type CachingBarRepository struct {
	inner     BarRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingBarRepository decorates a BarRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "bars".
func NewCachingBarRepository(rdb *redis.Client, ttl time.Duration, inner BarRepository, namespace string) *CachingBarRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "bars"
	}
	return &CachingBarRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpsertBatch writes bars through to the underlying repository and
// invalidates the cached ranges of every affected instrument.
func (c *CachingBarRepository) UpsertBatch(ctx context.Context, bars []entity.DailyBar) error {
	if err := c.inner.UpsertBatch(ctx, bars); err != nil {
		return err
	}
	if c.rdb == nil || len(bars) == 0 {
		return nil
	}

	seen := map[uint]struct{}{}
	for _, b := range bars {
		if _, ok := seen[b.InstrumentID]; ok {
			continue
		}
		seen[b.InstrumentID] = struct{}{}
		// Best effort: don't fail the write if cache deletion fails
		_ = c.deleteByPattern(ctx, c.cacheKeyPrefix(b.InstrumentID)+"*")
	}
	return nil
}

// FindRange retrieves bars, checking cache first then falling back to the database.
func (c *CachingBarRepository) FindRange(ctx context.Context, instrumentID uint, start, end time.Time) ([]entity.DailyBar, error) {
	if c.rdb == nil {
		return c.inner.FindRange(ctx, instrumentID, start, end)
	}

	key := c.cacheKey(instrumentID, start, end)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.DailyBar
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindRange(ctx, instrumentID, start, end)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// LatestTradeDate always reads the underlying repository. The sync engine's
// window computation depends on this value being current, so it is never cached.
func (c *CachingBarRepository) LatestTradeDate(ctx context.Context, instrumentID uint) (time.Time, bool, error) {
	return c.inner.LatestTradeDate(ctx, instrumentID)
}

// cacheKey generates a cache key for a specific range query.
func (c *CachingBarRepository) cacheKey(instrumentID uint, start, end time.Time) string {
	return fmt.Sprintf("%s:%d:%s:%s",
		c.namespace,
		instrumentID,
		start.Format(dateLayout),
		end.Format(dateLayout),
	)
}

// cacheKeyPrefix generates the key prefix covering all cached ranges of an instrument.
func (c *CachingBarRepository) cacheKeyPrefix(instrumentID uint) string {
	return fmt.Sprintf("%s:%d:", c.namespace, instrumentID)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingBarRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
