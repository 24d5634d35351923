package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/driftboard/driftboard-go/internal/metrics"
)

const (
	// ItemCacheTTL bounds staleness of single-item lookups; vote
	// mutations also invalidate the key explicitly.
	ItemCacheTTL = 5 * time.Minute
	// FeedCacheTTL is deliberately short: first feed pages are the
	// hottest read and are never invalidated on vote, they just expire.
	FeedCacheTTL = 30 * time.Second
)

// CacheService provides a Redis cache-aside layer for item lookups and
// first feed pages.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or
// the connection fails, caching silently degrades to no-ops.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetItem retrieves a cached item response. Returns nil on miss or when
// caching is disabled.
func (c *CacheService) GetItem(ctx context.Context, itemID int64) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, itemKey(itemID)).Bytes()
	if err == redis.Nil {
		metrics.IncCacheMiss()
		return nil, nil
	}
	if err == nil {
		metrics.IncCacheHit()
	}
	return data, err
}

// SetItem stores an item response in cache.
func (c *CacheService) SetItem(ctx context.Context, itemID int64, data any) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, itemKey(itemID), b, ItemCacheTTL).Err()
}

// InvalidateItem removes an item from cache (called after vote changes
// and hides).
func (c *CacheService) InvalidateItem(ctx context.Context, itemID int64) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, itemKey(itemID)).Err()
}

// GetFeedPage retrieves a cached first feed page. Returns nil on miss.
func (c *CacheService) GetFeedPage(ctx context.Context, key string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		metrics.IncCacheMiss()
		return nil, nil
	}
	if err == nil {
		metrics.IncCacheHit()
	}
	return data, err
}

// SetFeedPage stores a first feed page in cache.
func (c *CacheService) SetFeedPage(ctx context.Context, key string, data any) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, FeedCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func itemKey(itemID int64) string {
	return fmt.Sprintf("item:%d", itemID)
}

// FeedPageKey builds the cache key for a first feed page. Cursor pages
// are never cached.
func FeedPageKey(sort string, categoryID *int64, limit int) string {
	if categoryID != nil {
		return fmt.Sprintf("feed:%s:cat%d:n%d", sort, *categoryID, limit)
	}
	return fmt.Sprintf("feed:%s:all:n%d", sort, limit)
}
