package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/burrowhq/burrow/internal/model"
)

// Cache is a read-through redis cache in front of another Source. Item
// records change rarely, so a short TTL keeps repeated partial loads of the
// same discussion from hammering the upstream API. A redis failure falls
// back to the upstream lookup; the cache never turns a working source into
// a broken one.
type Cache struct {
	src    Source
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewCache connects to redis at the given URL and wraps src.
func NewCache(src Source, redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewCacheWithClient(src, client, ttl), nil
}

// NewCacheWithClient wraps src using an existing redis client.
func NewCacheWithClient(src Source, client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		src:    src,
		client: client,
		ttl:    ttl,
		prefix: "item:",
	}
}

func (c *Cache) key(id int64) string {
	return c.prefix + strconv.FormatInt(id, 10)
}

// Item returns the cached record for id, or fetches and caches it. Only
// successful lookups are cached; NotFound is answered by the upstream every
// time so a late-appearing item is not masked.
func (c *Cache) Item(ctx context.Context, id int64) (model.Item, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Result()
	if err == nil {
		var item model.Item
		if err := json.Unmarshal([]byte(raw), &item); err == nil {
			return item, nil
		}
		// Unreadable entry; treat as a miss and overwrite below.
	}

	item, err := c.src.Item(ctx, id)
	if err != nil {
		return model.Item{}, err
	}

	if data, err := json.Marshal(item); err == nil {
		// Best effort; a write failure only costs a future cache hit.
		_ = c.client.Set(ctx, c.key(id), data, c.ttl).Err()
	}
	return item, nil
}

// Close closes the redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ping checks that redis is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
