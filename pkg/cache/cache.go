package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLCategories = 10 * time.Minute // category tree changes rarely
	TTLThreads    = 30 * time.Second // thread lists refresh often
	TTLUser       = 5 * time.Minute
	TTLDefault    = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixCategories = "categories:"
	PrefixThreads    = "threads:"
	PrefixUser       = "user:"
)

// Service is the Redis-backed read cache used by list-heavy endpoints
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	GetCategoryTree(ctx context.Context) ([]byte, error)
	SetCategoryTree(ctx context.Context, data interface{}) error
	InvalidateCategoryTree(ctx context.Context) error

	GetThreadList(ctx context.Context, categoryID string, page, limit int) ([]byte, error)
	SetThreadList(ctx context.Context, categoryID string, page, limit int, data interface{}) error
	InvalidateThreadLists(ctx context.Context, categoryID string) error

	GetUser(ctx context.Context, userID string) ([]byte, error)
	SetUser(ctx context.Context, userID string, data interface{}) error
	InvalidateUser(ctx context.Context, userID string) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // without Redis the cache is a no-op
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (c *redisCache) GetCategoryTree(ctx context.Context) ([]byte, error) {
	if c.client == nil {
		return nil, redis.Nil
	}
	return c.client.Get(ctx, PrefixCategories+"tree").Bytes()
}

func (c *redisCache) SetCategoryTree(ctx context.Context, data interface{}) error {
	return c.Set(ctx, PrefixCategories+"tree", data, TTLCategories)
}

func (c *redisCache) InvalidateCategoryTree(ctx context.Context) error {
	return c.Delete(ctx, PrefixCategories+"tree")
}

func (c *redisCache) threadListKey(categoryID string, page, limit int) string {
	if categoryID == "" {
		categoryID = "all"
	}
	return fmt.Sprintf("%s%s:%d:%d", PrefixThreads, categoryID, page, limit)
}

func (c *redisCache) GetThreadList(ctx context.Context, categoryID string, page, limit int) ([]byte, error) {
	if c.client == nil {
		return nil, redis.Nil
	}
	return c.client.Get(ctx, c.threadListKey(categoryID, page, limit)).Bytes()
}

func (c *redisCache) SetThreadList(ctx context.Context, categoryID string, page, limit int, data interface{}) error {
	return c.Set(ctx, c.threadListKey(categoryID, page, limit), data, TTLThreads)
}

// InvalidateThreadLists drops every cached page for a category (and the
// cross-category "all" lists, which a new thread also appears in).
func (c *redisCache) InvalidateThreadLists(ctx context.Context, categoryID string) error {
	if c.client == nil {
		return nil
	}
	patterns := []string{PrefixThreads + "all:*"}
	if categoryID != "" {
		patterns = append(patterns, PrefixThreads+categoryID+":*")
	}
	for _, pattern := range patterns {
		iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (c *redisCache) GetUser(ctx context.Context, userID string) ([]byte, error) {
	if c.client == nil {
		return nil, redis.Nil
	}
	return c.client.Get(ctx, PrefixUser+userID).Bytes()
}

func (c *redisCache) SetUser(ctx context.Context, userID string, data interface{}) error {
	return c.Set(ctx, PrefixUser+userID, data, TTLUser)
}

func (c *redisCache) InvalidateUser(ctx context.Context, userID string) error {
	return c.Delete(ctx, PrefixUser+userID)
}
