package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key is absent; callers fall through to the
// database and repopulate.
var ErrMiss = errors.New("cache miss")

// Cache is a cache-aside layer over redis. Entries are written with a TTL
// and deleted, never updated in place, when the underlying data mutates.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Result()

	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}

	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), dest)
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// NotificationsKey is the cache key for a recipient's notification list.
func NotificationsKey(userID uint) string {
	return fmt.Sprintf("notifications:%d", userID)
}

// DashboardKey is the cache key for an organization's dashboard summary.
func DashboardKey(orgID uint) string {
	return fmt.Sprintf("dashboard:%d", orgID)
}
