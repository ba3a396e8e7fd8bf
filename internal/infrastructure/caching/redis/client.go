package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces every key so the service can share a Redis instance
// with the rest of the platform without collisions.
const keyPrefix = "recommendation-service:"

const pingTimeout = 2 * time.Second

// Client is a JSON cache on top of go-redis. The service runs fine without
// it; callers treat a nil *Client as "no cache".
type Client struct {
	rdb *redis.Client
}

// New connects using a redis:// URL and verifies the server is reachable.
func New(url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func namespaced(key string) string {
	return keyPrefix + key
}

// Get unmarshals the cached value into dest. The bool reports whether the
// key was present.
func (c *Client) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.rdb.Get(ctx, namespaced(key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	bytes, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, namespaced(key), bytes, ttl).Err()
}

func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = namespaced(k)
	}
	return c.rdb.Del(ctx, prefixed...).Err()
}
