package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
}

func NewClient(addr, password string, db int) *Client {
	return &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// AcquireOnce sets key with a TTL if it does not exist yet. Returns true
// when this call won the slot, false when the key was already held.
func (c *Client) AcquireOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.SetNX(ctx, key, 1, ttl).Result()
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() {
	c.Client.Close()
}
