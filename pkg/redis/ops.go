package redis

import (
	"context"
	"time"
)

// Set stores value; a zero ttl keeps it forever.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.store == nil {
		return errNotInitialized
	}
	return c.store.Set(ctx, key, value, ttl).Err()
}

// Get returns the string at key; a missing key yields redis.Nil.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if c.store == nil {
		return "", errNotInitialized
	}
	return c.store.Get(ctx, key).Result()
}

func (c *Client) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if c.store == nil {
		return false, errNotInitialized
	}
	return c.store.SetNX(ctx, key, value, ttl).Result()
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	if c.store == nil {
		return errNotInitialized
	}
	return c.store.Del(ctx, keys...).Err()
}

// FixedWindowAllow counts one hit against scope and reports whether the
// count is still within limit. The window starts at the first hit. The
// first rejected hit also repairs a counter that lost its expiry, so a
// crash between INCR and EXPIRE cannot lock a scope out for good.
func (c *Client) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	if c.store == nil {
		return false, 0, errNotInitialized
	}
	key := c.RateLimitKey(scope)
	count, err := c.store.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	switch {
	case window <= 0:
	case count == 1:
		err = c.store.Expire(ctx, key, window).Err()
	case count == limit+1:
		if ttl, ttlErr := c.store.TTL(ctx, key).Result(); ttlErr == nil && ttl < 0 {
			err = c.store.Expire(ctx, key, window).Err()
		}
	}
	return count <= limit, count, err
}
