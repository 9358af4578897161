package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrBackend is wrapped around failures of a remote cache backend.
var ErrBackend = errors.New("cache backend error")

// redisAttempts bounds how often one command is sent.
const redisAttempts = 3

// retryDelay is the pause after the first failed attempt. It doubles after
// each further failure.
var retryDelay = 200 * time.Millisecond

// RedisCache is a Cache backed by a Redis server, shared between machines
// that build the same project.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the server named by url
// (redis://[user:pass@]host:port/db) and verifies it with a PING.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrBackend, opts.Addr, err)
	}
	return NewRedisCacheFromClient(client), nil
}

// NewRedisCacheFromClient wraps a client that is already configured.
// No PING is sent; the first command reports an unreachable server.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get retrieves a value. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := c.do(ctx, func() error {
		b, err := c.client.Get(ctx, key).Bytes()
		if err != nil {
			return err
		}
		data = b
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value. A zero ttl never expires.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.do(ctx, func() error {
		return c.client.Set(ctx, key, data, ttl).Err()
	})
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.do(ctx, func() error {
		return c.client.Del(ctx, key).Err()
	})
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// do sends cmd until it succeeds, fails with a permanent error, or
// redisAttempts is reached. redis.Nil is passed through unwrapped; every
// other failure is wrapped in ErrBackend.
func (c *RedisCache) do(ctx context.Context, cmd func() error) error {
	delay := retryDelay
	for attempt := 1; ; attempt++ {
		err := cmd()
		switch {
		case err == nil, errors.Is(err, redis.Nil):
			return err
		case !transient(err) || attempt == redisAttempts:
			return fmt.Errorf("%w: %w", ErrBackend, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}

// transient reports whether a failed command may succeed when repeated:
// connection failures, and servers that are loading their dataset or
// failing over.
func transient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	for _, prefix := range []string{"LOADING", "TRYAGAIN", "CLUSTERDOWN", "MASTERDOWN"} {
		if redis.HasErrorPrefix(err, prefix) {
			return true
		}
	}
	return false
}

var _ Cache = (*RedisCache)(nil)
