package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statsKey        = "unionhub:stats:announcements"
	revokedKeyFmt   = "unionhub:revoked:%s"
	defaultStatsTTL = 60 * time.Second
)

// Client wraps Redis for the announcement stats cache and the access-token denylist.
// A nil *Client is valid and behaves as an always-empty cache.
type Client struct {
	rdb      *redis.Client
	statsTTL time.Duration
}

// New connects to Redis with opts, usually from redis.ParseURL, and verifies
// the connection. Unset timeouts get short defaults.
func New(opts *redis.Options, statsTTL time.Duration) (*Client, error) {
	o := *opts
	if o.DialTimeout == 0 {
		o.DialTimeout = 5 * time.Second
	}
	if o.ReadTimeout == 0 {
		o.ReadTimeout = 3 * time.Second
	}
	if o.WriteTimeout == 0 {
		o.WriteTimeout = 3 * time.Second
	}
	rdb := redis.NewClient(&o)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if statsTTL <= 0 {
		statsTTL = defaultStatsTTL
	}
	return &Client{rdb: rdb, statsTTL: statsTTL}, nil
}

func (c *Client) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// GetStats decodes the cached stats into dst. It reports false on a miss.
func (c *Client) GetStats(ctx context.Context, dst any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	raw, err := c.rdb.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get stats: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// a corrupt entry is treated as a miss and overwritten on the next Set
		return false, nil
	}
	return true, nil
}

func (c *Client) SetStats(ctx context.Context, v any) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	return c.rdb.Set(ctx, statsKey, raw, c.statsTTL).Err()
}

func (c *Client) InvalidateStats(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, statsKey).Err()
}

// RevokeToken denylists a token id until ttl elapses. Non-positive ttls are skipped
// since the token has already expired.
func (c *Client) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if c == nil || c.rdb == nil || jti == "" || ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, fmt.Sprintf(revokedKeyFmt, jti), "1", ttl).Err()
}

func (c *Client) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if c == nil || c.rdb == nil || jti == "" {
		return false, nil
	}
	n, err := c.rdb.Exists(ctx, fmt.Sprintf(revokedKeyFmt, jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}
