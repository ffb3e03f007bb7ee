// Package cache wraps go-redis. When REDIS_URL is unset or unreachable the
// client degrades to a no-op and every lookup is a miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "deadlockhub:"

type Client struct {
	client  *redis.Client
	enabled bool
}

func New(redisURL string) *Client {
	if redisURL == "" {
		log.Println("Redis not configured (REDIS_URL missing), caching disabled")
		return &Client{}
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("ERROR [cache.New] failed to parse REDIS_URL: %v", err)
		return &Client{}
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 1
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 2 * time.Second
	opt.WriteTimeout = 2 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("ERROR [cache.New] redis connection failed: %v", err)
		client.Close()
		return &Client{}
	}

	log.Println("Redis connected")
	return &Client{client: client, enabled: true}
}

// NewFromRedis wraps an existing client; used by tests.
func NewFromRedis(client *redis.Client) *Client {
	return &Client{client: client, enabled: client != nil}
}

func (c *Client) Enabled() bool {
	return c != nil && c.enabled
}

// Get returns ("", false, nil) on a miss.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	if !c.Enabled() {
		return "", false, nil
	}
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Set(ctx, keyPrefix+key, value, ttl).Err()
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Del(ctx, keyPrefix+key).Err()
}

// GetJSON decodes a cached value into v. A value that no longer decodes is
// treated as a miss.
func (c *Client) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Printf("WARN [cache.GetJSON] key=%s: discarding undecodable value: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (c *Client) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return c.Set(ctx, key, string(data), ttl)
}

func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
