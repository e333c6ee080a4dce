package v1

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps a go-redis client for test helpers.
type RedisClient struct {
	client *redis.Client
}

// ConnectRedis connects to Redis using go-redis/v9.
func ConnectRedis(addr, password string, db int) *RedisClient {
	RecordAction(fmt.Sprintf("Redis Connect: %s", addr), func() { ConnectRedis(addr, password, db) })
	if IsDryRun() {
		return &RedisClient{}
	}
	Logf(LogTypeRedis, "Connecting to Redis at %s (db=%d)", addr, db)
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := c.Ping(context.Background()).Err(); err != nil {
		c.Close()
		Fail("Failed to connect to Redis: %v", err)
	}
	Log(LogTypeRedis, "Connected to Redis", "")
	return &RedisClient{client: c}
}

func (c *RedisClient) connected() {
	if c == nil || c.client == nil {
		Fail("RedisClient is not connected")
	}
}

// Set sets a key with expiration.
func (c *RedisClient) Set(key string, value interface{}, expiration time.Duration) {
	RecordAction(fmt.Sprintf("Redis Set: %s", key), func() { c.Set(key, value, expiration) })
	if IsDryRun() {
		return
	}
	c.connected()
	Log(LogTypeRedis, fmt.Sprintf("SET %s", key), fmt.Sprintf("value=%v, ttl=%s", value, expiration))
	if err := c.client.Set(context.Background(), key, value, expiration).Err(); err != nil {
		Fail("Failed to set redis key %s: %v", key, err)
	}
}

// Lookup returns a key's value and whether it exists. A missing key is not a failure.
func (c *RedisClient) Lookup(key string) (string, bool) {
	RecordAction(fmt.Sprintf("Redis Lookup: %s", key), func() { c.Lookup(key) })
	if IsDryRun() {
		return "", false
	}
	c.connected()
	Logf(LogTypeRedis, "GET %s", key)
	val, err := c.client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		Fail("Failed to get redis key %s: %v", key, err)
	}
	return val, true
}

// Get retrieves a key value. A missing key fails the stage.
func (c *RedisClient) Get(key string) string {
	if IsDryRun() {
		RecordAction(fmt.Sprintf("Redis Get: %s", key), func() { c.Get(key) })
		return ""
	}
	val, ok := c.Lookup(key)
	if !ok {
		Fail("Redis key %s not found", key)
	}
	return val
}

// Del deletes keys.
func (c *RedisClient) Del(keys ...string) {
	RecordAction(fmt.Sprintf("Redis Del: %v", keys), func() { c.Del(keys...) })
	if IsDryRun() {
		return
	}
	c.connected()
	Log(LogTypeRedis, "DEL keys", fmt.Sprintf("%v", keys))
	if err := c.client.Del(context.Background(), keys...).Err(); err != nil {
		Fail("Failed to delete redis keys %v: %v", keys, err)
	}
}

// ExpectValue asserts that a key has the expected value.
func (c *RedisClient) ExpectValue(key string, expected string) {
	if IsDryRun() {
		return
	}
	val := c.Get(key)
	if val != expected {
		Fail("Redis value mismatch for key %s: expected %s, got %s", key, expected, val)
	}
	Logf(LogTypeExpect, "Redis key %s == %s - PASSED", key, expected)
}

// Close releases the connection.
func (c *RedisClient) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
