// Package cache provides a thin JSON cache over Redis.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shashiranjanraj/bistro/config"
)

var RDB *redis.Client

// Connect initialises the Redis client. The cache degrades to a no-op when
// Redis is unreachable; callers must treat Get as best effort.
func Connect() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
}

// Get loads key into dest. Returns false on miss, unreachable Redis, or a
// decode failure.
func Get(ctx context.Context, key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(ctx, key).Result()
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(val), dest) == nil
}

// Set stores value under key with the given TTL.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(ctx, key, data, ttl).Err()
}

// Forget removes key. Used to invalidate after writes.
func Forget(ctx context.Context, key string) {
	if RDB == nil {
		return
	}
	RDB.Del(ctx, key)
}
