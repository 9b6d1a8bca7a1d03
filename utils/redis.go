package utils

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/viniciusmf/gym-management-backend/config"
)

var redisClient *redis.Client

// InitRedis connects the shared Redis client. Safe to call once at startup.
func InitRedis(cfg *config.Config) error {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	redisClient = client
	return nil
}

// CacheSet stores a value with a TTL. No-op when Redis is not initialized.
func CacheSet(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if redisClient == nil {
		return nil
	}
	return redisClient.Set(ctx, key, value, ttl).Err()
}

// CacheGet returns the cached value, or (nil, nil) on a miss.
func CacheGet(ctx context.Context, key string) ([]byte, error) {
	if redisClient == nil {
		return nil, nil
	}
	val, err := redisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// CacheDelete drops a key, used to invalidate stale summaries after writes.
func CacheDelete(ctx context.Context, keys ...string) error {
	if redisClient == nil {
		return nil
	}
	return redisClient.Del(ctx, keys...).Err()
}
