package common

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Laisky/zap"
	"github.com/go-redis/redis/v8"

	"github.com/handboekai/handboek-api/common/config"
	"github.com/handboekai/handboek-api/common/logger"
)

var RDB redis.Cmdable

var redisEnabled atomic.Bool

func IsRedisEnabled() bool {
	return redisEnabled.Load()
}

// InitRedisClient connects to Redis when REDIS_CONN_STRING is set; without it
// the service falls back to in-memory rate limiting and caching.
func InitRedisClient() (err error) {
	if config.RedisConnString == "" {
		redisEnabled.Store(false)
		logger.Logger.Info("REDIS_CONN_STRING not set, Redis is not enabled")
		return nil
	}
	if config.RedisMasterName == "" {
		logger.Logger.Info("Redis is enabled")
		opt, err := redis.ParseURL(config.RedisConnString)
		if err != nil {
			logger.Logger.Fatal("failed to parse Redis connection string", zap.Error(err))
		}
		RDB = redis.NewClient(opt)
	} else {
		logger.Logger.Info("Redis cluster mode enabled")
		RDB = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:      strings.Split(config.RedisConnString, ","),
			Password:   config.RedisPassword,
			MasterName: config.RedisMasterName,
		})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err = RDB.Ping(ctx).Result(); err != nil {
		logger.Logger.Fatal("Redis ping test failed", zap.Error(err))
	}
	redisEnabled.Store(true)
	return nil
}

// RedisSet stores a key with TTL.
func RedisSet(key string, value string, expiration time.Duration) error {
	ctx := context.Background()
	return RDB.Set(ctx, key, value, expiration).Err()
}

// RedisGet fetches a key; returns redis.Nil error when absent.
func RedisGet(key string) (string, error) {
	ctx := context.Background()
	return RDB.Get(ctx, key).Result()
}

// RedisDel removes a key.
func RedisDel(key string) error {
	ctx := context.Background()
	return RDB.Del(ctx, key).Err()
}
