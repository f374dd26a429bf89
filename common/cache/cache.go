package cache

import (
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"

	"github.com/handboekai/handboek-api/common"
)

// ErrNotFound is returned when a key is absent or expired.
var ErrNotFound = errors.New("cache: key not found")

// Cache is a process-scoped TTL cache. Values are JSON strings so the same
// interface can be served from memory or Redis. Contents carry no persistence
// guarantee across restarts.
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value string, ttl time.Duration) error
	Evict(key string) error
}

type memoryCache struct {
	store *gocache.Cache
}

// NewMemory returns an in-memory TTL cache. Each test should construct a
// fresh instance rather than sharing a package-level one.
func NewMemory(defaultTTL, cleanupInterval time.Duration) Cache {
	return &memoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *memoryCache) Get(key string) (string, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Errorf("cache: unexpected value type %T for key %s", v, key)
	}
	return s, nil
}

func (m *memoryCache) Set(key string, value string, ttl time.Duration) error {
	m.store.Set(key, value, ttl)
	return nil
}

func (m *memoryCache) Evict(key string) error {
	m.store.Delete(key)
	return nil
}

type redisCache struct {
	prefix string
}

// NewRedis returns a Redis-backed TTL cache sharing the global client.
// Callers must ensure Redis is enabled before constructing one.
func NewRedis(prefix string) Cache {
	return &redisCache{prefix: prefix}
}

func (r *redisCache) Get(key string) (string, error) {
	v, err := common.RedisGet(r.prefix + key)
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "redis get")
	}
	return v, nil
}

func (r *redisCache) Set(key string, value string, ttl time.Duration) error {
	return errors.Wrap(common.RedisSet(r.prefix+key, value, ttl), "redis set")
}

func (r *redisCache) Evict(key string) error {
	return errors.Wrap(common.RedisDel(r.prefix+key), "redis del")
}

// Default picks the Redis cache when available, the in-memory cache otherwise.
func Default(prefix string, defaultTTL time.Duration) Cache {
	if common.IsRedisEnabled() {
		return NewRedis(prefix)
	}
	return NewMemory(defaultTTL, 10*time.Minute)
}
