package repo

import (
	"context"
	"time"

	"github.com/beautique-shop/storefront/internal/cart/model"
	errx "github.com/beautique-shop/storefront/internal/core/error"
	logx "github.com/beautique-shop/storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps cart values as Redis strings.
type RedisStorage struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisStorage returns a storage that namespaces keys with prefix and
// refreshes ttl on every write. A zero ttl never expires.
func NewRedisStorage(rdb redis.Cmdable, prefix string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisStorage) key(key string) string {
	return r.prefix + key
}

func (r *RedisStorage) Read(ctx context.Context, key string) (string, error) {
	k := r.key(key)
	v, err := r.rdb.Get(ctx, k).Result()
	if err != nil {
		if err != redis.Nil {
			logx.Error().Err(err).Str("key", k).Msg("failed to read key from redis")
		}
		return "", errx.WrapRedis(err)
	}
	return v, nil
}

func (r *RedisStorage) Write(ctx context.Context, key, value string) error {
	k := r.key(key)
	// overwrite and extend TTL on touch
	if err := r.rdb.Set(ctx, k, value, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", k).Msg("failed to write key to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.Storage = (*RedisStorage)(nil)
