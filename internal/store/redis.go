package store

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

const redisPrefix = "tca:report:"

// redisClient is the subset of *goredis.Client used by RedisCache.
type redisClient interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Close() error
}

// RedisCache implements Cache on Redis. Expiry is delegated to Redis TTLs.
type RedisCache struct {
	rdb redisClient
}

// NewRedis connects to the Redis server at url (redis://host:port/db).
func NewRedis(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, eris.Wrap(err, "redis: parse url")
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, eris.Wrap(err, "redis: ping")
	}
	return &RedisCache{rdb: rdb}, nil
}

func (s *RedisCache) Get(ctx context.Context, key string) (*model.Report, error) {
	data, err := s.rdb.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "redis: get report %s", key)
	}
	return decodeReport(data)
}

func (s *RedisCache) Set(ctx context.Context, key string, r *model.Report, ttl time.Duration) error {
	data, err := encodeReport(r)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return eris.Wrapf(s.rdb.Set(ctx, redisPrefix+key, data, ttl).Err(), "redis: set report %s", key)
}

func (s *RedisCache) Invalidate(ctx context.Context, key string) error {
	return eris.Wrapf(s.rdb.Del(ctx, redisPrefix+key).Err(), "redis: invalidate %s", key)
}

func (s *RedisCache) Close() error {
	return s.rdb.Close()
}
