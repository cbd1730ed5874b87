package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/bussearch/pkg/logger"
)

// DefaultRedisPrefix namespaces cache keys in a shared Redis database.
const DefaultRedisPrefix = "bussearch:cache:"

// Redis is a Cache backed by Redis. Values are stored as JSON.
// Backend failures on read are logged and reported as a miss.
type Redis[V any] struct {
	client redis.Cmdable
	prefix string
	logger *slog.Logger
}

// RedisOption configures a Redis cache.
type RedisOption[V any] func(*Redis[V])

// WithPrefix overrides DefaultRedisPrefix.
func WithPrefix[V any](prefix string) RedisOption[V] {
	return func(r *Redis[V]) { r.prefix = prefix }
}

// WithLogger sets the logger for backend failures.
func WithLogger[V any](l *slog.Logger) RedisOption[V] {
	return func(r *Redis[V]) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewRedis[V any](client redis.Cmdable, opts ...RedisOption[V]) *Redis[V] {
	r := &Redis[V]{
		client: client,
		prefix: DefaultRedisPrefix,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logger.Component("cache.redis"))
	return r
}

func (r *Redis[V]) TryGet(ctx context.Context, key string) (V, bool) {
	var zero V

	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false
	}
	if err != nil {
		r.logger.WarnContext(ctx, "cache read failed", logger.CacheKey(key), logger.Error(err))
		return zero, false
	}

	var v V
	if err := json.Unmarshal(raw, &v); err != nil {
		r.logger.WarnContext(ctx, "cache entry not decodable", logger.CacheKey(key), logger.Error(err))
		return zero, false
	}
	return v, true
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		r.logger.WarnContext(ctx, "cache value not encodable", logger.CacheKey(key), logger.Error(err))
		return errors.Join(ErrEncodeValue, err)
	}

	if err := r.client.Set(ctx, r.prefix+key, raw, normalizeTTL(ttl)).Err(); err != nil {
		r.logger.WarnContext(ctx, "cache write failed", logger.CacheKey(key), logger.Error(err))
		return errors.Join(ErrBackend, err)
	}
	return nil
}

func (r *Redis[V]) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		r.logger.WarnContext(ctx, "cache remove failed", logger.CacheKey(key), logger.Error(err))
		return errors.Join(ErrBackend, err)
	}
	return nil
}
