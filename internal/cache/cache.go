package cache

import (
	"context"
	"encoding/json"
	"time"

	"tokomart-be/internal/logger"
	"tokomart-be/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store is the cache surface services depend on. The backing store is a
// disposable derived view: every method degrades to a miss or a no-op when the
// backend is down, and no caller may treat a cache failure as a request error.
type Store interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	InvalidatePattern(ctx context.Context, pattern string) error
}

var (
	Hits   metrics.Counter
	Misses metrics.Counter
)

type redisStore struct {
	rdb *redis.Client
}

// New connects to Redis at the given URL. A bad URL or unreachable server does
// not fail startup: the store is still usable and every call degrades.
func New(url string) Store {
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.L().Warn("invalid redis url, cache disabled", zap.Error(err))
		return &redisStore{}
	}
	return &redisStore{rdb: redis.NewClient(opts)}
}

// NewFromClient wraps an existing client, used by tests.
func NewFromClient(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if s.rdb == nil {
		return false, nil
	}

	raw, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		Misses.Inc()
		return false, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Warn("cache get failed",
			zap.String("key", key),
			zap.Error(err),
		)
		Misses.Inc()
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.FromCtx(ctx).Warn("cache entry not decodable, treating as miss",
			zap.String("key", key),
			zap.Error(err),
		)
		Misses.Inc()
		return false, nil
	}

	Hits.Inc()
	return true, nil
}

func (s *redisStore) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if s.rdb == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		logger.FromCtx(ctx).Warn("cache set skipped, value not encodable",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}

	if err := s.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.FromCtx(ctx).Warn("cache set failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if s.rdb == nil {
		return nil
	}

	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		logger.FromCtx(ctx).Warn("cache delete failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return nil
}

// InvalidatePattern deletes every key matching the glob pattern. SCAN instead
// of KEYS so a large keyspace cannot stall the server.
func (s *redisStore) InvalidatePattern(ctx context.Context, pattern string) error {
	if s.rdb == nil {
		return nil
	}

	var deleted int64
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			logger.FromCtx(ctx).Warn("cache delete failed",
				zap.String("key", iter.Val()),
				zap.Error(err),
			)
			continue
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		logger.FromCtx(ctx).Warn("cache scan failed",
			zap.String("pattern", pattern),
			zap.Error(err),
		)
		return nil
	}

	if deleted > 0 {
		logger.FromCtx(ctx).Debug("cache entries invalidated",
			zap.String("pattern", pattern),
			zap.Int64("count", deleted),
		)
	}
	return nil
}
