package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "poolkeeper:ratelimit:"

// RedisLimiter shares counters between server instances.
type RedisLimiter struct {
	client redis.UniversalClient
	limit  int64
	window time.Duration
}

// NewRedisLimiter connects lazily; no round trip happens here.
func NewRedisLimiter(redisURL string, limit int, window time.Duration) (*RedisLimiter, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return NewRedisLimiterWithClient(redis.NewClient(opt), limit, window), nil
}

func NewRedisLimiterWithClient(client redis.UniversalClient, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: int64(limit), window: window}
}

// Allow counts an attempt in a fixed window. SET NX EX starts the window on
// the first attempt and INCR keeps the TTL, so later attempts never extend it.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := keyPrefix + key

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, l.window)
		incr = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		return true, err
	}
	return incr.Val() <= l.limit, nil
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
