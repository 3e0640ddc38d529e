package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const retryInterval = 50 * time.Millisecond

// RedisLocker аренда ключа в Redis; защищает ресурс между репликами сервиса
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	prefix string
	logger Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// NewRedisLocker ttl должен покрывать максимальное время работы под блокировкой
func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration, prefix string, logger Logger) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		prefix: prefix,
		logger: logger,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, wait time.Duration) (Release, error) {
	opts := &redislock.Options{RetryStrategy: redislock.NoRetry()}
	obtainCtx := ctx
	if wait > 0 {
		var cancel context.CancelFunc
		obtainCtx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
		opts.RetryStrategy = redislock.LinearBackoff(retryInterval)
	}

	lk, err := l.client.Obtain(obtainCtx, l.prefix+key, l.ttl, opts)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, ErrNotObtained
		}
		return nil, fmt.Errorf("lock: obtain %s: %w", key, err)
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := lk.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.Warn("lock: failed to release %s: %v", key, err)
		}
	}, nil
}
