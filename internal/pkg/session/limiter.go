// Package session caps how many browser sessions run at the same time.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/semaphore"
)

// ErrNoSlot is returned when no session slot frees up in time.
var ErrNoSlot = errors.New("no browser session slot available")

// Limiter hands out session slots. release must be called exactly once.
type Limiter interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// LocalLimiter bounds sessions inside one process.
type LocalLimiter struct {
	sem     *semaphore.Weighted
	timeout time.Duration
}

func NewLocalLimiter(maxSessions int, acquireTimeout time.Duration) *LocalLimiter {
	if maxSessions < 1 {
		maxSessions = 1
	}

	return &LocalLimiter{
		sem:     semaphore.NewWeighted(int64(maxSessions)),
		timeout: acquireTimeout,
	}
}

func (l *LocalLimiter) Acquire(ctx context.Context) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSlot, err)
	}

	return func() { l.sem.Release(1) }, nil
}

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisLimiter bounds sessions across every replica sharing one Redis.
// Each slot is a key holding the owner's token; the TTL frees slots of
// crashed owners.
type RedisLimiter struct {
	redis        RedisClient
	prefix       string
	slots        int
	ttl          time.Duration
	timeout      time.Duration
	pollInterval time.Duration
}

type RedisLimiterConfig struct {
	KeyPrefix      string
	MaxSessions    int
	SlotTTL        time.Duration
	AcquireTimeout time.Duration
	PollInterval   time.Duration
}

func NewRedisLimiter(client RedisClient, cfg RedisLimiterConfig) *RedisLimiter {
	if cfg.MaxSessions < 1 {
		cfg.MaxSessions = 1
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 200 * time.Millisecond
	}

	return &RedisLimiter{
		redis:        client,
		prefix:       cfg.KeyPrefix,
		slots:        cfg.MaxSessions,
		ttl:          cfg.SlotTTL,
		timeout:      cfg.AcquireTimeout,
		pollInterval: cfg.PollInterval,
	}
}

// SlotKey is the key guarding slot i.
func (l *RedisLimiter) SlotKey(i int) string {
	return fmt.Sprintf("%s:slot:%d", l.prefix, i)
}

func (l *RedisLimiter) Acquire(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	deadline := time.NewTimer(l.timeout)
	defer deadline.Stop()

	for {
		for i := 0; i < l.slots; i++ {
			key := l.SlotKey(i)

			acquired, err := l.redis.SetNX(ctx, key, token, l.ttl).Result()
			if err != nil {
				if ctx.Err() != nil {
					return nil, fmt.Errorf("%w: %w", ErrNoSlot, ctx.Err())
				}
				return nil, fmt.Errorf("failed to acquire session slot: %w", err)
			}

			if acquired {
				slog.DebugContext(ctx, "session slot acquired", slog.String("key", key))
				return l.releaser(key, token), nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrNoSlot, ctx.Err())
		case <-deadline.C:
			return nil, fmt.Errorf("%w after %s", ErrNoSlot, l.timeout)
		case <-time.After(l.pollInterval):
		}
	}
}

// releaser frees key only while it still holds token, so an expired slot
// taken over by another owner is left alone.
func (l *RedisLimiter) releaser(key, token string) func() {
	return func() {
		ctx := context.Background()

		owner, err := l.redis.Get(ctx, key).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				slog.Warn("failed to read session slot", slog.String("key", key), slog.String("error", err.Error()))
			}
			return
		}

		if owner != token {
			return
		}

		if err := l.redis.Del(ctx, key).Err(); err != nil {
			slog.Warn("failed to release session slot", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
}
