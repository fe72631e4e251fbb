package scheduling

import (
	"context"
	"errors"
	"sync"
	"time"

	"servana/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrLockContended is returned when the admission lock for a provider could
// not be acquired within the bounded retry budget. The service surfaces it to
// callers as SlotUnavailable, never as a generic failure.
var ErrLockContended = errors.New("provider admission lock contended")

// ProviderLocker serializes admission checks per provider so that
// check-then-insert never interleaves between two requests for the same
// provider. Operations on different providers proceed in parallel.
type ProviderLocker interface {
	// Acquire takes the provider's lock and returns a release func.
	Acquire(ctx context.Context, providerID string) (func(), error)
}

// RedisLockClient is the subset of redis commands the locker needs;
// *redis.Client satisfies it.
type RedisLockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisProviderLocker implements ProviderLocker with a SETNX lease in Redis,
// which also serializes admission across multiple server instances. The TTL
// bounds how long a crashed holder can block a provider.
type RedisProviderLocker struct {
	Client      RedisLockClient
	TTL         time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

// releaseScript deletes the lease only if we still hold it, so an expired
// lease taken over by another request is never released from here.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

func (l *RedisProviderLocker) Acquire(ctx context.Context, providerID string) (func(), error) {
	key := "admission:" + providerID
	token := uuid.New().String()

	attempts := l.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(l.RetryDelay):
			}
		}

		ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			release := func() {
				err := l.Client.Eval(context.Background(), releaseScript, []string{key}, token).Err()
				if err != nil {
					// The lease stays until the TTL expires.
					utils.GetLogger().Warn("failed to release admission lock",
						zap.String("key", key), zap.Error(err))
				}
			}
			return release, nil
		}
	}
	return nil, ErrLockContended
}

// LocalProviderLocker is an in-process ProviderLocker for single-instance
// deployments and tests. Acquire blocks until the provider's mutex is free.
type LocalProviderLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocalProviderLocker() *LocalProviderLocker {
	return &LocalProviderLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *LocalProviderLocker) Acquire(_ context.Context, providerID string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[providerID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[providerID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
