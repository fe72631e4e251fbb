package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLockRedis is a RedisLockClient whose SetNX answers come from a script
// of canned grants.
type fakeLockRedis struct {
	grants    []bool
	setNXCall int
	evalCall  int
	evalErr   error
}

func (f *fakeLockRedis) SetNX(_ context.Context, _ string, _ interface{}, _ time.Duration) *redis.BoolCmd {
	granted := false
	if f.setNXCall < len(f.grants) {
		granted = f.grants[f.setNXCall]
	}
	f.setNXCall++
	return redis.NewBoolResult(granted, nil)
}

func (f *fakeLockRedis) Eval(_ context.Context, _ string, _ []string, _ ...interface{}) *redis.Cmd {
	f.evalCall++
	return redis.NewCmdResult(int64(1), f.evalErr)
}

func TestRedisProviderLockerAcquire(t *testing.T) {
	t.Run("contention exhausts attempts without a trailing delay", func(t *testing.T) {
		fake := &fakeLockRedis{grants: []bool{false, false, false}}
		locker := &RedisProviderLocker{Client: fake, TTL: time.Second, MaxAttempts: 3, RetryDelay: 50 * time.Millisecond}

		start := time.Now()
		_, err := locker.Acquire(context.Background(), "prov-1")
		elapsed := time.Since(start)

		require.ErrorIs(t, err, ErrLockContended)
		assert.Equal(t, 3, fake.setNXCall)
		assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond, "two retry delays expected")
		assert.Less(t, elapsed, 140*time.Millisecond, "no delay after the final attempt")
	})

	t.Run("grant on retry returns a release that runs the lua script", func(t *testing.T) {
		fake := &fakeLockRedis{grants: []bool{false, true}}
		locker := &RedisProviderLocker{Client: fake, TTL: time.Second, MaxAttempts: 3, RetryDelay: time.Millisecond}

		release, err := locker.Acquire(context.Background(), "prov-1")
		require.NoError(t, err)
		assert.Equal(t, 2, fake.setNXCall)

		release()
		assert.Equal(t, 1, fake.evalCall)
	})

	t.Run("release failure is swallowed", func(t *testing.T) {
		fake := &fakeLockRedis{grants: []bool{true}, evalErr: context.DeadlineExceeded}
		locker := &RedisProviderLocker{Client: fake, TTL: time.Second, MaxAttempts: 1, RetryDelay: time.Millisecond}

		release, err := locker.Acquire(context.Background(), "prov-1")
		require.NoError(t, err)
		assert.NotPanics(t, release)
	})

	t.Run("cancelled context stops the retry loop", func(t *testing.T) {
		fake := &fakeLockRedis{grants: []bool{false, false, false}}
		locker := &RedisProviderLocker{Client: fake, TTL: time.Second, MaxAttempts: 3, RetryDelay: time.Hour}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := locker.Acquire(ctx, "prov-1")
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, fake.setNXCall)
	})
}
