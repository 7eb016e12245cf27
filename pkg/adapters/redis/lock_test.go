package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/adapters/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker_LockUnlock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "maze-1", 5*time.Second)
	require.NoError(t, err)
	require.NotNil(t, unlock)
	assert.True(t, mr.Exists("test:lock:maze-1"), "lock key should be set")

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:maze-1"), "lock key should be removed after unlock")
}

func TestRedisLocker_Contention(t *testing.T) {
	mr, client := newClient(t)
	first := redis.NewLocker(client, "test:")
	second := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock1, err := first.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)

	ctxTimeout, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = second.Lock(ctxTimeout, "shared", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, time.Since(start), 250*time.Millisecond, "should block until timeout")

	require.NoError(t, unlock1(ctx))

	unlock2, err := second.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)
	defer unlock2(ctx)
	assert.True(t, mr.Exists("test:lock:shared"))
}

func TestRedisLocker_StaleUnlockKeepsNewOwner(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "m", time.Second)
	require.NoError(t, err)

	// The first lock expires and someone else takes it.
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("test:lock:m", "other-owner"))

	require.NoError(t, unlock(ctx))
	val, err := mr.Get("test:lock:m")
	require.NoError(t, err)
	assert.Equal(t, "other-owner", val)
}

func TestRedsyncLocker_LockUnlock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewRedsyncLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "maze-1", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:maze-1"), "redsync uses the same key layout")

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:maze-1"))
}

func TestRedsyncLocker_SharesKeysWithNativeLocker(t *testing.T) {
	_, client := newClient(t)
	native := redis.NewLocker(client, "test:")
	rs := redis.NewRedsyncLocker(client, "test:")
	ctx := context.Background()

	unlock, err := native.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)

	ctxTimeout, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = rs.Lock(ctxTimeout, "shared", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))
	unlock2, err := rs.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestRedsyncLocker_ExpiredUnlock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewRedsyncLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "m", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("test:lock:m", "other-owner"))

	assert.ErrorIs(t, unlock(ctx), redis.ErrLockLost)
	val, err := mr.Get("test:lock:m")
	require.NoError(t, err)
	assert.Equal(t, "other-owner", val)
}
