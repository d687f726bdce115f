package redislock_test

import (
	"context"
	"testing"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform/redislock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitObtain(t *testing.T) {
	_, rdb := newMiniRedis(t)
	locker := redislock.NewLocker(rdb)

	lock, err := locker.Obtain(context.TODO(), "scrape", time.Minute)
	require.NoError(t, err, "should obtain free lock")

	_, err = locker.Obtain(context.TODO(), "scrape", time.Minute)
	require.ErrorIs(t, err, redislock.ErrNotObtained, "shouldn't obtain taken lock")

	_, err = locker.Obtain(context.TODO(), "alerts", time.Minute)
	require.NoError(t, err, "should obtain lock of other name")

	require.NoError(t, lock.Release(context.TODO()), "should release lock")

	_, err = locker.Obtain(context.TODO(), "scrape", time.Minute)
	assert.NoError(t, err, "should obtain released lock")
}

func TestUnitObtainExpired(t *testing.T) {
	server, rdb := newMiniRedis(t)
	locker := redislock.NewLocker(rdb)

	stale, err := locker.Obtain(context.TODO(), "scrape", time.Second)
	require.NoError(t, err, "should obtain free lock")

	server.FastForward(2 * time.Second)

	_, err = locker.Obtain(context.TODO(), "scrape", time.Minute)
	require.NoError(t, err, "should obtain expired lock")

	require.NoError(t, stale.Release(context.TODO()), "releasing stale lock should be a no-op")

	_, err = locker.Obtain(context.TODO(), "scrape", time.Minute)
	assert.ErrorIs(t, err, redislock.ErrNotObtained, "stale release shouldn't free current lock")
}

func TestUnitObtainRedisError(t *testing.T) {
	server, rdb := newMiniRedis(t)
	server.Close()

	_, err := redislock.NewLocker(rdb).Obtain(context.TODO(), "scrape", time.Minute)

	require.Error(t, err, "should return redis error")
	assert.NotErrorIs(t, err, redislock.ErrNotObtained, "redis error isn't taken lock")
}

func TestUnitDo(t *testing.T) {
	_, rdb := newMiniRedis(t)
	locker := redislock.NewLocker(rdb)

	runs := 0
	err := locker.Do(context.TODO(), "alerts", time.Minute, func(ctx context.Context) error {
		runs++

		err := locker.Do(ctx, "alerts", time.Minute, func(context.Context) error {
			runs++
			return nil
		})
		require.ErrorIs(t, err, redislock.ErrNotObtained, "shouldn't run while lock is held")

		return assert.AnError
	})

	require.ErrorIs(t, err, assert.AnError, "should return fn error")
	assert.Equal(t, 1, runs, "should run fn once")

	_, err = locker.Obtain(context.TODO(), "alerts", time.Minute)
	assert.NoError(t, err, "should release lock after fn")
}

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return server, rdb
}
