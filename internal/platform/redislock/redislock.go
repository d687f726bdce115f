package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotObtained is returned when lock is held by someone else.
var ErrNotObtained = errors.New("lock not obtained")

const keyPrefix = "price-monitor:lock:"

// releaseLua deletes the key only when it still holds caller's token.
const releaseLua = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// Locker obtains short-lived exclusive locks stored in redis.
type Locker struct {
	rdb     redis.Cmdable
	release *redis.Script
}

// NewLocker returns new Locker.
func NewLocker(rdb redis.Cmdable) *Locker {
	return &Locker{
		rdb:     rdb,
		release: redis.NewScript(releaseLua),
	}
}

// Lock is obtained lock.
type Lock struct {
	locker *Locker
	key    string
	token  string
}

// Obtain takes lock of provided name for ttl. Returns ErrNotObtained when lock is already taken.
func (l *Locker) Obtain(ctx context.Context, name string, ttl time.Duration) (*Lock, error) {
	lock := &Lock{
		locker: l,
		key:    keyPrefix + name,
		token:  uuid.NewString(),
	}

	ok, err := l.rdb.SetNX(ctx, lock.key, lock.token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("can't obtain lock %s: %w", name, err)
	}
	if !ok {
		return nil, fmt.Errorf("can't obtain lock %s: %w", name, ErrNotObtained)
	}

	return lock, nil
}

// Release releases the lock. Releasing expired lock or lock taken over by someone else is a no-op.
func (l *Lock) Release(ctx context.Context) error {
	if err := l.locker.release.Run(ctx, l.locker.rdb, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("can't release lock %s: %w", l.key, err)
	}
	return nil
}

// Do runs fn while holding lock of provided name. Returns ErrNotObtained without running fn when lock is taken.
func (l *Locker) Do(ctx context.Context, name string, ttl time.Duration, fn func(ctx context.Context) error) (err error) {
	lock, err := l.Obtain(ctx, name, ttl)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, lock.Release(context.WithoutCancel(ctx)))
	}()

	return fn(ctx)
}
