package redis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	backend "github.com/redis/go-redis/v9"
)

// ErrLockLost is returned by an unlock whose lock had already expired or
// been taken over.
var ErrLockLost = errors.New("redis lock lost before unlock")

// RedsyncLocker implements ports.DistributedLocker with redsync mutexes.
// Keys match Locker, so both can guard the same mazes.
type RedsyncLocker struct {
	rs     *redsync.Redsync
	prefix string
}

// NewRedsyncLocker creates a locker over client.
func NewRedsyncLocker(client *backend.Client, prefix string) *RedsyncLocker {
	return &RedsyncLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		prefix: prefix,
	}
}

// Lock waits for the mutex until ctx is done.
func (l *RedsyncLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	m := l.rs.NewMutex(lockKey(l.prefix, key),
		redsync.WithExpiry(ttl),
		redsync.WithTries(math.MaxInt32),
		redsync.WithRetryDelay(pollInterval),
	)
	if err := m.LockContext(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("redsync error acquiring lock: %w", err)
	}

	return func(ctx context.Context) error {
		ok, err := m.UnlockContext(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLockLost, err)
		}
		if !ok {
			return ErrLockLost
		}
		return nil
	}, nil
}
