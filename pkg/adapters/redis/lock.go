package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

// pollInterval is how often a waiting Lock retries SET NX.
const pollInterval = 100 * time.Millisecond

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = backend.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// Locker implements ports.DistributedLocker using Redis.
type Locker struct {
	client *backend.Client
	prefix string
}

// NewLocker creates a new Redis locker. Lock keys are "<prefix>lock:<key>".
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
	}
}

// Lock acquires the lock for key using SET NX PX, polling until ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	name := lockKey(l.prefix, key)
	token := uuid.NewString()

	acquired, err := l.try(ctx, name, token, ttl)
	if err != nil || acquired {
		return l.unlocker(name, token, acquired), err
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			acquired, err := l.try(ctx, name, token, ttl)
			if err != nil {
				return nil, err
			}
			if acquired {
				return l.unlocker(name, token, true), nil
			}
		}
	}
}

func lockKey(prefix, key string) string {
	return prefix + "lock:" + key
}

func (l *Locker) try(ctx context.Context, lockKey, token string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis error acquiring lock: %w", err)
	}
	return ok, nil
}

func (l *Locker) unlocker(lockKey, token string, acquired bool) ports.UnlockFunc {
	if !acquired {
		return nil
	}
	return func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.client, []string{lockKey}, token).Err()
	}
}
