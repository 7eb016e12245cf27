package ports

import (
	"context"
	"time"
)

// DefaultLockTTL bounds how long a crashed holder can keep a maze locked.
const DefaultLockTTL = 30 * time.Second

// UnlockFunc releases a lock obtained from a DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serialises work on one maze across service replicas.
// Edits and searches on the same maze never overlap while the lock is held.
type DistributedLocker interface {
	// Lock blocks until the lock for key (a maze name) is acquired or ctx is done.
	// The lock expires on its own after ttl.
	// The returned UnlockFunc MUST be called to release it.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
