// Package lock serialises the bookings load-mutate-save cycle, either inside
// one process or across replicas sharing a store.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultKey names the single critical section guarding the bookings store.
const DefaultKey = "bookings_store"

const defaultRetryInterval = 50 * time.Millisecond

var ErrNotAcquired = errors.New("lock not acquired")

// Release gives the lock back. It is safe to call once per acquisition.
type Release func(ctx context.Context) error

type Locker interface {
	Acquire(ctx context.Context) (Release, error)
}

// WithLock runs fn while holding l.
func WithLock(ctx context.Context, l Locker, fn func(ctx context.Context) error) (err error) {
	release, err := l.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// the caller's context may already be done; release on a fresh one
		relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if relErr := release(relCtx); relErr != nil && err == nil {
			err = fmt.Errorf("release lock: %w", relErr)
		}
	}()

	return fn(ctx)
}

// retry calls try until it reports success or ctx is done.
func retry(ctx context.Context, interval time.Duration, try func() (bool, error)) error {
	if interval <= 0 {
		interval = defaultRetryInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := try()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrNotAcquired, ctx.Err())
		case <-ticker.C:
		}
	}
}
