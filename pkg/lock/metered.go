package lock

import (
	"context"
	"pediacenter/pkg/metrics"
	"time"
)

// Metered records how long callers wait for the wrapped Locker and, when
// wait is positive, gives up after that long.
type Metered struct {
	locker  Locker
	metrics *metrics.Metrics
	wait    time.Duration
}

func NewMetered(l Locker, m *metrics.Metrics, wait time.Duration) *Metered {
	return &Metered{locker: l, metrics: m, wait: wait}
}

func (m *Metered) Acquire(ctx context.Context) (Release, error) {
	acquireCtx := ctx
	if m.wait > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, m.wait)
		defer cancel()
	}

	start := time.Now()
	release, err := m.locker.Acquire(acquireCtx)
	m.metrics.ObserveLockWait(err == nil, time.Since(start))
	return release, err
}
