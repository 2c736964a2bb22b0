package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("/health", "GET", 200, time.Millisecond)
		m.ObserveLifecycle("cancel", "not_found")
		m.ObserveSlotSearch(3)
		m.ObserveLockWait(true, time.Millisecond)
		m.ObserveEventPublish("booking.created", nil, time.Millisecond)
	})
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveLifecycle("cancel", "ambiguous")
	m.ObserveLifecycle("cancel", "ambiguous")
	m.ObserveEventPublish("booking.created", errors.New("broker down"), time.Millisecond)
	m.ObserveHTTPRequest("/api/v1/bookings", "POST", 201, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.lifecycleOutcomes.WithLabelValues("cancel", "ambiguous")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsPublished.WithLabelValues("booking.created", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/v1/bookings", "POST", "201")))
}
