package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pediacenter"

// Metrics exposes counters and histograms for the HTTP surface, the booking
// lifecycle, slot search and event publishing. All methods are nil-safe.
type Metrics struct {
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	lifecycleOutcomes *prometheus.CounterVec
	slotsReturned     prometheus.Histogram
	lockWait          *prometheus.HistogramVec
	eventsPublished   *prometheus.CounterVec
	eventDuration     prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		lifecycleOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bookings",
			Name:      "lifecycle_total",
			Help:      "Booking lifecycle operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		slotsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "slots",
			Name:      "search_results",
			Help:      "Number of candidate slots returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		lockWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "bookings",
			Name:      "lock_wait_seconds",
			Help:      "Time spent waiting for the bookings store lock",
			Buckets:   prometheus.DefBuckets,
		}, []string{"acquired"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Booking events published by type and status",
		}, []string{"event_type", "status"}),
		eventDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "publish_duration_seconds",
			Help:      "Booking event publish latency",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.lifecycleOutcomes,
		m.slotsReturned,
		m.lockWait,
		m.eventsPublished,
		m.eventDuration,
	)
	return m
}

func (m *Metrics) ObserveHTTPRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

func (m *Metrics) ObserveLifecycle(operation, outcome string) {
	if m == nil {
		return
	}
	m.lifecycleOutcomes.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveSlotSearch(results int) {
	if m == nil {
		return
	}
	m.slotsReturned.Observe(float64(results))
}

func (m *Metrics) ObserveLockWait(acquired bool, d time.Duration) {
	if m == nil {
		return
	}
	m.lockWait.WithLabelValues(strconv.FormatBool(acquired)).Observe(d.Seconds())
}

func (m *Metrics) ObserveEventPublish(eventType string, err error, d time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.eventsPublished.WithLabelValues(eventType, status).Inc()
	m.eventDuration.Observe(d.Seconds())
}
