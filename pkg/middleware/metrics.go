package middleware

import (
	"net/http"
	"pediacenter/pkg/metrics"
	"time"
)

const unmatchedRoute = "unmatched"

// HTTPMetrics records request counts and latency. Requests that end in 404
// or 405 share one route label so unknown paths cannot grow the series.
func HTTPMetrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			route := r.URL.Path
			if wrapped.statusCode == http.StatusNotFound || wrapped.statusCode == http.StatusMethodNotAllowed {
				route = unmatchedRoute
			}
			m.ObserveHTTPRequest(route, r.Method, wrapped.statusCode, time.Since(start))
		})
	}
}
