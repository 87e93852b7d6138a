package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/wildlife-backend/internal/metrics"
)

// Metrics records request counts and latency keyed by the matched route
// pattern, keeping label cardinality bounded.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := wrapStatus(w)

		next.ServeHTTP(sw, r)

		route := routeOf(sw, r)
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		metrics.HTTPDurationMs.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	})
}
