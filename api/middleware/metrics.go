package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/pkg/metrics"
)

// Metrics records one operation per route pattern. 5xx responses count as
// failures.
func Metrics(m *metrics.OperationMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := record(w)
			start := time.Now()
			next.ServeHTTP(rec, r)

			pattern := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				pattern = rctx.RoutePattern()
			}
			m.Observe(r.Method+" "+pattern, start, rec.Status() >= http.StatusInternalServerError)
		})
	}
}
