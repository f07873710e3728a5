package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/storefront/pkg/logger"
)

// responseRecorder captures what the handler wrote for the outer middleware.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func record(w http.ResponseWriter) *responseRecorder {
	if rec, ok := w.(*responseRecorder); ok {
		return rec
	}
	return &responseRecorder{ResponseWriter: w}
}

func (r *responseRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *responseRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func (r *responseRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// Logging writes one access line per request. Probe and scrape paths log at
// debug; 5xx responses log as errors and 4xx as warnings.
func Logging(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if logg == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := record(w)
			next.ServeHTTP(rec, r)

			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.Status(),
				"bytes":       rec.bytes,
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if t := traceFrom(r.Context()); t != nil && t.userID != "" {
				fields["user_id"] = t.userID
			}
			ctx := logg.WithFields(r.Context(), fields)

			switch status := rec.Status(); {
			case status >= http.StatusInternalServerError:
				logg.Error(ctx, "request.complete", nil)
			case status >= http.StatusBadRequest:
				logg.Warn(ctx, "request.complete")
			case isProbe(r.URL.Path):
				logg.Debug(ctx, "request.complete")
			default:
				logg.Info(ctx, "request.complete")
			}
		})
	}
}

func isProbe(path string) bool {
	return strings.HasPrefix(path, "/health/") || path == "/metrics"
}
