package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront/pkg/logger"
)

const (
	requestIDHeader     = "X-Request-Id"
	correlationIDHeader = "X-Correlation-Id"
)

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{8,128}$`)

// RequestID tags the request with an id taken from X-Request-Id, then
// X-Correlation-Id, else a fresh time-ordered UUID. The id is echoed back and
// attached to the request logger.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t := &trace{requestID: inboundRequestID(r)}
			w.Header().Set(requestIDHeader, t.requestID)

			ctx := context.WithValue(r.Context(), traceKey{}, t)
			if logg != nil {
				ctx = logg.WithRequestID(ctx, t.requestID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func inboundRequestID(r *http.Request) string {
	for _, header := range []string{requestIDHeader, correlationIDHeader} {
		if id := r.Header.Get(header); requestIDPattern.MatchString(id) {
			return id
		}
	}
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
