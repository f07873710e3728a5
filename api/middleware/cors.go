package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
)

// CORS allows browser clients on origins. The request id is exposed so a
// storefront page can quote it in support requests.
func CORS(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", idempotencyHeader, requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader, replayedHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           int((5 * time.Minute).Seconds()),
	}
	return cors.Handler(opts)
}
