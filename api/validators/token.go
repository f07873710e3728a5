package validators

import (
	"net/http"
	"strings"
)

// BearerToken extracts the token from an Authorization header. The "Bearer"
// scheme is optional.
func BearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) >= 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	return raw
}
