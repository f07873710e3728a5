package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// RateLimitStore counts attempts in fixed windows.
type RateLimitStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// AuthRateLimitPolicy throttles one auth surface by client IP and by email.
// A zero limit disables that dimension.
type AuthRateLimitPolicy struct {
	Name       string
	Window     time.Duration
	IPLimit    int
	EmailLimit int
}

func SignInPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{Name: "signin", Window: cfg.SignInWindow, IPLimit: cfg.SignInIPLimit, EmailLimit: cfg.SignInEmailLimit}
}

func SignUpPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{Name: "signup", Window: cfg.SignUpWindow, IPLimit: cfg.SignUpIPLimit, EmailLimit: cfg.SignUpEmailLimit}
}

// bucket is one counter a request is charged against.
type bucket struct {
	kind  string
	value string
	limit int
}

func (p AuthRateLimitPolicy) buckets(r *http.Request, body []byte) []bucket {
	var out []bucket
	if ip := clientIP(r); p.IPLimit > 0 && ip != "" {
		out = append(out, bucket{kind: "ip", value: ip, limit: p.IPLimit})
	}
	if email := extractEmail(body); p.EmailLimit > 0 && email != "" {
		sum := sha256.Sum256([]byte(email))
		out = append(out, bucket{kind: "email", value: hex.EncodeToString(sum[:]), limit: p.EmailLimit})
	}
	return out
}

func (p AuthRateLimitPolicy) key(b bucket) string {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	if name == "" {
		name = "auth"
	}
	return strings.Join([]string{"auth", name, b.kind, b.value}, ":")
}

// AuthRateLimit answers 429 with Retry-After once any bucket is over its limit.
func AuthRateLimit(policy AuthRateLimitPolicy, store RateLimitStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || policy.Window <= 0 || (policy.IPLimit <= 0 && policy.EmailLimit <= 0) {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			var body []byte
			if policy.EmailLimit > 0 {
				var err error
				if body, err = io.ReadAll(r.Body); err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			for _, b := range policy.buckets(r, body) {
				allowed, attempts, err := store.FixedWindowAllow(ctx, policy.key(b), int64(b.limit), policy.Window)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if allowed {
					continue
				}
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{
						"policy":   policy.Name,
						"scope":    b.kind,
						"attempts": attempts,
					}), "auth.rate_limit.blocked")
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(policy.Window.Seconds())))
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP.
func clientIP(r *http.Request) string {
	first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	if ip := strings.TrimSpace(first); ip != "" {
		return ip
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(payload, &body) != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(body.Email))
}
