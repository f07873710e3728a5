package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/storefront/api/responses"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	pkgredis "github.com/angelmondragon/storefront/pkg/redis"
)

const (
	idempotencyHeader = "Idempotency-Key"
	replayedHeader    = "Idempotent-Replayed"
	maxIdempotencyKey = 200
)

// IdempotencyStore persists replayable responses.
type IdempotencyStore interface {
	Get(context.Context, string) (string, error)
	SetNX(context.Context, string, any, time.Duration) (bool, error)
	IdempotencyKey(scope, id string) string
}

// IdempotencyPolicy controls replay for one route.
type IdempotencyPolicy struct {
	TTL time.Duration
	// Required rejects requests without an Idempotency-Key header.
	Required bool
}

// storedResponse is what a replay writes back. Body marshals as base64.
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body"`
	Fingerprint string `json:"fingerprint"`
}

type replayGuard struct {
	store IdempotencyStore
	ttl   time.Duration
	logg  *logger.Logger
}

// Idempotency replays the first successful response recorded for an
// Idempotency-Key. Keys are scoped per user and route, and a key presented
// with a different body is rejected with a conflict.
func Idempotency(store IdempotencyStore, policy IdempotencyPolicy, logg *logger.Logger) func(http.Handler) http.Handler {
	g := &replayGuard{store: store, ttl: policy.TTL, logg: logg}
	if g.ttl <= 0 {
		g.ttl = 24 * time.Hour
	}
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			switch {
			case id == "" && policy.Required:
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header required"))
				return
			case id == "":
				next.ServeHTTP(w, r)
				return
			case len(id) > maxIdempotencyKey:
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header too long"))
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := store.IdempotencyKey(UserIDFromContext(ctx)+"|"+r.Method+"|"+r.URL.Path, id)
			fingerprint := fingerprintOf(body)

			prior, err := g.lookup(ctx, key)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			if prior != nil {
				if prior.Fingerprint != fingerprint {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with different request body"))
					return
				}
				prior.replay(w)
				return
			}

			capture := &bodyCapture{responseRecorder: record(w)}
			next.ServeHTTP(capture, r)
			if status := capture.Status(); status >= 200 && status < 300 {
				g.save(ctx, key, storedResponse{
					Status:      status,
					ContentType: capture.Header().Get("Content-Type"),
					Body:        capture.buf.Bytes(),
					Fingerprint: fingerprint,
				})
			}
		})
	}
}

func (g *replayGuard) lookup(ctx context.Context, key string) (*storedResponse, error) {
	raw, err := g.store.Get(ctx, key)
	if pkgredis.IsNil(err) || (err == nil && raw == "") {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency")
	}
	var prior storedResponse
	if err := json.Unmarshal([]byte(raw), &prior); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode idempotency record")
	}
	return &prior, nil
}

// save keeps the first stored response; a concurrent winner is left alone.
func (g *replayGuard) save(ctx context.Context, key string, resp storedResponse) {
	payload, err := json.Marshal(resp)
	if err == nil {
		_, err = g.store.SetNX(ctx, key, string(payload), g.ttl)
	}
	if err != nil && g.logg != nil {
		g.logg.Error(ctx, "idempotency.persist_failed", err)
	}
}

func (s *storedResponse) replay(w http.ResponseWriter) {
	if s.ContentType != "" {
		w.Header().Set("Content-Type", s.ContentType)
	}
	w.Header().Set(replayedHeader, "true")
	w.WriteHeader(s.Status)
	_, _ = w.Write(s.Body)
}

func fingerprintOf(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// bodyCapture tees the response body so it can be stored after the handler.
type bodyCapture struct {
	*responseRecorder
	buf bytes.Buffer
}

func (c *bodyCapture) Write(b []byte) (int, error) {
	n, err := c.responseRecorder.Write(b)
	c.buf.Write(b[:n])
	return n, err
}
