package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront/pkg/auth"
	"github.com/angelmondragon/storefront/pkg/config"
)

type sessionsFunc func(accessID string) (bool, error)

func (f sessionsFunc) HasSession(_ context.Context, accessID string) (bool, error) {
	return f(accessID)
}

func liveSessions(ids ...string) sessionsFunc {
	return func(accessID string) (bool, error) {
		for _, id := range ids {
			if id == accessID {
				return true, nil
			}
		}
		return false, nil
	}
}

var authCfg = config.JWTConfig{Secret: "secret", Issuer: "storefront", ExpirationMinutes: 60}

func bearer(t *testing.T, userID uuid.UUID, jti string, issuedAt time.Time) string {
	t.Helper()
	token, _, err := auth.MintAccessToken(authCfg, issuedAt, auth.AccessTokenPayload{UserID: userID, Email: "ada@example.com", JTI: jti})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func TestAuthRejections(t *testing.T) {
	userID := uuid.New()
	cases := []struct {
		name     string
		header   string
		sessions sessionsFunc
		want     int
	}{
		{"no header", "", liveSessions("a1"), http.StatusUnauthorized},
		{"garbage token", "Bearer invalid", liveSessions("a1"), http.StatusUnauthorized},
		{"wrong scheme", "Basic Zm9vOmJhcg==", liveSessions("a1"), http.StatusUnauthorized},
		{"expired", bearer(t, userID, "a1", time.Now().Add(-2*time.Hour)), liveSessions("a1"), http.StatusUnauthorized},
		{"revoked session", bearer(t, userID, "a1", time.Now()), liveSessions(), http.StatusUnauthorized},
		{"session store down", bearer(t, userID, "a1", time.Now()), func(string) (bool, error) { return false, errors.New("redis down") }, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := Auth(authCfg, tc.sessions, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d got %d", tc.want, rec.Code)
			}
			if called {
				t.Fatal("handler ran for rejected request")
			}
			if tc.want == http.StatusUnauthorized && rec.Header().Get("WWW-Authenticate") == "" {
				t.Fatal("expected WWW-Authenticate challenge")
			}
		})
	}
}

func TestAuthSeedsContext(t *testing.T) {
	userID := uuid.New()
	var user, access string
	handler := Auth(authCfg, liveSessions("access-1"), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user = UserIDFromContext(r.Context())
		access = AccessIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", bearer(t, userID, "access-1", time.Now()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}
	if user != userID.String() || access != "access-1" {
		t.Fatalf("unexpected context user=%q access=%q", user, access)
	}
}

func TestAuthWithoutSessionChecker(t *testing.T) {
	handler := Auth(authCfg, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, uuid.New(), "any", time.Now()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
