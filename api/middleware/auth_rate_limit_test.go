package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

type fakeRateStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newFakeRateStore() *fakeRateStore {
	return &fakeRateStore{counts: make(map[string]int64)}
}

func (f *fakeRateStore) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[scope]++
	count := f.counts[scope]
	return count <= limit, count, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func signInRequest(email, remote string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", strings.NewReader(`{"email":"`+email+`","password":"secret"}`))
	req.RemoteAddr = remote
	return req
}

func TestAuthRateLimitPreservesBody(t *testing.T) {
	policy := AuthRateLimitPolicy{Name: "signin", Window: time.Minute, IPLimit: 2, EmailLimit: 2}
	handler := AuthRateLimit(policy, newFakeRateStore(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if !strings.Contains(string(body), `"email":"tester@example.com"`) {
			t.Fatalf("unexpected body: %s", string(body))
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signInRequest("tester@example.com", "1.2.3.4:5678"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthRateLimitEmailLimitTriggers(t *testing.T) {
	policy := AuthRateLimitPolicy{Name: "signin", Window: time.Minute, EmailLimit: 2}
	handler := AuthRateLimit(policy, newFakeRateStore(), nil)(okHandler())

	for i := 0; i < 3; i++ {
		// Case and whitespace differences count against the same address.
		email := "Blocked@Example.com"
		if i == 1 {
			email = " blocked@example.com"
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, signInRequest(email, "10.0.0."+string(rune('1'+i))+":5678"))

		if i < 2 {
			if rec.Code != http.StatusOK {
				t.Fatalf("attempt %d: expected success before limit, got %d", i, rec.Code)
			}
			continue
		}
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", rec.Code)
		}
		var payload struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if payload.Error.Code != string(pkgerrors.CodeRateLimit) {
			t.Fatalf("unexpected code: %s", payload.Error.Code)
		}
	}
}

func TestAuthRateLimitIPLimitTriggers(t *testing.T) {
	policy := AuthRateLimitPolicy{Name: "signup", Window: time.Minute, IPLimit: 1}
	handler := AuthRateLimit(policy, newFakeRateStore(), nil)(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, signInRequest("a@example.com", "1.2.3.4:5678"))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, signInRequest("b@example.com", "1.2.3.4:9999"))

	if first.Code != http.StatusOK {
		t.Fatalf("expected first request allowed, got %d", first.Code)
	}
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for same ip, got %d", second.Code)
	}
	if got := second.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("expected Retry-After 60, got %q", got)
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": " 9.9.9.9, 10.0.0.1"}, "1.2.3.4:5678", "9.9.9.9"},
		{"real ip", map[string]string{"X-Real-IP": "8.8.8.8"}, "1.2.3.4:5678", "8.8.8.8"},
		{"remote addr", nil, "1.2.3.4:5678", "1.2.3.4"},
		{"bare remote", nil, "unix", "unix"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		for k, v := range tc.headers {
			req.Header.Set(k, v)
		}
		req.RemoteAddr = tc.remote
		if ip := clientIP(req); ip != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, ip)
		}
	}
}

func TestAuthRateLimitDisabledPolicy(t *testing.T) {
	policy := SignInPolicy(config.AuthRateLimitConfig{})
	store := newFakeRateStore()
	handler := AuthRateLimit(policy, store, nil)(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, signInRequest("a@example.com", "1.2.3.4:5678"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected disabled policy to pass, got %d", rec.Code)
		}
	}
	if len(store.counts) != 0 {
		t.Fatalf("expected no counters, got %v", store.counts)
	}
}
