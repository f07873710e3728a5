package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

type fakeStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	f.data[key] = str
	return true, nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

func countingHandler(calls *int, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = fmt.Fprintf(w, `{"data":{"call":%d}}`, *calls)
	})
}

func orderRequest(key, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	if key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	return req.WithContext(WithUserID(req.Context(), "user-1"))
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, IdempotencyPolicy{TTL: time.Hour}, nil)(countingHandler(&calls, http.StatusCreated))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, orderRequest("key-1", `{"lines":[1]}`))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, orderRequest("key-1", `{"lines":[1]}`))

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if second.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201, got %d", second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatal("expected replay header")
	}
}

func TestIdempotencyRejectsDifferentBody(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, IdempotencyPolicy{}, nil)(countingHandler(&calls, http.StatusCreated))

	handler.ServeHTTP(httptest.NewRecorder(), orderRequest("key-1", `{"lines":[1]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, orderRequest("key-1", `{"lines":[2]}`))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeIdempotency) {
		t.Fatalf("unexpected code %s", payload.Error.Code)
	}
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, IdempotencyPolicy{}, nil)(countingHandler(&calls, http.StatusServiceUnavailable))

	handler.ServeHTTP(httptest.NewRecorder(), orderRequest("key-1", `{}`))
	handler.ServeHTTP(httptest.NewRecorder(), orderRequest("key-1", `{}`))
	if calls != 2 {
		t.Fatalf("expected failed responses to be retried, ran %d times", calls)
	}
}

func TestIdempotencyMissingKey(t *testing.T) {
	calls := 0
	optional := Idempotency(newFakeStore(), IdempotencyPolicy{}, nil)(countingHandler(&calls, http.StatusCreated))
	rec := httptest.NewRecorder()
	optional.ServeHTTP(rec, orderRequest("", `{}`))
	if rec.Code != http.StatusCreated || calls != 1 {
		t.Fatalf("expected pass-through, got %d after %d calls", rec.Code, calls)
	}

	required := Idempotency(newFakeStore(), IdempotencyPolicy{Required: true}, nil)(countingHandler(&calls, http.StatusCreated))
	rec = httptest.NewRecorder()
	required.ServeHTTP(rec, orderRequest("", `{}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestIdempotencyScopesByUser(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, IdempotencyPolicy{}, nil)(countingHandler(&calls, http.StatusCreated))

	handler.ServeHTTP(httptest.NewRecorder(), orderRequest("key-1", `{}`))
	other := orderRequest("key-1", `{}`)
	other = other.WithContext(WithUserID(other.Context(), "user-2"))
	handler.ServeHTTP(httptest.NewRecorder(), other)
	if calls != 2 {
		t.Fatalf("expected separate scopes per user, ran %d times", calls)
	}
}
