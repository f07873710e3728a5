package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecovererWritesInternalError(t *testing.T) {
	handler := Recoverer(nil)(RequestID(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
	var payload struct {
		Error struct {
			Code      string `json:"code"`
			Message   string `json:"message"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error.Code != "INTERNAL_ERROR" || payload.Error.Message != "internal server error" {
		t.Fatalf("unexpected envelope %+v", payload.Error)
	}
	if payload.Error.RequestID == "" || payload.Error.RequestID != rec.Header().Get(requestIDHeader) {
		t.Fatalf("expected request id echoed, got %q", payload.Error.RequestID)
	}
}

func TestRecovererLeavesStartedResponse(t *testing.T) {
	handler := Recoverer(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusAccepted || rec.Body.Len() != 0 {
		t.Fatalf("expected untouched 202, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRecovererRepanicsAbort(t *testing.T) {
	handler := Recoverer(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if v := recover(); v != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler, got %v", v)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestRequestIDHonoursInboundHeaders(t *testing.T) {
	var seen string
	handler := RequestID(nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	cases := []struct {
		name   string
		header string
		value  string
		keep   bool
	}{
		{"request id", requestIDHeader, "req-12345678", true},
		{"correlation id", correlationIDHeader, "corr-12345678", true},
		{"too short", requestIDHeader, "abc", false},
		{"bad chars", requestIDHeader, "has spaces in it", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(tc.header, tc.value)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get(requestIDHeader); got != seen {
			t.Fatalf("%s: header %q differs from context %q", tc.name, got, seen)
		}
		if (seen == tc.value) != tc.keep {
			t.Fatalf("%s: keep=%v but got %q", tc.name, tc.keep, seen)
		}
	}
}
