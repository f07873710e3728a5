package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/types"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var env types.ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope %q: %v", w.Body.String(), err)
	}
	return env.Error
}

func TestWriteSuccessStatus(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccessStatus(w, http.StatusCreated, map[string]string{"hello": "world"})

	if w.Code != http.StatusCreated || w.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected response %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	var env struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil || env.Data["hello"] != "world" {
		t.Fatalf("unexpected body %q err=%v", w.Body.String(), err)
	}
}

func TestWriteErrorRendering(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		status      int
		message     string
		wantDetails bool
	}{
		{
			name:        "validation keeps message and details",
			err:         pkgerrors.New(pkgerrors.CodeValidation, "bad input").WithDetails(map[string]string{"email": "required"}),
			status:      http.StatusBadRequest,
			message:     "bad input",
			wantDetails: true,
		},
		{
			name:    "not found keeps message",
			err:     pkgerrors.New(pkgerrors.CodeNotFound, "order not found"),
			status:  http.StatusNotFound,
			message: "order not found",
		},
		{
			name:    "untyped error is hidden",
			err:     errors.New("dial tcp 10.0.0.1:5432: refused"),
			status:  http.StatusInternalServerError,
			message: "internal server error",
		},
		{
			name:    "dependency uses public text",
			err:     pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("timeout"), "list products"),
			status:  http.StatusServiceUnavailable,
			message: "dependency unavailable",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(context.Background(), nil, w, tc.err)
			if w.Code != tc.status {
				t.Fatalf("expected %d got %d", tc.status, w.Code)
			}
			body := decodeError(t, w)
			if body.Message != tc.message {
				t.Fatalf("expected message %q got %q", tc.message, body.Message)
			}
			if (body.Details != nil) != tc.wantDetails {
				t.Fatalf("details presence mismatch: %v", body.Details)
			}
		})
	}
}

func TestWriteErrorEchoesRequestIDAndRetryAfter(t *testing.T) {
	w := httptest.NewRecorder()
	w.Header().Set("X-Request-Id", "req-42")
	WriteError(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodeDependency, "redis down"))

	if got := w.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("expected Retry-After 1, got %q", got)
	}
	if body := decodeError(t, w); body.RequestID != "req-42" {
		t.Fatalf("expected request id echoed, got %+v", body)
	}

	w = httptest.NewRecorder()
	w.Header().Set("Retry-After", "60")
	WriteError(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodeInternal, "x"))
	if got := w.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("existing Retry-After overwritten: %q", got)
	}
}

func TestWriteSuccessUnencodablePayload(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]any{"bad": make(chan int)})
	if w.Code != http.StatusInternalServerError || decodeError(t, w).Code != "INTERNAL_ERROR" {
		t.Fatalf("expected internal error envelope, got %d %q", w.Code, w.Body.String())
	}
}
