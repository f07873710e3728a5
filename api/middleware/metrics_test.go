package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/angelmondragon/storefront/pkg/metrics"
)

func TestMetricsObservesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewOperationMetrics(reg, "http")

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/products/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	for _, path := range []string{"/products/a", "/products/b", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	for _, name := range []string{"storefront_http_operation_success_total", "storefront_http_operation_failure_total"} {
		got, err := testutil.GatherAndCount(reg, name)
		if err != nil {
			t.Fatalf("gather %s: %v", name, err)
		}
		if got != 1 {
			t.Fatalf("expected one series for %s, got %d", name, got)
		}
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "storefront_http_operation_success_total" {
			continue
		}
		metric := mf.GetMetric()[0]
		if op := metric.GetLabel()[0].GetValue(); op != "GET /products/{slug}" {
			t.Fatalf("unexpected operation label %q", op)
		}
		if v := metric.GetCounter().GetValue(); v != 2 {
			t.Fatalf("expected 2 successes, got %v", v)
		}
	}
}
