package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jonwraymond/docsearch/search"
)

type stubSearcher struct {
	hits []search.Hit
	err  error
}

func (s stubSearcher) Search(context.Context, string) ([]search.Hit, error) {
	return s.hits, s.err
}

func TestInstrument_RecordsOutcome(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"ok", nil, StatusOK},
		{"unavailable", &search.IndexError{Op: search.OpExecute, Err: errors.New("down")}, StatusUnavailable},
		{"other", errors.New("boom"), StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues(tt.status))

			s := Instrument(stubSearcher{hits: make([]search.Hit, 3), err: tt.err})
			_, err := s.Search(context.Background(), "q")
			if !errors.Is(err, tt.err) {
				t.Fatalf("Search() error = %v, want %v", err, tt.err)
			}

			after := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues(tt.status))
			if after-before != 1 {
				t.Errorf("search_requests_total{status=%q} grew by %v, want 1", tt.status, after-before)
			}
		})
	}
}

func TestInstrument_ObservesHits(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	reg.MustRegister(SearchHits)
	defer reg.Unregister(SearchHits)

	s := Instrument(stubSearcher{hits: make([]search.Hit, 2)})
	if _, err := s.Search(context.Background(), "q"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(families) != 1 {
		t.Fatalf("expected 1 metric family, got %d", len(families))
	}
	h := families[0].GetMetric()[0].GetHistogram()
	if h.GetSampleCount() == 0 {
		t.Error("expected search_hits observations")
	}
}

func TestStatus(t *testing.T) {
	if Status(nil) != StatusOK {
		t.Error("nil error should be ok")
	}
	wrapped := fmt.Errorf("outer: %w", &search.IndexError{Op: search.OpLoad, Err: search.ErrNoIndex})
	if Status(wrapped) != StatusUnavailable {
		t.Error("wrapped index error should be unavailable")
	}
}

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest("GET", "/search?q=red", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	requestsVal := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/search", "200"))
	if requestsVal < 1 {
		t.Errorf("expected http_requests_total >= 1, got %f", requestsVal)
	}

	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/unavailable", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	r.Get("/implicit", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("body"))
	})

	tests := []struct {
		path   string
		status string
	}{
		{"/unavailable", "503"},
		{"/implicit", "200"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest("GET", tc.path, http.NoBody))

			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tc.path, tc.status))
			if val < 1 {
				t.Errorf("expected requests_total for %s with status %s >= 1, got %f", tc.path, tc.status, val)
			}
		})
	}
}

func TestMiddleware_WithoutRouter(t *testing.T) {
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/raw", http.NoBody))

	if testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "418")) < 1 {
		t.Error("expected request outside chi to be labeled unknown")
	}
}

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()
}
