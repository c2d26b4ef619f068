package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/jonwraymond/docsearch/search"
)

// Search outcome labels.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
	StatusError       = "error"
)

// InstrumentedSearcher records latency, outcome and hit counts of the
// searcher it wraps.
type InstrumentedSearcher struct {
	inner search.Searcher
}

// Instrument wraps inner with search metrics.
func Instrument(inner search.Searcher) *InstrumentedSearcher {
	return &InstrumentedSearcher{inner: inner}
}

// Search delegates to the wrapped searcher.
func (s *InstrumentedSearcher) Search(ctx context.Context, input string) ([]search.Hit, error) {
	start := time.Now()
	hits, err := s.inner.Search(ctx, input)
	SearchDuration.Observe(time.Since(start).Seconds())

	SearchRequestsTotal.WithLabelValues(Status(err)).Inc()
	if err == nil {
		SearchHits.Observe(float64(len(hits)))
	}
	return hits, err
}

// Status maps a search error to its outcome label.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, search.ErrIndexUnavailable):
		return StatusUnavailable
	default:
		return StatusError
	}
}
