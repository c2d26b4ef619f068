package batch

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/docsearch/metrics"
	"github.com/jonwraymond/docsearch/search"
)

// echoSearcher returns one hit whose URL is the input, or fails on "fail".
type echoSearcher struct {
	calls atomic.Int32
}

func (s *echoSearcher) Search(_ context.Context, input string) ([]search.Hit, error) {
	s.calls.Add(1)
	if input == "fail" {
		return nil, errors.New("boom")
	}
	return []search.Hit{{URL: "/" + input}}, nil
}

func newRunner(t *testing.T, s search.Searcher, workers int) *Runner {
	t.Helper()
	r, err := New(s, Options{Workers: workers})
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r
}

func TestNew_RequiresSearcher(t *testing.T) {
	_, err := New(nil, Options{})
	assert.ErrorIs(t, err, ErrNoSearcher)
}

func TestRun_PreservesOrder(t *testing.T) {
	s := &echoSearcher{}
	r := newRunner(t, s, 3)

	queries := make([]string, 50)
	for i := range queries {
		queries[i] = strings.Repeat("q", i+1)
	}

	results := r.Run(context.Background(), queries)
	require.Len(t, results, len(queries))
	for i, res := range results {
		require.NoError(t, res.Err)
		assert.Equal(t, queries[i], res.Query)
		require.Len(t, res.Hits, 1)
		assert.Equal(t, "/"+queries[i], res.Hits[0].URL)
	}
	assert.EqualValues(t, len(queries), s.calls.Load())
}

func TestRun_FailureIsIsolated(t *testing.T) {
	r := newRunner(t, &echoSearcher{}, 2)

	okBefore := testutil.ToFloat64(metrics.BatchQueriesTotal.WithLabelValues(metrics.StatusOK))
	errBefore := testutil.ToFloat64(metrics.BatchQueriesTotal.WithLabelValues(metrics.StatusError))

	results := r.Run(context.Background(), []string{"a", "fail", "b"})
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.EqualError(t, results[1].Err, "boom")
	assert.Nil(t, results[1].Hits)
	assert.NoError(t, results[2].Err)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(metrics.BatchQueriesTotal.WithLabelValues(metrics.StatusOK)))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(metrics.BatchQueriesTotal.WithLabelValues(metrics.StatusError)))
}

func TestRun_CanceledContext(t *testing.T) {
	s := &echoSearcher{}
	r := newRunner(t, s, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := r.Run(ctx, []string{"a", "b"})
	for _, res := range results {
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
	assert.Zero(t, s.calls.Load())
}

func TestRun_Empty(t *testing.T) {
	r := newRunner(t, &echoSearcher{}, 1)
	assert.Empty(t, r.Run(context.Background(), nil))
}

func TestReadQueries(t *testing.T) {
	in := "red pepper\n\n  \"sweet\" mango  \n"
	got, err := ReadQueries(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"red pepper", `"sweet" mango`}, got)
}

func TestReadQueries_LongLine(t *testing.T) {
	long := strings.Repeat("pepper ", 100*1024/7) + "mango"
	got, err := ReadQueries(strings.NewReader("red\n" + long + "\nsweet\n"))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, long, got[1])
	assert.Equal(t, "sweet", got[2])
}

func TestReadQueries_LineTooLong(t *testing.T) {
	_, err := ReadQueries(strings.NewReader(strings.Repeat("x", MaxQueryBytes+1)))
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}
