// Package batch runs many documentation queries against one searcher on a
// bounded worker pool.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/jonwraymond/docsearch/metrics"
	"github.com/jonwraymond/docsearch/search"
)

// ErrNoSearcher is returned by New without a searcher.
var ErrNoSearcher = errors.New("batch: searcher is required")

// Options configures a Runner.
type Options struct {
	// Workers bounds concurrent searches. Default: runtime.NumCPU()/2, min 1.
	Workers int
	Logger  *zap.Logger
}

// Result is the outcome of one query. Err is nil on success.
type Result struct {
	Query string       `json:"query"`
	Hits  []search.Hit `json:"hits"`
	Err   error        `json:"-"`
}

// Runner fans queries out over an ants pool.
type Runner struct {
	searcher search.Searcher
	pool     *ants.Pool
	log      *zap.Logger
}

// New creates a Runner. Call Release when done.
func New(searcher search.Searcher, opts Options) (*Runner, error) {
	if searcher == nil {
		return nil, ErrNoSearcher
	}
	if opts.Workers < 1 {
		opts.Workers = max(runtime.NumCPU()/2, 1)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	pool, err := ants.NewPool(opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("batch: create pool: %w", err)
	}
	return &Runner{searcher: searcher, pool: pool, log: opts.Logger}, nil
}

// Run searches every query and returns results in input order. A failed
// query does not stop the others.
func (r *Runner) Run(ctx context.Context, queries []string) []Result {
	results := make([]Result, len(queries))
	var wg sync.WaitGroup

	for i, q := range queries {
		results[i].Query = q
		if err := ctx.Err(); err != nil {
			r.record(&results[i], nil, err)
			continue
		}

		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			hits, err := r.searcher.Search(ctx, q)
			r.record(&results[i], hits, err)
		})
		if err != nil {
			wg.Done()
			r.record(&results[i], nil, fmt.Errorf("batch: submit: %w", err))
		}
	}

	wg.Wait()
	return results
}

func (r *Runner) record(res *Result, hits []search.Hit, err error) {
	metrics.BatchQueriesTotal.WithLabelValues(metrics.Status(err)).Inc()
	if err != nil {
		r.log.Warn("batch query failed", zap.String("query", res.Query), zap.Error(err))
		res.Err = err
		return
	}
	if hits == nil {
		hits = []search.Hit{}
	}
	res.Hits = hits
}

// Release stops the worker pool.
func (r *Runner) Release() {
	r.pool.Release()
}

// MaxQueryBytes bounds a single input line read by ReadQueries.
const MaxQueryBytes = 1 << 20

// ReadQueries reads one query per line, skipping blank lines. A line longer
// than MaxQueryBytes is an error.
func ReadQueries(rd io.Reader) ([]string, error) {
	var queries []string
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), MaxQueryBytes)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		queries = append(queries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("batch: read queries: %w", err)
	}
	return queries, nil
}
