package search

import (
	"context"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/jonwraymond/docsearch/corpus"
	"github.com/jonwraymond/docsearch/index"
	"github.com/jonwraymond/docsearch/query"
)

const (
	open = `<span class="algolia-docsearch-suggestion--highlight">`
	shut = `</span>`
)

// fakeGateway returns canned matches and counts calls.
type fakeGateway struct {
	matches []index.RawMatch
	err     error
	calls   atomic.Int32
	last    query.Query
}

func (g *fakeGateway) Tokenize(text string) []string {
	return index.Tokenize(text)
}

func (g *fakeGateway) Execute(_ context.Context, q query.Query) ([]index.RawMatch, error) {
	g.calls.Add(1)
	g.last = q
	if g.err != nil {
		return nil, g.err
	}
	return slices.Clone(g.matches), nil
}

func contentMatch(ref, term string, start, length int) index.RawMatch {
	return index.RawMatch{
		Ref:   ref,
		Score: 1,
		Terms: []index.TermMatch{termIn(term, corpus.FieldContent, start, length)},
	}
}

func termIn(term, field string, start, length int) index.TermMatch {
	return index.TermMatch{
		Term:   term,
		Fields: map[string][]index.Position{field: {{Start: start, Length: length}}},
	}
}

func newTestAdapter(t *testing.T, opts Options) *Adapter {
	t.Helper()
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func snapshotBlob(t *testing.T, c corpus.Corpus) []byte {
	t.Helper()
	blob, err := index.NewSnapshot(c).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	return blob
}
