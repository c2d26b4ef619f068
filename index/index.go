package index

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/blevesearch/bleve/v2"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/jonwraymond/docsearch/corpus"
	"github.com/jonwraymond/docsearch/query"
)

const (
	fingerprintKey = "docsearch.fingerprint"
	batchSize      = 500
)

// Index is a read-only full-text index. It is safe for concurrent use.
type Index struct {
	bi          bleve.Index
	fingerprint string
	docCount    uint64
	closed      atomic.Bool
}

// Load decodes a serialized snapshot into an in-memory index.
func Load(blob []byte) (*Index, error) {
	snap, err := DecodeSnapshot(blob)
	if err != nil {
		return nil, err
	}
	return FromSnapshot(snap)
}

// FromSnapshot builds an in-memory index from snap.
func FromSnapshot(snap Snapshot) (*Index, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	m, err := newMapping()
	if err != nil {
		return nil, fmt.Errorf("build mapping: %w", err)
	}

	bi, err := bleve.NewMemOnly(m)
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	if err := indexDocuments(bi, snap.Documents); err != nil {
		_ = bi.Close()
		return nil, err
	}

	return newIndex(bi, computeFingerprint(snap.Documents))
}

// Build writes snap as an on-disk index at path. The path must not exist.
func Build(path string, snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	m, err := newMapping()
	if err != nil {
		return fmt.Errorf("build mapping: %w", err)
	}

	bi, err := bleve.New(path, m)
	if err != nil {
		return fmt.Errorf("create index %s: %w", path, err)
	}

	if err := indexDocuments(bi, snap.Documents); err != nil {
		_ = bi.Close()
		return err
	}

	if err := bi.SetInternal([]byte(fingerprintKey), []byte(computeFingerprint(snap.Documents))); err != nil {
		_ = bi.Close()
		return fmt.Errorf("store fingerprint: %w", err)
	}

	return bi.Close()
}

// Open opens an index written by Build for reading.
func Open(path string) (*Index, error) {
	bi, err := bleve.OpenUsing(path, map[string]any{"read_only": true})
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", path, err)
	}

	fp, err := bi.GetInternal([]byte(fingerprintKey))
	if err != nil {
		_ = bi.Close()
		return nil, fmt.Errorf("read fingerprint: %w", err)
	}

	return newIndex(bi, string(fp))
}

func newIndex(bi bleve.Index, fingerprint string) (*Index, error) {
	n, err := bi.DocCount()
	if err != nil {
		_ = bi.Close()
		return nil, fmt.Errorf("count documents: %w", err)
	}
	return &Index{bi: bi, fingerprint: fingerprint, docCount: n}, nil
}

func indexDocuments(bi bleve.Index, docs []SnapshotDoc) error {
	for start := 0; start < len(docs); start += batchSize {
		end := min(start+batchSize, len(docs))

		batch := bi.NewBatch()
		for _, doc := range docs[start:end] {
			if err := batch.Index(doc.Ref, doc.indexable()); err != nil {
				return fmt.Errorf("index document %q: %w", doc.Ref, err)
			}
		}
		if err := bi.Batch(batch); err != nil {
			return fmt.Errorf("commit batch: %w", err)
		}
	}
	return nil
}

// Tokenize splits text with the index tokenizer. See the package Tokenize.
func (x *Index) Tokenize(text string) []string {
	return Tokenize(text)
}

// Execute runs q against every search field and returns all matching
// documents ordered by score descending, then by reference in corpus.Refs
// order. Each match lists its terms in the order the query produced them.
// An empty query matches nothing.
func (x *Index) Execute(ctx context.Context, q query.Query) ([]RawMatch, error) {
	if x.closed.Load() {
		return nil, ErrClosed
	}
	if q.IsEmpty() || x.docCount == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(toBleveQuery(q), int(x.docCount), 0, false)
	req.IncludeLocations = true
	req.SortBy([]string{"-_score", "_id"})

	res, err := x.bi.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	order := newTermOrder(q)
	matches := make([]RawMatch, 0, len(res.Hits))
	for _, hit := range res.Hits {
		matches = append(matches, toRawMatch(hit, order))
	}
	// bleve breaks score ties on _id lexically, which puts "10" before "9".
	slices.SortStableFunc(matches, func(a, b RawMatch) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return corpus.CompareRefs(a.Ref, b.Ref)
	})
	return matches, nil
}

// toBleveQuery expands every clause token over every search field.
func toBleveQuery(q query.Query) blevequery.Query {
	var disjuncts []blevequery.Query
	for _, c := range q.Clauses {
		for _, tok := range c.Tokens {
			for _, field := range SearchFields {
				disjuncts = append(disjuncts, clauseQuery(c, tok, field))
			}
		}
	}
	return bleve.NewDisjunctionQuery(disjuncts...)
}

func clauseQuery(c query.Clause, token, field string) blevequery.Query {
	switch c.Kind {
	case query.TrailingWildcard:
		pq := bleve.NewPrefixQuery(token)
		pq.SetField(field)
		pq.SetBoost(c.Boost)
		return pq
	default:
		mq := bleve.NewMatchQuery(token)
		mq.SetField(field)
		mq.SetBoost(c.Boost)
		return mq
	}
}

// Fingerprint returns a stable hash of the indexed documents.
func (x *Index) Fingerprint() string {
	return x.fingerprint
}

// DocCount returns the number of indexed documents.
func (x *Index) DocCount() int {
	return int(x.docCount)
}

// Close releases the index. Further calls to Execute return ErrClosed.
func (x *Index) Close() error {
	if !x.closed.CompareAndSwap(false, true) {
		return nil
	}
	return x.bi.Close()
}
