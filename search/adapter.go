package search

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/jonwraymond/docsearch/corpus"
	"github.com/jonwraymond/docsearch/highlight"
	"github.com/jonwraymond/docsearch/index"
	"github.com/jonwraymond/docsearch/query"
)

// DefaultBaseURL is used when Options.BaseURL is empty.
const DefaultBaseURL = "/"

// FieldOrder is the precedence used when a matched term occurs in several
// fields of one document. Only the first field with positions yields a hit.
var FieldOrder = [...]string{corpus.FieldTitle, corpus.FieldContent, corpus.FieldKeywords}

// Gateway is the index boundary the adapter queries.
// *index.Index implements it.
type Gateway interface {
	Tokenize(text string) []string
	Execute(ctx context.Context, q query.Query) ([]index.RawMatch, error)
}

// Searcher turns raw user input into hits.
type Searcher interface {
	Search(ctx context.Context, input string) ([]Hit, error)
}

// Options configures an Adapter.
type Options struct {
	// Corpus resolves index references to documents.
	Corpus corpus.Corpus

	// IndexBlob is a serialized index snapshot, loaded once by New.
	// Ignored when Index is set.
	IndexBlob []byte

	// Index is an already opened gateway. The adapter does not close it.
	Index Gateway

	// BaseURL prefixes relative document URLs.
	// Default: "/"
	BaseURL string

	// MaxHits caps both the documents considered and the hits returned.
	// Values <= 0 make every search return no hits.
	MaxHits int

	// Logger receives warnings about unresolved references.
	// Default: zap.NewNop()
	Logger *zap.Logger
}

// Adapter answers search-box queries against one corpus and index.
// It is safe for concurrent use.
type Adapter struct {
	corpus  corpus.Corpus
	gateway Gateway
	owned   io.Closer
	baseURL string
	maxHits int
	log     *zap.Logger
}

var (
	_ Searcher = (*Adapter)(nil)
	_ Gateway  = (*index.Index)(nil)
)

// Result is the outcome of an asynchronous search.
type Result struct {
	Hits []Hit
	Err  error
}

// New creates an Adapter. When opts.Index is nil the serialized index in
// opts.IndexBlob is loaded; load failures are returned as *IndexError.
func New(opts Options) (*Adapter, error) {
	a := &Adapter{
		corpus:  opts.Corpus,
		gateway: opts.Index,
		baseURL: opts.BaseURL,
		maxHits: opts.MaxHits,
		log:     opts.Logger,
	}
	if a.baseURL == "" {
		a.baseURL = DefaultBaseURL
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}

	if a.gateway == nil {
		if len(opts.IndexBlob) == 0 {
			return nil, &IndexError{Op: OpLoad, Err: ErrNoIndex}
		}
		idx, err := index.Load(opts.IndexBlob)
		if err != nil {
			return nil, &IndexError{Op: OpLoad, Err: err}
		}
		a.gateway = idx
		a.owned = idx
	}

	return a, nil
}

// Search returns at most MaxHits hits for input, in index rank order.
// Index failures are returned as *IndexError and no hits are produced.
func (a *Adapter) Search(ctx context.Context, input string) ([]Hit, error) {
	if a.maxHits <= 0 {
		return []Hit{}, nil
	}

	parsed := query.Parse(input, a.gateway)
	matches, err := a.gateway.Execute(ctx, query.Build(parsed, a.gateway))
	if err != nil {
		return nil, &IndexError{Op: OpExecute, Err: err}
	}

	cands := filterPhrases(a.resolve(matches), parsed.Required, a.maxHits)

	hits := make([]Hit, 0, len(cands))
	represented := make(map[string]struct{})
	for _, c := range cands {
		for _, tm := range c.match.Terms {
			if hit, ok := a.termHit(c, tm, input, parsed.Required, represented); ok {
				hits = append(hits, hit)
			}
		}
	}

	if len(hits) > a.maxHits {
		hits = hits[:a.maxHits]
	}
	return hits, nil
}

// SearchAsync runs Search on its own goroutine. The channel yields exactly
// one Result and is then closed.
func (a *Adapter) SearchAsync(ctx context.Context, input string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		hits, err := a.Search(ctx, input)
		out <- Result{Hits: hits, Err: err}
	}()
	return out
}

// Fingerprint identifies the indexed content when the gateway exposes one.
func (a *Adapter) Fingerprint() string {
	if fp, ok := a.gateway.(interface{ Fingerprint() string }); ok {
		return fp.Fingerprint()
	}
	return ""
}

// MaxHits returns the configured hit cap.
func (a *Adapter) MaxHits() int {
	return a.maxHits
}

// Close releases an index loaded by New. Gateways passed in Options are
// left open.
func (a *Adapter) Close() error {
	if a.owned == nil {
		return nil
	}
	return a.owned.Close()
}

func (a *Adapter) resolve(matches []index.RawMatch) []candidate {
	cands := make([]candidate, 0, len(matches))
	for _, m := range matches {
		doc, ok := a.corpus.Lookup(m.Ref)
		if !ok {
			a.log.Warn("skipping unknown document reference", zap.String("ref", m.Ref))
			continue
		}
		cands = append(cands, candidate{match: m, doc: doc})
	}
	return cands
}

// termHit renders the hit for one matched term from the first position of
// the first field in FieldOrder that has positions. Title and keyword hits
// are emitted at most once per reference.
func (a *Adapter) termHit(c candidate, tm index.TermMatch, input string, phrases []string, represented map[string]struct{}) (Hit, bool) {
	for _, field := range FieldOrder {
		positions := tm.Fields[field]
		if len(positions) == 0 {
			continue
		}
		pos := positions[0]
		doc := c.doc
		href := resolveURL(a.baseURL, doc.URL)

		switch field {
		case corpus.FieldContent:
			start, length := highlight.Widen(doc.Content, pos.Start, pos.Length, phrases)
			return FormatHit(doc, href, "", highlight.Content(doc.Content, start, length)), true

		case corpus.FieldTitle:
			if _, seen := represented[c.match.Ref]; seen {
				return Hit{}, false
			}
			represented[c.match.Ref] = struct{}{}
			return FormatHit(doc, href, highlight.Title(doc.Title, pos.Start, len(input)), ""), true

		default:
			if _, seen := represented[c.match.Ref]; seen {
				return Hit{}, false
			}
			represented[c.match.Ref] = struct{}{}
			return FormatHit(doc, href, highlight.Keywords(doc.Title, doc.Keywords, pos.Start, len(input)), ""), true
		}
	}
	return Hit{}, false
}
