package index

import (
	"cmp"
	"slices"
	"strings"

	blevesearch "github.com/blevesearch/bleve/v2/search"

	"github.com/jonwraymond/docsearch/query"
)

// Position is a matched span as a byte offset and byte length into the
// original field text.
type Position struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// End returns the offset just past the span.
func (p Position) End() int {
	return p.Start + p.Length
}

// TermMatch is every position of one index term in one document.
type TermMatch struct {
	Term   string                `json:"term"`
	Fields map[string][]Position `json:"fields"`
}

// RawMatch is one document returned by the index.
type RawMatch struct {
	Ref   string      `json:"ref"`
	Score float64     `json:"score"`
	Terms []TermMatch `json:"terms"`
}

// Fields flattens the match into field to positions, ordered by start offset.
func (m RawMatch) Fields() map[string][]Position {
	if len(m.Terms) == 0 {
		return nil
	}
	out := make(map[string][]Position)
	for _, tm := range m.Terms {
		for field, positions := range tm.Fields {
			out[field] = append(out[field], positions...)
		}
	}
	for field, positions := range out {
		out[field] = normalizePositions(positions)
	}
	return out
}

// termMatcher is one query token as the index sees it: an analyzed term
// for exact clauses, the raw token for prefix clauses.
type termMatcher struct {
	term   string
	prefix bool
}

func (m termMatcher) matches(term string) bool {
	if m.prefix {
		return strings.HasPrefix(term, m.term)
	}
	return term == m.term
}

// termOrder ranks index terms by the first query token that produced them.
// Exact clause tokens come before prefix clause tokens.
type termOrder []termMatcher

func newTermOrder(q query.Query) termOrder {
	var order termOrder
	for _, kind := range []query.ClauseKind{query.ExactBoosted, query.TrailingWildcard} {
		for _, c := range q.Clauses {
			if c.Kind != kind {
				continue
			}
			for _, tok := range c.Tokens {
				if kind == query.TrailingWildcard {
					order = append(order, termMatcher{term: tok, prefix: true})
					continue
				}
				for _, term := range analyze(tok) {
					order = append(order, termMatcher{term: term})
				}
			}
		}
	}
	return order
}

// rank returns the index of the first matcher accepting term, or len(o)
// when none does.
func (o termOrder) rank(term string) int {
	for i, m := range o {
		if m.matches(term) {
			return i
		}
	}
	return len(o)
}

// sort orders terms by rank, breaking ties alphabetically.
func (o termOrder) sort(terms []string) {
	ranks := make(map[string]int, len(terms))
	for _, term := range terms {
		ranks[term] = o.rank(term)
	}
	slices.SortFunc(terms, func(a, b string) int {
		if c := cmp.Compare(ranks[a], ranks[b]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}

// toRawMatch regroups bleve's field -> term -> locations map by term, in
// query order. Fields outside SearchFields and malformed locations are
// dropped.
func toRawMatch(hit *blevesearch.DocumentMatch, order termOrder) RawMatch {
	m := RawMatch{Ref: hit.ID, Score: hit.Score}

	byTerm := make(map[string]map[string][]Position)
	for field, terms := range hit.Locations {
		if !slices.Contains(SearchFields, field) {
			continue
		}
		for term, locs := range terms {
			positions := positionsOf(locs)
			if len(positions) == 0 {
				continue
			}
			fields, ok := byTerm[term]
			if !ok {
				fields = make(map[string][]Position)
				byTerm[term] = fields
			}
			fields[field] = positions
		}
	}

	if len(byTerm) == 0 {
		return m
	}

	terms := make([]string, 0, len(byTerm))
	for term := range byTerm {
		terms = append(terms, term)
	}
	order.sort(terms)

	m.Terms = make([]TermMatch, 0, len(terms))
	for _, term := range terms {
		m.Terms = append(m.Terms, TermMatch{Term: term, Fields: byTerm[term]})
	}
	return m
}

func positionsOf(locs blevesearch.Locations) []Position {
	positions := make([]Position, 0, len(locs))
	for _, loc := range locs {
		if loc == nil || loc.End < loc.Start {
			continue
		}
		positions = append(positions, Position{
			Start:  int(loc.Start),
			Length: int(loc.End - loc.Start),
		})
	}
	return normalizePositions(positions)
}

// normalizePositions sorts by start then length and drops duplicates that
// arise when several clauses match the same token.
func normalizePositions(positions []Position) []Position {
	if len(positions) == 0 {
		return nil
	}
	slices.SortFunc(positions, func(a, b Position) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Length, b.Length)
	})
	return slices.Compact(positions)
}
