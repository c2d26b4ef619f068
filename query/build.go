package query

import (
	"slices"
	"strconv"
)

// Clause weights.
const (
	// ExactBoost weights exact token matches relative to the baseline.
	ExactBoost = 10.0

	// DefaultBoost is the baseline weight.
	DefaultBoost = 1.0
)

// ClauseKind selects how a clause's tokens are matched.
type ClauseKind int

const (
	// ExactBoosted matches tokens exactly with a raised weight.
	ExactBoosted ClauseKind = iota

	// TrailingWildcard matches tokens as term prefixes.
	TrailingWildcard
)

// String returns the clause kind name.
func (k ClauseKind) String() string {
	switch k {
	case ExactBoosted:
		return "exact"
	case TrailingWildcard:
		return "trailing_wildcard"
	default:
		return "clause(" + strconv.Itoa(int(k)) + ")"
	}
}

// Clause is one OR-combined part of a lookup.
type Clause struct {
	Kind   ClauseKind
	Tokens []string
	Boost  float64
}

// Query is a structured lookup understood by the index gateway.
// The zero value matches nothing.
type Query struct {
	Clauses []Clause
}

// IsEmpty reports whether the query can match any document.
func (q Query) IsEmpty() bool {
	for _, c := range q.Clauses {
		if len(c.Tokens) > 0 {
			return false
		}
	}
	return true
}

// Build turns parsed input into a lookup over the phrase tokens (in phrase
// order) followed by the free terms.
func Build(p Parsed, tok Tokenizer) Query {
	tokens := make([]string, 0, len(p.Terms))
	for _, phrase := range p.Phrases {
		tokens = append(tokens, tok.Tokenize(phrase)...)
	}
	tokens = append(tokens, p.Terms...)

	if len(tokens) == 0 {
		return Query{}
	}

	return Query{
		Clauses: []Clause{
			{Kind: ExactBoosted, Tokens: tokens, Boost: ExactBoost},
			{Kind: TrailingWildcard, Tokens: slices.Clone(tokens), Boost: DefaultBoost},
		},
	}
}
