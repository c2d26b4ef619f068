// Package query turns raw search-box input into a structured index lookup.
//
// Parsing splits the input into quoted phrases and free terms. Building
// produces an explicit [Query] value made of two clauses over the same
// token list:
//
//   - [ExactBoosted]: every token must match an indexed term exactly,
//     weighted [ExactBoost] times the baseline
//   - [TrailingWildcard]: every token matches as a term prefix with the
//     default weight
//
// The index has no phrase or proximity operator, so phrase tokens take part
// in ranking like any other token and phrase correctness is enforced later
// by literal containment.
//
//	parsed := query.Parse(`"red pepper" spicy`, tokenizer)
//	// parsed.Phrases == ["red pepper"], parsed.Terms == ["spicy"]
//	q := query.Build(parsed, tokenizer)
package query
