// Package search turns search-box input into DocSearch-style hits.
//
// An [Adapter] ties together a [corpus.Corpus], an index [Gateway] and the
// highlighting rules in package highlight. A call to [Adapter.Search]:
//
//  1. splits the input into quoted phrases and free terms (query.Parse)
//  2. builds an exact ×10 plus prefix lookup over all tokens (query.Build)
//  3. runs it against the index
//  4. drops references missing from the corpus, logging a warning
//  5. keeps documents containing at least one quoted phrase, if any were
//     given, and caps the documents at MaxHits
//  6. renders one hit per matched term from the first of title, content and
//     keywords that has a position
//  7. caps the hits at MaxHits
//
// Title and keyword hits are produced at most once per document per call.
// Content hits are not deduplicated.
//
// # Usage
//
//	c, _ := corpus.LoadFile("search-docs.json")
//	blob, _ := os.ReadFile("search-index.json")
//
//	a, err := search.New(search.Options{
//	    Corpus:    c,
//	    IndexBlob: blob,
//	    BaseURL:   "/",
//	    MaxHits:   8,
//	})
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	hits, err := a.Search(ctx, `"red pepper" spicy`)
//
// # Errors
//
// Index failures, both while loading and while querying, are returned as
// *[IndexError] and match [ErrIndexUnavailable] with errors.Is. Unknown
// references and unterminated quotes are not errors.
//
// # Concurrency
//
// Adapter holds no per-call state and may be shared across goroutines.
// [Adapter.SearchAsync] wraps Search for callers that want a channel.
package search
