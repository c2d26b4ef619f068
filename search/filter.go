package search

import (
	"strings"

	"github.com/jonwraymond/docsearch/corpus"
	"github.com/jonwraymond/docsearch/index"
)

// candidate is a raw match whose reference resolved to a document.
type candidate struct {
	match index.RawMatch
	doc   corpus.Document
}

// ContainsAnyPhrase reports whether any of the lower-cased phrases occurs
// literally in the document's content, title or keywords, ignoring case.
func ContainsAnyPhrase(doc corpus.Document, phrases []string) bool {
	if len(phrases) == 0 {
		return true
	}
	content := strings.ToLower(doc.Content)
	title := strings.ToLower(doc.Title)
	keywords := strings.ToLower(doc.Keywords)

	for _, phrase := range phrases {
		if strings.Contains(content, phrase) ||
			strings.Contains(title, phrase) ||
			strings.Contains(keywords, phrase) {
			return true
		}
	}
	return false
}

// filterPhrases keeps candidates containing at least one required phrase,
// then caps the result at limit. The input order is preserved.
func filterPhrases(cands []candidate, required []string, limit int) []candidate {
	kept := cands
	if len(required) > 0 {
		kept = make([]candidate, 0, len(cands))
		for _, c := range cands {
			if ContainsAnyPhrase(c.doc, required) {
				kept = append(kept, c)
			}
		}
	}
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
