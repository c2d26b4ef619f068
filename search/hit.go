package search

import (
	"net/url"
	"strings"

	"github.com/jonwraymond/docsearch/corpus"
)

// MatchLevelFull is the only match level snippets carry.
const MatchLevelFull = "full"

// Hit is one search result in the shape DocSearch front ends render.
type Hit struct {
	Hierarchy       Hierarchy       `json:"hierarchy"`
	URL             string          `json:"url"`
	Version         string          `json:"version,omitempty"`
	SnippetResult   *SnippetResult  `json:"_snippetResult"`
	HighlightResult HighlightResult `json:"_highlightResult"`
}

// Hierarchy names the page (Lvl0) and, for sections, the heading (Lvl1).
type Hierarchy struct {
	Lvl0 string  `json:"lvl0"`
	Lvl1 *string `json:"lvl1"`
}

// SnippetResult carries the content preview.
type SnippetResult struct {
	Content Snippet `json:"content"`
}

// Snippet is highlighted preview text.
type Snippet struct {
	Value      string `json:"value"`
	MatchLevel string `json:"matchLevel"`
}

// HighlightResult mirrors Hierarchy with highlight markup applied.
type HighlightResult struct {
	Hierarchy HighlightHierarchy `json:"hierarchy"`
}

// HighlightHierarchy holds the highlighted hierarchy levels.
type HighlightHierarchy struct {
	Lvl0 HighlightValue  `json:"lvl0"`
	Lvl1 *HighlightValue `json:"lvl1"`
}

// HighlightValue is a single highlighted string.
type HighlightValue struct {
	Value string `json:"value"`
}

// FormatHit assembles a Hit for doc. formattedTitle replaces the plain title
// in the highlight result when non-empty; formattedContent becomes the
// snippet when non-empty.
func FormatHit(doc corpus.Document, hitURL, formattedTitle, formattedContent string) Hit {
	title := formattedTitle
	if title == "" {
		title = doc.Title
	}

	h := Hit{
		Hierarchy: Hierarchy{Lvl0: doc.PageTitle},
		URL:       hitURL,
		Version:   doc.Version,
	}
	if h.Hierarchy.Lvl0 == "" {
		h.Hierarchy.Lvl0 = doc.Title
	}

	if doc.Type == corpus.Page {
		h.HighlightResult.Hierarchy.Lvl0 = HighlightValue{Value: title}
	} else {
		lvl1 := doc.Title
		h.Hierarchy.Lvl1 = &lvl1
		h.HighlightResult.Hierarchy.Lvl0 = HighlightValue{Value: h.Hierarchy.Lvl0}
		h.HighlightResult.Hierarchy.Lvl1 = &HighlightValue{Value: title}
	}

	if formattedContent != "" {
		h.SnippetResult = &SnippetResult{
			Content: Snippet{Value: formattedContent, MatchLevel: MatchLevelFull},
		}
	}
	return h
}

// resolveURL joins a relative document URL onto base. Absolute URLs and
// root-relative paths are returned unchanged.
func resolveURL(base, docURL string) string {
	if base == "" || docURL == "" || strings.HasPrefix(docURL, "/") || strings.HasPrefix(docURL, "#") {
		return docURL
	}
	if u, err := url.Parse(docURL); err == nil && u.IsAbs() {
		return docURL
	}
	return strings.TrimSuffix(base, "/") + "/" + docURL
}
