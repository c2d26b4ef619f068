package highlight

import (
	"strings"
	"unicode/utf8"
)

// Markup literals.
const (
	OpenTag  = `<span class="algolia-docsearch-suggestion--highlight">`
	CloseTag = `</span>`

	LeadingEllipsis  = "... "
	TrailingEllipsis = " ..."

	keywordsOpen  = "<br /><i>Keywords: "
	keywordsClose = "</i>"
)

// Scan limits for content previews, counted in words.
const (
	maxWordsBefore = 3
	maxWordsAfter  = 10
)

// Title highlights [start, start+length) of title.
func Title(title string, start, length int) string {
	s, e := Span(title, start, length)
	return wrap(title, s, e)
}

// Keywords renders title followed by the keyword line with
// [start, start+length) of keywords highlighted.
func Keywords(title, keywords string, start, length int) string {
	s, e := Span(keywords, start, length)
	return title + keywordsOpen + wrap(keywords, s, e) + keywordsClose
}

// Content renders the preview of content around [start, start+length).
func Content(content string, start, length int) string {
	return Bounds(content, start, length).Render(content)
}

// Span clamps [start, start+length) to text and widens it to rune
// boundaries. The result satisfies 0 <= s <= e <= len(text).
func Span(text string, start, length int) (s, e int) {
	s = clampInt(start, 0, len(text))
	e = clampInt(start+max(length, 0), s, len(text))

	for s > 0 && !utf8.RuneStart(text[s]) {
		s--
	}
	for e < len(text) && !utf8.RuneStart(text[e]) {
		e++
	}
	return s, e
}

func wrap(text string, s, e int) string {
	var b strings.Builder
	b.Grow(len(text) + len(OpenTag) + len(CloseTag))
	b.WriteString(text[:s])
	b.WriteString(OpenTag)
	b.WriteString(text[s:e])
	b.WriteString(CloseTag)
	b.WriteString(text[e:])
	return b.String()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
