package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
)

// Error values for corpus loading.
var (
	ErrInvalidCorpus = errors.New("invalid corpus")
)

// DocType distinguishes whole pages from sections within a page.
type DocType int

const (
	// Page is a top-level document; its title is the page title.
	Page DocType = 0

	// Section is a heading within a page; PageTitle names the parent page.
	Section DocType = 1
)

// String returns the lower-case name of the type.
func (t DocType) String() string {
	switch t {
	case Page:
		return "page"
	case Section:
		return "section"
	default:
		return "unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

// Searchable field names shared with the index.
const (
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldKeywords = "keywords"
)

// Document is one searchable unit of the documentation site.
type Document struct {
	Title     string  `json:"title"`
	PageTitle string  `json:"pageTitle,omitempty"`
	Content   string  `json:"content"`
	Keywords  string  `json:"keywords,omitempty"`
	URL       string  `json:"url"`
	Version   string  `json:"version,omitempty"`
	Type      DocType `json:"type"`
}

// Field returns the text of a searchable field, or "" for unknown names.
func (d Document) Field(name string) string {
	switch name {
	case FieldTitle:
		return d.Title
	case FieldContent:
		return d.Content
	case FieldKeywords:
		return d.Keywords
	default:
		return ""
	}
}

// Corpus maps index references to documents.
type Corpus map[string]Document

// Lookup returns the document for ref.
func (c Corpus) Lookup(ref string) (Document, bool) {
	doc, ok := c[ref]
	return doc, ok
}

// Refs returns all references in a stable order: numeric refs ascending,
// then the rest lexically.
func (c Corpus) Refs() []string {
	refs := make([]string, 0, len(c))
	for ref := range c {
		refs = append(refs, ref)
	}
	slices.SortFunc(refs, CompareRefs)
	return refs
}

// CompareRefs orders references numerically when both are integers. Integer
// references sort before the rest, which compare lexically.
func CompareRefs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na - nb
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Decode reads a corpus from JSON.
func Decode(r io.Reader) (Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return Parse(data)
}

// Parse decodes a corpus from a JSON array or object.
func Parse(data []byte) (Corpus, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidCorpus)
	}

	switch trimmed[0] {
	case '[':
		var docs []Document
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCorpus, err)
		}
		c := make(Corpus, len(docs))
		for i, doc := range docs {
			c[strconv.Itoa(i)] = doc
		}
		return c, nil
	case '{':
		var c Corpus
		if err := json.Unmarshal(trimmed, &c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCorpus, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: expected JSON array or object", ErrInvalidCorpus)
	}
}

// LoadFile reads a corpus from a JSON file.
func LoadFile(path string) (Corpus, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}
