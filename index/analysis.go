package index

import (
	"regexp"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/token/porter"
	regexptokenizer "github.com/blevesearch/bleve/v2/analysis/tokenizer/regexp"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/jonwraymond/docsearch/corpus"
	"github.com/jonwraymond/docsearch/query"
)

const (
	tokenizerName = "docsearch_separator"
	analyzerName  = "docsearch_text"
)

// tokenPattern matches runs between whitespace, '-' and '/', trimmed to
// start and end on a letter, digit or underscore.
const tokenPattern = `[\p{L}\p{N}_](?:[^\s\-/]*[\p{L}\p{N}_])?`

// SearchFields lists the indexed document fields in hit-precedence order.
var SearchFields = []string{corpus.FieldTitle, corpus.FieldContent, corpus.FieldKeywords}

var (
	queryTokenizer = regexptokenizer.NewRegexpTokenizer(regexp.MustCompile(tokenPattern))
	queryLower     = lowercase.NewLowerCaseFilter()
	queryStemmer   = porter.NewPorterStemmer()
)

// Tokenize splits text the way indexed fields are split and lower-cases each
// token. Stemming is not applied.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	stream := queryLower.Filter(queryTokenizer.Tokenize([]byte(text)))
	if len(stream) == 0 {
		return nil
	}
	return termsOf(stream)
}

// Tokenizer is Tokenize as a query.Tokenizer.
var Tokenizer query.Tokenizer = query.TokenizerFunc(Tokenize)

// analyze runs text through the same chain as indexed fields, so the
// result holds the index terms an exact match on text looks up.
func analyze(text string) []string {
	stream := queryStemmer.Filter(queryLower.Filter(queryTokenizer.Tokenize([]byte(text))))
	if len(stream) == 0 {
		return nil
	}
	return termsOf(stream)
}

func termsOf(stream analysis.TokenStream) []string {
	terms := make([]string, len(stream))
	for i, tok := range stream {
		terms[i] = string(tok.Term)
	}
	return terms
}

// newMapping returns the index mapping shared by memory and disk indexes.
func newMapping() (mapping.IndexMapping, error) {
	im := bleve.NewIndexMapping()

	err := im.AddCustomTokenizer(tokenizerName, map[string]any{
		"type":   regexptokenizer.Name,
		"regexp": tokenPattern,
	})
	if err != nil {
		return nil, err
	}

	err = im.AddCustomAnalyzer(analyzerName, map[string]any{
		"type":          custom.Name,
		"tokenizer":     tokenizerName,
		"token_filters": []string{lowercase.Name, porter.Name},
	})
	if err != nil {
		return nil, err
	}

	doc := bleve.NewDocumentStaticMapping()
	for _, field := range SearchFields {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = analyzerName
		fm.Store = false
		fm.IncludeTermVectors = true
		fm.IncludeInAll = false
		doc.AddFieldMappingsAt(field, fm)
	}

	im.DefaultMapping = doc
	im.DefaultAnalyzer = analyzerName
	return im, nil
}
