package search_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/docsearch/corpus"
	"github.com/jonwraymond/docsearch/index"
	"github.com/jonwraymond/docsearch/search"
)

func Example() {
	docs := corpus.Corpus{
		"0": {
			Title:   "Cooking",
			Content: "Roast a red pepper slowly.",
			URL:     "cooking",
			Type:    corpus.Page,
		},
	}

	blob, err := index.NewSnapshot(docs).Marshal()
	if err != nil {
		fmt.Println(err)
		return
	}

	a, err := search.New(search.Options{Corpus: docs, IndexBlob: blob, MaxHits: 1})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer func() { _ = a.Close() }()

	hits, err := a.Search(context.Background(), `"red pepper"`)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, hit := range hits {
		fmt.Println(hit.URL)
		fmt.Println(hit.SnippetResult.Content.Value)
	}
	// Output:
	// /cooking
	// Roast a <span class="algolia-docsearch-suggestion--highlight">red pepper</span> slowly.
}
