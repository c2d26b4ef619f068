package cache

import "github.com/jonwraymond/docsearch/corpus"

func searchDoc() corpus.Document {
	return corpus.Document{
		Title:   "Red Pepper Guide",
		Content: "This dish uses a red pepper.",
		URL:     "/guide",
		Type:    corpus.Page,
	}
}
