package index

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/jonwraymond/docsearch/corpus"
)

func benchCorpus(n int) corpus.Corpus {
	c := make(corpus.Corpus, n)
	for i := range n {
		c[strconv.Itoa(i)] = corpus.Document{
			Title:    fmt.Sprintf("Guide %d", i),
			Content:  fmt.Sprintf("Section %d covers deployment, configuration and kubernetes rollout strategies.", i),
			Keywords: fmt.Sprintf("guide, topic-%d", i%10),
			URL:      fmt.Sprintf("docs/guide-%d", i),
		}
	}
	return c
}

func BenchmarkLoad(b *testing.B) {
	blob, err := NewSnapshot(benchCorpus(200)).Marshal()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()

	for b.Loop() {
		idx, err := Load(blob)
		if err != nil {
			b.Fatal(err)
		}
		_ = idx.Close()
	}
}

func BenchmarkExecute(b *testing.B) {
	idx, err := FromSnapshot(NewSnapshot(benchCorpus(500)))
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = idx.Close() }()

	q := buildQuery("kubernetes deploy")
	ctx := context.Background()
	b.ReportAllocs()

	for b.Loop() {
		if _, err := idx.Execute(ctx, q); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTokenize(b *testing.B) {
	input := `"client-side routing" with nested/paths and Ünïcode`
	b.ReportAllocs()

	for b.Loop() {
		_ = Tokenize(input)
	}
}
