package index

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Install the CLI", []string{"install", "the", "cli"}},
		{"client-side/routing", []string{"client", "side", "routing"}},
		{`"red pepper"`, []string{"red", "pepper"}},
		{"it's spicy.", []string{"it's", "spicy"}},
		{"snake_case_name", []string{"snake_case_name"}},
		{"Naïve Ünïcode", []string{"naïve", "ünïcode"}},
		{"v1.2.3", []string{"v1.2.3"}},
		{"", nil},
		{"  ...  --  / ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizer_MatchesTokenize(t *testing.T) {
	input := "Getting Started/with-docs"
	if !reflect.DeepEqual(Tokenizer.Tokenize(input), Tokenize(input)) {
		t.Error("Tokenizer and Tokenize disagree")
	}
}

func TestNewMapping(t *testing.T) {
	m, err := newMapping()
	if err != nil {
		t.Fatalf("newMapping() error = %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("mapping Validate() error = %v", err)
	}
	if got := m.AnalyzerNameForPath("content"); got != analyzerName {
		t.Errorf("content analyzer = %q, want %q", got, analyzerName)
	}
}
