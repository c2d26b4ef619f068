package query

import (
	"strings"
)

// Tokenizer splits text into normalized index tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// TokenizerFunc adapts a function to the Tokenizer interface.
type TokenizerFunc func(text string) []string

// Tokenize calls f(text).
func (f TokenizerFunc) Tokenize(text string) []string {
	return f(text)
}

// Parsed is the result of splitting raw input into phrases and terms.
type Parsed struct {
	// Phrases holds the quoted spans in input order, without quotes.
	Phrases []string

	// Terms holds the tokens of all unquoted text in input order.
	Terms []string

	// Required holds Phrases lower-cased, for literal containment checks.
	Required []string
}

// HasPhrases reports whether the input contained at least one quoted span.
func (p Parsed) HasPhrases() bool {
	return len(p.Phrases) > 0
}

// Parse scans input left to right for spans delimited by matching single or
// double quotes. A backslash inside a span escapes the next character and a
// span never crosses a line break. An opening quote with no matching close is
// ordinary text.
func Parse(input string, tok Tokenizer) Parsed {
	var p Parsed
	last := 0

	for i := 0; i < len(input); i++ {
		quote := input[i]
		if quote != '"' && quote != '\'' {
			continue
		}
		end, ok := closingQuote(input, i+1, quote)
		if !ok {
			continue
		}

		p.Terms = appendTokens(p.Terms, tok, input[last:i])
		p.Phrases = append(p.Phrases, input[i+1:end])
		last = end + 1
		i = end
	}
	p.Terms = appendTokens(p.Terms, tok, input[last:])

	if len(p.Phrases) == 0 && len(p.Terms) == 0 {
		p.Terms = append(p.Terms, tok.Tokenize(input)...)
	}

	if len(p.Phrases) > 0 {
		p.Required = make([]string, len(p.Phrases))
		for i, phrase := range p.Phrases {
			p.Required[i] = strings.ToLower(phrase)
		}
	}

	return p
}

// closingQuote returns the index of the quote that closes a span opened just
// before from.
func closingQuote(s string, from int, quote byte) (int, bool) {
	for j := from; j < len(s); j++ {
		switch s[j] {
		case quote:
			return j, true
		case '\n', '\r':
			return -1, false
		case '\\':
			if j+1 >= len(s) || s[j+1] == '\n' || s[j+1] == '\r' {
				return -1, false
			}
			j++
		}
	}
	return -1, false
}

func appendTokens(dst []string, tok Tokenizer, segment string) []string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return dst
	}
	return append(dst, tok.Tokenize(segment)...)
}
