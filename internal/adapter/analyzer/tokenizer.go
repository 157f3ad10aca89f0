package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

var alnumToken = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Tokenizer splits text into word tokens and keeps only plain ASCII
// alphanumeric ones, so words with marks, symbols or underscores drop out.
type Tokenizer struct {
	keep *regexp.Regexp
}

// NewTokenizer creates a new Tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{keep: alnumToken}
}

// Tokenize splits text into tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	words := splitWords(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		if !t.keep.MatchString(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// splitWords splits text into words using unicode word boundaries.
// Combining marks stay attached to the word they modify.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || r == '_' {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}
