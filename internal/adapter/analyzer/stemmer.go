package analyzer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kljensen/snowball"

	"ytclust/internal/port"
)

// ErrUnknownStemmer is returned by NewStemmer for unsupported stemmer names.
var ErrUnknownStemmer = errors.New("unknown stemmer")

// NewStemmer returns the stemmer registered under name.
// "porter" is English only; "snowball" supports every language the
// snowball package ships.
func NewStemmer(name, language string) (port.Stemmer, error) {
	switch name {
	case "", "porter":
		return NewPorterStemmer(), nil
	case "snowball":
		return NewSnowballStemmer(language)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStemmer, name)
	}
}

// PorterStemmer implements the Porter stemming algorithm.
type PorterStemmer struct{}

// NewPorterStemmer creates a new Porter stemmer.
func NewPorterStemmer() *PorterStemmer {
	return &PorterStemmer{}
}

// Stem returns the stem of a word using the Porter algorithm.
// Non-ASCII words are returned lowercased but otherwise untouched.
func (p *PorterStemmer) Stem(word string) string {
	word = strings.ToLower(word)
	if len(word) < 3 || !isASCIILower(word) {
		return word
	}

	word = step1a(word)
	word = step1b(word)
	word = step1c(word)
	word = step2(word)
	word = step3(word)
	word = step4(word)
	word = step5a(word)
	word = step5b(word)

	return word
}

func isASCIILower(word string) bool {
	for i := 0; i < len(word); i++ {
		c := word[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

type suffixRule struct {
	suffix      string
	replacement string
}

// longestFirst orders rules so the longest matching suffix wins.
func longestFirst(rules []suffixRule) []suffixRule {
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].suffix) > len(rules[j].suffix)
	})
	return rules
}

var step2Rules = longestFirst([]suffixRule{
	{"ational", "ate"}, {"tional", "tion"}, {"enci", "ence"}, {"anci", "ance"},
	{"izer", "ize"}, {"bli", "ble"}, {"alli", "al"}, {"entli", "ent"},
	{"eli", "e"}, {"ousli", "ous"}, {"ization", "ize"}, {"ation", "ate"},
	{"ator", "ate"}, {"alism", "al"}, {"iveness", "ive"}, {"fulness", "ful"},
	{"ousness", "ous"}, {"aliti", "al"}, {"iviti", "ive"}, {"biliti", "ble"},
	{"logi", "log"},
})

var step3Rules = longestFirst([]suffixRule{
	{"icate", "ic"}, {"ative", ""}, {"alize", "al"}, {"iciti", "ic"},
	{"ical", "ic"}, {"ful", ""}, {"ness", ""},
})

var step4Suffixes = func() []string {
	s := []string{
		"al", "ance", "ence", "er", "ic", "able", "ible", "ant",
		"ement", "ment", "ent", "ion", "ou", "ism", "ate", "iti",
		"ous", "ive", "ize",
	}
	sort.SliceStable(s, func(i, j int) bool { return len(s[i]) > len(s[j]) })
	return s
}()

func isConsonant(word string, i int) bool {
	switch word[i] {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	case 'y':
		if i == 0 {
			return true
		}
		return !isConsonant(word, i-1)
	}
	return true
}

func measure(word string) int {
	n := len(word)
	m := 0
	i := 0

	// Skip initial consonants
	for i < n && isConsonant(word, i) {
		i++
	}

	for i < n {
		for i < n && !isConsonant(word, i) {
			i++
		}
		if i >= n {
			break
		}
		m++
		for i < n && isConsonant(word, i) {
			i++
		}
	}

	return m
}

func hasVowel(word string) bool {
	for i := 0; i < len(word); i++ {
		if !isConsonant(word, i) {
			return true
		}
	}
	return false
}

func endsDoubleConsonant(word string) bool {
	n := len(word)
	if n < 2 {
		return false
	}
	return word[n-1] == word[n-2] && isConsonant(word, n-1)
}

func endsCVC(word string) bool {
	n := len(word)
	if n < 3 {
		return false
	}
	if !isConsonant(word, n-3) || isConsonant(word, n-2) || !isConsonant(word, n-1) {
		return false
	}
	c := word[n-1]
	return c != 'w' && c != 'x' && c != 'y'
}

func step1a(word string) string {
	switch {
	case strings.HasSuffix(word, "sses"), strings.HasSuffix(word, "ies"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ss"):
		return word
	case strings.HasSuffix(word, "s"):
		return word[:len(word)-1]
	}
	return word
}

func step1b(word string) string {
	if strings.HasSuffix(word, "eed") {
		if measure(word[:len(word)-3]) > 0 {
			return word[:len(word)-1]
		}
		return word
	}

	modified := false
	if stem, ok := strings.CutSuffix(word, "ed"); ok && hasVowel(stem) {
		word, modified = stem, true
	} else if stem, ok := strings.CutSuffix(word, "ing"); ok && hasVowel(stem) {
		word, modified = stem, true
	}

	if !modified {
		return word
	}
	if strings.HasSuffix(word, "at") || strings.HasSuffix(word, "bl") || strings.HasSuffix(word, "iz") {
		return word + "e"
	}
	if endsDoubleConsonant(word) {
		c := word[len(word)-1]
		if c != 'l' && c != 's' && c != 'z' {
			return word[:len(word)-1]
		}
	}
	if measure(word) == 1 && endsCVC(word) {
		return word + "e"
	}
	return word
}

func step1c(word string) string {
	if stem, ok := strings.CutSuffix(word, "y"); ok && hasVowel(stem) {
		return stem + "i"
	}
	return word
}

// replaceSuffix applies the first (longest) matching rule when the
// remaining stem has a measure above minMeasure.
func replaceSuffix(word string, rules []suffixRule, minMeasure int) string {
	for _, r := range rules {
		stem, ok := strings.CutSuffix(word, r.suffix)
		if !ok {
			continue
		}
		if measure(stem) > minMeasure {
			return stem + r.replacement
		}
		return word
	}
	return word
}

func step2(word string) string {
	return replaceSuffix(word, step2Rules, 0)
}

func step3(word string) string {
	return replaceSuffix(word, step3Rules, 0)
}

func step4(word string) string {
	for _, suffix := range step4Suffixes {
		stem, ok := strings.CutSuffix(word, suffix)
		if !ok {
			continue
		}
		if measure(stem) <= 1 {
			return word
		}
		if suffix == "ion" {
			n := len(stem)
			if n > 0 && (stem[n-1] == 's' || stem[n-1] == 't') {
				return stem
			}
			return word
		}
		return stem
	}
	return word
}

func step5a(word string) string {
	stem, ok := strings.CutSuffix(word, "e")
	if !ok {
		return word
	}
	m := measure(stem)
	if m > 1 || (m == 1 && !endsCVC(stem)) {
		return stem
	}
	return word
}

func step5b(word string) string {
	if measure(word) > 1 && endsDoubleConsonant(word) && word[len(word)-1] == 'l' {
		return word[:len(word)-1]
	}
	return word
}

// SnowballStemmer stems words with the Snowball algorithm for a language.
type SnowballStemmer struct {
	language string
}

// NewSnowballStemmer checks that language is supported and returns a stemmer for it.
func NewSnowballStemmer(language string) (*SnowballStemmer, error) {
	if _, err := snowball.Stem("test", language, true); err != nil {
		return nil, fmt.Errorf("snowball stemmer: %w", err)
	}
	return &SnowballStemmer{language: language}, nil
}

// Stem returns the stem of word, or the lowercased word if stemming fails.
func (s *SnowballStemmer) Stem(word string) string {
	stemmed, err := snowball.Stem(word, s.language, true)
	if err != nil {
		return strings.ToLower(word)
	}
	return stemmed
}
