package analyzer

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedLanguage is returned when no built-in word list exists for a language.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// englishStopwords is the NLTK English stopword list.
var englishStopwords = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "you're",
	"you've", "you'll", "you'd", "your", "yours", "yourself", "yourselves", "he",
	"him", "his", "himself", "she", "she's", "her", "hers", "herself", "it", "it's",
	"its", "itself", "they", "them", "their", "theirs", "themselves", "what",
	"which", "who", "whom", "this", "that", "that'll", "these", "those", "am",
	"is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
	"having", "do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
	"or", "because", "as", "until", "while", "of", "at", "by", "for", "with",
	"about", "against", "between", "into", "through", "during", "before",
	"after", "above", "below", "to", "from", "up", "down", "in", "out", "on",
	"off", "over", "under", "again", "further", "then", "once", "here", "there",
	"when", "where", "why", "how", "all", "any", "both", "each", "few", "more",
	"most", "other", "some", "such", "no", "nor", "not", "only", "own", "same",
	"so", "than", "too", "very", "s", "t", "can", "will", "just", "don", "don't",
	"should", "should've", "now", "d", "ll", "m", "o", "re", "ve", "y", "ain",
	"aren", "aren't", "couldn", "couldn't", "didn", "didn't", "doesn",
	"doesn't", "hadn", "hadn't", "hasn", "hasn't", "haven", "haven't", "isn",
	"isn't", "ma", "mightn", "mightn't", "mustn", "mustn't", "needn", "needn't",
	"shan", "shan't", "shouldn", "shouldn't", "wasn", "wasn't", "weren",
	"weren't", "won", "won't", "wouldn", "wouldn't",
}

// StopwordSet is a lookup set of lowercase stopwords.
type StopwordSet struct {
	words map[string]struct{}
}

// NewStopwordSet builds a set from words. Entries are lowercased and trimmed.
func NewStopwordSet(words []string) *StopwordSet {
	set := &StopwordSet{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set.words[w] = struct{}{}
	}
	return set
}

// StopwordsFor returns the built-in stopword list for language.
func StopwordsFor(language string) (*StopwordSet, error) {
	switch strings.ToLower(language) {
	case "", "english", "en":
		return NewStopwordSet(englishStopwords), nil
	default:
		return nil, fmt.Errorf("%w: no built-in stopwords for %q", ErrUnsupportedLanguage, language)
	}
}

// IsStop reports whether word is a stopword. Lookup is exact; callers
// lowercase first.
func (s *StopwordSet) IsStop(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of stopwords.
func (s *StopwordSet) Len() int {
	return len(s.words)
}

// Words returns the stopwords in sorted order.
func (s *StopwordSet) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

type stoplistFile struct {
	Terms []string `yaml:"terms"`
}

// LoadStopwords loads a stopword list from a YAML file with a top-level
// "terms" list.
func LoadStopwords(path string) (*StopwordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl stoplistFile
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse stopwords %s: %w", path, err)
	}

	return NewStopwordSet(sl.Terms), nil
}
