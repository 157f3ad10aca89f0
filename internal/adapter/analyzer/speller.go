package analyzer

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sajari/fuzzy"
)

// Speller corrects single words against a frequency model.
// It is safe for concurrent Correct calls once training is done.
type Speller struct {
	model     *fuzzy.Model
	threshold int
}

// NewSpeller creates an untrained speller. depth is the maximum edit
// distance considered; threshold is the minimum count for a word to be
// suggested.
func NewSpeller(depth, threshold int) *Speller {
	if depth < 1 {
		depth = 2
	}
	if threshold < 1 {
		threshold = 1
	}
	model := fuzzy.NewModel()
	model.SetDepth(depth)
	model.SetThreshold(threshold)
	return &Speller{model: model, threshold: threshold}
}

// Train adds one occurrence of every word.
func (s *Speller) Train(words []string) {
	s.model.Train(words)
}

// AddDictionaryWord marks word as always suggestable.
func (s *Speller) AddDictionaryWord(word string) {
	s.model.SetCount(word, s.threshold+1, true)
}

// LoadDictionary reads whitespace-separated words from path and adds each
// as a dictionary word.
func (s *Speller) LoadDictionary(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := strings.ToLower(scanner.Text())
		if word == "" {
			continue
		}
		s.AddDictionaryWord(word)
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("read dictionary: %w", err)
	}
	return n, nil
}

// Correct returns the best correction for word, or word itself when the
// model has no suggestion.
func (s *Speller) Correct(word string) string {
	if word == "" {
		return word
	}
	if corrected := s.model.SpellCheck(word); corrected != "" {
		return corrected
	}
	return word
}
