// Package cluster turns cleaned texts into TF-IDF vectors and groups them
// with k-means.
package cluster

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyCorpus is returned when there are no documents or rows to work on.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrEmptyVocabulary is returned when no document yields a term.
	ErrEmptyVocabulary = errors.New("empty vocabulary")
)

// Features is a document-term TF-IDF matrix.
// Row i is document i; column j is Terms[j].
type Features struct {
	Terms  []string
	Matrix *mat.Dense
}

// Rows returns the number of documents.
func (f *Features) Rows() int {
	r, _ := f.Matrix.Dims()
	return r
}

// Row returns the weights of document i. The slice aliases the matrix.
func (f *Features) Row(i int) []float64 {
	return f.Matrix.RawRowView(i)
}

// Vectorizer builds TF-IDF features the way scikit-learn's default
// TfidfVectorizer does: words of two or more word characters, lowercased,
// raw counts, smoothed idf and L2-normalized rows.
type Vectorizer struct {
	MinTokenLen int
}

// NewVectorizer returns a Vectorizer with default settings.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{MinTokenLen: 2}
}

// FitTransform learns the vocabulary of docs and returns their TF-IDF matrix.
func (v *Vectorizer) FitTransform(docs []string) (*Features, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, term := range v.terms(doc) {
			if counts[i][term] == 0 {
				df[term]++
			}
			counts[i][term]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	column := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for j, t := range terms {
		column[t] = j
		idf[j] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	m := mat.NewDense(len(docs), len(terms), nil)
	for i, c := range counts {
		row := m.RawRowView(i)
		for t, count := range c {
			j := column[t]
			row[j] = float64(count) * idf[j]
		}
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
	}

	return &Features{Terms: terms, Matrix: m}, nil
}

// terms splits doc into lowercased runs of word characters, dropping runs
// shorter than MinTokenLen.
func (v *Vectorizer) terms(doc string) []string {
	minLen := v.MinTokenLen
	if minLen < 1 {
		minLen = 1
	}
	words := strings.FieldsFunc(strings.ToLower(doc), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
	out := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) >= minLen {
			out = append(out, w)
		}
	}
	return out
}
