package analyzer

import (
	"errors"
	"testing"
)

func TestPorterStemmer(t *testing.T) {
	stemmer := NewPorterStemmer()

	tests := []struct {
		word string
		want string
	}{
		{"running", "run"},
		{"cats", "cat"},
		{"caresses", "caress"},
		{"ponies", "poni"},
		{"happy", "happi"},
		{"hopping", "hop"},
		{"agreed", "agre"},
		{"relational", "relat"},
		{"is", "is"},
		{"Running", "run"},
		{"42", "42"},
	}

	for _, tt := range tests {
		if got := stemmer.Stem(tt.word); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestPorterStemmer_Deterministic(t *testing.T) {
	stemmer := NewPorterStemmer()
	first := stemmer.Stem("conditional")
	for i := 0; i < 50; i++ {
		if got := stemmer.Stem("conditional"); got != first {
			t.Fatalf("stem changed between calls: %q vs %q", first, got)
		}
	}
}

func TestPorterStemmer_NonASCII(t *testing.T) {
	stemmer := NewPorterStemmer()
	if got := stemmer.Stem("Größe"); got != "größe" {
		t.Errorf("expected non-ASCII word to be lowercased only, got %q", got)
	}
}

func TestNewStemmer(t *testing.T) {
	if _, err := NewStemmer("porter", "english"); err != nil {
		t.Errorf("porter: unexpected error %v", err)
	}
	if _, err := NewStemmer("", "english"); err != nil {
		t.Errorf("default: unexpected error %v", err)
	}
	if _, err := NewStemmer("lancaster", "english"); !errors.Is(err, ErrUnknownStemmer) {
		t.Errorf("expected ErrUnknownStemmer, got %v", err)
	}
}

func TestSnowballStemmer(t *testing.T) {
	stemmer, err := NewStemmer("snowball", "english")
	if err != nil {
		t.Fatal(err)
	}
	if got := stemmer.Stem("running"); got != "run" {
		t.Errorf("expected run, got %q", got)
	}

	if _, err := NewSnowballStemmer("klingon"); err == nil {
		t.Error("expected error for unsupported language")
	}
}
