package analyzer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStopwordsFor_English(t *testing.T) {
	set, err := StopwordsFor("english")
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 179 {
		t.Errorf("expected 179 stopwords, got %d", set.Len())
	}
	for _, w := range []string{"the", "and", "don't", "you're", "ll"} {
		if !set.IsStop(w) {
			t.Errorf("expected %q to be a stopword", w)
		}
	}
	if set.IsStop("great") {
		t.Error("great must not be a stopword")
	}
}

func TestStopwordsFor_Unsupported(t *testing.T) {
	_, err := StopwordsFor("klingon")
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("expected ErrUnsupportedLanguage, got %v", err)
	}
}

func TestLoadStopwords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.yaml")
	content := "terms:\n  - Video\n  - channel\n  - ''\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadStopwords(path)
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 2 {
		t.Errorf("expected 2 stopwords, got %d: %v", set.Len(), set.Words())
	}
	if !set.IsStop("video") {
		t.Error("entries should be lowercased")
	}
}

func TestLoadStopwords_Missing(t *testing.T) {
	if _, err := LoadStopwords("/nonexistent/stop.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
