package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ytclust/config"
)

func TestFetch_RejectsInvalidFlagsBeforeCallingAPI(t *testing.T) {
	tests := []struct {
		name string
		flag []string
	}{
		{"text format", []string{"--text-format=markdown"}},
		{"page size", []string{"--page-size=500"}},
		{"max pages", []string{"--max-pages=-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			out := filepath.Join(dir, "comments.json")
			t.Setenv("YOUTUBE_API_KEY", "test-key")

			args := append([]string{"fetch", "vid", out, "--dir", dir}, tt.flag...)
			rootCmd.SetArgs(args)
			t.Cleanup(func() {
				fetchPageSize, fetchMaxPages, fetchTextFormat = 0, -1, ""
				for _, name := range []string{"page-size", "max-pages", "text-format"} {
					if f := fetchCmd.Flags().Lookup(name); f != nil {
						f.Changed = false
					}
				}
				rootDir = ""
			})

			err := rootCmd.Execute()
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
				t.Errorf("expected no output file, stat returned %v", statErr)
			}
		})
	}
}
