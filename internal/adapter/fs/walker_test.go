package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func basenames(t *testing.T, root string, paths []string) []string {
	t.Helper()
	var out []string
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestWalker_Walk(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"a.json",
		"notes.txt",
		"videos/b.json",
		".ytclust/config.json",
		"node_modules/pkg/c.json",
	)

	w := NewWalker([]string{"**/*.json"}, []string{"**/.ytclust/**", "**/node_modules/**"})
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	absRoot, _ := filepath.Abs(root)
	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
		if f.Size != 2 {
			t.Errorf("unexpected size %d for %s", f.Size, f.Path)
		}
	}
	got := basenames(t, absRoot, paths)

	want := []string{"a.json", "videos/b.json"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestWalker_ResolveFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "one.json")

	w := NewWalker(nil, nil)
	files, err := w.Resolve(filepath.Join(root, "one.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
}

func TestWalker_ResolveGlob(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "x/1.json", "x/y/2.json", "x/3.txt")

	w := NewWalker(nil, nil)
	files, err := w.Resolve(filepath.Join(root, "x", "**", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %d", len(files))
	}

	if _, err := w.Resolve(filepath.Join(root, "nothing", "*.json")); err == nil {
		t.Error("expected error when nothing matches")
	}
}
