package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Fetch.PageSize != 100 {
		t.Errorf("expected PageSize=100, got %d", cfg.Fetch.PageSize)
	}
	if cfg.Cluster.MaxK != 5 {
		t.Errorf("expected MaxK=5, got %d", cfg.Cluster.MaxK)
	}
	if cfg.Cluster.KFactor != 0.73 {
		t.Errorf("expected KFactor=0.73, got %f", cfg.Cluster.KFactor)
	}
	if !cfg.Cluster.DropEmpty {
		t.Error("expected DropEmpty=true")
	}
	if cfg.Clean.StripDiacritics {
		t.Error("expected StripDiacritics=false")
	}
	if len(cfg.Clean.Stages) != len(DefaultStages) {
		t.Errorf("expected %d stages, got %d", len(DefaultStages), len(cfg.Clean.Stages))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestDefaultConfig_StagesAreCopied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Clean.Stages[0] = "changed"
	if DefaultStages[0] == "changed" {
		t.Error("mutating config stages must not change DefaultStages")
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ytclust.yaml")

	content := `
fetch:
  page_size: 50
clean:
  stages: [lowercase, remove_punctuation]
  stemmer: snowball
cluster:
  seed: 7
  drop_empty: false
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Fetch.PageSize != 50 {
		t.Errorf("expected PageSize=50, got %d", cfg.Fetch.PageSize)
	}
	if len(cfg.Clean.Stages) != 2 || cfg.Clean.Stages[1] != "remove_punctuation" {
		t.Errorf("unexpected stages: %v", cfg.Clean.Stages)
	}
	if cfg.Clean.Stemmer != "snowball" {
		t.Errorf("expected Stemmer=snowball, got %s", cfg.Clean.Stemmer)
	}
	if cfg.Cluster.Seed != 7 {
		t.Errorf("expected Seed=7, got %d", cfg.Cluster.Seed)
	}
	if cfg.Cluster.DropEmpty {
		t.Error("expected DropEmpty=false")
	}
	// untouched keys keep their defaults
	if cfg.Cluster.MaxK != 5 {
		t.Errorf("expected MaxK=5, got %d", cfg.Cluster.MaxK)
	}
}

func TestLoad_InvalidPageSize(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "ytclust.yaml")

	if err := os.WriteFile(configPath, []byte("fetch:\n  page_size: 500\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(configPath)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := EnsureDataDir(tmpDir); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, DataDirName, "config.yaml")

	content := `
report:
  max_words: 25
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Report.MaxWords != 25 {
		t.Errorf("expected MaxWords=25, got %d", cfg.Report.MaxWords)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "ytclust.yaml")

	cfg := DefaultConfig()
	cfg.Cluster.K = 3
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Cluster.K != 3 {
		t.Errorf("expected K=3, got %d", loaded.Cluster.K)
	}
}

func TestCacheDBPath(t *testing.T) {
	path := CacheDBPath("/home/user/project")
	expected := filepath.Join("/home/user/project", ".ytclust", "cache.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}
