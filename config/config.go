package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// DataDirName is the per-project directory holding the cache and optional config.
const DataDirName = ".ytclust"

// Config holds all configuration for the ytclust tool.
type Config struct {
	Fetch   FetchConfig   `yaml:"fetch"`
	Clean   CleanConfig   `yaml:"clean"`
	Cluster ClusterConfig `yaml:"cluster"`
	Output  OutputConfig  `yaml:"output"`
	Report  ReportConfig  `yaml:"report"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// FetchConfig holds comment extraction configuration.
type FetchConfig struct {
	APIKeyEnv  string `yaml:"api_key_env"` // Environment variable for the API key
	PageSize   int    `yaml:"page_size"`   // 1..100
	MaxPages   int    `yaml:"max_pages"`   // 0 = until the last page
	TextFormat string `yaml:"text_format"` // "plainText" or "html"
	Endpoint   string `yaml:"endpoint"`    // optional API endpoint override
}

// CleanConfig holds text normalization configuration.
type CleanConfig struct {
	Stages          []string    `yaml:"stages"`
	// Language selects the built-in stopword and chat tables (english only),
	// the lowercasing rules and the snowball stemmer. Other languages need
	// stopwords_file when remove_stopwords is configured; without
	// chat_words_file, chat_conversion leaves their text unchanged.
	Language        string      `yaml:"language"`
	Stemmer         string      `yaml:"stemmer"` // "porter" or "snowball"
	StopwordsFile   string      `yaml:"stopwords_file"`
	ChatWordsFile   string      `yaml:"chat_words_file"`
	StripDiacritics bool        `yaml:"strip_diacritics"` // off: accented words are dropped by tokenize
	Workers         int         `yaml:"workers"`
	Includes        []string    `yaml:"includes"`
	Excludes        []string    `yaml:"excludes"`
	Spell           SpellConfig `yaml:"spell"`
}

// SpellConfig configures the optional spell_correct stage.
type SpellConfig struct {
	Dictionary    string `yaml:"dictionary"` // one word per line
	TrainOnCorpus bool   `yaml:"train_on_corpus"`
	Depth         int    `yaml:"depth"`
	Threshold     int    `yaml:"threshold"`
}

// ClusterConfig holds feature extraction and clustering configuration.
type ClusterConfig struct {
	K         int     `yaml:"k"` // 0 = heuristic
	MaxK      int     `yaml:"max_k"`
	KFactor   float64 `yaml:"k_factor"`
	Seed      int64   `yaml:"seed"` // negative = seeded from the clock
	NInit     int     `yaml:"n_init"`
	MaxIter   int     `yaml:"max_iter"`
	Tol       float64 `yaml:"tol"`
	DropEmpty bool    `yaml:"drop_empty"`
}

// OutputConfig holds output file configuration.
type OutputConfig struct {
	IncludeFeatures bool   `yaml:"include_features"`
	SQLitePath      string `yaml:"sqlite_path"`
}

// ReportConfig holds visualization configuration.
type ReportConfig struct {
	Dir      string `yaml:"dir"`
	MaxWords int    `yaml:"max_words"`
	Width    int    `yaml:"width"`  // pixels
	Height   int    `yaml:"height"` // pixels
}

// CacheConfig holds the persistent clean cache configuration.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// DefaultStages is the stage order of the latest pipeline revision.
var DefaultStages = []string{
	"lowercase", "remove_url", "demojize", "normalize_unicode", "remove_punctuation",
	"chat_conversion", "remove_stopwords", "tokenize", "stem",
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			APIKeyEnv:  "YOUTUBE_API_KEY",
			PageSize:   100,
			MaxPages:   0,
			TextFormat: "plainText",
		},
		Clean: CleanConfig{
			Stages:          append([]string(nil), DefaultStages...),
			Language:        "english",
			Stemmer:         "porter",
			StripDiacritics: false,
			Workers:         runtime.NumCPU(),
			Includes:        []string{"**/*.json"},
			Excludes:        []string{"**/.ytclust/**", "**/node_modules/**", "**/.git/**"},
			Spell: SpellConfig{
				TrainOnCorpus: true,
				Depth:         2,
				Threshold:     2,
			},
		},
		Cluster: ClusterConfig{
			K:         0,
			MaxK:      5,
			KFactor:   0.73,
			Seed:      1,
			NInit:     10,
			MaxIter:   300,
			Tol:       1e-4,
			DropEmpty: true,
		},
		Output: OutputConfig{
			IncludeFeatures: true,
		},
		Report: ReportConfig{
			Dir:      "report",
			MaxWords: 100,
			Width:    800,
			Height:   400,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// LoadFromDir loads configuration from a directory (looks for ytclust.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "ytclust.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, DataDirName, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Validate checks value ranges that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if c.Fetch.PageSize < 1 || c.Fetch.PageSize > 100 {
		return fmt.Errorf("%w: fetch.page_size must be in [1, 100], got %d", ErrInvalidConfig, c.Fetch.PageSize)
	}
	if c.Fetch.MaxPages < 0 {
		return fmt.Errorf("%w: fetch.max_pages must not be negative", ErrInvalidConfig)
	}
	if c.Fetch.TextFormat != "plainText" && c.Fetch.TextFormat != "html" {
		return fmt.Errorf("%w: fetch.text_format must be plainText or html, got %q", ErrInvalidConfig, c.Fetch.TextFormat)
	}
	if c.Cluster.K < 0 {
		return fmt.Errorf("%w: cluster.k must not be negative", ErrInvalidConfig)
	}
	if c.Cluster.MaxK < 1 {
		return fmt.Errorf("%w: cluster.max_k must be at least 1", ErrInvalidConfig)
	}
	if c.Cluster.KFactor <= 0 {
		return fmt.Errorf("%w: cluster.k_factor must be positive", ErrInvalidConfig)
	}
	if len(c.Clean.Stages) == 0 {
		return fmt.Errorf("%w: clean.stages is empty", ErrInvalidConfig)
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CacheDBPath returns the path to the clean cache database.
func CacheDBPath(dir string) string {
	return filepath.Join(dir, DataDirName, "cache.db")
}

// EnsureDataDir ensures the .ytclust directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, DataDirName), 0755)
}
