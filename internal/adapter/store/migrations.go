package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"go.etcd.io/bbolt"
	"ytclust/config"
)

// CurrentSchemaVersion is the current schema version.
// Increment this when making breaking changes to the storage format.
const CurrentSchemaVersion = 1

var (
	keySchemaVersion = []byte("schema_version")
	keyConfigHash    = []byte("config_hash")
)

// SchemaInfo stores schema version and configuration hash.
type SchemaInfo struct {
	Version    int    `json:"version"`
	ConfigHash string `json:"config_hash"`
}

// GetSchemaInfo retrieves the current schema info from the database.
func (s *BoltStore) GetSchemaInfo() (*SchemaInfo, error) {
	var info SchemaInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketStats)
		if b == nil {
			return nil
		}

		if versionData := b.Get(keySchemaVersion); versionData != nil {
			if err := json.Unmarshal(versionData, &info.Version); err != nil {
				info.Version = 0
			}
		}

		if hashData := b.Get(keyConfigHash); hashData != nil {
			info.ConfigHash = string(hashData)
		}

		return nil
	})
	return &info, err
}

// SetSchemaInfo stores the schema info in the database.
func (s *BoltStore) SetSchemaInfo(info *SchemaInfo) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketStats)

		versionData, err := json.Marshal(info.Version)
		if err != nil {
			return err
		}
		if err := b.Put(keySchemaVersion, versionData); err != nil {
			return err
		}

		return b.Put(keyConfigHash, []byte(info.ConfigHash))
	})
}

// ComputeConfigHash hashes the cleaning configuration, including the
// contents of the word list files it names. Cached texts are only valid for
// the hash they were written under.
func ComputeConfigHash(cfg *config.Config) string {
	relevant := struct {
		Stages          []string `json:"stages"`
		Language        string   `json:"language"`
		Stemmer         string   `json:"stemmer"`
		StopwordsFile   string   `json:"stopwords_file"`
		ChatWordsFile   string   `json:"chat_words_file"`
		StripDiacritics bool     `json:"strip_diacritics"`
		SpellDictionary string   `json:"spell_dictionary"`
		SpellCorpus     bool     `json:"spell_corpus"`
		SpellDepth      int      `json:"spell_depth"`
		SpellThreshold  int      `json:"spell_threshold"`
		Files           []string `json:"files"`
	}{
		Stages:          cfg.Clean.Stages,
		Language:        cfg.Clean.Language,
		Stemmer:         cfg.Clean.Stemmer,
		StopwordsFile:   cfg.Clean.StopwordsFile,
		ChatWordsFile:   cfg.Clean.ChatWordsFile,
		StripDiacritics: cfg.Clean.StripDiacritics,
		SpellDictionary: cfg.Clean.Spell.Dictionary,
		SpellCorpus:     cfg.Clean.Spell.TrainOnCorpus,
		SpellDepth:      cfg.Clean.Spell.Depth,
		SpellThreshold:  cfg.Clean.Spell.Threshold,
		Files:           []string{
			fileDigest(cfg.Clean.StopwordsFile),
			fileDigest(cfg.Clean.ChatWordsFile),
			fileDigest(cfg.Clean.Spell.Dictionary),
		},
	}

	data, _ := json.Marshal(relevant)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

// fileDigest returns the hex SHA-256 of a file's contents, or "" when path
// is empty or unreadable.
func fileDigest(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// MigrationResult describes the result of a migration check.
type MigrationResult struct {
	NeedsMigration bool
	NeedsRebuild   bool
	OldVersion     int
	NewVersion     int
	Reason         string
}

// CheckMigration checks if migration or a cache rebuild is needed.
func (s *BoltStore) CheckMigration(cfg *config.Config) (*MigrationResult, error) {
	info, err := s.GetSchemaInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to get schema info: %w", err)
	}

	result := &MigrationResult{
		OldVersion: info.Version,
		NewVersion: CurrentSchemaVersion,
	}

	switch {
	case info.Version == 0:
		result.NeedsMigration = true
		result.Reason = "initializing schema version"
	case info.Version < CurrentSchemaVersion:
		result.NeedsMigration = true
		result.Reason = fmt.Sprintf("schema upgrade from v%d to v%d", info.Version, CurrentSchemaVersion)
	case info.Version > CurrentSchemaVersion:
		result.NeedsRebuild = true
		result.Reason = fmt.Sprintf("cache created by newer version (v%d > v%d)", info.Version, CurrentSchemaVersion)
		return result, nil
	}

	newHash := ComputeConfigHash(cfg)
	if info.ConfigHash != "" && info.ConfigHash != newHash {
		result.NeedsRebuild = true
		result.Reason = "clean configuration changed"
	}

	return result, nil
}

// Prepare brings the cache in line with cfg: it clears stale entries when
// the cleaning configuration changed and records the current schema info.
// It returns the reason for clearing, or "" when the cache was kept.
func (s *BoltStore) Prepare(cfg *config.Config) (string, error) {
	result, err := s.CheckMigration(cfg)
	if err != nil {
		return "", err
	}

	reason := ""
	if result.NeedsRebuild {
		if err := s.Clear(); err != nil {
			return "", fmt.Errorf("failed to clear cache: %w", err)
		}
		reason = result.Reason
	}

	return reason, s.SetSchemaInfo(&SchemaInfo{
		Version:    CurrentSchemaVersion,
		ConfigHash: ComputeConfigHash(cfg),
	})
}

// Clear removes all cached texts and counters, keeping the schema info.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketCleaned); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		if _, err := tx.CreateBucket(bucketCleaned); err != nil {
			return err
		}

		statsBucket := tx.Bucket(bucketStats)
		if statsBucket != nil {
			c := statsBucket.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if string(k) != string(keySchemaVersion) && string(k) != string(keyConfigHash) {
					if err := statsBucket.Delete(k); err != nil {
						return err
					}
				}
			}
		}

		return nil
	})
}
