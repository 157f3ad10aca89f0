package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"go.etcd.io/bbolt"

	"ytclust/internal/port"
)

var (
	bucketCleaned = []byte("cleaned")
	bucketStats   = []byte("stats")
	keyWrites     = []byte("writes")
)

// BoltStore is a persistent cache of cleaned texts keyed by the SHA-256 of
// the raw text.
type BoltStore struct {
	db *bbolt.DB
}

var _ port.CleanCache = (*BoltStore)(nil)

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketCleaned, bucketStats} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func textKey(raw string) []byte {
	sum := sha256.Sum256([]byte(raw))
	return []byte(hex.EncodeToString(sum[:]))
}

// GetMany returns the cached cleaned text of every raw text present in the cache.
func (s *BoltStore) GetMany(raw []string) (map[string]string, error) {
	found := make(map[string]string)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketCleaned)
		for _, r := range raw {
			if _, ok := found[r]; ok {
				continue
			}
			if v := b.Get(textKey(r)); v != nil {
				found[r] = string(v)
			}
		}
		return nil
	})
	return found, err
}

// PutMany stores raw -> cleaned pairs in one transaction.
func (s *BoltStore) PutMany(entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketCleaned)
		for raw, cleaned := range entries {
			if err := b.Put(textKey(raw), []byte(cleaned)); err != nil {
				return err
			}
		}

		stats := tx.Bucket(bucketStats)
		writes := uint64(len(entries))
		if v := stats.Get(keyWrites); len(v) == 8 {
			writes += binary.BigEndian.Uint64(v)
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, writes)
		return stats.Put(keyWrites, buf)
	})
}

// CacheStats describes the cache contents.
type CacheStats struct {
	Entries int
	Writes  uint64
}

func (s *BoltStore) Stats() (CacheStats, error) {
	var st CacheStats
	err := s.db.View(func(tx *bbolt.Tx) error {
		st.Entries = tx.Bucket(bucketCleaned).Stats().KeyN
		if v := tx.Bucket(bucketStats).Get(keyWrites); len(v) == 8 {
			st.Writes = binary.BigEndian.Uint64(v)
		}
		return nil
	})
	return st, err
}
