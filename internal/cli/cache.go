package cli

import (
	"fmt"
	"slices"

	"ytclust/config"
	"ytclust/internal/adapter/store"
	"ytclust/internal/port"
)

// openCache opens the clean cache under the root directory and clears it if
// the cleaning configuration changed. It returns a nil cache when caching is
// disabled or when results depend on the corpus being cleaned. The returned
// close function is always safe to call.
func openCache(cfg *config.Config) (port.CleanCache, func(), error) {
	if !cfg.Cache.Enabled {
		return nil, func() {}, nil
	}
	if cfg.Clean.Spell.TrainOnCorpus && slices.Contains(cfg.Clean.Stages, "spell_correct") {
		logger.Debug("clean cache disabled for corpus-trained spell correction")
		return nil, func() {}, nil
	}

	dir := GetRootDir()
	if err := config.EnsureDataDir(dir); err != nil {
		return nil, nil, fmt.Errorf("failed to create %s directory: %w", config.DataDirName, err)
	}

	st, err := store.NewBoltStore(config.CacheDBPath(dir))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open clean cache: %w", err)
	}

	reason, err := st.Prepare(cfg)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to prepare clean cache: %w", err)
	}
	if reason != "" {
		logger.Info("clean cache cleared", "reason", reason)
	}

	if stats, err := st.Stats(); err == nil {
		logger.Debug("clean cache opened", "entries", stats.Entries, "writes", stats.Writes)
	}

	return st, func() { st.Close() }, nil
}
