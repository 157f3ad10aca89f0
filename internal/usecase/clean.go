package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"ytclust/config"
	"ytclust/internal/adapter/normalize"
	"ytclust/internal/domain"
	"ytclust/internal/port"
)

// ProgressFunc reports processed out of total items. It may be called from
// several goroutines.
type ProgressFunc func(processed, total int)

// CleanUseCase runs the normalization pipeline over texts in parallel.
type CleanUseCase struct {
	pipeline *normalize.Pipeline
	workers  int
	cache    port.CleanCache
	logger   *slog.Logger
}

// NewCleanUseCase creates a new clean use case. cache may be nil.
func NewCleanUseCase(pipeline *normalize.Pipeline, workers int, cache port.CleanCache, logger *slog.Logger) *CleanUseCase {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CleanUseCase{
		pipeline: pipeline,
		workers:  workers,
		cache:    cache,
		logger:   logger,
	}
}

// CleanerFactory builds a cleaner for a corpus. The corpus is needed to
// train corpus-dependent resources such as the speller.
type CleanerFactory func(texts []string) (*CleanUseCase, error)

// NewCleanerFactory returns a CleanerFactory for the given configuration.
func NewCleanerFactory(cfg config.CleanConfig, cache port.CleanCache, logger *slog.Logger) CleanerFactory {
	return func(texts []string) (*CleanUseCase, error) {
		res, err := normalize.LoadResources(cfg, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to load resources: %w", err)
		}
		p, err := normalize.Build(cfg.Stages, res)
		if err != nil {
			return nil, fmt.Errorf("failed to build pipeline: %w", err)
		}
		return NewCleanUseCase(p, cfg.Workers, cache, logger), nil
	}
}

// Pipeline returns the pipeline the cleaner applies.
func (u *CleanUseCase) Pipeline() *normalize.Pipeline {
	return u.pipeline
}

// Clean overwrites PostClean of every row with the cleaned PostClean.
func (u *CleanUseCase) Clean(ctx context.Context, rows []domain.Row, progress ProgressFunc) error {
	texts := make([]string, len(rows))
	for i, r := range rows {
		texts[i] = r.PostClean
	}

	cleaned, err := u.CleanTexts(ctx, texts, progress)
	if err != nil {
		return err
	}

	for i := range rows {
		rows[i].PostClean = cleaned[i]
	}
	return nil
}

// CleanTexts returns the cleaned form of every text, in input order.
// Duplicate texts are cleaned once, and cached results are reused.
func (u *CleanUseCase) CleanTexts(ctx context.Context, texts []string, progress ProgressFunc) ([]string, error) {
	unique := make([]string, 0, len(texts))
	firstSeen := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		if _, ok := firstSeen[t]; ok {
			continue
		}
		firstSeen[t] = struct{}{}
		unique = append(unique, t)
	}

	done := make(map[string]string, len(unique))
	if u.cache != nil {
		hits, err := u.cache.GetMany(unique)
		if err != nil {
			u.logger.Warn("clean cache read failed", "error", err)
		} else if hits != nil {
			done = hits
		}
	}

	pending := make([]string, 0, len(unique)-len(done))
	for _, t := range unique {
		if _, ok := done[t]; !ok {
			pending = append(pending, t)
		}
	}
	u.logger.Debug("cleaning texts",
		"total", len(texts), "unique", len(unique), "cached", len(done), "pending", len(pending), "workers", u.workers)

	results, err := u.run(ctx, pending, len(done), len(unique), progress)
	if err != nil {
		return nil, err
	}

	fresh := make(map[string]string, len(pending))
	for i, t := range pending {
		fresh[t] = results[i]
		done[t] = results[i]
	}
	if u.cache != nil {
		if err := u.cache.PutMany(fresh); err != nil {
			u.logger.Warn("clean cache write failed", "error", err)
		}
	}

	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = done[t]
	}
	return out, nil
}

// run splits texts into contiguous partitions, one goroutine each, and
// writes results back by index. A panic in any stage fails the whole run.
func (u *CleanUseCase) run(ctx context.Context, texts []string, already, total int, progress ProgressFunc) ([]string, error) {
	results := make([]string, len(texts))
	if len(texts) == 0 {
		if progress != nil {
			progress(total, total)
		}
		return results, nil
	}

	workers := u.workers
	if workers > len(texts) {
		workers = len(texts)
	}
	size := (len(texts) + workers - 1) / workers

	var (
		wg        sync.WaitGroup
		errOnce   sync.Once
		firstErr  error
		processed atomic.Int64
	)
	processed.Store(int64(already))
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	for start := 0; start < len(texts); start += size {
		end := start + size
		if end > len(texts) {
			end = len(texts)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					fail(fmt.Errorf("clean worker for rows %d-%d panicked: %v", start, end-1, r))
				}
			}()

			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					fail(err)
					return
				}
				results[i] = u.pipeline.Apply(texts[i])
				n := processed.Add(1)
				if progress != nil {
					progress(int(n), total)
				}
			}
		}(start, end)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
