package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gonum.org/v1/gonum/mat"

	"ytclust/config"
	"ytclust/internal/adapter/cluster"
	"ytclust/internal/adapter/dataset"
	"ytclust/internal/domain"
)

// ProcessOptions controls clustering and output.
type ProcessOptions struct {
	K               int // 0 = heuristic
	MaxK            int
	KFactor         float64
	Seed            int64
	NInit           int
	MaxIter         int
	Tol             float64
	DropEmpty       bool
	IncludeFeatures bool
	SQLitePath      string
}

// ProcessOptionsFromConfig collects the process options from cfg.
func ProcessOptionsFromConfig(cfg *config.Config) ProcessOptions {
	return ProcessOptions{
		K:               cfg.Cluster.K,
		MaxK:            cfg.Cluster.MaxK,
		KFactor:         cfg.Cluster.KFactor,
		Seed:            cfg.Cluster.Seed,
		NInit:           cfg.Cluster.NInit,
		MaxIter:         cfg.Cluster.MaxIter,
		Tol:             cfg.Cluster.Tol,
		DropEmpty:       cfg.Cluster.DropEmpty,
		IncludeFeatures: cfg.Output.IncludeFeatures,
		SQLitePath:      cfg.Output.SQLitePath,
	}
}

// ProcessUseCase reads comments, cleans them, clusters the cleaned texts
// and writes the augmented CSV.
type ProcessUseCase struct {
	newCleaner CleanerFactory
	vectorizer *cluster.Vectorizer
	opts       ProcessOptions
	logger     *slog.Logger
}

// NewProcessUseCase creates a new process use case.
func NewProcessUseCase(newCleaner CleanerFactory, opts ProcessOptions, logger *slog.Logger) *ProcessUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessUseCase{
		newCleaner: newCleaner,
		vectorizer: cluster.NewVectorizer(),
		opts:       opts,
		logger:     logger,
	}
}

// ProcessResult contains the results of a process run.
type ProcessResult struct {
	Corpus   *domain.Corpus
	Features *cluster.Features
	K        int
	Seed     int64
	Inertia  float64
	Sizes    []int
	Dropped  int
}

// Process runs read, clean, drop-empty, vectorize, cluster and write.
func (u *ProcessUseCase) Process(ctx context.Context, jsonPath, csvPath string, progress ProgressFunc) (*ProcessResult, error) {
	corpus, err := dataset.ReadCorpus(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	u.logger.Info("comments loaded", "path", jsonPath, "rows", corpus.Len())
	if corpus.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", jsonPath, cluster.ErrEmptyCorpus)
	}

	cleaner, err := u.newCleaner(corpus.Texts())
	if err != nil {
		return nil, err
	}
	if err := cleaner.Clean(ctx, corpus.Rows, progress); err != nil {
		return nil, fmt.Errorf("cleaning failed: %w", err)
	}

	result := &ProcessResult{Corpus: corpus}
	if u.opts.DropEmpty {
		kept := corpus.Rows[:0]
		for _, r := range corpus.Rows {
			if strings.TrimSpace(r.PostClean) == "" {
				result.Dropped++
				continue
			}
			kept = append(kept, r)
		}
		corpus.Rows = kept
		if result.Dropped > 0 {
			u.logger.Info("dropped empty rows", "dropped", result.Dropped, "remaining", corpus.Len())
		}
	}
	if corpus.Len() == 0 {
		return nil, fmt.Errorf("no rows left after cleaning: %w", cluster.ErrEmptyCorpus)
	}

	features, err := u.vectorizer.FitTransform(corpus.Texts())
	if err != nil {
		return nil, fmt.Errorf("vectorizing failed: %w", err)
	}
	result.Features = features

	k := u.opts.K
	if k <= 0 {
		k = cluster.ClusterCount(corpus.Len(), u.opts.MaxK, u.opts.KFactor)
	}

	km := cluster.KMeans{
		K:       k,
		Seed:    u.opts.Seed,
		NInit:   u.opts.NInit,
		MaxIter: u.opts.MaxIter,
		Tol:     u.opts.Tol,
	}
	fit, err := km.Fit(features.Matrix)
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}
	for i := range corpus.Rows {
		corpus.Rows[i].Cluster = fit.Labels[i]
	}
	result.K = fit.K
	result.Seed = fit.Seed
	result.Inertia = fit.Inertia
	result.Sizes = fit.Sizes()
	u.logger.Info("clustered",
		"k", fit.K, "seed", fit.Seed, "inertia", fit.Inertia, "iterations", fit.Iterations, "terms", len(features.Terms))

	var weights mat.Matrix
	if u.opts.IncludeFeatures {
		weights = features.Matrix
	}
	if err := dataset.WriteCSVFile(csvPath, corpus.Rows, features.Terms, weights); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}

	if u.opts.SQLitePath != "" {
		if err := dataset.ExportSQLite(ctx, u.opts.SQLitePath, corpus.Rows, features.Terms, features.Matrix); err != nil {
			return nil, fmt.Errorf("failed to export sqlite: %w", err)
		}
		u.logger.Info("sqlite export written", "path", u.opts.SQLitePath)
	}

	return result, nil
}
