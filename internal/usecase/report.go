package usecase

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ytclust/internal/adapter/report"
	"ytclust/internal/domain"
)

// GroupText concatenates the non-empty cleaned texts of each cluster,
// ordered by cluster id.
func GroupText(rows []domain.Row) []domain.ClusterText {
	parts := make(map[int][]string)
	for _, r := range rows {
		if strings.TrimSpace(r.PostClean) == "" {
			continue
		}
		parts[r.Cluster] = append(parts[r.Cluster], r.PostClean)
	}

	out := make([]domain.ClusterText, 0, len(parts))
	for c, texts := range parts {
		out = append(out, domain.ClusterText{Cluster: c, Text: strings.Join(texts, " ")})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cluster < out[j].Cluster })
	return out
}

// Aggregate sums likes and counts comments per cluster, with each as a
// rounded percentage of the corpus total (0 when the total is 0).
func Aggregate(rows []domain.Row) []domain.ClusterStats {
	byCluster := make(map[int]*domain.ClusterStats)
	var totalLikes int64
	for _, r := range rows {
		s, ok := byCluster[r.Cluster]
		if !ok {
			s = &domain.ClusterStats{Cluster: r.Cluster}
			byCluster[r.Cluster] = s
		}
		s.TotalLikes += r.LikeCount
		s.TotalComments++
		totalLikes += r.LikeCount
	}

	out := make([]domain.ClusterStats, 0, len(byCluster))
	for _, s := range byCluster {
		s.LikesPercent = percent(float64(s.TotalLikes), float64(totalLikes))
		s.CommentsPercent = percent(float64(s.TotalComments), float64(len(rows)))
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cluster < out[j].Cluster })
	return out
}

func percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.RoundToEven(part / total * 100)
}

// ReportUseCase renders the word clouds and the bar chart for clustered rows.
type ReportUseCase struct {
	dir    string
	opts   report.Options
	logger *slog.Logger
}

// NewReportUseCase creates a report use case writing into dir.
func NewReportUseCase(dir string, opts report.Options, logger *slog.Logger) *ReportUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportUseCase{dir: dir, opts: opts, logger: logger}
}

// ReportResult lists the written images and the aggregated statistics.
type ReportResult struct {
	Files []string
	Stats []domain.ClusterStats
}

// Render writes cluster_<id>.png per cluster and clusters.png.
func (u *ReportUseCase) Render(rows []domain.Row) (*ReportResult, error) {
	if err := os.MkdirAll(u.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	result := &ReportResult{Stats: Aggregate(rows)}

	for _, g := range GroupText(rows) {
		path := filepath.Join(u.dir, fmt.Sprintf("cluster_%d.png", g.Cluster))
		if err := report.WordCloud(path, g.Cluster, g.Text, u.opts); err != nil {
			return nil, fmt.Errorf("cluster %d: %w", g.Cluster, err)
		}
		result.Files = append(result.Files, path)
		u.logger.Debug("word cloud written", "cluster", g.Cluster, "path", path)
	}

	if len(result.Stats) > 0 {
		path := filepath.Join(u.dir, "clusters.png")
		if err := report.BarChart(path, result.Stats, u.opts); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}

	u.logger.Info("report rendered", "dir", u.dir, "files", len(result.Files))
	return result, nil
}
