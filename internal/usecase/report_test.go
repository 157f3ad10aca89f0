package usecase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytclust/internal/adapter/report"
	"ytclust/internal/domain"
)

func clusteredRows() []domain.Row {
	return []domain.Row{
		{Index: "0", LikeCount: 10, PostClean: "love song", Cluster: 0},
		{Index: "1", LikeCount: 5, PostClean: "great song", Cluster: 0},
		{Index: "2", LikeCount: 5, PostClean: "bad audio", Cluster: 1},
		{Index: "3", LikeCount: 0, PostClean: "", Cluster: 1},
	}
}

func TestAggregate(t *testing.T) {
	stats := Aggregate(clusteredRows())

	assert.Equal(t, []domain.ClusterStats{
		{Cluster: 0, TotalLikes: 15, TotalComments: 2, LikesPercent: 75, CommentsPercent: 50},
		{Cluster: 1, TotalLikes: 5, TotalComments: 2, LikesPercent: 25, CommentsPercent: 50},
	}, stats)
}

func TestAggregate_ZeroLikes(t *testing.T) {
	stats := Aggregate([]domain.Row{
		{Cluster: 0}, {Cluster: 1}, {Cluster: 1},
	})
	require.Len(t, stats, 2)
	assert.Equal(t, 0.0, stats[0].LikesPercent)
	assert.Equal(t, 33.0, stats[0].CommentsPercent)
	assert.Equal(t, 67.0, stats[1].CommentsPercent)
}

func TestAggregate_RoundsHalfToEven(t *testing.T) {
	rows := make([]domain.Row, 8)
	rows[0].Cluster = 1 // 12.5% -> 12
	stats := Aggregate(rows)
	require.Len(t, stats, 2)
	assert.Equal(t, 88.0, stats[0].CommentsPercent)
	assert.Equal(t, 12.0, stats[1].CommentsPercent)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestGroupText(t *testing.T) {
	groups := GroupText(clusteredRows())
	assert.Equal(t, []domain.ClusterText{
		{Cluster: 0, Text: "love song great song"},
		{Cluster: 1, Text: "bad audio"},
	}, groups)
}

func TestReportRender(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")
	uc := NewReportUseCase(dir, report.Options{MaxWords: 10}, nil)

	res, err := uc.Render(clusteredRows())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "cluster_0.png"),
		filepath.Join(dir, "cluster_1.png"),
		filepath.Join(dir, "clusters.png"),
	}, res.Files)
	for _, f := range res.Files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	assert.Len(t, res.Stats, 2)
}
