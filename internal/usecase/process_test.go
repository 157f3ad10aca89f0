package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytclust/config"
	"ytclust/internal/adapter/cluster"
	"ytclust/internal/adapter/dataset"
	"ytclust/internal/domain"
)

func writeComments(t *testing.T, comments []domain.Comment) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "comments.json")
	require.NoError(t, dataset.WriteComments(path, comments))
	return path
}

func testProcessOptions() ProcessOptions {
	opts := ProcessOptionsFromConfig(config.DefaultConfig())
	opts.K = 2
	return opts
}

func TestProcess_EndToEnd(t *testing.T) {
	jsonPath := writeComments(t, []domain.Comment{
		{LikeCount: 10, Text: "I love this song, great song"},
		{LikeCount: 4, Text: "love the song so much"},
		{LikeCount: 1, Text: "terrible audio quality"},
		{LikeCount: 0, Text: "the audio is terrible"},
		{LikeCount: 2, Text: "!!!"},
	})
	csvPath := filepath.Join(t.TempDir(), "clusters.csv")

	factory := NewCleanerFactory(config.DefaultConfig().Clean, nil, nil)
	uc := NewProcessUseCase(factory, testProcessOptions(), nil)

	res, err := uc.Process(context.Background(), jsonPath, csvPath, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Dropped)
	assert.Equal(t, 4, res.Corpus.Len())
	assert.Equal(t, 2, res.K)
	assert.Equal(t, int64(1), res.Seed)
	assert.Equal(t, 4, res.Features.Rows())

	// the song comments and the audio comments share their labels
	rows := res.Corpus.Rows
	assert.Equal(t, rows[0].Cluster, rows[1].Cluster)
	assert.Equal(t, rows[2].Cluster, rows[3].Cluster)
	assert.NotEqual(t, rows[0].Cluster, rows[2].Cluster)

	written, err := dataset.ReadCSV(csvPath)
	require.NoError(t, err)
	require.Len(t, written, 4)
	for i, r := range written {
		assert.Equal(t, rows[i].Index, r.Index)
		assert.Equal(t, rows[i].PreClean, r.PreClean)
		assert.Equal(t, rows[i].PostClean, r.PostClean)
		assert.Equal(t, rows[i].Cluster, r.Cluster)
	}
}

func TestProcess_KeepEmpty(t *testing.T) {
	jsonPath := writeComments(t, []domain.Comment{
		{LikeCount: 1, Text: "great song"},
		{LikeCount: 2, Text: "!!!"},
	})
	csvPath := filepath.Join(t.TempDir(), "clusters.csv")

	opts := testProcessOptions()
	opts.K = 1
	opts.DropEmpty = false
	opts.IncludeFeatures = false
	uc := NewProcessUseCase(NewCleanerFactory(config.DefaultConfig().Clean, nil, nil), opts, nil)

	res, err := uc.Process(context.Background(), jsonPath, csvPath, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Dropped)
	assert.Equal(t, 2, res.Corpus.Len())
	assert.Equal(t, "", res.Corpus.Rows[1].PostClean)
}

func TestProcess_SQLiteExport(t *testing.T) {
	jsonPath := writeComments(t, []domain.Comment{
		{LikeCount: 1, Text: "great song"},
		{LikeCount: 2, Text: "bad audio"},
	})
	dir := t.TempDir()

	opts := testProcessOptions()
	opts.SQLitePath = filepath.Join(dir, "clusters.db")
	uc := NewProcessUseCase(NewCleanerFactory(config.DefaultConfig().Clean, nil, nil), opts, nil)

	_, err := uc.Process(context.Background(), jsonPath, filepath.Join(dir, "clusters.csv"), nil)
	require.NoError(t, err)

	_, err = os.Stat(opts.SQLitePath)
	assert.NoError(t, err)
}

func TestProcess_EmptyCorpus(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "clusters.csv")
	uc := NewProcessUseCase(NewCleanerFactory(config.DefaultConfig().Clean, nil, nil), testProcessOptions(), nil)

	_, err := uc.Process(context.Background(), writeComments(t, nil), csvPath, nil)
	assert.ErrorIs(t, err, cluster.ErrEmptyCorpus)

	onlyNoise := writeComments(t, []domain.Comment{{Text: "!!!"}, {Text: "the"}})
	_, err = uc.Process(context.Background(), onlyNoise, csvPath, nil)
	assert.ErrorIs(t, err, cluster.ErrEmptyCorpus)
}

func TestProcess_MissingInput(t *testing.T) {
	uc := NewProcessUseCase(NewCleanerFactory(config.DefaultConfig().Clean, nil, nil), testProcessOptions(), nil)
	_, err := uc.Process(context.Background(), filepath.Join(t.TempDir(), "nope.json"), "out.csv", nil)
	assert.Error(t, err)
}
