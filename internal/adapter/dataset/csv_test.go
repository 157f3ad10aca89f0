package dataset

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"ytclust/internal/domain"
)

func sampleRows() []domain.Row {
	return []domain.Row{
		{Index: "0", LikeCount: 5, PreClean: "Great, video!", PostClean: "great video", Cluster: 1},
		{Index: "2", LikeCount: 0, PreClean: "line one\nline \"two\"", PostClean: "line one line two", Cluster: 0},
	}
}

func TestWriteCSV_WithFeatures(t *testing.T) {
	weights := mat.NewDense(2, 2, []float64{0.5, 0, 0, 1})
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows(), []string{"great", "line"}, weights))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"idx", "like_count", "pre_clean", "post_clean", "cluster", "great", "line"}, records[0])
	assert.Equal(t, []string{"0", "5", "Great, video!", "great video", "1", "0.5", "0"}, records[1])
	assert.Equal(t, "line one\nline \"two\"", records[2][2])
}

func TestWriteCSV_DimensionMismatch(t *testing.T) {
	weights := mat.NewDense(1, 2, nil)
	var buf bytes.Buffer
	err := WriteCSV(&buf, sampleRows(), []string{"a", "b"}, weights)
	assert.Error(t, err)
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	weights := mat.NewDense(2, 1, []float64{0.1, 0.2})
	require.NoError(t, WriteCSVFile(path, sampleRows(), []string{"x"}, weights))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, sampleRows(), rows)
}

func TestCSVRoundTrip_TermsNamedLikeBaseColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	rows := sampleRows()
	rows[0].Cluster = 2
	weights := mat.NewDense(2, 3, []float64{0.6, 0.3, 0.1, 0, 0.8, 0.2})
	require.NoError(t, WriteCSVFile(path, rows, []string{"cluster", "idx", "video"}, weights))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestCSVRoundTrip_NoFeatures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSVFile(path, sampleRows(), []string{"ignored"}, nil))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, sampleRows(), rows)
}

func TestReadCSV_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("idx,like_count,pre_clean\n0,1,x\n"), 0644))

	_, err := ReadCSV(path)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadCSV_BadNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("idx,like_count,pre_clean,post_clean,cluster\n0,many,x,x,0\n"), 0644))

	_, err := ReadCSV(path)
	assert.Error(t, err)
}
