package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"ytclust/internal/domain"
)

// ErrMissingColumn is returned by ReadCSV when a required column is absent.
var ErrMissingColumn = errors.New("missing column")

// BaseColumns are the leading CSV columns; feature terms follow them.
var BaseColumns = []string{"idx", "like_count", "pre_clean", "post_clean", "cluster"}

// WriteCSV writes rows with one column per term. weights may be nil, in
// which case no feature columns are written; otherwise row i of weights
// belongs to rows[i].
func WriteCSV(w io.Writer, rows []domain.Row, terms []string, weights mat.Matrix) error {
	if weights != nil {
		r, c := weights.Dims()
		if r != len(rows) || c != len(terms) {
			return fmt.Errorf("feature matrix is %dx%d, want %dx%d", r, c, len(rows), len(terms))
		}
	} else {
		terms = nil
	}

	cw := csv.NewWriter(w)
	header := append(append([]string(nil), BaseColumns...), terms...)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, row := range rows {
		record[0] = row.Index
		record[1] = strconv.FormatInt(row.LikeCount, 10)
		record[2] = row.PreClean
		record[3] = row.PostClean
		record[4] = strconv.Itoa(row.Cluster)
		for j := range terms {
			record[len(BaseColumns)+j] = strconv.FormatFloat(weights.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the CSV to path, overwriting it.
func WriteCSVFile(path string, rows []domain.Row, terms []string, weights mat.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, rows, terms, weights); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadCSV reads the base columns of a CSV written by WriteCSV. Feature
// columns are ignored.
func ReadCSV(path string) ([]domain.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	// feature terms may repeat a base column name; the base column comes first
	col := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := col[name]; !ok {
			col[name] = i
		}
	}
	for _, name := range BaseColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var rows []domain.Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		likes, err := strconv.ParseInt(rec[col["like_count"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: like_count: %w", line, err)
		}
		cluster, err := strconv.Atoi(rec[col["cluster"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: cluster: %w", line, err)
		}

		rows = append(rows, domain.Row{
			Index:     rec[col["idx"]],
			LikeCount: likes,
			PreClean:  rec[col["pre_clean"]],
			PostClean: rec[col["post_clean"]],
			Cluster:   cluster,
		})
	}

	return rows, nil
}
