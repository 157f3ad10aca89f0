// Package dataset reads and writes the comment, CSV and SQLite files.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"ytclust/internal/domain"
)

const jsonIndent = "    "

// WriteComments writes comments as an index-keyed JSON object. Keys are
// "0".."n-1" in slice order. The file is overwritten.
func WriteComments(path string, comments []domain.Comment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := encodeComments(w, comments); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func encodeComments(w *bufio.Writer, comments []domain.Comment) error {
	if len(comments) == 0 {
		_, err := w.WriteString("{}\n")
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(jsonIndent, jsonIndent)

	w.WriteString("{\n")
	for i, c := range comments {
		buf.Reset()
		rec := domain.CommentRecord{LikeCount: c.LikeCount, Comment: c.Text}
		if err := enc.Encode(rec); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s%q: %s", jsonIndent, strconv.Itoa(i), bytes.TrimRight(buf.Bytes(), "\n"))
		if i < len(comments)-1 {
			w.WriteString(",")
		}
		w.WriteString("\n")
	}
	_, err := w.WriteString("}\n")
	return err
}

// ReadCorpus loads a comment record file into a corpus ordered by numeric
// index. PreClean and PostClean both start as the comment text.
func ReadCorpus(path string) (*domain.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records map[string]domain.CommentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sortIndexKeys(keys)

	corpus := &domain.Corpus{Rows: make([]domain.Row, 0, len(keys))}
	for _, k := range keys {
		rec := records[k]
		corpus.Rows = append(corpus.Rows, domain.Row{
			Index:     k,
			LikeCount: rec.LikeCount,
			PreClean:  rec.Comment,
			PostClean: rec.Comment,
		})
	}
	return corpus, nil
}

// sortIndexKeys orders numeric keys numerically, followed by any other keys
// in lexical order.
func sortIndexKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}

// WriteCleaned writes texts as a JSON array.
func WriteCleaned(path string, texts []string) error {
	if texts == nil {
		texts = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", jsonIndent)
	if err := enc.Encode(texts); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
