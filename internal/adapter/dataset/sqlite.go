package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"gonum.org/v1/gonum/mat"
	_ "modernc.org/sqlite"

	"ytclust/internal/domain"
)

const exportSchema = `
DROP TABLE IF EXISTS features;
DROP TABLE IF EXISTS comments;

CREATE TABLE comments (
	idx TEXT PRIMARY KEY,
	like_count INTEGER NOT NULL,
	pre_clean TEXT NOT NULL,
	post_clean TEXT NOT NULL,
	cluster INTEGER NOT NULL
);

CREATE TABLE features (
	idx TEXT NOT NULL,
	term TEXT NOT NULL,
	weight REAL NOT NULL,
	PRIMARY KEY(idx, term),
	FOREIGN KEY(idx) REFERENCES comments(idx) ON DELETE CASCADE
);

CREATE INDEX idx_comments_cluster ON comments(cluster);
`

// ExportSQLite writes rows and their non-zero feature weights to a SQLite
// database at path. Both tables are recreated on every export.
func ExportSQLite(ctx context.Context, path string, rows []domain.Row, terms []string, weights mat.Matrix) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, exportSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	commentStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO comments (idx, like_count, pre_clean, post_clean, cluster) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer commentStmt.Close()

	featureStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO features (idx, term, weight) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer featureStmt.Close()

	for i, row := range rows {
		if _, err := commentStmt.ExecContext(ctx, row.Index, row.LikeCount, row.PreClean, row.PostClean, row.Cluster); err != nil {
			return fmt.Errorf("insert comment %s: %w", row.Index, err)
		}
		if weights == nil {
			continue
		}
		for j, term := range terms {
			w := weights.At(i, j)
			if w == 0 {
				continue
			}
			if _, err := featureStmt.ExecContext(ctx, row.Index, term, w); err != nil {
				return fmt.Errorf("insert feature %s/%s: %w", row.Index, term, err)
			}
		}
	}

	return tx.Commit()
}
