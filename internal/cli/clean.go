package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ytclust/internal/adapter/dataset"
	"ytclust/internal/adapter/fs"
	"ytclust/internal/port"
	"ytclust/internal/usecase"
)

var cleanOutDir string

var cleanCmd = &cobra.Command{
	Use:   "clean INPUT",
	Short: "Run the cleaning pipeline over comment files",
	Long: `Clean the comments of one or more comment files and write the cleaned
texts of each as a JSON array next to it (or into --out).

INPUT may be a single JSON file, a directory walked with the configured
include and exclude patterns, or a glob pattern.

Examples:
  ytclust clean comments.json
  ytclust clean data/ --out cleaned
  ytclust clean 'data/**/video_*.json'`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanOutDir, "out", "o", "", "output directory (default is next to each input)")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	var walker port.FileWalker = fs.NewWalker(cfg.Clean.Includes, cfg.Clean.Excludes)
	files, err := walker.Resolve(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve input: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files found in %s", args[0])
	}

	if cleanOutDir != "" {
		if err := os.MkdirAll(cleanOutDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	cache, closeCache, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	factory := usecase.NewCleanerFactory(cfg.Clean, cache, logger)

	var cleanedRows int
	for _, f := range files {
		corpus, err := dataset.ReadCorpus(f.Path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.Path, err)
		}

		cleaner, err := factory(corpus.Texts())
		if err != nil {
			return err
		}
		label := fmt.Sprintf("Cleaning %s", filepath.Base(f.Path))
		cleaned, err := cleaner.CleanTexts(cmd.Context(), corpus.Texts(), cleanProgress(label))
		if err != nil {
			return fmt.Errorf("failed to clean %s: %w", f.Path, err)
		}

		out := cleanedPath(f.Path, cleanOutDir)
		if err := dataset.WriteCleaned(out, cleaned); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		cleanedRows += len(cleaned)
		fmt.Printf("  %s -> %s (%d rows)\n", f.Path, out, len(cleaned))
	}

	fmt.Printf("\nCleaning complete:\n")
	fmt.Printf("  Files: %d\n", len(files))
	fmt.Printf("  Rows:  %d\n", cleanedRows)
	return nil
}

// cleanedPath maps comments.json to comments.clean.json, in outDir if set.
func cleanedPath(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".clean.json"
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), base)
	}
	return filepath.Join(outDir, base)
}
