package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ytclust/internal/adapter/dataset"
	"ytclust/internal/adapter/report"
	"ytclust/internal/domain"
	"ytclust/internal/usecase"
)

var reportDir string

var reportCmd = &cobra.Command{
	Use:   "report CSV_PATH",
	Short: "Render word clouds and the cluster chart from a CSV",
	Long: `Render one word cloud per cluster and a bar chart of likes and comments
per cluster from a CSV written by the cluster command.

Examples:
  ytclust report clusters.csv
  ytclust report clusters.csv --report-dir charts`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDir, "report-dir", "", "report output directory (default from config)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if reportDir != "" {
		cfg.Report.Dir = reportDir
	}

	rows, err := dataset.ReadCSV(args[0])
	if err != nil {
		return fmt.Errorf("failed to read clusters: %w", err)
	}

	if err := report.Summary(os.Stdout, usecase.Aggregate(rows)); err != nil {
		return err
	}
	return renderReport(rows)
}

func renderReport(rows []domain.Row) error {
	cfg := GetConfig()
	reportUC := usecase.NewReportUseCase(cfg.Report.Dir, report.Options{
		Width:    cfg.Report.Width,
		Height:   cfg.Report.Height,
		MaxWords: cfg.Report.MaxWords,
	}, logger)

	result, err := reportUC.Render(rows)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	fmt.Printf("\nReport written to %s:\n", cfg.Report.Dir)
	for _, f := range result.Files {
		fmt.Printf("  - %s\n", f)
	}
	return nil
}
