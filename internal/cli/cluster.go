package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ytclust/internal/adapter/report"
	"ytclust/internal/usecase"
)

var (
	clusterSeed      int64
	clusterK         int
	clusterWorkers   int
	clusterKeepEmpty bool
	clusterSQLite    string
	clusterReportDir string
	clusterYes       bool
	clusterNoReport  bool
)

var clusterCmd = &cobra.Command{
	Use:   "cluster JSON_PATH CSV_PATH",
	Short: "Clean, cluster and report on downloaded comments",
	Long: `Run the cleaning pipeline over the comments in JSON_PATH, cluster the
cleaned texts with TF-IDF and k-means, and write the rows with their
cluster labels to CSV_PATH. Afterwards, word clouds and a bar chart are
rendered into the report directory.

Examples:
  ytclust cluster comments.json clusters.csv
  ytclust cluster comments.json clusters.csv --k 4 --seed 42 --yes
  ytclust cluster comments.json clusters.csv --sqlite clusters.db --no-report`,
	Args: cobra.ExactArgs(2),
	RunE: runCluster,
}

func init() {
	clusterCmd.Flags().Int64Var(&clusterSeed, "seed", 0, "random seed, negative = from clock (default from config)")
	clusterCmd.Flags().IntVar(&clusterK, "k", 0, "number of clusters, 0 = heuristic (default from config)")
	clusterCmd.Flags().IntVar(&clusterWorkers, "workers", 0, "cleaning workers (default from config)")
	clusterCmd.Flags().BoolVar(&clusterKeepEmpty, "keep-empty", false, "keep rows whose cleaned text is empty")
	clusterCmd.Flags().StringVar(&clusterSQLite, "sqlite", "", "also export the result to this SQLite database")
	clusterCmd.Flags().StringVar(&clusterReportDir, "report-dir", "", "report output directory (default from config)")
	clusterCmd.Flags().BoolVarP(&clusterYes, "yes", "y", false, "render the report without prompting")
	clusterCmd.Flags().BoolVar(&clusterNoReport, "no-report", false, "skip rendering the report")
	rootCmd.AddCommand(clusterCmd)
}

func runCluster(cmd *cobra.Command, args []string) error {
	jsonPath, csvPath := args[0], args[1]
	cfg := GetConfig()

	if cmd.Flags().Changed("seed") {
		cfg.Cluster.Seed = clusterSeed
	}
	if cmd.Flags().Changed("k") {
		cfg.Cluster.K = clusterK
	}
	if cmd.Flags().Changed("workers") {
		cfg.Clean.Workers = clusterWorkers
	}
	if clusterKeepEmpty {
		cfg.Cluster.DropEmpty = false
	}
	if clusterSQLite != "" {
		cfg.Output.SQLitePath = clusterSQLite
	}
	if clusterReportDir != "" {
		cfg.Report.Dir = clusterReportDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cache, closeCache, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	factory := usecase.NewCleanerFactory(cfg.Clean, cache, logger)
	processUC := usecase.NewProcessUseCase(factory, usecase.ProcessOptionsFromConfig(cfg), logger)

	fmt.Printf("Processing %s...\n", jsonPath)
	result, err := processUC.Process(cmd.Context(), jsonPath, csvPath, cleanProgress("Cleaning"))
	if err != nil {
		return err
	}

	fmt.Printf("\nClustering complete:\n")
	fmt.Printf("  Rows:     %d\n", result.Corpus.Len())
	fmt.Printf("  Dropped:  %d (empty after cleaning)\n", result.Dropped)
	fmt.Printf("  Terms:    %d\n", len(result.Features.Terms))
	fmt.Printf("  Clusters: %d (seed %d)\n", result.K, result.Seed)
	fmt.Printf("  Inertia:  %.4f\n", result.Inertia)
	fmt.Printf("\nClusters written to: %s\n", csvPath)
	if cfg.Output.SQLitePath != "" {
		fmt.Printf("SQLite export: %s\n", cfg.Output.SQLitePath)
	}

	fmt.Println()
	if err := report.Summary(os.Stdout, usecase.Aggregate(result.Corpus.Rows)); err != nil {
		return err
	}

	if clusterNoReport {
		return nil
	}
	if !clusterYes {
		fmt.Fprint(cmd.OutOrStdout(), "\nPress Enter to render the visual results")
		if _, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n'); err != nil {
			fmt.Println()
			logger.Warn("no confirmation on stdin, skipping report", "error", err)
			return nil
		}
	}

	return renderReport(result.Corpus.Rows)
}
