package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"ytclust/internal/adapter/dataset"
	"ytclust/internal/adapter/youtube"
	"ytclust/internal/usecase"
)

var (
	fetchPageSize   int
	fetchMaxPages   int
	fetchTextFormat string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch VIDEO_ID JSON_PATH",
	Short: "Download the top-level comments of a video",
	Long: `Download every top-level comment of a YouTube video and write the
distinct (like count, text) pairs to JSON_PATH, keyed by index.

The API key is read from the environment variable named by fetch.api_key_env
(YOUTUBE_API_KEY by default). If the API fails part way, the comments
collected so far are still written.

Examples:
  ytclust fetch dQw4w9WgXcQ comments.json
  ytclust fetch dQw4w9WgXcQ comments.json --max-pages 5 --text-format html`,
	Args: cobra.ExactArgs(2),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchPageSize, "page-size", 0, "comments per page, 1-100 (default from config)")
	fetchCmd.Flags().IntVar(&fetchMaxPages, "max-pages", -1, "stop after N pages, 0 = all (default from config)")
	fetchCmd.Flags().StringVar(&fetchTextFormat, "text-format", "", "plainText or html (default from config)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	videoID, jsonPath := args[0], args[1]
	cfg := GetConfig()

	if cmd.Flags().Changed("page-size") {
		cfg.Fetch.PageSize = fetchPageSize
	}
	if cmd.Flags().Changed("max-pages") {
		cfg.Fetch.MaxPages = fetchMaxPages
	}
	if fetchTextFormat != "" {
		cfg.Fetch.TextFormat = fetchTextFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := youtube.NewClientFromEnv(cmd.Context(), cfg.Fetch.APIKeyEnv, cfg.Fetch.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to create youtube client: %w", err)
	}

	fetchUC := usecase.NewFetchUseCase(client, cfg.Fetch.TextFormat, cfg.Fetch.MaxPages, logger)

	spinner := progressbar.NewOptions(-1,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan]Fetching[reset]"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
	result, err := fetchUC.Fetch(cmd.Context(), videoID, cfg.Fetch.PageSize, func(pages, comments int) {
		spinner.Describe(fmt.Sprintf("[cyan]Fetching[reset] page %d, %d comments", pages, comments))
		spinner.Add(1)
	})
	spinner.Finish()
	if err != nil {
		return err
	}

	if err := dataset.WriteComments(jsonPath, result.Comments); err != nil {
		return fmt.Errorf("failed to write comments: %w", err)
	}

	fmt.Printf("\nFetch complete:\n")
	fmt.Printf("  Pages:      %d\n", result.Pages)
	fmt.Printf("  Comments:   %d\n", len(result.Comments))
	fmt.Printf("  Duplicates: %d (dropped)\n", result.Duplicates)
	if result.Interrupted != nil {
		fmt.Printf("\nWarning: stopped early: %v\n", result.Interrupted)
	}
	fmt.Printf("\nComments written to: %s\n", jsonPath)
	return nil
}
