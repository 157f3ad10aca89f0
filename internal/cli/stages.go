package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ytclust/internal/adapter/normalize"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the available cleaning stages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "STAGE\tDESCRIPTION")
		for _, s := range normalize.Available() {
			fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Description)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Printf("\nConfigured order:\n")
		for i, name := range cfg.Clean.Stages {
			fmt.Printf("  %d. %s\n", i+1, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
}
