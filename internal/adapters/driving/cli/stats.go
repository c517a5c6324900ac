package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Extract statistics from the downloaded archives",
	Long: `Scans every downloaded archive for CLDF datasets, counts their values,
forms, entries and examples per language and writes the merged output
tables. Archives without CLDF data are recorded for later triage.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if statsOrchestrator == nil {
		return errors.New("stats service not configured")
	}

	ctx := context.Background()

	cmd.Println("Scanning archives...")
	summary, err := statsOrchestrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	cmd.Printf("Scanned %d archives: %d datasets, %d without CLDF data.\n",
		summary.Archives, summary.Datasets, summary.NoData)
	cmd.Printf("Tables written to %s (run %s).\n", summary.OutputDir, summary.RunID)
	return nil
}
