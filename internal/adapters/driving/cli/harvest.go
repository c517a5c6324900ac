package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Harvest record metadata from Zenodo",
	Long: `Lists the configured Zenodo communities over OAI-PMH, filters out
deposits that cannot be CLDF datasets and updates the local catalog.
Records the catalog has not seen enriched before are enriched with
their file listings via the REST API.`,
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, _ []string) error {
	if harvestOrchestrator == nil {
		return errors.New("harvest service not configured")
	}

	ctx := context.Background()

	cmd.Println("Harvesting Zenodo communities...")
	summary, err := harvestOrchestrator.Harvest(ctx)
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}

	cmd.Printf("Saw %d records, kept %d, enriched %d.\n",
		summary.Seen, summary.Kept, summary.Enriched)
	if len(summary.NewCommunities) > 0 {
		cmd.Printf("Communities to review: %s\n", strings.Join(summary.NewCommunities, ", "))
	}
	return nil
}
