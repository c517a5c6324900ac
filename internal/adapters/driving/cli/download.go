package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the archives of catalogued records",
	Long: `Fetches the zip archives of every catalogued record into the data
directory. Records whose dataset directory is already populated are
skipped, so an interrupted batch resumes where it stopped.`,
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, _ []string) error {
	if downloadOrchestrator == nil {
		return errors.New("download service not configured")
	}

	ctx := context.Background()

	cmd.Println("Downloading archives...")
	summary, err := downloadOrchestrator.Download(ctx)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	cmd.Printf("Downloaded %d files, skipped %d records, %d failures.\n",
		summary.Downloaded, summary.Skipped, summary.Failed)
	return nil
}
