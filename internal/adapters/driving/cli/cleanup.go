package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var cleanupYes bool

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove downloads curated as not being CLDF data",
	Long: `Removes downloaded files that the curated not-cldf list marks as not
being CLDF data, pruning dataset directories the removal emptied.
The files to be removed are shown first and deletion has to be
confirmed, unless --yes is given.`,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().BoolVarP(&cleanupYes, "yes", "y", false, "remove without asking")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	if cleanupOrchestrator == nil {
		return errors.New("cleanup service not configured")
	}

	ctx := context.Background()

	paths, err := cleanupOrchestrator.Plan(ctx)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	if len(paths) == 0 {
		cmd.Println("Nothing to remove.")
		return nil
	}

	for _, path := range paths {
		cmd.Println(path)
	}

	if !cleanupYes {
		cmd.Printf("Remove %d files? [y/N] ", len(paths))
		if !confirm(cmd) {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := cleanupOrchestrator.Remove(ctx, paths); err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	cmd.Printf("Removed %d files.\n", len(paths))
	return nil
}

//nolint:errcheck // CLI helper, error reads as "no"
func confirm(cmd *cobra.Command) bool {
	reader := bufio.NewReader(cmd.InOrStdin())
	input, _ := reader.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(input))
	return answer == "y" || answer == "yes"
}
