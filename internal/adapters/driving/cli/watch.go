package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the datasets directory for archive changes",
	Long: `Reports archives arriving in or disappearing from the datasets
directory, for triaging changes made outside the downloader.
Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if intakeWatcher == nil {
		return errors.New("intake service not configured")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		<-sig
		cancel()
	}()

	events, err := intakeWatcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Println("Watching the datasets directory. Press Ctrl-C to stop.")
	for ev := range events {
		cmd.Printf("%s %s\n", ev.Op, ev.Path)
	}
	return nil
}
