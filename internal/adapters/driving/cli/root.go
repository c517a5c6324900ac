// Package cli implements the cldfmeta command line interface.
//
// Commands talk to core services through the driving ports only. The
// orchestrator variables are package-level so Initialize can wire the
// production adapters and tests can swap in mocks.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cldfstats/cldfmeta-cli/internal/adapters/driven/config/file"
	"github.com/cldfstats/cldfmeta-cli/internal/adapters/driven/glottolog"
	"github.com/cldfstats/cldfmeta-cli/internal/adapters/driven/output"
	"github.com/cldfstats/cldfmeta-cli/internal/adapters/driven/storage/sqlite"
	"github.com/cldfstats/cldfmeta-cli/internal/connectors/zenodo"
	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driving"
	"github.com/cldfstats/cldfmeta-cli/internal/core/services"
	"github.com/cldfstats/cldfmeta-cli/internal/logger"
)

var version = "0.1.0"

var (
	harvestOrchestrator  driving.HarvestOrchestrator
	downloadOrchestrator driving.DownloadOrchestrator
	statsOrchestrator    driving.StatsOrchestrator
	cleanupOrchestrator  driving.CleanupOrchestrator
	intakeWatcher        driving.IntakeWatcher
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cldfmeta",
	Short: "Harvest and measure CLDF datasets published on Zenodo",
	Long: `cldfmeta maintains a local catalog of CLDF datasets published on Zenodo.

It harvests record metadata from the configured communities, downloads
the dataset archives and extracts cross-dataset statistics into a set
of CSV tables.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Initialize wires the production adapters into the commands and returns
// a function releasing their resources.
func Initialize() (func(), error) {
	// A .env file in the working directory may carry the access token;
	// its absence is fine.
	_ = godotenv.Load() //nolint:errcheck

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dataDir := cfg.GetString("zenodo.data_dir")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate data directory: %w", err)
		}
		dataDir = filepath.Join(home, ".cldfmeta", "data")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	token := os.Getenv("CLDFMETA_ACCESS_TOKEN")
	if token == "" {
		token = cfg.GetString("zenodo.access_token")
	}
	client := zenodo.NewClient(token)

	records := store.RecordStore()
	reports := store.ReportStore()

	harvestOrchestrator = services.NewHarvestService(
		client, client, records, cfg.GetStringSlice("harvest.communities"))
	downloadOrchestrator = services.NewDownloadService(records, client, dataDir)

	languoids := glottolog.NewSource(cfg.GetString("glottolog.languoids"))
	writer := output.NewWriter(dataDir)
	statsOrchestrator = services.NewStatsService(
		records, reports, languoids, writer,
		dataDir, writer.Dir(), cfg.GetInt("stats.workers"))

	notCldf := cfg.GetString("cleanup.not_cldf")
	if notCldf == "" {
		notCldf = filepath.Join("etc", "not-cldf.csv")
	}
	cleanupOrchestrator = services.NewCleanupService(dataDir, notCldf)
	intakeWatcher = services.NewIntakeService(dataDir)

	return func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing catalog: %v", err)
		}
	}, nil
}
