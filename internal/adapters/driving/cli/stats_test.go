package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driving"
)

// mockStatsOrchestrator implements driving.StatsOrchestrator for testing.
type mockStatsOrchestrator struct {
	summary *driving.StatsSummary
	err     error
}

func (m *mockStatsOrchestrator) Run(_ context.Context) (*driving.StatsSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func setupStatsTest(mock driving.StatsOrchestrator) func() {
	oldStats := statsOrchestrator
	statsOrchestrator = mock
	return func() {
		statsOrchestrator = oldStats
	}
}

func TestStatsCmd_Use(t *testing.T) {
	assert.Equal(t, "stats", statsCmd.Use)
}

func TestStatsCmd_PrintsSummary(t *testing.T) {
	cleanup := setupStatsTest(&mockStatsOrchestrator{
		summary: &driving.StatsSummary{
			RunID:     "run-1",
			Archives:  42,
			Datasets:  39,
			NoData:    3,
			OutputDir: "data/cldf",
		},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Scanned 42 archives: 39 datasets, 3 without CLDF data.")
	assert.Contains(t, buf.String(), "Tables written to data/cldf (run run-1).")
}

func TestStatsCmd_FailsWhenNotConfigured(t *testing.T) {
	cleanup := setupStatsTest(nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "stats service not configured")
}
