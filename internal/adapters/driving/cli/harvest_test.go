package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driving"
)

// mockHarvestOrchestrator implements driving.HarvestOrchestrator for testing.
type mockHarvestOrchestrator struct {
	summary *driving.HarvestSummary
	err     error
}

func (m *mockHarvestOrchestrator) Harvest(_ context.Context) (*driving.HarvestSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func setupHarvestTest(mock driving.HarvestOrchestrator) func() {
	oldHarvest := harvestOrchestrator
	harvestOrchestrator = mock
	return func() {
		harvestOrchestrator = oldHarvest
	}
}

func TestHarvestCmd_Use(t *testing.T) {
	assert.Equal(t, "harvest", harvestCmd.Use)
}

func TestHarvestCmd_PrintsSummary(t *testing.T) {
	cleanup := setupHarvestTest(&mockHarvestOrchestrator{
		summary: &driving.HarvestSummary{
			Seen:           120,
			Kept:           80,
			Enriched:       5,
			NewCommunities: []string{"user-newcomers"},
		},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"harvest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Saw 120 records, kept 80, enriched 5.")
	assert.Contains(t, buf.String(), "user-newcomers")
}

func TestHarvestCmd_FailsWhenNotConfigured(t *testing.T) {
	cleanup := setupHarvestTest(nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"harvest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "harvest service not configured")
}

func TestHarvestCmd_WrapsServiceError(t *testing.T) {
	cleanup := setupHarvestTest(&mockHarvestOrchestrator{err: errors.New("oai listing broke")})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"harvest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "harvest failed")
	assert.Contains(t, err.Error(), "oai listing broke")
}
