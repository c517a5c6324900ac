package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driving"
)

// mockCleanupOrchestrator implements driving.CleanupOrchestrator for testing.
type mockCleanupOrchestrator struct {
	planned []string
	removed []string
	err     error
}

func (m *mockCleanupOrchestrator) Plan(_ context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.planned, nil
}

func (m *mockCleanupOrchestrator) Remove(_ context.Context, paths []string) error {
	m.removed = paths
	return nil
}

func setupCleanupTest(mock driving.CleanupOrchestrator) func() {
	oldCleanup := cleanupOrchestrator
	oldYes := cleanupYes
	cleanupOrchestrator = mock
	return func() {
		cleanupOrchestrator = oldCleanup
		cleanupYes = oldYes
	}
}

func TestCleanupCmd_Use(t *testing.T) {
	assert.Equal(t, "cleanup", cleanupCmd.Use)
}

func TestCleanupCmd_NothingToRemove(t *testing.T) {
	cleanup := setupCleanupTest(&mockCleanupOrchestrator{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cleanup"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Nothing to remove.")
}

func TestCleanupCmd_RemovesAfterConfirmation(t *testing.T) {
	mock := &mockCleanupOrchestrator{planned: []string{"/data/datasets/101/slides.zip"}}
	cleanup := setupCleanupTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("y\n"))
	rootCmd.SetArgs([]string{"cleanup"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "/data/datasets/101/slides.zip")
	assert.Contains(t, buf.String(), "Remove 1 files? [y/N]")
	assert.Contains(t, buf.String(), "Removed 1 files.")
	assert.Equal(t, mock.planned, mock.removed)
}

func TestCleanupCmd_AbortsWithoutConfirmation(t *testing.T) {
	mock := &mockCleanupOrchestrator{planned: []string{"/data/datasets/101/slides.zip"}}
	cleanup := setupCleanupTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("n\n"))
	rootCmd.SetArgs([]string{"cleanup"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Aborted.")
	assert.Nil(t, mock.removed)
}

func TestCleanupCmd_YesSkipsPrompt(t *testing.T) {
	mock := &mockCleanupOrchestrator{planned: []string{"/data/datasets/101/slides.zip"}}
	cleanup := setupCleanupTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cleanup", "--yes"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.NotContains(t, buf.String(), "[y/N]")
	assert.Contains(t, buf.String(), "Removed 1 files.")
	assert.Equal(t, mock.planned, mock.removed)
}

func TestCleanupCmd_FailsWhenNotConfigured(t *testing.T) {
	cleanup := setupCleanupTest(nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"cleanup"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cleanup service not configured")
}
