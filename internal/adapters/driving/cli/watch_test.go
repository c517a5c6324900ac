package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cldfstats/cldfmeta-cli/internal/core/ports/driving"
)

// mockIntakeWatcher implements driving.IntakeWatcher for testing.
// It replays the given events and closes the channel.
type mockIntakeWatcher struct {
	events []driving.IntakeEvent
}

func (m *mockIntakeWatcher) Watch(_ context.Context) (<-chan driving.IntakeEvent, error) {
	ch := make(chan driving.IntakeEvent, len(m.events))
	for _, ev := range m.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func setupWatchTest(mock driving.IntakeWatcher) func() {
	oldIntake := intakeWatcher
	intakeWatcher = mock
	return func() {
		intakeWatcher = oldIntake
	}
}

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch", watchCmd.Use)
}

func TestWatchCmd_PrintsEvents(t *testing.T) {
	cleanup := setupWatchTest(&mockIntakeWatcher{events: []driving.IntakeEvent{
		{Path: "101/data.zip", Op: "created"},
		{Path: "102/old.zip", Op: "removed"},
	}})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"watch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "created 101/data.zip")
	assert.Contains(t, buf.String(), "removed 102/old.zip")
}

func TestWatchCmd_FailsWhenNotConfigured(t *testing.T) {
	cleanup := setupWatchTest(nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"watch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "intake service not configured")
}
