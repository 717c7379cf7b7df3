package progress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	tracker := NewTracker(filepath.Join(t.TempDir(), "progress.json"))

	state, err := tracker.Load()
	require.NoError(t, err)
	assert.Empty(t, state.ProcessedURLs)
	assert.Zero(t, state.TotalChunksProcessed)
	assert.NotNil(t, state.ProcessedURLs)
}

func TestSaveAndReload(t *testing.T) {
	tracker := NewTracker(filepath.Join(t.TempDir(), "progress.json"))

	state, err := tracker.Load()
	require.NoError(t, err)

	state.ProcessedURLs["https://example.com/a"] = true
	state.TotalChunksProcessed = 7
	require.NoError(t, tracker.Save(state))

	reloaded, err := tracker.Load()
	require.NoError(t, err)
	assert.True(t, reloaded.ProcessedURLs["https://example.com/a"])
	assert.Equal(t, 7, reloaded.TotalChunksProcessed)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	tracker := NewTracker(path)

	require.NoError(t, tracker.Save(State{
		ProcessedURLs:        map[string]bool{"u1": true},
		TotalChunksProcessed: 1,
	}))
	require.NoError(t, tracker.Save(State{
		ProcessedURLs:        map[string]bool{"u1": true, "u2": true},
		TotalChunksProcessed: 5,
	}))

	reloaded, err := tracker.Load()
	require.NoError(t, err)
	assert.Len(t, reloaded.ProcessedURLs, 2)
	assert.Equal(t, 5, reloaded.TotalChunksProcessed)

	// No temp file debris left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewTracker(path).Load()
	assert.Error(t, err)
}
