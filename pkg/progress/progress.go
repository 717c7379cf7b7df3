package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// State is the durable record of how far ingestion has come. A URL appears
// in ProcessedURLs only once every chunk derived from it has been embedded
// and inserted.
type State struct {
	ProcessedURLs        map[string]bool `json:"processedUrls"`
	TotalChunksProcessed int             `json:"totalChunksProcessed"`
}

// Tracker reads and writes the progress file. One Save per committed unit
// of work: a crash between saves loses at most that unit.
type Tracker struct {
	path string
}

func NewTracker(path string) *Tracker {
	return &Tracker{path: path}
}

// Load returns the recorded state, or a fresh empty state if the file does
// not exist yet. A missing file is not an error.
func (t *Tracker) Load() (State, error) {
	state := State{ProcessedURLs: make(map[string]bool)}

	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("failed to read progress file: %w", err)
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("failed to parse progress file: %w", err)
	}
	if state.ProcessedURLs == nil {
		state.ProcessedURLs = make(map[string]bool)
	}
	return state, nil
}

// Save writes the state durably before returning: the bytes go to a temp
// file that is fsynced and renamed over the previous record.
func (t *Tracker) Save(state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	dir := filepath.Dir(t.path)
	tmp, err := os.CreateTemp(dir, ".progress-*")
	if err != nil {
		return fmt.Errorf("failed to create progress temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write progress: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close progress temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), t.path); err != nil {
		return fmt.Errorf("failed to replace progress file: %w", err)
	}
	return nil
}
