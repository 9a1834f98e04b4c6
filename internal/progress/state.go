package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"LedgerDrill/internal/model"
)

// LoadState reads progress from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*model.ProgressState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.ProgressState{Kinds: map[model.ScenarioKind]model.KindProgress{}}, nil
		}
		return nil, fmt.Errorf("read progress state: %w", err)
	}
	var state model.ProgressState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode progress state %s: %w", filePath, err)
	}
	if state.Kinds == nil {
		state.Kinds = map[model.ScenarioKind]model.KindProgress{}
	}
	return &state, nil
}

// SaveState writes progress to a JSON file.
func SaveState(filePath string, state *model.ProgressState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}
	return os.WriteFile(filePath, data, 0644)
}
