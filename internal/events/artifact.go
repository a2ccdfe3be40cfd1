package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrArtifactMissing marks a read against a stage artifact that has not been
// produced yet.
var ErrArtifactMissing = errors.New("stage artifact missing")

// ReadArtifact loads a stage artifact from disk.
func ReadArtifact(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}

	var records []Event
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse artifact %s: %w", path, err)
	}
	return records, nil
}

// WriteArtifact persists a stage artifact atomically: the complete slice is
// marshaled first and the file appears via rename only after every byte is on
// disk. An empty slice writes an empty JSON array, not null.
func WriteArtifact(path string, records []Event) error {
	if records == nil {
		records = []Event{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp artifact: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("commit artifact: %w", err)
	}
	return nil
}
