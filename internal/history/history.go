// Package history keeps a short local log of completed runs. Everything
// here is best-effort bookkeeping: failures never surface to the caller.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/umanai/uman-changelog/internal/models"
)

const maxAge = 30 * 24 * time.Hour

func historyPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "uman-changelog-history.json"), nil
}

// Load returns the recorded runs, newest first, pruning entries older
// than thirty days.
func Load() []models.RunRecord {
	path, err := historyPath()
	if err != nil {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var entries []models.RunRecord
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}

	cutoff := time.Now().Add(-maxAge)
	var valid []models.RunRecord
	for _, e := range entries {
		if e.CreatedAt.After(cutoff) {
			valid = append(valid, e)
		}
	}

	// Rewrite file if we pruned anything
	if len(valid) != len(entries) {
		save(valid)
	}
	return valid
}

// Record appends a completed run to the history file and returns the entry.
func Record(command, repo, target string, pullRequests int, written bool) models.RunRecord {
	entry := models.RunRecord{
		ID:           uuid.NewString(),
		Command:      command,
		Repo:         repo,
		Target:       target,
		PullRequests: pullRequests,
		Written:      written,
		CreatedAt:    time.Now(),
	}

	entries := append([]models.RunRecord{entry}, Load()...)
	save(entries)
	return entry
}

func save(entries []models.RunRecord) {
	path, err := historyPath()
	if err != nil {
		return
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(path, data, 0644)
}
