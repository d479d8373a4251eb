// Package jsonfile persists send history as a single pretty-printed JSON
// document keyed by calendar date.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/omarshaarawi/kickoffbot/internal/models"
)

type Repository struct {
	path string
}

func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Load reads the whole document. A missing file is an empty history.
func (r *Repository) Load() (models.History, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.History{}, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	history := models.History{}
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}
	if history == nil {
		history = models.History{}
	}

	return history, nil
}

// Save overwrites the document with history.
func (r *Repository) Save(history models.History) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("creating temp history file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing history: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("setting history permissions: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replacing history: %w", err)
	}

	return nil
}
