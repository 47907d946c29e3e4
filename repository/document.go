package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cifrateca/config"
	"cifrateca/model"
)

var (
	// ErrDocumentMissing means the backing JSON document does not exist.
	ErrDocumentMissing = errors.New("metadata document missing")
	// ErrDocumentCorrupt means the backing JSON document exists but does not parse.
	// Kept distinct from ErrDocumentMissing so operators can tell a fresh
	// install from data loss; callers must never paper over it with defaults.
	ErrDocumentCorrupt = errors.New("metadata document corrupt")
)

// readDocument loads a whole JSON document from disk into v.
func readDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrDocumentMissing, path)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDocumentCorrupt, path, err)
	}
	return nil
}

// writeDocument stores a whole document pretty-printed with 2-space
// indentation, keeping the files diff-friendly.
func writeDocument(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// InitDocuments creates every metadata document that does not exist yet
// and returns the paths it created. Existing documents, including corrupt
// ones, are left alone.
func InitDocuments(cfg *config.Config) ([]string, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", cfg.DataDir, err)
	}

	defaults := []struct {
		path string
		doc  any
	}{
		{cfg.CategoriesFile, model.CategoryDocument{Categories: map[string]map[string][]string{}}},
		{cfg.PlaylistsFile, model.PlaylistDocument{Playlists: []model.Playlist{}}},
		{cfg.SettingsFile, defaultSettingsDocument()},
	}

	var created []string
	for _, d := range defaults {
		if _, err := os.Stat(d.path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return created, err
		}
		if err := writeDocument(d.path, d.doc); err != nil {
			return created, err
		}
		created = append(created, filepath.ToSlash(d.path))
	}
	return created, nil
}

func defaultSettingsDocument() model.SettingsDocument {
	s := model.DefaultSettings()
	return model.SettingsDocument{Settings: map[string]any{
		"fontSize":    s.FontSize,
		"scrollSpeed": s.ScrollSpeed,
		"darkMode":    s.DarkMode,
		"autoScroll":  s.AutoScroll,
	}}
}
