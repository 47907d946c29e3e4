package repository

import (
	"sync"

	"cifrateca/model"
)

// SettingsRepository defines the operations on the settings document.
type SettingsRepository interface {
	Get() (*model.SettingsDocument, error)
	// Merge shallow-merges patch into the stored settings and returns the
	// merged document. Keys absent from the patch keep their stored value,
	// including keys this server version does not know about.
	Merge(patch map[string]any) (*model.SettingsDocument, error)
}

// fileSettingsRepository implements SettingsRepository over a single JSON
// document, read-modify-write under mu.
type fileSettingsRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileSettingsRepository creates a settings repository backed by the
// document at path.
func NewFileSettingsRepository(path string) SettingsRepository {
	return &fileSettingsRepository{path: path}
}

// Get returns the full settings document.
func (r *fileSettingsRepository) Get() (*model.SettingsDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Merge applies a shallow merge of patch over the stored settings.
func (r *fileSettingsRepository) Merge(patch map[string]any) (*model.SettingsDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	for k, v := range patch {
		doc.Settings[k] = v
	}

	if err := writeDocument(r.path, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *fileSettingsRepository) load() (*model.SettingsDocument, error) {
	doc := &model.SettingsDocument{}
	if err := readDocument(r.path, doc); err != nil {
		return nil, err
	}
	if doc.Settings == nil {
		doc.Settings = map[string]any{}
	}
	return doc, nil
}
