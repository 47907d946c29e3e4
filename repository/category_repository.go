package repository

import (
	"sync"

	"cifrateca/model"
)

// CategoryRepository defines the operations on the category registry
// document.
type CategoryRepository interface {
	GetAll() (*model.CategoryDocument, error)
	Create(category, subcategory string) error
	AddSong(category, subcategory, filename string) error
}

// fileCategoryRepository implements CategoryRepository over a single JSON
// document. Every mutation is a read-modify-write of the whole document,
// serialized by mu so concurrent requests cannot clobber each other.
type fileCategoryRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileCategoryRepository creates a category repository backed by the
// document at path.
func NewFileCategoryRepository(path string) CategoryRepository {
	return &fileCategoryRepository{path: path}
}

// GetAll returns the full category registry.
func (r *fileCategoryRepository) GetAll() (*model.CategoryDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Create adds a category, and optionally a subcategory below it. Creating
// something that already exists is a no-op.
func (r *fileCategoryRepository) Create(category, subcategory string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	if _, ok := doc.Categories[category]; !ok {
		doc.Categories[category] = map[string][]string{}
	}
	if subcategory != "" {
		if _, ok := doc.Categories[category][subcategory]; !ok {
			doc.Categories[category][subcategory] = []string{}
		}
	}

	return writeDocument(r.path, doc)
}

// AddSong appends a filename to a subcategory's list, once. Unknown
// category or subcategory names make it a no-op: the registry is a curated
// index and only ever grows through explicit Create calls. The filename is
// not checked against the catalog.
func (r *fileCategoryRepository) AddSong(category, subcategory, filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	if songs, ok := doc.Categories[category][subcategory]; ok {
		if !contains(songs, filename) {
			doc.Categories[category][subcategory] = append(songs, filename)
		}
	}

	return writeDocument(r.path, doc)
}

func (r *fileCategoryRepository) load() (*model.CategoryDocument, error) {
	doc := &model.CategoryDocument{}
	if err := readDocument(r.path, doc); err != nil {
		return nil, err
	}
	if doc.Categories == nil {
		doc.Categories = map[string]map[string][]string{}
	}
	return doc, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
