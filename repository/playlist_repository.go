package repository

import (
	"errors"
	"sync"
	"time"

	"cifrateca/model"

	"github.com/google/uuid"
)

// ErrPlaylistNotFound means no playlist carries the given id.
var ErrPlaylistNotFound = errors.New("playlist not found")

// PlaylistRepository defines the operations on the playlists document.
type PlaylistRepository interface {
	GetAll() (*model.PlaylistDocument, error)
	Create(name string, songs []string) (*model.Playlist, error)
	// Update replaces name and/or songs. An empty name keeps the current
	// one; a nil songs slice keeps the current sequence (an empty non-nil
	// slice clears it).
	Update(id, name string, songs []string) (*model.Playlist, error)
	Delete(id string) error
}

// filePlaylistRepository implements PlaylistRepository over a single JSON
// document, read-modify-write under mu.
type filePlaylistRepository struct {
	path string
	mu   sync.Mutex
}

// NewFilePlaylistRepository creates a playlist repository backed by the
// document at path.
func NewFilePlaylistRepository(path string) PlaylistRepository {
	return &filePlaylistRepository{path: path}
}

// GetAll returns every stored playlist in stored order.
func (r *filePlaylistRepository) GetAll() (*model.PlaylistDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Create appends a new playlist with a fresh id and today's date.
func (r *filePlaylistRepository) Create(name string, songs []string) (*model.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	if songs == nil {
		songs = []string{}
	}
	playlist := model.Playlist{
		ID:      uuid.NewString(),
		Name:    name,
		Songs:   songs,
		Created: time.Now().Format("2006-01-02"),
	}
	doc.Playlists = append(doc.Playlists, playlist)

	if err := writeDocument(r.path, doc); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Update applies a partial update to the playlist with the given id.
func (r *filePlaylistRepository) Update(id, name string, songs []string) (*model.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range doc.Playlists {
		if doc.Playlists[i].ID != id {
			continue
		}
		if name != "" {
			doc.Playlists[i].Name = name
		}
		if songs != nil {
			doc.Playlists[i].Songs = songs
		}
		if err := writeDocument(r.path, doc); err != nil {
			return nil, err
		}
		updated := doc.Playlists[i]
		return &updated, nil
	}
	return nil, ErrPlaylistNotFound
}

// Delete removes the playlist with the given id.
func (r *filePlaylistRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	kept := doc.Playlists[:0]
	found := false
	for _, p := range doc.Playlists {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return ErrPlaylistNotFound
	}
	doc.Playlists = kept

	return writeDocument(r.path, doc)
}

func (r *filePlaylistRepository) load() (*model.PlaylistDocument, error) {
	doc := &model.PlaylistDocument{}
	if err := readDocument(r.path, doc); err != nil {
		return nil, err
	}
	if doc.Playlists == nil {
		doc.Playlists = []model.Playlist{}
	}
	return doc, nil
}
