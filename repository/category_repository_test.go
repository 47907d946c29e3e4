package repository

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryRepo(t *testing.T) CategoryRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"categories": {}}`), 0644))
	return NewFileCategoryRepository(path)
}

func TestCategoryCreate(t *testing.T) {
	repo := newCategoryRepo(t)

	require.NoError(t, repo.Create("Gospel", "Clássicos"))

	doc, err := repo.GetAll()
	require.NoError(t, err)
	require.Contains(t, doc.Categories, "Gospel")
	assert.Equal(t, []string{}, doc.Categories["Gospel"]["Clássicos"])
}

func TestCategoryCreateIdempotent(t *testing.T) {
	repo := newCategoryRepo(t)

	require.NoError(t, repo.Create("Rock", "Anos 80"))
	require.NoError(t, repo.AddSong("Rock", "Anos 80", "Legião Urbana - Tempo Perdido.txt"))
	// Recreating must not clear the existing song list.
	require.NoError(t, repo.Create("Rock", "Anos 80"))

	doc, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, []string{"Legião Urbana - Tempo Perdido.txt"}, doc.Categories["Rock"]["Anos 80"])
}

func TestCategoryCreateConcurrent(t *testing.T) {
	repo := newCategoryRepo(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Create("Rock", "Anos 80"))
		}()
	}
	wg.Wait()

	doc, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, doc.Categories, 1)
	assert.Len(t, doc.Categories["Rock"], 1)
}

func TestCategoryAddSong(t *testing.T) {
	repo := newCategoryRepo(t)
	require.NoError(t, repo.Create("Rock", "Anos 80"))

	require.NoError(t, repo.AddSong("Rock", "Anos 80", "a.txt"))
	require.NoError(t, repo.AddSong("Rock", "Anos 80", "b.txt"))
	// Duplicates are dropped.
	require.NoError(t, repo.AddSong("Rock", "Anos 80", "a.txt"))

	doc, err := repo.GetAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, doc.Categories["Rock"]["Anos 80"])
}

func TestCategoryAddSongUnknownSubcategory(t *testing.T) {
	repo := newCategoryRepo(t)

	// The registry only grows through Create; tagging into an unknown
	// subcategory is a no-op, not an error.
	require.NoError(t, repo.AddSong("Nada", "Niente", "a.txt"))

	doc, err := repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, doc.Categories)
}

func TestCategoryDocumentMissing(t *testing.T) {
	repo := NewFileCategoryRepository(filepath.Join(t.TempDir(), "categories.json"))

	_, err := repo.GetAll()
	assert.ErrorIs(t, err, ErrDocumentMissing)
}

func TestCategoryDocumentCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"categories": {`), 0644))
	repo := NewFileCategoryRepository(path)

	_, err := repo.GetAll()
	assert.ErrorIs(t, err, ErrDocumentCorrupt)
	assert.NotErrorIs(t, err, ErrDocumentMissing)
}
