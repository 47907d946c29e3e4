package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlaylistRepo(t *testing.T) PlaylistRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playlists.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"playlists": []}`), 0644))
	return NewFilePlaylistRepository(path)
}

func TestPlaylistCreate(t *testing.T) {
	repo := newPlaylistRepo(t)

	p, err := repo.Create("Culto de domingo", []string{"a.txt", "b.txt", "a.txt"})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Culto de domingo", p.Name)
	// Duplicates are play order, not an error.
	assert.Equal(t, []string{"a.txt", "b.txt", "a.txt"}, p.Songs)
	assert.Equal(t, time.Now().Format("2006-01-02"), p.Created)

	doc, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, doc.Playlists, 1)
	assert.Equal(t, p.ID, doc.Playlists[0].ID)
}

func TestPlaylistCreateUniqueIDs(t *testing.T) {
	repo := newPlaylistRepo(t)

	first, err := repo.Create("Ensaio", nil)
	require.NoError(t, err)
	second, err := repo.Create("Ensaio", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []string{}, first.Songs)
}

func TestPlaylistUpdatePartial(t *testing.T) {
	repo := newPlaylistRepo(t)
	p, err := repo.Create("Ensaio", []string{"a.txt"})
	require.NoError(t, err)

	// Name only: songs stay.
	updated, err := repo.Update(p.ID, "Ensaio de quinta", nil)
	require.NoError(t, err)
	assert.Equal(t, "Ensaio de quinta", updated.Name)
	assert.Equal(t, []string{"a.txt"}, updated.Songs)

	// Songs only: an empty non-nil slice clears the sequence.
	updated, err = repo.Update(p.ID, "", []string{})
	require.NoError(t, err)
	assert.Equal(t, "Ensaio de quinta", updated.Name)
	assert.Empty(t, updated.Songs)
}

func TestPlaylistUpdateUnknownID(t *testing.T) {
	repo := newPlaylistRepo(t)

	_, err := repo.Update("nope", "Nome", nil)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)
}

func TestPlaylistDelete(t *testing.T) {
	repo := newPlaylistRepo(t)
	first, err := repo.Create("Primeira", nil)
	require.NoError(t, err)
	second, err := repo.Create("Segunda", nil)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(first.ID))

	doc, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, doc.Playlists, 1)
	assert.Equal(t, second.ID, doc.Playlists[0].ID)

	assert.ErrorIs(t, repo.Delete(first.ID), ErrPlaylistNotFound)
}
