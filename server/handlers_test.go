package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"cifrateca/config"
	"cifrateca/core/catalog"
	"cifrateca/model"
	"cifrateca/repository"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *mux.Router {
	t.Helper()

	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	cfg := &config.Config{
		CifrasDir:      filepath.Join(base, "cifras"),
		DataDir:        dataDir,
		WebAppDir:      filepath.Join(base, "public"),
		CategoriesFile: filepath.Join(dataDir, "categories.json"),
		PlaylistsFile:  filepath.Join(dataDir, "playlists.json"),
		SettingsFile:   filepath.Join(dataDir, "settings.json"),
		MaxUploadFiles: 10,
		MaxUploadBytes: 32 << 20,
	}
	require.NoError(t, os.MkdirAll(cfg.CifrasDir, 0755))

	_, err := repository.InitDocuments(cfg)
	require.NoError(t, err)

	h := NewAPIHandler(
		catalog.NewService(cfg.CifrasDir),
		repository.NewFileCategoryRepository(cfg.CategoriesFile),
		repository.NewFilePlaylistRepository(cfg.PlaylistsFile),
		repository.NewFileSettingsRepository(cfg.SettingsFile),
		cfg,
	)
	return newRouter(h, cfg)
}

// multipartUpload builds a multipart body with one file per filename under
// the given field, plus optional extra form values.
func multipartUpload(t *testing.T, field string, files map[string]string, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range values {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doJSON(t *testing.T, router *mux.Router, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestUploadFetchDeleteRoundTrip(t *testing.T) {
	router := newTestServer(t)

	content := "Intro: Em G D\n\nTempo perdido..."
	body, contentType := multipartUpload(t,
		"cifra", map[string]string{"Legião Urbana - Tempo Perdido.txt": content}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/cifras/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var uploaded struct {
		Message  string `json:"message"`
		Filename string `json:"filename"`
	}
	decodeBody(t, rec, &uploaded)
	assert.Equal(t, "Legião Urbana - Tempo Perdido.txt", uploaded.Filename)

	// Fetch by the echoed path: byte-identical content.
	target := "/api/cifra?path=" + url.QueryEscape(uploaded.Filename)
	rec = doJSON(t, router, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, content, rec.Body.String())

	// The catalog tree shows the new leaf.
	rec = doJSON(t, router, http.MethodGet, "/api/cifras", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tree []model.CatalogNode
	decodeBody(t, rec, &tree)
	require.Len(t, tree, 1)
	assert.Equal(t, model.NodeCifra, tree[0].Type)

	// Delete, then the file is gone from listing and content fetch.
	deleteURL := (&url.URL{Path: "/api/cifras/" + uploaded.Filename}).String()
	rec = doJSON(t, router, http.MethodDelete, deleteURL, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/cifras", nil)
	decodeBody(t, rec, &tree)
	assert.Empty(t, tree)

	rec = doJSON(t, router, http.MethodGet, target, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, deleteURL, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadIntoCategory(t *testing.T) {
	router := newTestServer(t)

	body, contentType := multipartUpload(t,
		"cifra", map[string]string{"Artista - Hino.txt": "C G Am F"},
		map[string]string{"category": "Gospel"})
	req := httptest.NewRequest(http.MethodPost, "/api/cifras/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var uploaded struct {
		Filename string `json:"filename"`
	}
	decodeBody(t, rec, &uploaded)
	assert.Equal(t, "Gospel/Artista - Hino.txt", uploaded.Filename)
}

func TestUploadRejectsWrongExtension(t *testing.T) {
	router := newTestServer(t)

	body, contentType := multipartUpload(t,
		"cifra", map[string]string{"planilha.xls": "x"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/cifras/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadMissingFile(t *testing.T) {
	router := newTestServer(t)

	body, contentType := multipartUpload(t, "cifra", nil, map[string]string{"category": "Rock"})
	req := httptest.NewRequest(http.MethodPost, "/api/cifras/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadMultiple(t *testing.T) {
	router := newTestServer(t)

	body, contentType := multipartUpload(t, "cifras", map[string]string{
		"Artista - Um.txt":   "C",
		"Artista - Dois.txt": "G",
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/cifras/upload-multiple", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Message string   `json:"message"`
		Files   []string `json:"files"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "2 cifra(s) enviada(s) com sucesso!", resp.Message)
	assert.Len(t, resp.Files, 2)
}

func TestUploadMultipleEmpty(t *testing.T) {
	router := newTestServer(t)

	body, contentType := multipartUpload(t, "cifras", nil, map[string]string{"category": ""})
	req := httptest.NewRequest(http.MethodPost, "/api/cifras/upload-multiple", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCifraContentTraversalForbidden(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/cifra?path="+url.QueryEscape("../segredo.txt"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetCifraContentMissingPath(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/cifra", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch(t *testing.T) {
	router := newTestServer(t)

	body, contentType := multipartUpload(t,
		"cifra", map[string]string{"Legião Urbana - Tempo Perdido.txt": "Em G D"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/cifras/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/search?q=leg", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var results []model.CifraFile
	decodeBody(t, rec, &results)
	require.Len(t, results, 1)
	assert.Equal(t, "Legião Urbana", results[0].Artist)

	// A query below the minimum length is an empty result, not an error.
	rec = doJSON(t, router, http.MethodGet, "/api/search?q=l", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &results)
	assert.Empty(t, results)
}

func TestPlaylistLifecycle(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/playlists", map[string]any{
		"name":  "Culto de domingo",
		"songs": []string{"a.txt", "b.txt"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created struct {
		Playlist model.Playlist `json:"playlist"`
	}
	decodeBody(t, rec, &created)
	require.NotEmpty(t, created.Playlist.ID)
	assert.NotEmpty(t, created.Playlist.Created)

	rec = doJSON(t, router, http.MethodGet, "/api/playlists", nil)
	var doc model.PlaylistDocument
	decodeBody(t, rec, &doc)
	require.Len(t, doc.Playlists, 1)

	rec = doJSON(t, router, http.MethodPut, "/api/playlists/"+created.Playlist.ID, map[string]any{
		"name": "Culto da noite",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated struct {
		Playlist model.Playlist `json:"playlist"`
	}
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Culto da noite", updated.Playlist.Name)
	assert.Equal(t, []string{"a.txt", "b.txt"}, updated.Playlist.Songs)

	rec = doJSON(t, router, http.MethodDelete, "/api/playlists/"+created.Playlist.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/playlists/"+created.Playlist.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlaylistUpdateUnknownID(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPut, "/api/playlists/nope", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/categories", map[string]string{
		"category":    "Rock",
		"subcategory": "Anos 80",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Idempotent re-create.
	rec = doJSON(t, router, http.MethodPost, "/api/categories", map[string]string{
		"category":    "Rock",
		"subcategory": "Anos 80",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/categories/add-song", map[string]string{
		"category":    "Rock",
		"subcategory": "Anos 80",
		"filename":    "Legião Urbana - Tempo Perdido.txt",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/categories", nil)
	var doc model.CategoryDocument
	decodeBody(t, rec, &doc)
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, []string{"Legião Urbana - Tempo Perdido.txt"}, doc.Categories["Rock"]["Anos 80"])
}

func TestCategoryRequiresName(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/categories", map[string]string{"subcategory": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettingsMerge(t *testing.T) {
	router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPut, "/api/settings", map[string]any{"fontSize": 20})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/settings", nil)
	var doc model.SettingsDocument
	decodeBody(t, rec, &doc)
	assert.Equal(t, float64(20), doc.Settings["fontSize"])
	// The untouched defaults survive the merge.
	assert.Equal(t, float64(1.0), doc.Settings["scrollSpeed"])
	assert.Equal(t, false, doc.Settings["darkMode"])
	assert.Equal(t, false, doc.Settings["autoScroll"])
}
