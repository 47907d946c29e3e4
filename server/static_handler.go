package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves the web client's files. Paths that do not match a
// file fall back to index.html so the single-page client handles its own
// routing.
type StaticHandler struct {
	dir string
}

// NewStaticHandler creates a StaticHandler serving files from dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

// ServeHTTP implements http.Handler.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
	full := filepath.Join(h.dir, rel)

	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		http.ServeFile(w, r, full)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}
