package server

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path"

	"cifrateca/logger"

	"github.com/gorilla/mux"
)

// GetCatalogHandler returns the full category/cifra tree.
func (h *APIHandler) GetCatalogHandler(w http.ResponseWriter, r *http.Request) {
	tree, err := h.catalog.Tree()
	if err != nil {
		respondDomainError(w, err, "Erro ao listar cifras")
		return
	}
	respondJSON(w, http.StatusOK, tree)
}

// GetFlatCatalogHandler returns the catalog as a flat song list, the view
// the non-hierarchical client variant renders.
func (h *APIHandler) GetFlatCatalogHandler(w http.ResponseWriter, r *http.Request) {
	cifras, err := h.catalog.Flat()
	if err != nil {
		respondDomainError(w, err, "Erro ao listar cifras")
		return
	}
	respondJSON(w, http.StatusOK, cifras)
}

// GetCifraContentHandler returns the raw text of one cifra, addressed by
// its root-relative path in the "path" query parameter.
func (h *APIHandler) GetCifraContentHandler(w http.ResponseWriter, r *http.Request) {
	relPath := r.URL.Query().Get("path")
	if relPath == "" {
		respondError(w, http.StatusBadRequest, "Caminho do arquivo não especificado")
		return
	}

	content, err := h.catalog.ReadContent(relPath)
	if err != nil {
		respondDomainError(w, err, "Erro ao ler cifra")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write(content); err != nil {
		logger.Error("failed to write cifra content", logger.String("path", relPath), logger.ErrorField(err))
	}
}

// SearchHandler filters the flat catalog by a case-insensitive substring
// query. Queries shorter than two characters return an empty list.
func (h *APIHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	results, err := h.catalog.Search(r.URL.Query().Get("q"))
	if err != nil {
		respondDomainError(w, err, "Erro na busca")
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// UploadCifraHandler stores a single uploaded cifra.
// Expected multipart form fields:
// - cifra: the .txt file
// - category: optional category subpath to store the file under
func (h *APIHandler) UploadCifraHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Nenhum arquivo enviado")
		return
	}

	file, header, err := r.FormFile("cifra")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Nenhum arquivo enviado")
		return
	}
	defer file.Close()

	stored, err := h.storeUpload(header, r.FormValue("category"))
	if err != nil {
		respondDomainError(w, err, "Erro ao fazer upload da cifra")
		return
	}

	logger.Info("cifra uploaded", logger.String("path", stored))
	respondJSON(w, http.StatusOK, map[string]string{
		"message":  "Cifra enviada com sucesso!",
		"filename": stored,
	})
}

// UploadMultipleHandler stores a batch of uploaded cifras from the
// "cifras" multipart field. The batch is best-effort: each file is written
// independently, and a failure reports the files already stored.
func (h *APIHandler) UploadMultipleHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Nenhum arquivo enviado")
		return
	}

	files := r.MultipartForm.File["cifras"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "Nenhum arquivo enviado")
		return
	}
	if len(files) > h.cfg.MaxUploadFiles {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("Máximo de %d arquivos por envio", h.cfg.MaxUploadFiles))
		return
	}

	category := r.FormValue("category")
	stored := make([]string, 0, len(files))
	for _, header := range files {
		relPath, err := h.storeUpload(header, category)
		if err != nil {
			logger.Error("multi-upload aborted",
				logger.String("filename", header.Filename),
				logger.Int("stored", len(stored)),
				logger.ErrorField(err))
			respondJSON(w, http.StatusInternalServerError, map[string]any{
				"error": "Erro ao fazer upload das cifras",
				"files": stored,
			})
			return
		}
		stored = append(stored, relPath)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("%d cifra(s) enviada(s) com sucesso!", len(stored)),
		"files":   stored,
	})
}

func (h *APIHandler) storeUpload(header *multipart.FileHeader, category string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	relPath := header.Filename
	if category != "" {
		relPath = path.Join(category, header.Filename)
	}
	return h.catalog.SaveCifra(relPath, file)
}

// DeleteCifraHandler removes one cifra, addressed by its root-relative
// path in the route.
func (h *APIHandler) DeleteCifraHandler(w http.ResponseWriter, r *http.Request) {
	relPath := mux.Vars(r)["path"]

	if err := h.catalog.Remove(relPath); err != nil {
		respondDomainError(w, err, "Erro ao excluir cifra")
		return
	}

	logger.Info("cifra deleted", logger.String("path", relPath))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Cifra excluída com sucesso!"})
}
