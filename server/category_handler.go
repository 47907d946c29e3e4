package server

import (
	"encoding/json"
	"net/http"

	"cifrateca/logger"
)

// GetCategoriesHandler returns the full category registry document.
func (h *APIHandler) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := h.categoryRepo.GetAll()
	if err != nil {
		respondDomainError(w, err, "Erro ao carregar categorias")
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// CreateCategoryHandler creates a category and optionally a subcategory.
// Creating names that already exist is a no-op.
func (h *APIHandler) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category    string `json:"category"`
		Subcategory string `json:"subcategory"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Category == "" {
		respondError(w, http.StatusBadRequest, "Categoria é obrigatória")
		return
	}

	if err := h.categoryRepo.Create(req.Category, req.Subcategory); err != nil {
		respondDomainError(w, err, "Erro ao criar categoria")
		return
	}

	logger.Info("category created",
		logger.String("category", req.Category),
		logger.String("subcategory", req.Subcategory))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Categoria criada com sucesso!"})
}

// AddSongToCategoryHandler tags a cifra filename under a subcategory.
func (h *APIHandler) AddSongToCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category    string `json:"category"`
		Subcategory string `json:"subcategory"`
		Filename    string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	if err := h.categoryRepo.AddSong(req.Category, req.Subcategory, req.Filename); err != nil {
		respondDomainError(w, err, "Erro ao adicionar cifra à categoria")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Cifra adicionada à categoria com sucesso!"})
}
