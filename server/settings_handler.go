package server

import (
	"encoding/json"
	"net/http"

	"cifrateca/logger"
)

// GetSettingsHandler returns the full settings document.
func (h *APIHandler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := h.settingsRepo.Get()
	if err != nil {
		respondDomainError(w, err, "Erro ao carregar configurações")
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// UpdateSettingsHandler shallow-merges the request body into the stored
// settings. Fields absent from the body keep their stored value.
func (h *APIHandler) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	doc, err := h.settingsRepo.Merge(patch)
	if err != nil {
		respondDomainError(w, err, "Erro ao salvar configurações")
		return
	}

	logger.Debug("settings updated", logger.Any("patch", patch))
	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Configurações salvas com sucesso!",
		"settings": doc.Settings,
	})
}
