package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"cifrateca/config"
	"cifrateca/core/catalog"
	"cifrateca/logger"
	"cifrateca/repository"
)

// APIHandler holds the dependencies every API endpoint needs.
type APIHandler struct {
	catalog      *catalog.Service
	categoryRepo repository.CategoryRepository
	playlistRepo repository.PlaylistRepository
	settingsRepo repository.SettingsRepository
	cfg          *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	catalogSvc *catalog.Service,
	categoryRepo repository.CategoryRepository,
	playlistRepo repository.PlaylistRepository,
	settingsRepo repository.SettingsRepository,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		catalog:      catalogSvc,
		categoryRepo: categoryRepo,
		playlistRepo: playlistRepo,
		settingsRepo: settingsRepo,
		cfg:          cfg,
	}
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

// respondError writes the client-facing error shape {"error": msg}.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondDomainError maps domain errors onto HTTP statuses with the
// messages the web client knows. Anything unrecognized becomes a 500 with
// the handler's fallback message.
func respondDomainError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, catalog.ErrForbiddenPath):
		respondError(w, http.StatusForbidden, "Acesso negado")
	case errors.Is(err, catalog.ErrCifraNotFound):
		respondError(w, http.StatusNotFound, "Cifra não encontrada")
	case errors.Is(err, catalog.ErrNotText):
		respondError(w, http.StatusBadRequest, "Apenas arquivos .txt são permitidos!")
	case errors.Is(err, repository.ErrPlaylistNotFound):
		respondError(w, http.StatusNotFound, "Playlist não encontrada")
	case errors.Is(err, repository.ErrDocumentMissing):
		logger.Error("metadata document missing, run initdata", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Documento de metadados ausente")
	case errors.Is(err, repository.ErrDocumentCorrupt):
		logger.Error("metadata document corrupt", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Documento de metadados corrompido")
	default:
		logger.Error(fallback, logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
