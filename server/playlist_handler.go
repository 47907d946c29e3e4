package server

import (
	"encoding/json"
	"net/http"

	"cifrateca/logger"

	"github.com/gorilla/mux"
)

// GetPlaylistsHandler returns the full playlists document.
func (h *APIHandler) GetPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := h.playlistRepo.GetAll()
	if err != nil {
		respondDomainError(w, err, "Erro ao carregar playlists")
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// CreatePlaylistHandler creates a playlist with a fresh id and the current
// date, appended to the stored sequence.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string   `json:"name"`
		Songs []string `json:"songs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		respondError(w, http.StatusBadRequest, "Nome da playlist é obrigatório")
		return
	}

	playlist, err := h.playlistRepo.Create(req.Name, req.Songs)
	if err != nil {
		respondDomainError(w, err, "Erro ao criar playlist")
		return
	}

	logger.Info("playlist created",
		logger.String("id", playlist.ID),
		logger.String("name", playlist.Name),
		logger.Int("songs", len(playlist.Songs)))
	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Playlist criada com sucesso!",
		"playlist": playlist,
	})
}

// UpdatePlaylistHandler applies a partial update (name and/or songs) to
// one playlist.
func (h *APIHandler) UpdatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Name  string   `json:"name"`
		Songs []string `json:"songs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}

	playlist, err := h.playlistRepo.Update(id, req.Name, req.Songs)
	if err != nil {
		respondDomainError(w, err, "Erro ao atualizar playlist")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Playlist atualizada com sucesso!",
		"playlist": playlist,
	})
}

// DeletePlaylistHandler removes one playlist by id.
func (h *APIHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.playlistRepo.Delete(id); err != nil {
		respondDomainError(w, err, "Erro ao excluir playlist")
		return
	}

	logger.Info("playlist deleted", logger.String("id", id))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Playlist excluída com sucesso!"})
}
