package api

import (
	"net/http"

	"github.com/okian/tuna/internal/domain/model"
)

// songGenreRequest is the body of POST /songgenres.
type songGenreRequest struct {
	SongID  *int64 `json:"song_id" validate:"required"`
	GenreID *int64 `json:"genre_id" validate:"required"`
}

// SongGenreHandler handles song/genre link requests. Links are immutable.
type SongGenreHandler struct {
	deps SongGenreDependencies
}

// NewSongGenreHandler creates a new song/genre link handler.
func NewSongGenreHandler(deps SongGenreDependencies) *SongGenreHandler {
	return &SongGenreHandler{deps: deps}
}

// HandleList handles GET /songgenres.
func (h *SongGenreHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_song_genres"
	links, err := h.deps.ListSongGenres(r.Context())
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ShapeList(links, model.ShapeSongGenre))
}

// HandleGet handles GET /songgenres/{id}.
func (h *SongGenreHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_song_genre"
	id, err := parseID(r, op)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	sg, err := h.deps.GetSongGenre(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ShapeSongGenre(sg))
}

// HandleCreate handles POST /songgenres.
func (h *SongGenreHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_song_genre"
	var req songGenreRequest
	if err := decodeRequest(w, r, op, &req); err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	sg, err := h.deps.CreateSongGenre(r.Context(), model.SongGenre{SongID: *req.SongID, GenreID: *req.GenreID})
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.ShapeSongGenre(sg))
}

// HandleDelete handles DELETE /songgenres/{id}.
func (h *SongGenreHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_song_genre"
	id, err := parseID(r, op)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	if err := h.deps.DeleteSongGenre(r.Context(), id); err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
