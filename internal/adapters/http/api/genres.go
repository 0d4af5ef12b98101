package api

import (
	"net/http"

	"github.com/okian/tuna/internal/domain/model"
)

// genreRequest is the body of POST /genres and PUT /genres/{id}.
type genreRequest struct {
	Description *string `json:"description" validate:"required"`
}

// GenreHandler handles genre requests.
type GenreHandler struct {
	deps GenreDependencies
}

// NewGenreHandler creates a new genre handler.
func NewGenreHandler(deps GenreDependencies) *GenreHandler {
	return &GenreHandler{deps: deps}
}

// HandleList handles GET /genres.
func (h *GenreHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_genres"
	genres, err := h.deps.ListGenres(r.Context())
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ShapeList(genres, flatGenre))
}

// HandleGet handles GET /genres/{id}.
func (h *GenreHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_genre"
	id, err := parseID(r, op)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	g, rel, err := h.deps.GetGenre(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ShapeGenre(g, &rel))
}

// HandleCreate handles POST /genres.
func (h *GenreHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_genre"
	var req genreRequest
	if err := decodeRequest(w, r, op, &req); err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	g, err := h.deps.CreateGenre(r.Context(), model.Genre{Description: *req.Description})
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, flatGenre(g))
}

// HandleUpdate handles PUT /genres/{id}.
func (h *GenreHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_genre"
	id, err := parseID(r, op)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	var req genreRequest
	if err := decodeRequest(w, r, op, &req); err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	g, err := h.deps.UpdateGenre(r.Context(), model.Genre{ID: id, Description: *req.Description})
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, flatGenre(g))
}

// HandleDelete handles DELETE /genres/{id}.
func (h *GenreHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_genre"
	id, err := parseID(r, op)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	if err := h.deps.DeleteGenre(r.Context(), id); err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func flatGenre(g model.Genre) any { return model.ShapeGenre(g, nil) }
