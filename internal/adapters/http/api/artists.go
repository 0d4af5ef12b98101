package api

import (
	"net/http"

	"github.com/okian/tuna/internal/domain/model"
)

// artistRequest is the body of POST /artists and PUT /artists/{id}.
// Pointer fields tell an absent key apart from a zero value.
type artistRequest struct {
	Name *string `json:"name" validate:"required"`
	Age  *int    `json:"age" validate:"required"`
	Bio  *string `json:"bio" validate:"required"`
}

func (a artistRequest) artist(id int64) model.Artist {
	return model.Artist{ID: id, Name: *a.Name, Age: *a.Age, Bio: *a.Bio}
}

// ArtistHandler handles artist requests.
type ArtistHandler struct {
	deps ArtistDependencies
}

// NewArtistHandler creates a new artist handler.
func NewArtistHandler(deps ArtistDependencies) *ArtistHandler {
	return &ArtistHandler{deps: deps}
}

// HandleList handles GET /artists.
func (h *ArtistHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_artists"
	artists, err := h.deps.ListArtists(r.Context())
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ShapeList(artists, flatArtist))
}

// HandleGet handles GET /artists/{id}.
func (h *ArtistHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_artist"
	id, err := parseID(r, op)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	a, rel, err := h.deps.GetArtist(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ShapeArtist(a, &rel))
}

// HandleCreate handles POST /artists.
func (h *ArtistHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_artist"
	var req artistRequest
	if err := decodeRequest(w, r, op, &req); err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	a, err := h.deps.CreateArtist(r.Context(), req.artist(0))
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, flatArtist(a))
}

// HandleUpdate handles PUT /artists/{id}.
func (h *ArtistHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_artist"
	id, err := parseID(r, op)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	var req artistRequest
	if err := decodeRequest(w, r, op, &req); err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	a, err := h.deps.UpdateArtist(r.Context(), req.artist(id))
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, flatArtist(a))
}

// HandleDelete handles DELETE /artists/{id}.
func (h *ArtistHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_artist"
	id, err := parseID(r, op)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	if err := h.deps.DeleteArtist(r.Context(), id); err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func flatArtist(a model.Artist) any { return model.ShapeArtist(a, nil) }
