package api

import (
	"net/http"

	"github.com/okian/tuna/internal/domain/model"
)

// songRequest is the body of POST /songs and PUT /songs/{id}.
type songRequest struct {
	Title    *string `json:"title" validate:"required"`
	ArtistID *int64  `json:"artist_id" validate:"required"`
	Album    *string `json:"album" validate:"required"`
	Length   *int    `json:"length" validate:"required"`
}

func (s songRequest) song(id int64) model.Song {
	return model.Song{ID: id, Title: *s.Title, ArtistID: *s.ArtistID, Album: *s.Album, Length: *s.Length}
}

// SongHandler handles song requests.
type SongHandler struct {
	deps SongDependencies
}

// NewSongHandler creates a new song handler.
func NewSongHandler(deps SongDependencies) *SongHandler {
	return &SongHandler{deps: deps}
}

// HandleList handles GET /songs.
func (h *SongHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_songs"
	songs, err := h.deps.ListSongs(r.Context())
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ShapeList(songs, flatSong))
}

// HandleGet handles GET /songs/{id}.
func (h *SongHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_song"
	id, err := parseID(r, op)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	s, rel, err := h.deps.GetSong(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ShapeSong(s, &rel))
}

// HandleCreate handles POST /songs.
func (h *SongHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_song"
	var req songRequest
	if err := decodeRequest(w, r, op, &req); err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	s, err := h.deps.CreateSong(r.Context(), req.song(0))
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, flatSong(s))
}

// HandleUpdate handles PUT /songs/{id}.
func (h *SongHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_song"
	id, err := parseID(r, op)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	var req songRequest
	if err := decodeRequest(w, r, op, &req); err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	s, err := h.deps.UpdateSong(r.Context(), req.song(id))
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, flatSong(s))
}

// HandleDelete handles DELETE /songs/{id}.
func (h *SongHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_song"
	id, err := parseID(r, op)
	if err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	if err := h.deps.DeleteSong(r.Context(), id); err != nil {
		writeError(r.Context(), w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func flatSong(s model.Song) any { return model.ShapeSong(s, nil) }
