// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/tuna/internal/adapters/repository"
	"github.com/okian/tuna/internal/domain/model"
	"github.com/okian/tuna/pkg/logger"
)

// ArtistDependencies covers the artist resource.
type ArtistDependencies interface {
	ListArtists(ctx context.Context) ([]model.Artist, error)
	GetArtist(ctx context.Context, id int64) (model.Artist, model.ArtistRelations, error)
	CreateArtist(ctx context.Context, a model.Artist) (model.Artist, error)
	UpdateArtist(ctx context.Context, a model.Artist) (model.Artist, error)
	DeleteArtist(ctx context.Context, id int64) error
}

// GenreDependencies covers the genre resource.
type GenreDependencies interface {
	ListGenres(ctx context.Context) ([]model.Genre, error)
	GetGenre(ctx context.Context, id int64) (model.Genre, model.GenreRelations, error)
	CreateGenre(ctx context.Context, g model.Genre) (model.Genre, error)
	UpdateGenre(ctx context.Context, g model.Genre) (model.Genre, error)
	DeleteGenre(ctx context.Context, id int64) error
}

// SongDependencies covers the song resource.
type SongDependencies interface {
	ListSongs(ctx context.Context) ([]model.Song, error)
	GetSong(ctx context.Context, id int64) (model.Song, model.SongRelations, error)
	CreateSong(ctx context.Context, s model.Song) (model.Song, error)
	UpdateSong(ctx context.Context, s model.Song) (model.Song, error)
	DeleteSong(ctx context.Context, id int64) error
}

// SongGenreDependencies covers the song/genre link resource.
type SongGenreDependencies interface {
	ListSongGenres(ctx context.Context) ([]model.SongGenre, error)
	GetSongGenre(ctx context.Context, id int64) (model.SongGenre, error)
	CreateSongGenre(ctx context.Context, sg model.SongGenre) (model.SongGenre, error)
	DeleteSongGenre(ctx context.Context, id int64) error
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ArtistDependencies
	GenreDependencies
	SongDependencies
	SongGenreDependencies
	StatsProvider
	HealthChecker
}

// Server wires HTTP routes for the catalog API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	artistHandler    *ArtistHandler
	genreHandler     *GenreHandler
	songHandler      *SongHandler
	songGenreHandler *SongGenreHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(deps),
		statsHandler:     NewStatsHandler(deps),
		artistHandler:    NewArtistHandler(deps),
		genreHandler:     NewGenreHandler(deps),
		songHandler:      NewSongHandler(deps),
		songGenreHandler: NewSongGenreHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /metrics", s.healthHandler.MetricsHandler())
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	registerResource(mux, "artists", resourceHandlers{
		list:    s.artistHandler.HandleList,
		create:  s.artistHandler.HandleCreate,
		get:     s.artistHandler.HandleGet,
		update:  s.artistHandler.HandleUpdate,
		destroy: s.artistHandler.HandleDelete,
	})
	registerResource(mux, "genres", resourceHandlers{
		list:    s.genreHandler.HandleList,
		create:  s.genreHandler.HandleCreate,
		get:     s.genreHandler.HandleGet,
		update:  s.genreHandler.HandleUpdate,
		destroy: s.genreHandler.HandleDelete,
	})
	registerResource(mux, "songs", resourceHandlers{
		list:    s.songHandler.HandleList,
		create:  s.songHandler.HandleCreate,
		get:     s.songHandler.HandleGet,
		update:  s.songHandler.HandleUpdate,
		destroy: s.songHandler.HandleDelete,
	})
	registerResource(mux, "songgenres", resourceHandlers{
		list:    s.songGenreHandler.HandleList,
		create:  s.songGenreHandler.HandleCreate,
		get:     s.songGenreHandler.HandleGet,
		destroy: s.songGenreHandler.HandleDelete,
	})
}

type resourceHandlers struct {
	list, create, get, update, destroy http.HandlerFunc
}

// registerResource mounts the collection and item routes of one resource.
// Collection routes also answer with a trailing slash.
func registerResource(mux *http.ServeMux, name string, h resourceHandlers) {
	collection := "/" + name
	item := collection + "/{id}"

	for _, path := range []string{collection, collection + "/{$}"} {
		mux.HandleFunc("GET "+path, MetricsMiddleware(h.list, name))
		mux.HandleFunc("POST "+path, MetricsMiddleware(h.create, name))
	}
	mux.HandleFunc("GET "+item, MetricsMiddleware(h.get, name+"_item"))
	if h.update != nil {
		mux.HandleFunc("PUT "+item, MetricsMiddleware(h.update, name+"_item"))
	}
	mux.HandleFunc("DELETE "+item, MetricsMiddleware(h.destroy, name+"_item"))
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status code and a {"message": ...} body.
// Server faults are logged and hidden from the client.
func writeError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	msg := err.Error()

	var nf *repository.NotFoundError
	if errors.As(err, &nf) {
		msg = nf.Error()
	}
	var re *requestError
	if errors.As(err, &re) {
		op = re.op
	}
	if status >= http.StatusInternalServerError {
		logger.Named("api").Error(ctx, "request failed",
			logger.String("op", op),
			logger.String("request_id", RequestIDFromContext(ctx)),
			logger.Error(err))
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Message: msg})
}

// statusFor translates domain errors into HTTP status codes.
func statusFor(err error) int {
	switch {
	case repository.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
