// Package repository is the catalog row store: the Store contract, its gorm
// implementation and the typed not-found error every lookup returns.
package repository

import (
	"context"

	"github.com/okian/tuna/internal/domain/model"
)

// Store provides read/write access to the catalog tables.
// Every lookup by id returns a *NotFoundError (matching ErrNotFound) on miss.
// Lists are ordered by id ascending.
type Store interface {
	ListArtists(ctx context.Context) ([]model.Artist, error)
	GetArtist(ctx context.Context, id int64) (model.Artist, error)
	CreateArtist(ctx context.Context, a *model.Artist) error
	// UpdateArtist overwrites every mutable column of an existing artist.
	UpdateArtist(ctx context.Context, a *model.Artist) error
	// DeleteArtist removes the artist, its songs and their genre links.
	DeleteArtist(ctx context.Context, id int64) error
	SongsByArtist(ctx context.Context, artistID int64) ([]model.Song, error)
	CountSongsByArtist(ctx context.Context, artistID int64) (int64, error)

	ListGenres(ctx context.Context) ([]model.Genre, error)
	GetGenre(ctx context.Context, id int64) (model.Genre, error)
	CreateGenre(ctx context.Context, g *model.Genre) error
	UpdateGenre(ctx context.Context, g *model.Genre) error
	// DeleteGenre removes the genre and its song links.
	DeleteGenre(ctx context.Context, id int64) error
	// SongsForGenre resolves the songs linked to a genre.
	SongsForGenre(ctx context.Context, genreID int64) ([]model.Song, error)

	ListSongs(ctx context.Context) ([]model.Song, error)
	GetSong(ctx context.Context, id int64) (model.Song, error)
	CreateSong(ctx context.Context, s *model.Song) error
	UpdateSong(ctx context.Context, s *model.Song) error
	// DeleteSong removes the song and its genre links.
	DeleteSong(ctx context.Context, id int64) error
	// GenresForSong resolves the genres linked to a song.
	GenresForSong(ctx context.Context, songID int64) ([]model.Genre, error)

	ListSongGenres(ctx context.Context) ([]model.SongGenre, error)
	GetSongGenre(ctx context.Context, id int64) (model.SongGenre, error)
	CreateSongGenre(ctx context.Context, sg *model.SongGenre) error
	DeleteSongGenre(ctx context.Context, id int64) error

	// Counts returns the number of rows per table.
	Counts(ctx context.Context) (model.Counts, error)
	Ping(ctx context.Context) error
	Close() error
}
