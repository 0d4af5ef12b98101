package service

import (
	"context"

	"github.com/okian/tuna/internal/domain/model"
)

// ListSongGenres returns every song/genre link ordered by id.
func (s *Service) ListSongGenres(ctx context.Context) ([]model.SongGenre, error) {
	const op = "service.list_song_genres"
	links, err := s.store.ListSongGenres(ctx)
	return links, s.track(ctx, op, model.EntitySongGenre, "", err)
}

// GetSongGenre returns one link.
func (s *Service) GetSongGenre(ctx context.Context, id int64) (model.SongGenre, error) {
	const op = "service.get_song_genre"
	sg, err := s.store.GetSongGenre(ctx, id)
	return sg, s.track(ctx, op, model.EntitySongGenre, "", err)
}

// CreateSongGenre links a song to a genre; both must exist.
func (s *Service) CreateSongGenre(ctx context.Context, sg model.SongGenre) (model.SongGenre, error) {
	const op = "service.create_song_genre"
	sg.ID = 0
	if _, err := s.store.GetSong(ctx, sg.SongID); err != nil {
		return model.SongGenre{}, s.track(ctx, op, model.EntitySongGenre, "", err)
	}
	if _, err := s.store.GetGenre(ctx, sg.GenreID); err != nil {
		return model.SongGenre{}, s.track(ctx, op, model.EntitySongGenre, "", err)
	}
	if err := s.store.CreateSongGenre(ctx, &sg); err != nil {
		return model.SongGenre{}, s.track(ctx, op, model.EntitySongGenre, "", err)
	}
	return sg, s.track(ctx, op, model.EntitySongGenre, actionCreate, nil)
}

// DeleteSongGenre removes one link.
func (s *Service) DeleteSongGenre(ctx context.Context, id int64) error {
	const op = "service.delete_song_genre"
	if err := s.store.DeleteSongGenre(ctx, id); err != nil {
		return s.track(ctx, op, model.EntitySongGenre, "", err)
	}
	return s.track(ctx, op, model.EntitySongGenre, actionDelete, nil)
}
