package service

import (
	"context"

	"github.com/okian/tuna/internal/domain/model"
)

// ListSongs returns every song ordered by id.
func (s *Service) ListSongs(ctx context.Context) ([]model.Song, error) {
	const op = "service.list_songs"
	songs, err := s.store.ListSongs(ctx)
	return songs, s.track(ctx, op, model.EntitySong, "", err)
}

// GetSong returns the song with the genres linked to it.
func (s *Service) GetSong(ctx context.Context, id int64) (model.Song, model.SongRelations, error) {
	const op = "service.get_song"
	song, err := s.store.GetSong(ctx, id)
	if err != nil {
		return model.Song{}, model.SongRelations{}, s.track(ctx, op, model.EntitySong, "", err)
	}
	genres, err := s.store.GenresForSong(ctx, id)
	if err != nil {
		return model.Song{}, model.SongRelations{}, s.track(ctx, op, model.EntitySong, "", err)
	}
	return song, model.SongRelations{Genres: genres}, nil
}

// CreateSong inserts a song after checking its artist exists.
func (s *Service) CreateSong(ctx context.Context, song model.Song) (model.Song, error) {
	const op = "service.create_song"
	song.ID = 0
	if err := validRow(&song); err != nil {
		return model.Song{}, s.track(ctx, op, model.EntitySong, "", err)
	}
	if _, err := s.store.GetArtist(ctx, song.ArtistID); err != nil {
		return model.Song{}, s.track(ctx, op, model.EntitySong, "", err)
	}
	if err := s.store.CreateSong(ctx, &song); err != nil {
		return model.Song{}, s.track(ctx, op, model.EntitySong, "", err)
	}
	return song, s.track(ctx, op, model.EntitySong, actionCreate, nil)
}

// UpdateSong overwrites every mutable field of song.ID.
// The song is looked up before the artist it points at.
func (s *Service) UpdateSong(ctx context.Context, song model.Song) (model.Song, error) {
	const op = "service.update_song"
	if err := validRow(&song); err != nil {
		return model.Song{}, s.track(ctx, op, model.EntitySong, "", err)
	}
	if _, err := s.store.GetSong(ctx, song.ID); err != nil {
		return model.Song{}, s.track(ctx, op, model.EntitySong, "", err)
	}
	if _, err := s.store.GetArtist(ctx, song.ArtistID); err != nil {
		return model.Song{}, s.track(ctx, op, model.EntitySong, "", err)
	}
	if err := s.store.UpdateSong(ctx, &song); err != nil {
		return model.Song{}, s.track(ctx, op, model.EntitySong, "", err)
	}
	return song, s.track(ctx, op, model.EntitySong, actionUpdate, nil)
}

// DeleteSong removes the song and its genre links.
func (s *Service) DeleteSong(ctx context.Context, id int64) error {
	const op = "service.delete_song"
	if err := s.store.DeleteSong(ctx, id); err != nil {
		return s.track(ctx, op, model.EntitySong, "", err)
	}
	return s.track(ctx, op, model.EntitySong, actionDelete, nil)
}
