package service

import (
	"context"

	"github.com/okian/tuna/internal/domain/model"
)

// ListArtists returns every artist ordered by id.
func (s *Service) ListArtists(ctx context.Context) ([]model.Artist, error) {
	const op = "service.list_artists"
	artists, err := s.store.ListArtists(ctx)
	return artists, s.track(ctx, op, model.EntityArtist, "", err)
}

// GetArtist returns the artist together with its song count and songs.
func (s *Service) GetArtist(ctx context.Context, id int64) (model.Artist, model.ArtistRelations, error) {
	const op = "service.get_artist"
	a, err := s.store.GetArtist(ctx, id)
	if err != nil {
		return model.Artist{}, model.ArtistRelations{}, s.track(ctx, op, model.EntityArtist, "", err)
	}
	count, err := s.store.CountSongsByArtist(ctx, id)
	if err != nil {
		return model.Artist{}, model.ArtistRelations{}, s.track(ctx, op, model.EntityArtist, "", err)
	}
	songs, err := s.store.SongsByArtist(ctx, id)
	if err != nil {
		return model.Artist{}, model.ArtistRelations{}, s.track(ctx, op, model.EntityArtist, "", err)
	}
	return a, model.ArtistRelations{SongCount: count, Songs: songs}, nil
}

// CreateArtist inserts a new artist and returns it with its id.
func (s *Service) CreateArtist(ctx context.Context, a model.Artist) (model.Artist, error) {
	const op = "service.create_artist"
	a.ID = 0
	if err := validRow(&a); err != nil {
		return model.Artist{}, s.track(ctx, op, model.EntityArtist, "", err)
	}
	err := s.store.CreateArtist(ctx, &a)
	if err != nil {
		return model.Artist{}, s.track(ctx, op, model.EntityArtist, "", err)
	}
	return a, s.track(ctx, op, model.EntityArtist, actionCreate, nil)
}

// UpdateArtist overwrites every mutable field of artist a.ID.
func (s *Service) UpdateArtist(ctx context.Context, a model.Artist) (model.Artist, error) {
	const op = "service.update_artist"
	if err := validRow(&a); err != nil {
		return model.Artist{}, s.track(ctx, op, model.EntityArtist, "", err)
	}
	if err := s.store.UpdateArtist(ctx, &a); err != nil {
		return model.Artist{}, s.track(ctx, op, model.EntityArtist, "", err)
	}
	return a, s.track(ctx, op, model.EntityArtist, actionUpdate, nil)
}

// DeleteArtist removes the artist and, with it, its songs.
func (s *Service) DeleteArtist(ctx context.Context, id int64) error {
	const op = "service.delete_artist"
	if err := s.store.DeleteArtist(ctx, id); err != nil {
		return s.track(ctx, op, model.EntityArtist, "", err)
	}
	return s.track(ctx, op, model.EntityArtist, actionDelete, nil)
}
