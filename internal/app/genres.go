package service

import (
	"context"

	"github.com/okian/tuna/internal/domain/model"
)

// ListGenres returns every genre ordered by id.
func (s *Service) ListGenres(ctx context.Context) ([]model.Genre, error) {
	const op = "service.list_genres"
	genres, err := s.store.ListGenres(ctx)
	return genres, s.track(ctx, op, model.EntityGenre, "", err)
}

// GetGenre returns the genre with the songs linked to it.
func (s *Service) GetGenre(ctx context.Context, id int64) (model.Genre, model.GenreRelations, error) {
	const op = "service.get_genre"
	g, err := s.store.GetGenre(ctx, id)
	if err != nil {
		return model.Genre{}, model.GenreRelations{}, s.track(ctx, op, model.EntityGenre, "", err)
	}
	songs, err := s.store.SongsForGenre(ctx, id)
	if err != nil {
		return model.Genre{}, model.GenreRelations{}, s.track(ctx, op, model.EntityGenre, "", err)
	}
	return g, model.GenreRelations{Songs: songs}, nil
}

// CreateGenre inserts a new genre.
func (s *Service) CreateGenre(ctx context.Context, g model.Genre) (model.Genre, error) {
	const op = "service.create_genre"
	g.ID = 0
	if err := s.store.CreateGenre(ctx, &g); err != nil {
		return model.Genre{}, s.track(ctx, op, model.EntityGenre, "", err)
	}
	return g, s.track(ctx, op, model.EntityGenre, actionCreate, nil)
}

// UpdateGenre overwrites the description of genre g.ID.
func (s *Service) UpdateGenre(ctx context.Context, g model.Genre) (model.Genre, error) {
	const op = "service.update_genre"
	if err := s.store.UpdateGenre(ctx, &g); err != nil {
		return model.Genre{}, s.track(ctx, op, model.EntityGenre, "", err)
	}
	return g, s.track(ctx, op, model.EntityGenre, actionUpdate, nil)
}

// DeleteGenre removes the genre and its song links.
func (s *Service) DeleteGenre(ctx context.Context, id int64) error {
	const op = "service.delete_genre"
	if err := s.store.DeleteGenre(ctx, id); err != nil {
		return s.track(ctx, op, model.EntityGenre, "", err)
	}
	return s.track(ctx, op, model.EntityGenre, actionDelete, nil)
}
