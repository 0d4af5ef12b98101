// Package service provides the catalog service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/okian/tuna/internal/adapters/repository"
	"github.com/okian/tuna/internal/domain/model"
	"github.com/okian/tuna/pkg/logger"
	"github.com/okian/tuna/pkg/metrics"
)

// Mutation actions recorded in metrics.
const (
	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"
)

// Service implements the API dependencies for the music catalog.
type Service struct {
	mu      sync.RWMutex
	store   repository.Store
	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service backed by store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start checks the row store and primes the catalog gauges.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("catalog")
	}
	if s.store == nil {
		return fmt.Errorf("start: %w", ErrNotStarted)
	}
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	s.started = true
	if _, err := s.refresh(ctx); err != nil {
		s.logger.Warn(ctx, "initial row count failed", logger.Error(err))
	}
	s.logger.Info(ctx, "catalog service started")
	return nil
}

// Stop closes the row store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "closing row store", logger.Error(err))
	}
	s.started = false
	s.logger.Info(context.Background(), "catalog service stopped")
}

// Started reports whether Start has completed.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// Ping reports whether the row store answers.
func (s *Service) Ping(ctx context.Context) error {
	if !s.Started() {
		return ErrNotStarted
	}
	return s.store.Ping(ctx)
}

// Stats returns row counts per table and refreshes the catalog gauges.
func (s *Service) Stats(ctx context.Context) (model.Counts, error) {
	if !s.Started() {
		return model.Counts{}, ErrNotStarted
	}
	return s.refresh(ctx)
}

func (s *Service) refresh(ctx context.Context) (model.Counts, error) {
	c, err := s.store.Counts(ctx)
	if err != nil {
		return model.Counts{}, err
	}
	for table, n := range map[string]int64{
		metrics.TableArtists:    c.Artists,
		metrics.TableSongs:      c.Songs,
		metrics.TableGenres:     c.Genres,
		metrics.TableSongGenres: c.SongGenres,
	} {
		if err := metrics.SetCatalogRows(table, n); err != nil {
			s.log().Debug(ctx, "failed to set catalog gauge", logger.String("table", table), logger.Error(err))
		}
	}
	return c, nil
}

// track logs failures and feeds the not-found and mutation counters.
func (s *Service) track(ctx context.Context, op, entity, action string, err error) error {
	entity = strings.ToLower(entity)
	if err == nil {
		if action != "" {
			metrics.RecordMutation(entity, action)
		}
		return nil
	}
	var nf *repository.NotFoundError
	switch {
	case errors.As(err, &nf):
		metrics.RecordNotFound(strings.ToLower(nf.Entity))
		s.log().Debug(ctx, "row not found",
			logger.String("op", op),
			logger.String("entity", nf.Entity),
			logger.Int64("id", nf.ID))
	case errors.Is(err, ErrInvalidInput):
		s.log().Debug(ctx, "rejected input", logger.String("op", op), logger.Error(err))
	default:
		s.log().Error(ctx, "catalog operation failed", logger.String("op", op), logger.Error(err))
	}
	return err
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l == nil {
		return logger.Named("catalog")
	}
	return l
}

// validRow checks the validate tags of a catalog row.
func validRow(row any) error {
	if err := model.Validate(row); err != nil {
		return invalid("%v", err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
