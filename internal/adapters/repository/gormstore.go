package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/okian/tuna/internal/domain/model"
	"github.com/okian/tuna/pkg/logger"
	"github.com/okian/tuna/pkg/metrics"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Default pool settings.
const (
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultSlowThreshold   = 200 * time.Millisecond
	sqlitePragmas          = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
)

// GormStore implements Store on top of gorm.
type GormStore struct {
	db     *gorm.DB
	driver string

	logger          logger.Logger
	logSQL          bool
	slowThreshold   time.Duration
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
	autoMigrate     bool
}

var _ Store = (*GormStore)(nil)

// Open connects to the row store selected by driver and dsn.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*GormStore, error) {
	s := &GormStore{
		driver:          driver,
		slowThreshold:   defaultSlowThreshold,
		maxOpenConns:    defaultMaxOpenConns,
		maxIdleConns:    defaultMaxIdleConns,
		connMaxLifetime: defaultConnMaxLifetime,
		autoMigrate:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("repository")
	}

	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormLogger(s.logger, s.slowThreshold, s.logSQL),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("pool %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// A single connection serialises writers; sqlite allows one at a time anyway.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(s.maxOpenConns)
		sqlDB.SetMaxIdleConns(s.maxIdleConns)
		sqlDB.SetConnMaxLifetime(s.connMaxLifetime)
	}

	s.db = db
	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	if s.autoMigrate {
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
	}

	s.logger.Info(ctx, "row store ready",
		logger.String("driver", driver),
		logger.Bool("autoMigrate", s.autoMigrate))
	return s, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverSQLite:
		return sqlite.Open(sqliteDSN(dsn)), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// sqliteDSN enables foreign keys and a busy timeout unless the caller set pragmas.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

// Migrate creates or updates the catalog tables.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&model.Artist{}, &model.Genre{}, &model.Song{}, &model.SongGenre{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Ping checks that the database answers.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Driver returns the configured driver name.
func (s *GormStore) Driver() string { return s.driver }

// observe records latency for op; missing rows do not count as failures.
func observe(op string, start time.Time, err error) {
	failed := err != nil && !errors.Is(err, ErrNotFound)
	metrics.RecordRepositoryQuery(op, float64(time.Since(start).Microseconds())/1000, failed)
}

// first is the single lookup-by-id accessor; a miss becomes a *NotFoundError.
func first[T any](ctx context.Context, db *gorm.DB, entity string, id int64) (T, error) {
	var row T
	err := db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return row, &NotFoundError{Entity: entity, ID: id}
	}
	if err != nil {
		return row, fmt.Errorf("get %s %d: %w", strings.ToLower(entity), id, err)
	}
	return row, nil
}

func list[T any](ctx context.Context, db *gorm.DB, entity string) ([]T, error) {
	rows := []T{}
	if err := db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", strings.ToLower(entity), err)
	}
	return rows, nil
}

func create[T any](ctx context.Context, db *gorm.DB, entity string, row *T) error {
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return fmt.Errorf("create %s: %w", strings.ToLower(entity), err)
	}
	return nil
}

// update checks the row exists, then overwrites the given columns.
func update[T any](ctx context.Context, db *gorm.DB, entity string, id int64, columns map[string]any) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := first[T](ctx, tx, entity, id); err != nil {
			return err
		}
		var row T
		if err := tx.Model(&row).Where("id = ?", id).Updates(columns).Error; err != nil {
			return fmt.Errorf("update %s %d: %w", strings.ToLower(entity), id, err)
		}
		return nil
	})
}

// ListArtists returns every artist.
func (s *GormStore) ListArtists(ctx context.Context) (out []model.Artist, err error) {
	defer func(start time.Time) { observe("list_artists", start, err) }(time.Now())
	return list[model.Artist](ctx, s.db, model.EntityArtist)
}

// GetArtist returns one artist.
func (s *GormStore) GetArtist(ctx context.Context, id int64) (out model.Artist, err error) {
	defer func(start time.Time) { observe("get_artist", start, err) }(time.Now())
	return first[model.Artist](ctx, s.db, model.EntityArtist, id)
}

// CreateArtist inserts a, filling its id.
func (s *GormStore) CreateArtist(ctx context.Context, a *model.Artist) (err error) {
	defer func(start time.Time) { observe("create_artist", start, err) }(time.Now())
	return create(ctx, s.db, model.EntityArtist, a)
}

// UpdateArtist overwrites name, age and bio.
func (s *GormStore) UpdateArtist(ctx context.Context, a *model.Artist) (err error) {
	defer func(start time.Time) { observe("update_artist", start, err) }(time.Now())
	return update[model.Artist](ctx, s.db, model.EntityArtist, a.ID, map[string]any{
		"name": a.Name,
		"age":  a.Age,
		"bio":  a.Bio,
	})
}

// DeleteArtist removes the artist with its songs and their genre links.
func (s *GormStore) DeleteArtist(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { observe("delete_artist", start, err) }(time.Now())
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := first[model.Artist](ctx, tx, model.EntityArtist, id); err != nil {
			return err
		}
		var songIDs []int64
		if err := tx.Model(&model.Song{}).Where("artist_id = ?", id).Pluck("id", &songIDs).Error; err != nil {
			return fmt.Errorf("delete artist %d: songs: %w", id, err)
		}
		if len(songIDs) > 0 {
			if err := tx.Where("song_id IN ?", songIDs).Delete(&model.SongGenre{}).Error; err != nil {
				return fmt.Errorf("delete artist %d: song genres: %w", id, err)
			}
			if err := tx.Where("artist_id = ?", id).Delete(&model.Song{}).Error; err != nil {
				return fmt.Errorf("delete artist %d: songs: %w", id, err)
			}
		}
		if err := tx.Delete(&model.Artist{}, id).Error; err != nil {
			return fmt.Errorf("delete artist %d: %w", id, err)
		}
		return nil
	})
}

// SongsByArtist returns the artist's songs.
func (s *GormStore) SongsByArtist(ctx context.Context, artistID int64) (out []model.Song, err error) {
	defer func(start time.Time) { observe("songs_by_artist", start, err) }(time.Now())
	songs := []model.Song{}
	if err := s.db.WithContext(ctx).Where("artist_id = ?", artistID).Order("id").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("songs by artist %d: %w", artistID, err)
	}
	return songs, nil
}

// CountSongsByArtist counts the artist's songs.
func (s *GormStore) CountSongsByArtist(ctx context.Context, artistID int64) (n int64, err error) {
	defer func(start time.Time) { observe("count_songs_by_artist", start, err) }(time.Now())
	if err := s.db.WithContext(ctx).Model(&model.Song{}).Where("artist_id = ?", artistID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count songs by artist %d: %w", artistID, err)
	}
	return n, nil
}

// ListGenres returns every genre.
func (s *GormStore) ListGenres(ctx context.Context) (out []model.Genre, err error) {
	defer func(start time.Time) { observe("list_genres", start, err) }(time.Now())
	return list[model.Genre](ctx, s.db, model.EntityGenre)
}

// GetGenre returns one genre.
func (s *GormStore) GetGenre(ctx context.Context, id int64) (out model.Genre, err error) {
	defer func(start time.Time) { observe("get_genre", start, err) }(time.Now())
	return first[model.Genre](ctx, s.db, model.EntityGenre, id)
}

// CreateGenre inserts g, filling its id.
func (s *GormStore) CreateGenre(ctx context.Context, g *model.Genre) (err error) {
	defer func(start time.Time) { observe("create_genre", start, err) }(time.Now())
	return create(ctx, s.db, model.EntityGenre, g)
}

// UpdateGenre overwrites the description.
func (s *GormStore) UpdateGenre(ctx context.Context, g *model.Genre) (err error) {
	defer func(start time.Time) { observe("update_genre", start, err) }(time.Now())
	return update[model.Genre](ctx, s.db, model.EntityGenre, g.ID, map[string]any{
		"description": g.Description,
	})
}

// DeleteGenre removes the genre and its song links.
func (s *GormStore) DeleteGenre(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { observe("delete_genre", start, err) }(time.Now())
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := first[model.Genre](ctx, tx, model.EntityGenre, id); err != nil {
			return err
		}
		if err := tx.Where("genre_id = ?", id).Delete(&model.SongGenre{}).Error; err != nil {
			return fmt.Errorf("delete genre %d: song genres: %w", id, err)
		}
		if err := tx.Delete(&model.Genre{}, id).Error; err != nil {
			return fmt.Errorf("delete genre %d: %w", id, err)
		}
		return nil
	})
}

// SongsForGenre selects the songs whose id appears in the genre's join rows.
func (s *GormStore) SongsForGenre(ctx context.Context, genreID int64) (out []model.Song, err error) {
	defer func(start time.Time) { observe("songs_for_genre", start, err) }(time.Now())
	db := s.db.WithContext(ctx)
	linked := db.Model(&model.SongGenre{}).Select("song_id").Where("genre_id = ?", genreID)
	songs := []model.Song{}
	if err := db.Where("id IN (?)", linked).Order("id").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("songs for genre %d: %w", genreID, err)
	}
	return songs, nil
}

// ListSongs returns every song.
func (s *GormStore) ListSongs(ctx context.Context) (out []model.Song, err error) {
	defer func(start time.Time) { observe("list_songs", start, err) }(time.Now())
	return list[model.Song](ctx, s.db, model.EntitySong)
}

// GetSong returns one song.
func (s *GormStore) GetSong(ctx context.Context, id int64) (out model.Song, err error) {
	defer func(start time.Time) { observe("get_song", start, err) }(time.Now())
	return first[model.Song](ctx, s.db, model.EntitySong, id)
}

// CreateSong inserts song, filling its id.
func (s *GormStore) CreateSong(ctx context.Context, song *model.Song) (err error) {
	defer func(start time.Time) { observe("create_song", start, err) }(time.Now())
	return create(ctx, s.db, model.EntitySong, song)
}

// UpdateSong overwrites title, artist, album and length.
func (s *GormStore) UpdateSong(ctx context.Context, song *model.Song) (err error) {
	defer func(start time.Time) { observe("update_song", start, err) }(time.Now())
	return update[model.Song](ctx, s.db, model.EntitySong, song.ID, map[string]any{
		"title":     song.Title,
		"artist_id": song.ArtistID,
		"album":     song.Album,
		"length":    song.Length,
	})
}

// DeleteSong removes the song and its genre links.
func (s *GormStore) DeleteSong(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { observe("delete_song", start, err) }(time.Now())
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := first[model.Song](ctx, tx, model.EntitySong, id); err != nil {
			return err
		}
		if err := tx.Where("song_id = ?", id).Delete(&model.SongGenre{}).Error; err != nil {
			return fmt.Errorf("delete song %d: song genres: %w", id, err)
		}
		if err := tx.Delete(&model.Song{}, id).Error; err != nil {
			return fmt.Errorf("delete song %d: %w", id, err)
		}
		return nil
	})
}

// GenresForSong selects the genres whose id appears in the song's join rows.
func (s *GormStore) GenresForSong(ctx context.Context, songID int64) (out []model.Genre, err error) {
	defer func(start time.Time) { observe("genres_for_song", start, err) }(time.Now())
	db := s.db.WithContext(ctx)
	linked := db.Model(&model.SongGenre{}).Select("genre_id").Where("song_id = ?", songID)
	genres := []model.Genre{}
	if err := db.Where("id IN (?)", linked).Order("id").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("genres for song %d: %w", songID, err)
	}
	return genres, nil
}

// ListSongGenres returns every join row.
func (s *GormStore) ListSongGenres(ctx context.Context) (out []model.SongGenre, err error) {
	defer func(start time.Time) { observe("list_song_genres", start, err) }(time.Now())
	return list[model.SongGenre](ctx, s.db, model.EntitySongGenre)
}

// GetSongGenre returns one join row.
func (s *GormStore) GetSongGenre(ctx context.Context, id int64) (out model.SongGenre, err error) {
	defer func(start time.Time) { observe("get_song_genre", start, err) }(time.Now())
	return first[model.SongGenre](ctx, s.db, model.EntitySongGenre, id)
}

// CreateSongGenre inserts a join row, filling its id.
func (s *GormStore) CreateSongGenre(ctx context.Context, sg *model.SongGenre) (err error) {
	defer func(start time.Time) { observe("create_song_genre", start, err) }(time.Now())
	return create(ctx, s.db, model.EntitySongGenre, sg)
}

// DeleteSongGenre removes one join row.
func (s *GormStore) DeleteSongGenre(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { observe("delete_song_genre", start, err) }(time.Now())
	res := s.db.WithContext(ctx).Delete(&model.SongGenre{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete song genre %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: model.EntitySongGenre, ID: id}
	}
	return nil
}

// Counts returns the number of rows per table.
func (s *GormStore) Counts(ctx context.Context) (c model.Counts, err error) {
	defer func(start time.Time) { observe("counts", start, err) }(time.Now())
	db := s.db.WithContext(ctx)
	for _, t := range []struct {
		table any
		dst   *int64
	}{
		{&model.Artist{}, &c.Artists},
		{&model.Song{}, &c.Songs},
		{&model.Genre{}, &c.Genres},
		{&model.SongGenre{}, &c.SongGenres},
	} {
		if err := db.Model(t.table).Count(t.dst).Error; err != nil {
			return model.Counts{}, fmt.Errorf("counts: %w", err)
		}
	}
	return c, nil
}
