package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/tuna/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	reportPermission    = 0600
)

// Created holds the ids a run created, in plan order. Zero means the create failed.
type Created struct {
	Artists []int64 `json:"artists"`
	Genres  []int64 `json:"genres"`
	Songs   []int64 `json:"songs"`
	Links   []int64 `json:"links"`
}

// Validate checks the run configuration.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.BaseURL) == "":
		return fmt.Errorf("%w: base url must not be empty", ErrInvalidConfig)
	case c.Artists < 0, c.SongsPerArtist < 0, c.Genres < 0, c.GenresPerSong < 0:
		return fmt.Errorf("%w: counts must not be negative", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// Run seeds the catalog through its HTTP API and verifies what it reads back.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("seed")
	client := newHTTPClient(strings.TrimRight(config.BaseURL, "/"), config.Timeout)

	log.Info(ctx, "starting catalog seed",
		logger.String("baseURL", config.BaseURL),
		logger.Int("artists", config.Artists),
		logger.Int("songsPerArtist", config.SongsPerArtist),
		logger.Int("genres", config.Genres),
		logger.Int("workers", config.Workers),
		logger.Bool("cleanup", config.Cleanup))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Plan the catalog
	plan := generatePlan(ctx, config)

	// Step 3: Create rows
	created := createCatalog(ctx, client, config, plan, stats)
	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("seeding interrupted: %w", err)
	}
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%d create calls failed", stats.Failed)
	}

	// Step 4: Verify relations
	if err := verifyCatalog(ctx, client, config, plan, created, stats); err != nil {
		return stats, err
	}

	// Step 5: Save the report
	if config.OutputFile != "" {
		if err := saveReport(ctx, config.OutputFile, created); err != nil {
			log.Warn(ctx, "failed to save report", logger.Error(err))
		}
	}

	// Step 6: Remove everything and check the cascades
	if config.Cleanup {
		if err := cleanupCatalog(ctx, client, config, created, stats); err != nil {
			return stats, err
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	log.Info(ctx, "seed completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")
	var health struct {
		Status string `json:"status"`
	}
	if err := client.get(ctx, "/healthz", http.StatusOK, &health); err != nil {
		return err
	}
	logger.Get().Info(ctx, "service is healthy", logger.String("status", health.Status))
	return nil
}

// createCatalog creates genres, artists, songs and links, in that order.
func createCatalog(ctx context.Context, client *HTTPClient, config *Config, plan Plan, stats *Stats) Created {
	created := Created{
		Artists: make([]int64, len(plan.Artists)),
		Genres:  make([]int64, len(plan.Genres)),
		Songs:   make([]int64, len(plan.Songs)),
	}

	stats.Failed += runPool(ctx, config.Workers, indices(len(plan.Genres)), func(ctx context.Context, i int) error {
		var g Genre
		if err := client.post(ctx, "/genres", plan.Genres[i], &g); err != nil {
			return err
		}
		created.Genres[i] = g.ID
		return nil
	})

	stats.Failed += runPool(ctx, config.Workers, indices(len(plan.Artists)), func(ctx context.Context, i int) error {
		var a Artist
		if err := client.post(ctx, "/artists", plan.Artists[i], &a); err != nil {
			return err
		}
		created.Artists[i] = a.ID
		return nil
	})

	stats.Failed += runPool(ctx, config.Workers, indices(len(plan.Songs)), func(ctx context.Context, i int) error {
		song := plan.Songs[i].Song
		song.ArtistID = created.Artists[plan.Songs[i].Artist]
		if song.ArtistID == 0 {
			return fmt.Errorf("song %d: artist %d was not created", i, plan.Songs[i].Artist)
		}
		var s Song
		if err := client.post(ctx, "/songs", song, &s); err != nil {
			return err
		}
		created.Songs[i] = s.ID
		return nil
	})

	type linkJob struct{ song, genre int }
	var jobs []linkJob
	for i, ps := range plan.Songs {
		for _, g := range ps.Genres {
			jobs = append(jobs, linkJob{song: i, genre: g})
		}
	}
	created.Links = make([]int64, len(jobs))
	stats.Failed += runPool(ctx, config.Workers, indices(len(jobs)), func(ctx context.Context, i int) error {
		job := jobs[i]
		var sg SongGenre
		body := SongGenre{SongID: created.Songs[job.song], GenreID: created.Genres[job.genre]}
		if err := client.post(ctx, "/songgenres", body, &sg); err != nil {
			return err
		}
		created.Links[i] = sg.ID
		return nil
	})

	stats.GenresCreated = countNonZero(created.Genres)
	stats.ArtistsCreated = countNonZero(created.Artists)
	stats.SongsCreated = countNonZero(created.Songs)
	stats.LinksCreated = countNonZero(created.Links)

	logger.Get().Info(ctx, "catalog created",
		logger.Int("artists", stats.ArtistsCreated),
		logger.Int("genres", stats.GenresCreated),
		logger.Int("songs", stats.SongsCreated),
		logger.Int("links", stats.LinksCreated),
		logger.Int("failed", stats.Failed))
	return created
}

// cleanupCatalog deletes the created artists and genres, then checks that
// songs and links went with them.
func cleanupCatalog(ctx context.Context, client *HTTPClient, config *Config, created Created, stats *Stats) error {
	logger.Get().Info(ctx, "cleaning up seeded catalog")

	failed := runPool(ctx, config.Workers, created.Artists, func(ctx context.Context, id int64) error {
		return client.remove(ctx, itemPath("artists", id))
	})
	failed += runPool(ctx, config.Workers, created.Genres, func(ctx context.Context, id int64) error {
		return client.remove(ctx, itemPath("genres", id))
	})
	stats.Deleted = len(created.Artists) + len(created.Genres) - failed
	if failed > 0 {
		return fmt.Errorf("%d delete calls failed", failed)
	}

	leftover := runPool(ctx, config.Workers, created.Songs, func(ctx context.Context, id int64) error {
		return client.get(ctx, itemPath("songs", id), http.StatusNotFound, nil)
	})
	leftover += runPool(ctx, config.Workers, created.Links, func(ctx context.Context, id int64) error {
		return client.get(ctx, itemPath("songgenres", id), http.StatusNotFound, nil)
	})
	if leftover > 0 {
		return fmt.Errorf("%w: %d rows survived their parent's deletion", ErrVerification, leftover)
	}
	logger.Get().Info(ctx, "cascade verified", logger.Int("deleted", stats.Deleted))
	return nil
}

// saveReport writes the created ids as JSON.
func saveReport(ctx context.Context, filename string, created Created) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(created, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), reportPermission); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Get().Info(ctx, "report saved", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var rowsPerSecond, verifiedRate float64
	rows := stats.ArtistsCreated + stats.GenresCreated + stats.SongsCreated + stats.LinksCreated
	if stats.Duration > 0 {
		rowsPerSecond = float64(rows) / stats.Duration.Seconds()
	}
	if checked := stats.Verified + stats.Mismatches; checked > 0 {
		verifiedRate = float64(stats.Verified) / float64(checked) * PercentageMultiplier
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("artistsCreated", stats.ArtistsCreated),
		logger.Int("genresCreated", stats.GenresCreated),
		logger.Int("songsCreated", stats.SongsCreated),
		logger.Int("linksCreated", stats.LinksCreated),
		logger.Int("failed", stats.Failed),
		logger.Int("verified", stats.Verified),
		logger.Int("mismatches", stats.Mismatches),
		logger.Int("deleted", stats.Deleted),
		logger.Duration("duration", stats.Duration),
		logger.Float64("verifiedRate", verifiedRate),
		logger.Float64("rowsPerSecond", rowsPerSecond))
}

func countNonZero(ids []int64) int {
	n := 0
	for _, id := range ids {
		if id != 0 {
			n++
		}
	}
	return n
}

// IsVerificationError reports whether err came from a failed read-back check.
func IsVerificationError(err error) bool {
	return errors.Is(err, ErrVerification)
}
