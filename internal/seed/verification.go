package seed

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/okian/tuna/pkg/logger"
)

// mismatchLog collects verification failures from concurrent workers.
type mismatchLog struct {
	mu       sync.Mutex
	count    int
	verified int
	samples  []string
}

func (m *mismatchLog) ok() {
	m.mu.Lock()
	m.verified++
	m.mu.Unlock()
}

func (m *mismatchLog) add(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count++
	if len(m.samples) < maxReportedMismatches {
		m.samples = append(m.samples, fmt.Sprintf(format, args...))
	}
}

// verifyCatalog reads every created row back and checks its relations.
func verifyCatalog(ctx context.Context, client *HTTPClient, config *Config, plan Plan, created Created, stats *Stats) error {
	logger.Get().Info(ctx, "verifying catalog")

	songsByArtist := make([][]int64, len(plan.Artists))
	songsByGenre := make([][]int64, len(plan.Genres))
	for i, ps := range plan.Songs {
		songsByArtist[ps.Artist] = append(songsByArtist[ps.Artist], created.Songs[i])
		for _, g := range ps.Genres {
			songsByGenre[g] = append(songsByGenre[g], created.Songs[i])
		}
	}

	var m mismatchLog

	failed := runPool(ctx, config.Workers, indices(len(plan.Artists)), func(ctx context.Context, i int) error {
		var got ArtistDetail
		id := created.Artists[i]
		if err := client.get(ctx, itemPath("artists", id), http.StatusOK, &got); err != nil {
			return err
		}
		want := songsByArtist[i]
		switch {
		case got.Name != plan.Artists[i].Name:
			m.add("artist %d: name %q, want %q", id, got.Name, plan.Artists[i].Name)
		case got.SongCount != int64(len(want)):
			m.add("artist %d: song_count %d, want %d", id, got.SongCount, len(want))
		case !sameIDs(artistSongIDs(got.Songs), want):
			m.add("artist %d: songs %v, want %v", id, artistSongIDs(got.Songs), want)
		default:
			m.ok()
		}
		return nil
	})

	failed += runPool(ctx, config.Workers, indices(len(plan.Songs)), func(ctx context.Context, i int) error {
		var got SongDetail
		id := created.Songs[i]
		if err := client.get(ctx, itemPath("songs", id), http.StatusOK, &got); err != nil {
			return err
		}
		want := make([]int64, 0, len(plan.Songs[i].Genres))
		for _, g := range plan.Songs[i].Genres {
			want = append(want, created.Genres[g])
		}
		gotIDs := make([]int64, 0, len(got.Genres))
		for _, g := range got.Genres {
			gotIDs = append(gotIDs, g.ID)
		}
		switch {
		case got.ArtistID != created.Artists[plan.Songs[i].Artist]:
			m.add("song %d: artist_id %d, want %d", id, got.ArtistID, created.Artists[plan.Songs[i].Artist])
		case !sameIDs(gotIDs, want):
			m.add("song %d: genres %v, want %v", id, gotIDs, want)
		default:
			m.ok()
		}
		return nil
	})

	failed += runPool(ctx, config.Workers, indices(len(plan.Genres)), func(ctx context.Context, i int) error {
		var got GenreDetail
		id := created.Genres[i]
		if err := client.get(ctx, itemPath("genres", id), http.StatusOK, &got); err != nil {
			return err
		}
		gotIDs := make([]int64, 0, len(got.Songs))
		for _, s := range got.Songs {
			gotIDs = append(gotIDs, s.ID)
		}
		if !sameIDs(gotIDs, songsByGenre[i]) {
			m.add("genre %d: songs %v, want %v", id, gotIDs, songsByGenre[i])
			return nil
		}
		m.ok()
		return nil
	})

	stats.Verified = m.verified
	stats.Mismatches = m.count + failed
	for _, s := range m.samples {
		logger.Get().Warn(ctx, "mismatch", logger.String("detail", s))
	}
	if stats.Mismatches > 0 {
		return fmt.Errorf("%w: %d mismatches, %d failed reads", ErrVerification, m.count, failed)
	}
	logger.Get().Info(ctx, "catalog verified", logger.Int("rows", stats.Verified))
	return nil
}

func artistSongIDs(songs []ArtistSong) []int64 {
	ids := make([]int64, 0, len(songs))
	for _, s := range songs {
		ids = append(ids, s.ID)
	}
	return ids
}

// sameIDs compares two id lists as sets of equal size.
func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
