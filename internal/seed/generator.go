package seed

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"

	"github.com/google/uuid"

	"github.com/okian/tuna/pkg/logger"
)

// Value ranges for generated rows.
const (
	minArtistAge   = 18
	artistAgeRange = 60
	minSongLength  = 90
	songLengthSpan = 400
	albumsPerSet   = 3
)

var genreNames = []string{
	"Rock", "Jazz", "Blues", "Pop", "Hip Hop", "Folk", "Classical", "Soul",
	"Reggae", "Metal", "Punk", "Funk", "Country", "Electronic", "Ambient", "Gospel",
}

// Plan is the catalog a run will create, with relations expressed as indexes.
type Plan struct {
	Artists []Artist
	Genres  []Genre
	Songs   []PlannedSong
}

// PlannedSong is a song bound to an artist index and genre indexes.
type PlannedSong struct {
	Artist int
	Song   Song
	Genres []int
}

// randomInt returns a uniform value in [0, n) using crypto/rand.
func randomInt(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// generatePlan builds the artists, genres and songs to create.
func generatePlan(ctx context.Context, config *Config) Plan {
	logger.Get().Info(ctx, "generating catalog plan",
		logger.Int("artists", config.Artists),
		logger.Int("songsPerArtist", config.SongsPerArtist),
		logger.Int("genres", config.Genres))

	plan := Plan{
		Artists: make([]Artist, config.Artists),
		Genres:  make([]Genre, config.Genres),
		Songs:   make([]PlannedSong, 0, config.Artists*config.SongsPerArtist),
	}

	for i := range plan.Genres {
		name := genreNames[i%len(genreNames)]
		if i >= len(genreNames) {
			name = fmt.Sprintf("%s %d", name, i/len(genreNames)+1)
		}
		plan.Genres[i] = Genre{Description: name}
	}

	for i := range plan.Artists {
		tag := uuid.NewString()[:8]
		plan.Artists[i] = Artist{
			Name: "Artist " + tag,
			Age:  minArtistAge + randomInt(artistAgeRange),
			Bio:  fmt.Sprintf("Seeded artist %d (%s)", i+1, tag),
		}
		for j := 0; j < config.SongsPerArtist; j++ {
			plan.Songs = append(plan.Songs, PlannedSong{
				Artist: i,
				Song: Song{
					Title:  fmt.Sprintf("Track %d-%d", i+1, j+1),
					Album:  fmt.Sprintf("%s Vol. %d", plan.Artists[i].Name, j%albumsPerSet+1),
					Length: minSongLength + randomInt(songLengthSpan),
				},
				Genres: pickGenres(config.Genres, config.GenresPerSong),
			})
		}
	}
	return plan
}

// pickGenres chooses between 1 and limit distinct genre indexes out of n, sorted.
func pickGenres(n, limit int) []int {
	if n == 0 || limit <= 0 {
		return nil
	}
	k := 1 + randomInt(min(limit, n))
	picked := make(map[int]struct{}, k)
	for len(picked) < k {
		picked[randomInt(n)] = struct{}{}
	}
	out := make([]int, 0, k)
	for g := range picked {
		out = append(out, g)
	}
	slices.Sort(out)
	return out
}
