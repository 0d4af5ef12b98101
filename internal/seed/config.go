package seed

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL        string        // Base URL of the catalog service
	Artists        int           // Number of artists to create
	SongsPerArtist int           // Songs created for each artist
	Genres         int           // Number of genres to create
	GenresPerSong  int           // Upper bound of genre links per song
	Workers        int           // Number of concurrent workers
	Timeout        time.Duration // HTTP request timeout
	Cleanup        bool          // Delete everything created and check the cascades
	OutputFile     string        // Report file for created ids
	Verbose        bool          // Enable verbose logging
}

// Artist mirrors the flat artist shape.
type Artist struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	Age  int    `json:"age"`
	Bio  string `json:"bio"`
}

// ArtistSong is a song summary inside an artist.
type ArtistSong struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Album  string `json:"album"`
	Length int    `json:"length"`
}

// ArtistDetail mirrors GET /artists/{id}.
type ArtistDetail struct {
	Artist
	SongCount int64        `json:"song_count"`
	Songs     []ArtistSong `json:"songs"`
}

// Genre mirrors the flat genre shape.
type Genre struct {
	ID          int64  `json:"id,omitempty"`
	Description string `json:"description"`
}

// GenreDetail mirrors GET /genres/{id}.
type GenreDetail struct {
	Genre
	Songs []Song `json:"songs"`
}

// Song mirrors the flat song shape.
type Song struct {
	ID       int64  `json:"id,omitempty"`
	Title    string `json:"title"`
	ArtistID int64  `json:"artist_id"`
	Album    string `json:"album"`
	Length   int    `json:"length"`
}

// SongDetail mirrors GET /songs/{id}.
type SongDetail struct {
	Song
	Genres []Genre `json:"genres"`
}

// SongGenre mirrors the flat link shape.
type SongGenre struct {
	ID      int64 `json:"id,omitempty"`
	SongID  int64 `json:"song_id"`
	GenreID int64 `json:"genre_id"`
}

// Stats holds run statistics.
type Stats struct {
	ArtistsCreated int
	GenresCreated  int
	SongsCreated   int
	LinksCreated   int
	Failed         int
	Verified       int
	Mismatches     int
	Deleted        int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
