package model

// Flat projections carry only an entity's own scalar fields.

// ArtistFlat is the list and write-echo shape of an Artist.
type ArtistFlat struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
	Bio  string `json:"bio"`
}

// ArtistSong is how a song appears inside an expanded artist.
type ArtistSong struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Album  string `json:"album"`
	Length int    `json:"length"`
}

// ArtistExpanded adds the computed song count and the artist's songs.
type ArtistExpanded struct {
	ArtistFlat
	SongCount int64        `json:"song_count"`
	Songs     []ArtistSong `json:"songs"`
}

// GenreFlat is the list and write-echo shape of a Genre.
type GenreFlat struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// GenreExpanded adds the songs joined to the genre.
type GenreExpanded struct {
	GenreFlat
	Songs []SongFlat `json:"songs"`
}

// SongFlat is the list and write-echo shape of a Song.
type SongFlat struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ArtistID int64  `json:"artist_id"`
	Album    string `json:"album"`
	Length   int    `json:"length"`
}

// SongExpanded adds the genres joined to the song.
type SongExpanded struct {
	SongFlat
	Genres []GenreFlat `json:"genres"`
}

// SongGenreFlat is the only shape of a SongGenre.
type SongGenreFlat struct {
	ID      int64 `json:"id"`
	SongID  int64 `json:"song_id"`
	GenreID int64 `json:"genre_id"`
}

// ArtistRelations are the related rows inlined by ShapeArtist.
type ArtistRelations struct {
	SongCount int64
	Songs     []Song
}

// ShapeArtist returns the flat shape when rel is nil and the expanded one otherwise.
func ShapeArtist(a Artist, rel *ArtistRelations) any {
	flat := ArtistFlat{ID: a.ID, Name: a.Name, Age: a.Age, Bio: a.Bio}
	if rel == nil {
		return flat
	}
	songs := make([]ArtistSong, 0, len(rel.Songs))
	for _, s := range rel.Songs {
		songs = append(songs, ArtistSong{ID: s.ID, Title: s.Title, Album: s.Album, Length: s.Length})
	}
	return ArtistExpanded{ArtistFlat: flat, SongCount: rel.SongCount, Songs: songs}
}

// GenreRelations are the related rows inlined by ShapeGenre.
type GenreRelations struct {
	Songs []Song
}

// SongRelations are the related rows inlined by ShapeSong.
type SongRelations struct {
	Genres []Genre
}

// ShapeGenre returns the flat shape when rel is nil and the expanded one otherwise.
func ShapeGenre(g Genre, rel *GenreRelations) any {
	flat := GenreFlat{ID: g.ID, Description: g.Description}
	if rel == nil {
		return flat
	}
	songs := make([]SongFlat, 0, len(rel.Songs))
	for _, s := range rel.Songs {
		songs = append(songs, songFlat(s))
	}
	return GenreExpanded{GenreFlat: flat, Songs: songs}
}

// ShapeSong returns the flat shape when rel is nil and the expanded one otherwise.
func ShapeSong(s Song, rel *SongRelations) any {
	flat := songFlat(s)
	if rel == nil {
		return flat
	}
	genres := make([]GenreFlat, 0, len(rel.Genres))
	for _, g := range rel.Genres {
		genres = append(genres, GenreFlat{ID: g.ID, Description: g.Description})
	}
	return SongExpanded{SongFlat: flat, Genres: genres}
}

func songFlat(s Song) SongFlat {
	return SongFlat{ID: s.ID, Title: s.Title, ArtistID: s.ArtistID, Album: s.Album, Length: s.Length}
}

// ShapeSongGenre returns the flat shape of a join row.
func ShapeSongGenre(sg SongGenre) SongGenreFlat {
	return SongGenreFlat{ID: sg.ID, SongID: sg.SongID, GenreID: sg.GenreID}
}

// ShapeList applies shape to every item of a list, never returning nil.
func ShapeList[T any, V any](items []T, shape func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, item := range items {
		out = append(out, shape(item))
	}
	return out
}
