// Package model contains the catalog entities shared between the row store,
// the service and the HTTP layer.
package model

// Entity names used in errors, logs and metrics.
const (
	EntityArtist    = "Artist"
	EntityGenre     = "Genre"
	EntitySong      = "Song"
	EntitySongGenre = "SongGenre"
)

// Artist is a performer. Deleting an artist deletes its songs.
type Artist struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:255;not null"`
	Age   int    `gorm:"not null" validate:"gte=0"`
	Bio   string `gorm:"type:text;not null"`
	Songs []Song `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE"`
}

// Genre is a free-text musical category.
type Genre struct {
	ID          int64       `gorm:"primaryKey;autoIncrement"`
	Description string      `gorm:"size:255;not null"`
	Links       []SongGenre `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE"`
}

// Song always references exactly one Artist.
type Song struct {
	ID       int64       `gorm:"primaryKey;autoIncrement"`
	Title    string      `gorm:"size:255;not null"`
	ArtistID int64       `gorm:"not null;index"`
	Album    string      `gorm:"size:255;not null"`
	Length   int         `gorm:"not null" validate:"gte=0"`
	Links    []SongGenre `gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE"`
}

// SongGenre associates one song with one genre.
type SongGenre struct {
	ID      int64 `gorm:"primaryKey;autoIncrement"`
	SongID  int64 `gorm:"not null;index"`
	GenreID int64 `gorm:"not null;index"`
}

// TableName pins the join table name across dialects.
func (SongGenre) TableName() string { return "song_genres" }

// Counts holds the number of rows per catalog table.
type Counts struct {
	Artists    int64 `json:"artists"`
	Songs      int64 `json:"songs"`
	Genres     int64 `json:"genres"`
	SongGenres int64 `json:"song_genres"`
}
