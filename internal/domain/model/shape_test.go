package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/tuna/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestShapeArtist(t *testing.T) {
	convey.Convey("Given an artist with one song", t, func() {
		artist := model.Artist{ID: 1, Name: "A", Age: 30, Bio: "x"}
		songs := []model.Song{{ID: 1, Title: "T", ArtistID: 1, Album: "Alb", Length: 180}}

		convey.Convey("When shaped flat", func() {
			body, err := json.Marshal(model.ShapeArtist(artist, nil))

			convey.Convey("Then only the scalar fields should be present", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(body), convey.ShouldEqual, `{"id":1,"name":"A","age":30,"bio":"x"}`)
			})
		})

		convey.Convey("When shaped expanded", func() {
			body, err := json.Marshal(model.ShapeArtist(artist, &model.ArtistRelations{SongCount: 1, Songs: songs}))

			convey.Convey("Then song_count and the song summaries should be inlined", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(body), convey.ShouldEqual,
					`{"id":1,"name":"A","age":30,"bio":"x","song_count":1,"songs":[{"id":1,"title":"T","album":"Alb","length":180}]}`)
			})
		})

		convey.Convey("When shaped expanded without songs", func() {
			body, err := json.Marshal(model.ShapeArtist(artist, &model.ArtistRelations{}))

			convey.Convey("Then songs should be an empty list, not null", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(body), convey.ShouldContainSubstring, `"song_count":0,"songs":[]`)
			})
		})
	})
}

func TestShapeGenreAndSong(t *testing.T) {
	convey.Convey("Given a genre and a song", t, func() {
		genre := model.Genre{ID: 2, Description: "Jazz"}
		song := model.Song{ID: 3, Title: "So What", ArtistID: 4, Album: "Kind of Blue", Length: 562}

		convey.Convey("When the genre is expanded", func() {
			body, _ := json.Marshal(model.ShapeGenre(genre, &model.GenreRelations{Songs: []model.Song{song}}))

			convey.Convey("Then its songs should carry artist_id", func() {
				convey.So(string(body), convey.ShouldEqual,
					`{"id":2,"description":"Jazz","songs":[{"id":3,"title":"So What","artist_id":4,"album":"Kind of Blue","length":562}]}`)
			})
		})

		convey.Convey("When the song is expanded", func() {
			body, _ := json.Marshal(model.ShapeSong(song, &model.SongRelations{Genres: []model.Genre{genre}}))

			convey.Convey("Then its genres should be flat", func() {
				convey.So(string(body), convey.ShouldEqual,
					`{"id":3,"title":"So What","artist_id":4,"album":"Kind of Blue","length":562,"genres":[{"id":2,"description":"Jazz"}]}`)
			})
		})

		convey.Convey("When both are flat", func() {
			convey.So(model.ShapeGenre(genre, nil), convey.ShouldResemble, model.GenreFlat{ID: 2, Description: "Jazz"})
			convey.So(model.ShapeSong(song, nil), convey.ShouldResemble,
				model.SongFlat{ID: 3, Title: "So What", ArtistID: 4, Album: "Kind of Blue", Length: 562})
		})
	})
}

func TestShapeList(t *testing.T) {
	convey.Convey("Given an empty list", t, func() {
		out := model.ShapeList([]model.SongGenre(nil), model.ShapeSongGenre)

		convey.Convey("Then the result should be an empty, non-nil slice", func() {
			convey.So(out, convey.ShouldNotBeNil)
			convey.So(len(out), convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given join rows", t, func() {
		out := model.ShapeList([]model.SongGenre{{ID: 1, SongID: 2, GenreID: 3}}, model.ShapeSongGenre)

		convey.Convey("Then each should be shaped", func() {
			convey.So(out, convey.ShouldResemble, []model.SongGenreFlat{{ID: 1, SongID: 2, GenreID: 3}})
		})
	})
}
