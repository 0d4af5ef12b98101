package model_test

import (
	"errors"
	"testing"

	"github.com/okian/tuna/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

type linkBody struct {
	SongID  *int64 `json:"song_id" validate:"required"`
	GenreID *int64 `json:"genre_id" validate:"required"`
}

func TestValidate(t *testing.T) {
	convey.Convey("Given catalog rows", t, func() {
		convey.Convey("When the numeric fields are zero or positive", func() {
			convey.Convey("Then they should pass", func() {
				convey.So(model.Validate(&model.Artist{Name: "A"}), convey.ShouldBeNil)
				convey.So(model.Validate(&model.Song{Length: 180}), convey.ShouldBeNil)
			})
		})

		convey.Convey("When an artist has a negative age", func() {
			err := model.Validate(&model.Artist{Name: "A", Age: -1})

			convey.Convey("Then the field should be named", func() {
				var fe *model.FieldError
				convey.So(errors.As(err, &fe), convey.ShouldBeTrue)
				convey.So(fe.Field, convey.ShouldEqual, "age")
				convey.So(err.Error(), convey.ShouldEqual, "age must not be negative")
				convey.So(errors.Is(err, model.ErrInvalidInput), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a song has a negative length", func() {
			err := model.Validate(&model.Song{Length: -5})

			convey.Convey("Then it should be invalid input", func() {
				convey.So(err.Error(), convey.ShouldEqual, "length must not be negative")
				convey.So(errors.Is(err, model.ErrInvalidInput), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a request body with pointer fields", t, func() {
		id := int64(0)

		convey.Convey("When a required key is absent", func() {
			err := model.Validate(&linkBody{SongID: &id})

			convey.Convey("Then the json name should be reported", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldEqual, "missing genre_id")
			})
		})

		convey.Convey("When every key is present with a zero value", func() {
			convey.Convey("Then it should pass", func() {
				convey.So(model.Validate(&linkBody{SongID: &id, GenreID: &id}), convey.ShouldBeNil)
			})
		})
	})
}
