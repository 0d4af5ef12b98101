package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/okian/tuna/internal/adapters/repository"
	service "github.com/okian/tuna/internal/app"
	"github.com/okian/tuna/internal/domain/model"
	"github.com/okian/tuna/pkg/logger"
	"github.com/okian/tuna/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
	_ = logger.SetLevelString("error")
}

// catalogRows reads the row gauge for table from the metrics registry.
func catalogRows(table string) float64 {
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		return -1
	}
	for _, f := range families {
		if f.GetName() != "tuna_catalog_rows" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "table" && l.GetValue() == table {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	return -1
}

// newService opens a fresh sqlite catalog in a temp dir and starts a service on it.
func newService(t *testing.T) *service.Service {
	t.Helper()
	ctx := context.Background()
	store, err := repository.Open(ctx, repository.DriverSQLite, filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	svc := service.New(store)
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service over a sqlite store", t, func() {
		svc := newService(t)
		ctx := context.Background()

		Convey("Then it should be started and healthy", func() {
			So(svc.Started(), ShouldBeTrue)
			So(svc.Ping(ctx), ShouldBeNil)
		})

		Convey("When starting it again", func() {
			err := svc.Start(ctx)

			Convey("Then it should be a no-op", func() {
				So(err, ShouldBeNil)
				So(svc.Started(), ShouldBeTrue)
			})
		})

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should report not started", func() {
				So(svc.Started(), ShouldBeFalse)
				So(errors.Is(svc.Ping(ctx), service.ErrNotStarted), ShouldBeTrue)
				_, err := svc.Stats(ctx)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service without a store", t, func() {
		svc := service.New(nil)

		Convey("Then start should fail", func() {
			So(errors.Is(svc.Start(context.Background()), service.ErrNotStarted), ShouldBeTrue)
		})
	})
}

func TestService_Artists(t *testing.T) {
	Convey("Given an empty catalog", t, func() {
		svc := newService(t)
		ctx := context.Background()

		Convey("When listing artists", func() {
			artists, err := svc.ListArtists(ctx)

			Convey("Then the list should be empty", func() {
				So(err, ShouldBeNil)
				So(artists, ShouldBeEmpty)
			})
		})

		Convey("When creating an artist", func() {
			a, err := svc.CreateArtist(ctx, model.Artist{ID: 77, Name: "A", Age: 30, Bio: "x"})

			Convey("Then the id should be generated, not taken from input", func() {
				So(err, ShouldBeNil)
				So(a.ID, ShouldEqual, int64(1))
			})

			Convey("And retrieving it should round-trip every field", func() {
				got, rel, err := svc.GetArtist(ctx, a.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "A")
				So(got.Age, ShouldEqual, 30)
				So(got.Bio, ShouldEqual, "x")
				So(rel.SongCount, ShouldEqual, int64(0))
				So(rel.Songs, ShouldBeEmpty)
			})

			Convey("And updating it should overwrite every field", func() {
				_, err := svc.UpdateArtist(ctx, model.Artist{ID: a.ID, Name: "B", Age: 40, Bio: ""})
				So(err, ShouldBeNil)

				got, _, err := svc.GetArtist(ctx, a.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "B")
				So(got.Age, ShouldEqual, 40)
				So(got.Bio, ShouldEqual, "")
			})

			Convey("And deleting it should make it unreachable", func() {
				So(svc.DeleteArtist(ctx, a.ID), ShouldBeNil)
				_, _, err := svc.GetArtist(ctx, a.ID)
				So(repository.IsNotFound(err), ShouldBeTrue)
			})
		})

		Convey("When creating an artist with a negative age", func() {
			_, err := svc.CreateArtist(ctx, model.Artist{Name: "A", Age: -1})

			Convey("Then it should be rejected as invalid input", func() {
				So(errors.Is(err, service.ErrInvalidInput), ShouldBeTrue)
			})
		})

		Convey("When touching an absent artist", func() {
			_, _, getErr := svc.GetArtist(ctx, 999)
			_, updErr := svc.UpdateArtist(ctx, model.Artist{ID: 999, Name: "x"})
			delErr := svc.DeleteArtist(ctx, 999)

			Convey("Then every path should report the artist as not found", func() {
				for _, err := range []error{getErr, updErr, delErr} {
					So(repository.IsNotFound(err), ShouldBeTrue)
					So(err.Error(), ShouldEqual, "Artist matching query does not exist.")
				}
			})
		})
	})
}

func TestService_Songs(t *testing.T) {
	Convey("Given an artist", t, func() {
		svc := newService(t)
		ctx := context.Background()
		a, err := svc.CreateArtist(ctx, model.Artist{Name: "A", Age: 30, Bio: "x"})
		So(err, ShouldBeNil)

		Convey("When creating a song for a missing artist", func() {
			_, err := svc.CreateSong(ctx, model.Song{Title: "T", ArtistID: 42, Album: "Alb", Length: 1})

			Convey("Then the artist should be reported as not found", func() {
				var nf *repository.NotFoundError
				So(errors.As(err, &nf), ShouldBeTrue)
				So(nf.Entity, ShouldEqual, model.EntityArtist)
			})
		})

		Convey("When creating a song with a negative length", func() {
			_, err := svc.CreateSong(ctx, model.Song{Title: "T", ArtistID: a.ID, Length: -5})

			Convey("Then it should be rejected as invalid input", func() {
				So(errors.Is(err, service.ErrInvalidInput), ShouldBeTrue)
			})
		})

		Convey("When creating a song", func() {
			song, err := svc.CreateSong(ctx, model.Song{Title: "T", ArtistID: a.ID, Album: "Alb", Length: 180})
			So(err, ShouldBeNil)

			Convey("Then the artist should count it", func() {
				_, rel, err := svc.GetArtist(ctx, a.ID)
				So(err, ShouldBeNil)
				So(rel.SongCount, ShouldEqual, int64(1))
				So(len(rel.Songs), ShouldEqual, 1)
				So(rel.Songs[0].ID, ShouldEqual, song.ID)
			})

			Convey("And updating it to a missing artist should fail with artist not found", func() {
				song.ArtistID = 999
				_, err := svc.UpdateSong(ctx, song)
				var nf *repository.NotFoundError
				So(errors.As(err, &nf), ShouldBeTrue)
				So(nf.Entity, ShouldEqual, model.EntityArtist)
			})

			Convey("And updating a missing song should report the song first", func() {
				_, err := svc.UpdateSong(ctx, model.Song{ID: 999, ArtistID: 999, Title: "x"})
				var nf *repository.NotFoundError
				So(errors.As(err, &nf), ShouldBeTrue)
				So(nf.Entity, ShouldEqual, model.EntitySong)
			})

			Convey("And updating it should overwrite every field", func() {
				_, err := svc.UpdateSong(ctx, model.Song{ID: song.ID, Title: "U", ArtistID: a.ID, Album: "B", Length: 7})
				So(err, ShouldBeNil)
				got, rel, err := svc.GetSong(ctx, song.ID)
				So(err, ShouldBeNil)
				So(got.Title, ShouldEqual, "U")
				So(got.Album, ShouldEqual, "B")
				So(got.Length, ShouldEqual, 7)
				So(rel.Genres, ShouldBeEmpty)
			})

			Convey("And deleting it should make it unreachable", func() {
				So(svc.DeleteSong(ctx, song.ID), ShouldBeNil)
				_, _, err := svc.GetSong(ctx, song.ID)
				So(repository.IsNotFound(err), ShouldBeTrue)
			})
		})
	})
}

func TestService_GenresAndLinks(t *testing.T) {
	Convey("Given songs and genres", t, func() {
		svc := newService(t)
		ctx := context.Background()
		a, _ := svc.CreateArtist(ctx, model.Artist{Name: "A"})
		s1, _ := svc.CreateSong(ctx, model.Song{Title: "one", ArtistID: a.ID})
		s2, _ := svc.CreateSong(ctx, model.Song{Title: "two", ArtistID: a.ID})
		rock, err := svc.CreateGenre(ctx, model.Genre{Description: "Rock"})
		So(err, ShouldBeNil)
		jazz, err := svc.CreateGenre(ctx, model.Genre{Description: "Jazz"})
		So(err, ShouldBeNil)

		Convey("When linking a missing song or genre", func() {
			_, songErr := svc.CreateSongGenre(ctx, model.SongGenre{SongID: 999, GenreID: rock.ID})
			_, genreErr := svc.CreateSongGenre(ctx, model.SongGenre{SongID: s1.ID, GenreID: 999})

			Convey("Then the missing side should be named", func() {
				So(songErr.Error(), ShouldEqual, "Song matching query does not exist.")
				So(genreErr.Error(), ShouldEqual, "Genre matching query does not exist.")
			})
		})

		Convey("When linking songs to genres", func() {
			l1, err := svc.CreateSongGenre(ctx, model.SongGenre{SongID: s1.ID, GenreID: rock.ID})
			So(err, ShouldBeNil)
			_, err = svc.CreateSongGenre(ctx, model.SongGenre{SongID: s2.ID, GenreID: jazz.ID})
			So(err, ShouldBeNil)

			Convey("Then each genre should list exactly its songs", func() {
				_, rel, err := svc.GetGenre(ctx, rock.ID)
				So(err, ShouldBeNil)
				So(len(rel.Songs), ShouldEqual, 1)
				So(rel.Songs[0].ID, ShouldEqual, s1.ID)
			})

			Convey("And each song should list exactly its genres", func() {
				_, rel, err := svc.GetSong(ctx, s2.ID)
				So(err, ShouldBeNil)
				So(len(rel.Genres), ShouldEqual, 1)
				So(rel.Genres[0].Description, ShouldEqual, "Jazz")
			})

			Convey("And the link should be retrievable and deletable", func() {
				got, err := svc.GetSongGenre(ctx, l1.ID)
				So(err, ShouldBeNil)
				So(got.SongID, ShouldEqual, s1.ID)

				So(svc.DeleteSongGenre(ctx, l1.ID), ShouldBeNil)
				links, err := svc.ListSongGenres(ctx)
				So(err, ShouldBeNil)
				So(len(links), ShouldEqual, 1)
			})

			Convey("And stats should count every table", func() {
				c, err := svc.Stats(ctx)
				So(err, ShouldBeNil)
				So(c, ShouldResemble, model.Counts{Artists: 1, Songs: 2, Genres: 2, SongGenres: 2})
				So(catalogRows(metrics.TableSongs), ShouldEqual, 2.0)
				So(catalogRows(metrics.TableSongGenres), ShouldEqual, 2.0)
			})
		})

		Convey("When updating and deleting a genre", func() {
			_, err := svc.UpdateGenre(ctx, model.Genre{ID: rock.ID, Description: "Hard Rock"})
			So(err, ShouldBeNil)
			got, _, err := svc.GetGenre(ctx, rock.ID)
			So(err, ShouldBeNil)
			So(got.Description, ShouldEqual, "Hard Rock")

			So(svc.DeleteGenre(ctx, rock.ID), ShouldBeNil)

			Convey("Then it should be gone", func() {
				_, _, err := svc.GetGenre(ctx, rock.ID)
				So(repository.IsNotFound(err), ShouldBeTrue)
				So(repository.IsNotFound(svc.DeleteGenre(ctx, rock.ID)), ShouldBeTrue)
			})
		})
	})
}
