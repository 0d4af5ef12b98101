package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	service "github.com/okian/tuna/internal/app"
	"github.com/okian/tuna/internal/config"
	"github.com/okian/tuna/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	_ = logger.SetLevelString("error")
}

func startService(t *testing.T) *service.Service {
	t.Helper()
	ctx := context.Background()
	cfg := config.New(ctx)
	cfg.DBDSN = filepath.Join(t.TempDir(), "tuna.db")
	store, err := openStore(ctx, cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	svc := service.New(store)
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			t.Setenv("TUNA_ADDR", ":8080")
			t.Setenv("TUNA_DB_DSN", "catalog.db")

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DBDSN, convey.ShouldEqual, "catalog.db")
			})
		})

		convey.Convey("When the configured driver is unknown", func() {
			t.Setenv("TUNA_DB_DRIVER", "oracle")

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When opening the default sqlite store", func() {
			svc := startService(t)

			convey.Convey("Then the service should be started with migrated tables", func() {
				convey.So(svc.Started(), convey.ShouldBeTrue)
				counts, err := svc.Stats(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(counts.Artists, convey.ShouldEqual, int64(0))
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the assembled handler", t, func() {
		svc := startService(t)
		h := newHandler(context.Background(), svc)

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			return w
		}

		convey.Convey("Then catalog, docs and operational routes should be mounted", func() {
			for _, path := range []string{"/artists", "/genres/", "/songs", "/songgenres", "/stats", "/healthz", "/metrics", "/api-docs", "/openapi.yaml"} {
				convey.So(get(path).Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then every response should carry a request id", func() {
			convey.So(get("/artists").Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
		})

		convey.Convey("Then a missing artist should be a 404", func() {
			w := get("/artists/7")
			convey.So(w.Code, convey.ShouldEqual, http.StatusNotFound)
			convey.So(strings.TrimSpace(w.Body.String()), convey.ShouldEqual, `{"message":"Artist matching query does not exist."}`)
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the background updaters", t, func() {
		svc := startService(t)

		convey.Convey("Then they should return once the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
			convey.So(func() { startCatalogMetricsUpdater(ctx, svc, 10*time.Millisecond) }, convey.ShouldNotPanic)
		})

		convey.Convey("Then a system refresh should not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})
	})
}
