package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/tuna/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"TUNA_CONFIG",
	"TUNA_ENV_FILE",
	"TUNA_ADDR",
	"TUNA_LOG_LEVEL",
	"TUNA_DB_DRIVER",
	"TUNA_DB_DSN",
	"TUNA_DB_MAX_OPEN_CONNS",
	"TUNA_AUTO_MIGRATE",
	"TUNA_LOG_SQL",
	"TUNA_SLOW_QUERY_MS",
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars(t)
		convey.Reset(func() { clearConfigEnvVars(t) })

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
				convey.So(cfg.DBDriver, convey.ShouldEqual, "sqlite")
				convey.So(cfg.DBMaxOpenConns, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			t.Setenv("TUNA_ADDR", ":9000")
			t.Setenv("TUNA_DB_DRIVER", "postgres")
			t.Setenv("TUNA_DB_DSN", "postgres://tuna@localhost/tuna")
			t.Setenv("TUNA_DB_MAX_OPEN_CONNS", "32")
			t.Setenv("TUNA_AUTO_MIGRATE", "false")
			t.Setenv("TUNA_LOG_SQL", "true")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9000")
				convey.So(cfg.DBDriver, convey.ShouldEqual, "postgres")
				convey.So(cfg.DBDSN, convey.ShouldEqual, "postgres://tuna@localhost/tuna")
				convey.So(cfg.DBMaxOpenConns, convey.ShouldEqual, 32)
				convey.So(cfg.AutoMigrate, convey.ShouldBeFalse)
				convey.So(cfg.LogSQL, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			path := writeTempFile(t, "tuna.yaml", `
# catalog settings
addr: ":9090"
db_driver: mysql
db_dsn: "tuna:tuna@tcp(localhost:3306)/tuna?parseTime=true"
slow_query_ms: 50
`)
			t.Setenv("TUNA_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DBDriver, convey.ShouldEqual, "mysql")
				convey.So(cfg.SlowQueryMS, convey.ShouldEqual, 50)
				convey.So(cfg.DBMaxIdleConns, convey.ShouldEqual, 5) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := writeTempFile(t, "tuna.yaml", `
addr: ":9090"
db_dsn: "from-file.db"
`)
			t.Setenv("TUNA_CONFIG", path)
			t.Setenv("TUNA_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")       // Overridden by env
				convey.So(cfg.DBDSN, convey.ShouldEqual, "from-file.db") // From file
			})
		})

		convey.Convey("When loading config with a .env file", func() {
			path := writeTempFile(t, "tuna.env", "TUNA_DB_DSN=from-dotenv.db\n")
			t.Setenv("TUNA_ENV_FILE", path)
			t.Cleanup(func() { _ = os.Unsetenv("TUNA_DB_DSN") })

			cfg, err := config.Load(ctx)

			convey.Convey("Then its variables should be applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DBDSN, convey.ShouldEqual, "from-dotenv.db")
			})
		})

		convey.Convey("When the explicit .env file does not exist", func() {
			t.Setenv("TUNA_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			path := writeTempFile(t, "bad.yaml", `invalid: yaml: content: [`)
			t.Setenv("TUNA_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			t.Setenv("TUNA_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			t.Setenv("TUNA_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown driver", func() {
			t.Setenv("TUNA_DB_DRIVER", "mongodb")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			t.Setenv("TUNA_DB_MAX_OPEN_CONNS", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		_ = os.Unsetenv(key)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
