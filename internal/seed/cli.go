package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/okian/tuna/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging initializes the global logger on stdout, teeing into logFile when set.
// The returned func closes the log file.
func SetupLogging(logFile, format string) (func() error, error) {
	if logFile == "" {
		if err := logger.InitWithWriter(os.Stdout, format); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		return func() error { return nil }, nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	if err := logger.InitWithWriter(io.MultiWriter(os.Stdout, file), format); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return file.Close, nil
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Tuna Catalog Seeder
===================

Creates artists, genres, songs and song/genre links through the catalog
HTTP API, reads every row back to check counts and relations, and can
delete it all again to check that deletes cascade.

Usage:
  go run ./cmd/seed [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -artists int
        Number of artists to create (default 20)
  -songs int
        Songs per artist (default 5)
  -genres int
        Number of genres to create (default 8)
  -links int
        Maximum genres linked to each song (default 3)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -cleanup
        Delete the seeded rows afterwards and verify the cascades
  -output string
        Write the created ids to this JSON file
  -log string
        Also write logs to this file
  -log-format string
        text or json (default "text")
  -verbose
        Enable debug logging
  -help
        Show this help message

Sample runs:
  # Seed a local server with defaults
  go run ./cmd/seed

  # Larger run that cleans up after itself
  go run ./cmd/seed -artists 200 -songs 10 -genres 16 -workers 16 -cleanup
`)
}
