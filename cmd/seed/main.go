package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/tuna/internal/seed"
	"github.com/okian/tuna/pkg/logger"
)

// Default configuration constants.
const (
	defaultArtists       = 20
	defaultSongs         = 5
	defaultGenres        = 8
	defaultGenresPerSong = 3
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 30 * time.Second
	defaultRunTimeout    = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8000", "Base URL of the service")
		artists    = flag.Int("artists", defaultArtists, "Number of artists to create")
		songs      = flag.Int("songs", defaultSongs, "Songs per artist")
		genres     = flag.Int("genres", defaultGenres, "Number of genres to create")
		links      = flag.Int("links", defaultGenresPerSong, "Maximum genres linked to each song")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		cleanup    = flag.Bool("cleanup", false, "Delete the seeded rows afterwards and verify the cascades")
		outputFile = flag.String("output", "", "Write the created ids to this JSON file")
		logFile    = flag.String("log", "", "Also write logs to this file")
		logFormat  = flag.String("log-format", "text", "Log format: text or json")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	closeLog, err := seed.SetupLogging(*logFile, *logFormat)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)

	config := &seed.Config{
		BaseURL:        *baseURL,
		Artists:        *artists,
		SongsPerArtist: *songs,
		Genres:         *genres,
		GenresPerSong:  *links,
		Workers:        *workers,
		Timeout:        *timeout,
		Cleanup:        *cleanup,
		OutputFile:     *outputFile,
		Verbose:        *verbose,
	}

	_, err = seed.Run(ctx, config)
	cancel()
	stop()
	_ = closeLog()
	if err != nil {
		os.Stderr.WriteString("Seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
