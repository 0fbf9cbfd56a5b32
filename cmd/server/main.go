/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the District Pulse server, the backend for the
  MGNREGA district performance dashboard. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (flags > env > defaults)
  2. Initialize SQLite store
  3. Create fetcher, seed the district roster
  4. Warm a few well-known districts in the background
  5. Configure HTTP router
  6. Start server with graceful shutdown

CONFIGURATION:
  See config/config.go for the full flag and environment reference.
  Use -db=":memory:" for an in-memory database.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - fetcher/fetcher.go: Upstream sync
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/gramseva/district-pulse/api"
	"github.com/gramseva/district-pulse/config"
	"github.com/gramseva/district-pulse/district"
	"github.com/gramseva/district-pulse/fetcher"
	"github.com/gramseva/district-pulse/store/sqlite"
)

// warmDistricts are synced at startup so the dashboard has data to show
// before any user-triggered sync: Agra, Lucknow, Varanasi.
var warmDistricts = []string{"0901", "0949", "0975"}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer store.Close()

	f := fetcher.New(store, log, fetcher.WithStaleness(cfg.Staleness))
	if err := f.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed district roster")
	}

	// Warm a handful of districts without blocking startup.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		months := district.LastNMonths(cfg.SyncMonths)
		for _, code := range warmDistricts {
			if err := f.Sync(ctx, code, months); err != nil {
				log.Warn().Err(err).Str("district", code).Msg("startup warm sync failed")
			}
		}
	}()

	handler := api.NewHandler(store, f, log)
	router := api.NewRouter(handler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
