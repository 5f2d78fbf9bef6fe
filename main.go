package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nazgull08/fuelbench/config"
	"github.com/nazgull08/fuelbench/pkg/bench"
	"github.com/nazgull08/fuelbench/pkg/metrics"
	"github.com/nazgull08/fuelbench/pkg/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Load config
	cfg := config.Load()

	// Register metrics
	metrics.Register()

	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// The mnemonic is required up front even though only the contract
	// benchmark consumes it; nothing is benchmarked without it.
	if cfg.Mnemonic == "" {
		log.Fatal().Msg("MNEMONIC not found in environment")
	}

	tracker := bench.NewTracker(cfg.ProviderURLs)
	runner := bench.NewRunner(cfg, tracker)

	log.Info().Msg("Starting benchmarks")

	// One-shot mode: run the loop once and exit 0. Per-endpoint failures
	// are logged, never reflected in the exit code.
	if cfg.BenchInterval <= 0 {
		runner.RunAll(context.Background())
		return
	}

	// Watch mode: rerun on a ticker and serve metrics until interrupted.
	go func() {
		runner.RunAll(context.Background())
		ticker := time.NewTicker(cfg.BenchInterval)
		for range ticker.C {
			runner.RunAll(context.Background())
		}
	}()

	srv := server.NewServer(cfg, tracker)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
