package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"typerace/internal/config"
	"typerace/internal/game"
	"typerace/internal/texts"
	httpTransport "typerace/internal/transport/http"
	"typerace/internal/transport/ws"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}

	cfg := config.Load()

	// Set up logging
	logger := newLogger(cfg.Logging)

	logger.Info().
		Str("env", cfg.Server.Env).
		Str("port", cfg.Server.Port).
		Msg("starting typerace server")

	// Wire the core: gateway, text corpus, race hub
	gateway := ws.NewGateway(logger)
	provider := texts.NewProvider()

	hub := game.NewHub(game.Options{
		Capacity:     cfg.Game.MaxUsersPerRoom,
		Countdown:    cfg.Game.Countdown(),
		RaceDuration: cfg.Game.RaceDuration(),
	}, gateway, provider, clockwork.NewRealClock(), logger)

	hub.SeedRooms(cfg.Game.SeedRooms)

	server := httpTransport.NewServer(cfg, hub, gateway, provider, logger)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
	gateway.CloseAll()

	logger.Info().Msg("server stopped")
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
