package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"tunematch/internal/config"
	"tunematch/internal/recommend"
	"tunematch/internal/registry"
	"tunematch/internal/server"
	"tunematch/internal/similarity"
	"tunematch/internal/source"
	"tunematch/internal/source/spotify"
	"tunematch/internal/source/youtube"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration failed")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	ctx := context.Background()

	var links *registry.Store
	if cfg.RegistryPath != "" {
		links, err = registry.Open(cfg.RegistryPath)
		if err != nil {
			// Links are an optimization; run without them rather than refuse to start.
			log.Warn().Err(err).Str("path", cfg.RegistryPath).Msg("link registry unavailable")
			links = nil
		} else {
			defer links.Close()
		}
	}

	sp := spotify.New(ctx, spotify.Config{
		ClientID:       cfg.Spotify.ID,
		ClientSecret:   cfg.Spotify.Secret,
		AllowAnonymous: cfg.Spotify.Anonymous,
	})
	yt := youtube.New(youtube.Config{APIKey: cfg.YouTube.APIKey})

	// Spotify first: richer metadata makes it the preferred reference source.
	sources := source.NewRegistry(sp, yt)
	engine := similarity.NewEngine(similarity.DefaultScoringConfig())
	svc := recommend.New(sources, engine, links, log, recommend.DefaultConfig())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(svc, log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Bool("spotify", sp.Configured()).
			Bool("youtube", yt.Configured()).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}
