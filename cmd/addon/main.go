// cmd/addon/main.go
package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/cinedesi/addon/cache"
	"github.com/cinedesi/addon/catalog"
	"github.com/cinedesi/addon/internal/config"
	"github.com/cinedesi/addon/internal/http/routes"
	"github.com/cinedesi/addon/tmdb"
)

const version = "1.2.0"

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}

	// Shared TTL store with background sweep
	store := cache.NewMemory(cfg.Cache.DefaultTTL, cfg.Cache.MaxEntries)
	stopSweep := store.StartSweep(cfg.Cache.SweepInterval)
	defer stopSweep()

	// Upstream client
	tmdbOpts := []tmdb.Option{}
	if cfg.TMDB.BaseURL != "" {
		tmdbOpts = append(tmdbOpts, tmdb.WithBaseURL(cfg.TMDB.BaseURL))
	}
	source, err := tmdb.New(cfg.TMDB.APIKey, tmdbOpts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("tmdb client error")
	}

	// Aggregation core
	resolver := catalog.NewResolver(source, store, logger, cfg.Cache.PositiveTTL, cfg.Cache.NegativeTTL)
	classifier := catalog.NewClassifier(source, store, logger,
		cfg.Catalog.PrimaryLanguage, cfg.Catalog.Territory, cfg.Catalog.ClassifierFailOpen,
		cfg.Cache.PositiveTTL, cfg.Cache.NegativeTTL)
	sizes := catalog.NewPageSizes(store)
	engine := catalog.NewEngine(source, store, sizes, resolver, classifier, logger, catalog.Options{
		PageTTL:        cfg.Cache.DefaultTTL,
		ClassifySearch: cfg.Catalog.ClassifySearch,
	})

	registry := catalog.NewRegistry()
	registry.Register(catalog.Definition{
		ID:        "cinedesi-movies",
		Name:      "CineDesi Movies",
		Kind:      tmdb.KindMovie,
		Language:  cfg.Catalog.PrimaryLanguage,
		Territory: cfg.Catalog.Territory,
		MinVotes:  cfg.Catalog.MinVotes,
		Secondary: cfg.Catalog.SecondaryLanguages,
	})
	registry.Register(catalog.Definition{
		ID:        "cinedesi-series",
		Name:      "CineDesi Series",
		Kind:      tmdb.KindSeries,
		Language:  cfg.Catalog.PrimaryLanguage,
		Territory: cfg.Catalog.Territory,
		MinVotes:  cfg.Catalog.MinVotes,
		Secondary: cfg.Catalog.SecondaryLanguages,
	})

	s := routes.New(routes.ServerOptions{
		Engine:   engine,
		Registry: registry,
		Name:     "CineDesi",
		Version:  version,
	})
	h := hlog.NewHandler(logger)(s.Router)

	logger.Info().Str("port", cfg.Port).Str("base_url", cfg.BaseURL).Msg("starting addon")
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: h}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
