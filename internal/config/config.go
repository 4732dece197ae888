// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Port    string `env:"PORT" envDefault:"7000"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:7000"`

	TMDB    TMDBConfig
	Catalog CatalogConfig
	Cache   CacheConfig
}

// TMDBConfig holds upstream API configuration.
type TMDBConfig struct {
	APIKey  string `env:"TMDB_API_KEY"`
	BaseURL string `env:"TMDB_BASE_URL"` // override for tests/proxies; empty means the public API
}

// CatalogConfig shapes the shipped catalog definitions and the
// classifier behavior.
type CatalogConfig struct {
	PrimaryLanguage    string   `env:"PRIMARY_LANGUAGE" envDefault:"hi"`
	SecondaryLanguages []string `env:"SECONDARY_LANGUAGES" envDefault:"ta,te,ml,kn,bn,mr,pa,gu"`
	Territory          string   `env:"TERRITORY" envDefault:"IN"`
	MinVotes           int      `env:"MIN_VOTES" envDefault:"5"`

	// ClassifierFailOpen admits items whose detail fetch failed; the
	// default is the conservative fail-closed policy.
	ClassifierFailOpen bool `env:"CLASSIFIER_FAIL_OPEN" envDefault:"false"`

	// ClassifySearch runs search results of language-scoped catalogs
	// through the classifier too.
	ClassifySearch bool `env:"CLASSIFY_SEARCH" envDefault:"true"`
}

// CacheConfig tunes the in-memory store and the enrichment TTLs.
type CacheConfig struct {
	MaxEntries    int           `env:"CACHE_MAX_ENTRIES" envDefault:"5000"`
	DefaultTTL    time.Duration `env:"CACHE_DEFAULT_TTL" envDefault:"6h"`
	PositiveTTL   time.Duration `env:"CACHE_POSITIVE_TTL" envDefault:"24h"`
	NegativeTTL   time.Duration `env:"CACHE_NEGATIVE_TTL" envDefault:"1h"`
	SweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL" envDefault:"10m"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate ensures the configuration can run the service.
func (c *Config) Validate() error {
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	if c.Catalog.PrimaryLanguage == "" {
		return fmt.Errorf("PRIMARY_LANGUAGE must not be empty")
	}
	if c.Cache.NegativeTTL > c.Cache.PositiveTTL {
		return fmt.Errorf("CACHE_NEGATIVE_TTL must not exceed CACHE_POSITIVE_TTL")
	}
	return nil
}
