package config

import (
	"swingmate/pkg/config"
)

// Finnhub holds the upstream quote provider configuration.
type Finnhub struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Quotes holds quote cache and refresh configuration.
type Quotes struct {
	// CacheTTL is how long a fetched quote stays valid, e.g. "5m".
	CacheTTL string `mapstructure:"cache_ttl"`
	// RefreshSchedule is a cron spec for the background warm-up of held
	// tickers. Empty disables the refresher.
	RefreshSchedule string `mapstructure:"refresh_schedule"`
}

// Config holds the full configuration for the journal service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	API      config.API      `mapstructure:"api"`
	Finnhub  Finnhub         `mapstructure:"finnhub"`
	Quotes   Quotes          `mapstructure:"quotes"`
}

// Load loads the journal service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
