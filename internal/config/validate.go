package config

import (
	"fmt"
	"net/url"

	"github.com/pgherardini/ainewswire/internal/types"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Search.MaxArticlesPerSite < 1 {
		return fmt.Errorf("search.max_articles_per_site must be >= 1, got %d", cfg.Search.MaxArticlesPerSite)
	}
	if cfg.Search.Timeout <= 0 {
		return fmt.Errorf("search.timeout must be > 0")
	}
	if cfg.Search.WaitTime < 0 {
		return fmt.Errorf("search.wait_time must be >= 0")
	}
	for _, site := range cfg.Search.Web.Sites {
		if err := ValidateURL(site); err != nil {
			return fmt.Errorf("invalid site URL %q: %w", site, err)
		}
	}

	if cfg.DB.FolderPath == "" {
		return fmt.Errorf("db.folder_path must not be empty")
	}
	if cfg.DB.Mongo.Enabled {
		if cfg.DB.Mongo.URI == "" {
			return fmt.Errorf("db.mongo.uri must be set when the mirror is enabled")
		}
		if cfg.DB.Mongo.Database == "" || cfg.DB.Mongo.Collection == "" {
			return fmt.Errorf("db.mongo.database and db.mongo.collection must be set when the mirror is enabled")
		}
	}

	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Port < 1 || cfg.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port must be 1-65535, got %d", cfg.Metrics.Port)
		}
	}

	return nil
}

// ValidateURL checks if a URL string is usable as a scrape target.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got %q", types.ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", types.ErrInvalidURL)
	}
	return nil
}
