package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for newswire.
type Config struct {
	Search  SearchConfig  `mapstructure:"search"  yaml:"search"`
	DB      DBConfig      `mapstructure:"db"      yaml:"db"`
	Fetcher FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// SearchConfig controls the discovery pass.
type SearchConfig struct {
	Web                WebConfig     `mapstructure:"web"                   yaml:"web"`
	MaxArticlesPerSite int           `mapstructure:"max_articles_per_site" yaml:"max_articles_per_site"`
	Timeout            time.Duration `mapstructure:"timeout"               yaml:"timeout"`
	WaitTime           time.Duration `mapstructure:"wait_time"             yaml:"wait_time"`
}

// WebConfig lists the sites to scrape.
type WebConfig struct {
	Sites []string `mapstructure:"sites" yaml:"sites"`
}

// DBConfig controls the record store.
type DBConfig struct {
	FolderPath string      `mapstructure:"folder_path" yaml:"folder_path"`
	Mongo      MongoConfig `mapstructure:"mongo"       yaml:"mongo"`
}

// MongoConfig controls the optional record mirror.
type MongoConfig struct {
	Enabled    bool   `mapstructure:"enabled"    yaml:"enabled"`
	URI        string `mapstructure:"uri"        yaml:"uri"`
	Database   string `mapstructure:"database"   yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
}

// FetcherConfig controls page rendering and artifact downloads.
type FetcherConfig struct {
	UserAgent   string `mapstructure:"user_agent"    yaml:"user_agent"`
	TLSInsecure bool   `mapstructure:"tls_insecure"  yaml:"tls_insecure"`
	MaxBodySize int64  `mapstructure:"max_body_size" yaml:"max_body_size"`
	Headless    bool   `mapstructure:"headless"      yaml:"headless"`
	Stealth     bool   `mapstructure:"stealth"       yaml:"stealth"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// MetricsConfig controls the metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Port    int    `mapstructure:"port"    yaml:"port"`
	Path    string `mapstructure:"path"    yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MaxArticlesPerSite: 20,
			Timeout:            60 * time.Second,
			WaitTime:           3 * time.Second,
		},
		DB: DBConfig{
			FolderPath: "./data",
			Mongo: MongoConfig{
				Database:   "newswire",
				Collection: "articles",
			},
		},
		Fetcher: FetcherConfig{
			UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			MaxBodySize: 50 * 1024 * 1024, // 50MB, PDFs included
			Headless:    true,
			Stealth:     true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
	}
}
