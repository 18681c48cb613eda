package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgherardini/ainewswire/internal/config"
)

var (
	cfgFile string
	verbose bool
	newOnly bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "newswire",
		Short: "Newswire — AI news article discovery pipeline",
		Long: `Newswire discovers, normalizes and archives articles from AI news
sources: vendor blogs, tech press and the arXiv listing pages.

Each site's listing page is rendered in a headless browser, article
links are extracted through the per-site rule table, full article text
is fetched and archived, and every article is recorded exactly once in
the local database.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(discoverCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Newswire %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Search:\n")
			fmt.Printf("  Sites:                %d configured\n", len(cfg.Search.Web.Sites))
			for _, site := range cfg.Search.Web.Sites {
				fmt.Printf("    - %s\n", site)
			}
			fmt.Printf("  Max Articles/Site:    %d\n", cfg.Search.MaxArticlesPerSite)
			fmt.Printf("  Page Timeout:         %s\n", cfg.Search.Timeout)
			fmt.Printf("  Render Wait:          %s\n", cfg.Search.WaitTime)
			fmt.Printf("\nDatabase:\n")
			fmt.Printf("  Folder Path:          %s\n", cfg.DB.FolderPath)
			fmt.Printf("  Mongo Mirror:         %v\n", cfg.DB.Mongo.Enabled)
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Headless:             %v\n", cfg.Fetcher.Headless)
			fmt.Printf("  Stealth:              %v\n", cfg.Fetcher.Stealth)
			fmt.Printf("  TLS Insecure:         %v\n", cfg.Fetcher.TLSInsecure)
			fmt.Printf("  Max Body Size:        %d bytes\n", cfg.Fetcher.MaxBodySize)
			fmt.Printf("\nMetrics:\n")
			fmt.Printf("  Enabled:              %v\n", cfg.Metrics.Enabled)
			fmt.Printf("  Port:                 %d\n", cfg.Metrics.Port)
			return nil
		},
	}
}

// setupLogger creates a structured logger from the logging config. The
// --verbose flag overrides the configured level.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	out := os.Stderr
	if cfg.Logging.Output == "stdout" {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}
