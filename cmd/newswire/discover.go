package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgherardini/ainewswire/internal/config"
	"github.com/pgherardini/ainewswire/internal/discovery"
	"github.com/pgherardini/ainewswire/internal/fetcher"
	"github.com/pgherardini/ainewswire/internal/observability"
	"github.com/pgherardini/ainewswire/internal/sites"
	"github.com/pgherardini/ainewswire/internal/store"
)

// discoverCmd creates the "discover" subcommand.
func discoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Run one discovery cycle over the configured sites",
		Long:  "Scrape every configured listing page, fetch new article texts and update the local database.",
		RunE:  runDiscover,
	}
}

// runDiscover executes the discover command.
func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg)
	metrics := observability.NewMetrics(logger)

	if cfg.Metrics.Enabled {
		if err := metrics.StartServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Warn("failed to start metrics server", "error", err)
		}
	}

	httpClient := fetcher.NewClient(cfg, logger)
	docsDir := store.DocsPath(cfg.DB.FolderPath)
	artifacts := store.NewArtifactStore(docsDir, httpClient, logger,
		store.WithDownloadCounter(&metrics.ArtifactsDownloaded))

	var opts []store.Option
	if cfg.DB.Mongo.Enabled {
		mirror, err := store.NewMongoMirror(cfg.DB.Mongo.URI, cfg.DB.Mongo.Database, cfg.DB.Mongo.Collection, logger)
		if err != nil {
			return fmt.Errorf("connect record mirror: %w", err)
		}
		opts = append(opts, store.WithMirror(mirror))
	}

	db, err := store.Open(cfg.DB.FolderPath, artifacts, logger, opts...)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer db.Close(context.Background())

	newRenderer := func() (discovery.Renderer, error) {
		return fetcher.NewBrowser(cfg, logger)
	}

	orch := discovery.New(cfg, sites.NewRegistry(), db, newRenderer, metrics, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	if _, err := orch.Run(ctx); err != nil {
		return fmt.Errorf("discovery: %w", err)
	}
	elapsed := time.Since(start)

	snap := metrics.Snapshot()
	logger.Info("discovery run complete",
		"elapsed", elapsed,
		"sites_scraped", snap["sites_scraped"],
		"sites_failed", snap["sites_failed"],
		"articles_stored", snap["articles_stored"],
	)

	fmt.Printf("\nDiscovery complete in %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("   Sites:     %v scraped, %v failed\n", snap["sites_scraped"], snap["sites_failed"])
	fmt.Printf("   Articles:  %v discovered, %v stored\n", snap["stubs_discovered"], snap["articles_stored"])
	fmt.Printf("   Database:  %s\n", cfg.DB.FolderPath)

	newArticles := db.NewArticles()
	if len(newArticles) > 0 {
		fmt.Println("\nNew articles:")
		printRecords(os.Stdout, newArticles)
	}

	return nil
}
