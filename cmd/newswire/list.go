package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgherardini/ainewswire/internal/config"
	"github.com/pgherardini/ainewswire/internal/fetcher"
	"github.com/pgherardini/ainewswire/internal/store"
	"github.com/pgherardini/ainewswire/internal/types"
)

// listCmd creates the "list" subcommand.
func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived articles",
		Long:  "Print the articles recorded in the local database, newest last.",
		RunE:  runList,
	}

	cmd.Flags().BoolVar(&newOnly, "new-only", false, "only articles added by the most recent discovery run")

	return cmd
}

// runList executes the list command.
func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := setupLogger(cfg)

	artifacts := store.NewArtifactStore(store.DocsPath(cfg.DB.FolderPath), fetcher.NewClient(cfg, logger), logger)
	db, err := store.Open(cfg.DB.FolderPath, artifacts, logger)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}

	records := db.AllArticles()
	if newOnly {
		records = db.NewArticles()
	}

	if len(records) == 0 {
		fmt.Println("No articles recorded.")
		return nil
	}

	printRecords(os.Stdout, records)
	return nil
}

// printRecords writes a numbered article listing.
func printRecords(w io.Writer, records []types.Record) {
	for i, r := range records {
		date := r.PublishDate
		if date == "" {
			date = "unknown date"
		}
		fmt.Fprintf(w, "%3d. %s\n     %s | %s | %s\n", i+1, r.Title, r.Source, date, r.URL)
	}
}
