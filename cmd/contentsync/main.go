// Command contentsync loads the authored catalog, checks placements against
// it and imports it into the configured database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ebikereviewlab/internal/app"
	"ebikereviewlab/internal/content"
	"ebikereviewlab/internal/placement"
)

func main() {
	dir := flag.String("dir", "", "content directory (defaults to CONTENT_DIR or the embedded catalog)")
	dryRun := flag.Bool("dry-run", false, "validate the catalog without writing to the database")
	flag.Parse()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if *dir != "" {
		cfg.ContentDir = *dir
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *dryRun); err != nil {
		logger.Error("content sync failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg app.Config, logger *slog.Logger, dryRun bool) error {
	fsys := app.ContentFS(cfg)
	catalog, err := content.LoadFS(fsys)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "categories", len(catalog.Categories), "articles", len(catalog.Articles))

	placements, err := app.LoadPlacements(cfg, fsys)
	if err != nil {
		return err
	}
	resolver := placement.NewResolver(placements, catalog.Articles)
	for _, id := range resolver.Unresolved() {
		logger.Warn("placement does not match any article", "id", id)
	}

	if dryRun {
		return nil
	}

	db, err := app.NewDB(cfg)
	if err != nil {
		return err
	}
	if db == nil {
		return fmt.Errorf("no database configured: set MYSQL_DSN or DATABASE_URL")
	}
	defer db.Close()

	store := content.NewSQLStore(db)
	if err := store.Migrate(ctx); err != nil {
		return err
	}
	if err := store.Import(ctx, catalog); err != nil {
		return err
	}

	latest, err := store.LastImported(ctx)
	if err != nil {
		return err
	}
	logger.Info("catalog imported", "driver", cfg.Driver, "articles", len(catalog.Articles), "latest_modified", latest)
	return nil
}
