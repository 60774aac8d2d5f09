package app

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"ebikereviewlab/internal/content"
	"ebikereviewlab/internal/placement"
)

// ContentFS returns the content tree named by cfg: CONTENT_DIR when set, the
// embedded catalog otherwise.
func ContentFS(cfg Config) fs.FS {
	if cfg.ContentDir == "" {
		return content.DefaultFS()
	}
	return os.DirFS(cfg.ContentDir)
}

// LoadPlacements reads PLACEMENTS_FILE when set, else placements.yaml from the
// content tree.
func LoadPlacements(cfg Config, fsys fs.FS) (placement.Config, error) {
	if cfg.PlacementsFile == "" {
		return placement.Load(fsys, placement.DefaultFile)
	}
	data, err := os.ReadFile(cfg.PlacementsFile)
	if err != nil {
		return placement.Config{}, fmt.Errorf("read placements: %w", err)
	}
	return placement.Parse(data)
}

// OpenRepository returns the SQL store when db is set and an in-memory
// repository over the content tree otherwise.
func OpenRepository(ctx context.Context, cfg Config, db *sql.DB) (content.Repository, error) {
	if db != nil {
		store := content.NewSQLStore(db)
		if err := store.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate content store: %w", err)
		}
		return store, nil
	}

	catalog, err := content.LoadFS(ContentFS(cfg))
	if err != nil {
		return nil, err
	}
	return content.NewMemoryRepository(catalog), nil
}

// LoadCheckedPlacements loads the placement config and warns about configured
// identifiers that match nothing in repo yet. The server resolves placements
// per request, so an import made later is picked up without a restart.
func LoadCheckedPlacements(ctx context.Context, cfg Config, repo content.Repository, logger *slog.Logger) (placement.Config, error) {
	placements, err := LoadPlacements(cfg, ContentFS(cfg))
	if err != nil {
		return placement.Config{}, err
	}
	articles, err := repo.All(ctx)
	if err != nil {
		return placement.Config{}, fmt.Errorf("list articles: %w", err)
	}

	for _, id := range placement.NewResolver(placements, articles).Unresolved() {
		logger.WarnContext(ctx, "placement does not match any article", "id", id)
	}
	return placements, nil
}

// NewLogger returns the JSON logger used by the binaries.
func NewLogger(cfg Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
}
