package content

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := NewSQLStore(db)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate error: %v", err)
	}
	return store
}

func TestSQLStoreImportAndRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Import(ctx, testCatalog()); err != nil {
		t.Fatalf("Import error: %v", err)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(all) != 4 || all[0].Slug != "updated" {
		t.Fatalf("All() = %d articles, first %q", len(all), all[0].Slug)
	}

	a, err := store.FindBySlug(ctx, "electric-bikes", "new")
	if err != nil || a == nil {
		t.Fatalf("FindBySlug = %v, %v", a, err)
	}
	if a.Products[0].Pros[0] != "fast" || a.Introduction[0] != "intro" {
		t.Fatalf("document round trip lost fields: %+v", a)
	}

	missing, err := store.FindBySlug(ctx, "electric-bikes", "nope")
	if err != nil || missing != nil {
		t.Fatalf("FindBySlug(missing) = %v, %v", missing, err)
	}

	list, err := store.ListByCategory(ctx, "electric-bikes")
	if err != nil || len(list) != 3 {
		t.Fatalf("ListByCategory = %d, %v", len(list), err)
	}

	cats, err := store.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories error: %v", err)
	}
	if len(cats) != 3 || cats[0].Slug != "electric-bikes" || cats[0].TotalPosts != 3 {
		t.Fatalf("Categories() = %+v", cats)
	}

	latest, err := store.LastImported(ctx)
	if err != nil || latest.Day() != 20 {
		t.Fatalf("LastImported = %v, %v", latest, err)
	}
}

func TestSQLStoreImportReplacesCatalog(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Import(ctx, testCatalog()); err != nil {
		t.Fatalf("first Import error: %v", err)
	}
	smaller := &Catalog{Articles: testCatalog().Articles[:1]}
	if err := store.Import(ctx, smaller); err != nil {
		t.Fatalf("second Import error: %v", err)
	}

	all, err := store.All(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("All() after reimport = %d, %v", len(all), err)
	}
}

func TestSQLStoreServesDefaultCatalog(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	catalog, err := LoadFS(DefaultFS())
	if err != nil {
		t.Fatalf("LoadFS error: %v", err)
	}
	if err := store.Import(ctx, catalog); err != nil {
		t.Fatalf("Import error: %v", err)
	}

	a, err := store.FindBySlug(ctx, "electric-bikes", "best-electric-bikes")
	if err != nil || a == nil {
		t.Fatalf("FindBySlug = %v, %v", a, err)
	}
	if a.Comparison.Headers[0] != "model" || len(a.Comparison.Rows) != 3 {
		t.Fatalf("comparison table lost in storage: %+v", a.Comparison)
	}
}

func TestSQLStoreSharedReadSurvivesCancelledCaller(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.Import(ctx, testCatalog()); err != nil {
		t.Fatalf("Import error: %v", err)
	}

	// hold the only connection so both reads queue behind it
	store.db.SetMaxOpenConns(1)
	conn, err := store.db.Conn(ctx)
	if err != nil {
		t.Fatalf("Conn error: %v", err)
	}

	type result struct {
		articles []Article
		err      error
	}
	first := make(chan result, 1)
	second := make(chan result, 1)

	cancelCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		articles, err := store.All(cancelCtx)
		first <- result{articles, err}
	}()
	time.Sleep(50 * time.Millisecond)
	go func() {
		articles, err := store.All(ctx)
		second <- result{articles, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	if got := <-first; !errors.Is(got.err, context.Canceled) {
		t.Fatalf("cancelled caller err = %v, want context.Canceled", got.err)
	}

	conn.Close()
	select {
	case got := <-second:
		if got.err != nil || len(got.articles) != 4 {
			t.Fatalf("other caller = %d articles, %v", len(got.articles), got.err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("other caller never returned")
	}
}
