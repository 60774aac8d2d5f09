package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// modifiedLayout sorts lexicographically in the same order as the timestamps.
const modifiedLayout = "2006-01-02T15:04:05Z"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		slug VARCHAR(191) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		hero_image VARCHAR(512) NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		position INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS articles (
		category_slug VARCHAR(191) NOT NULL,
		slug VARCHAR(191) NOT NULL,
		content_type VARCHAR(32) NOT NULL,
		modified_at VARCHAR(32) NOT NULL DEFAULT '',
		document MEDIUMTEXT NOT NULL,
		PRIMARY KEY (category_slug, slug)
	)`,
}

// SQLStore serves content from a MySQL or SQLite database populated by Import.
type SQLStore struct {
	db    *sql.DB
	reads singleflight.Group
}

var (
	_ Repository = (*SQLStore)(nil)
	_ Repository = (*MemoryRepository)(nil)
)

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates the content tables when they do not exist yet.
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Import replaces the stored catalog with c in a single transaction.
func (s *SQLStore) Import(ctx context.Context, c *Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM articles`, `DELETE FROM categories`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
	}

	const insertCategory = `INSERT INTO categories (slug, name, hero_image, description, position) VALUES (?, ?, ?, ?, ?)`
	for i, cat := range c.Categories {
		if _, err := tx.ExecContext(ctx, insertCategory, cat.Slug, cat.Name, cat.HeroImage, cat.Description, i); err != nil {
			return fmt.Errorf("insert category %s: %w", cat.Slug, err)
		}
	}

	const insertArticle = `INSERT INTO articles (category_slug, slug, content_type, modified_at, document) VALUES (?, ?, ?, ?, ?)`
	for i := range c.Articles {
		a := &c.Articles[i]
		doc, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("encode %s: %w", a.Key(), err)
		}
		modified := ""
		if t := a.LastModified(); !t.IsZero() {
			modified = t.UTC().Format(modifiedLayout)
		}
		if _, err := tx.ExecContext(ctx, insertArticle, a.CategorySlug, a.Slug, string(a.ContentType), modified, string(doc)); err != nil {
			return fmt.Errorf("insert article %s: %w", a.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

func (s *SQLStore) All(ctx context.Context) ([]Article, error) {
	return s.sharedRead(ctx, "all", `SELECT document FROM articles ORDER BY modified_at DESC, category_slug, slug`)
}

func (s *SQLStore) FindBySlug(ctx context.Context, category, slug string) (*Article, error) {
	const query = `SELECT document FROM articles WHERE category_slug = ? AND slug = ?`
	var doc string
	err := s.db.QueryRowContext(ctx, query, category, slug).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s/%s: %w", category, slug, err)
	}

	var a Article
	if err := json.Unmarshal([]byte(doc), &a); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", category, slug, err)
	}
	return &a, nil
}

func (s *SQLStore) ListByCategory(ctx context.Context, category string) ([]Article, error) {
	return s.sharedRead(ctx, "category:"+category,
		`SELECT document FROM articles WHERE category_slug = ? ORDER BY modified_at DESC, slug`, category)
}

// sharedRead collapses identical concurrent queries. The query itself outlives
// any single caller's cancellation; each caller stops waiting on its own ctx.
func (s *SQLStore) sharedRead(ctx context.Context, key, query string, args ...any) ([]Article, error) {
	ch := s.reads.DoChan(key, func() (interface{}, error) {
		return s.queryArticles(context.WithoutCancel(ctx), query, args...)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return cloneAll(res.Val.([]Article)), nil
	}
}

func (s *SQLStore) Categories(ctx context.Context) ([]CategorySummary, error) {
	const query = `SELECT slug, name, hero_image, description FROM categories ORDER BY position`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.Slug, &c.Name, &c.HeroImage, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	articles, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(categories, articles), nil
}

func (s *SQLStore) Category(ctx context.Context, slug string) (*CategorySummary, error) {
	summaries, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return findSummary(summaries, slug), nil
}

func (s *SQLStore) queryArticles(ctx context.Context, query string, args ...any) ([]Article, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var out []Article
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		var a Article
		if err := json.Unmarshal([]byte(doc), &a); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LastImported reports the newest modification time stored, or zero when empty.
func (s *SQLStore) LastImported(ctx context.Context) (time.Time, error) {
	var raw sql.NullString
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(modified_at) FROM articles`).Scan(&raw); err != nil {
		return time.Time{}, fmt.Errorf("latest modification: %w", err)
	}
	if !raw.Valid || raw.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(modifiedLayout, raw.String)
}
