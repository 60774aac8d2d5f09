package content

import (
	"context"
	"sort"
	"strings"
)

// Repository is the read-only view of published content used by every page.
// Implementations return copies; callers may modify what they receive.
type Repository interface {
	// All returns every article, newest first.
	All(ctx context.Context) ([]Article, error)
	// FindBySlug returns nil without error when the article does not exist.
	FindBySlug(ctx context.Context, category, slug string) (*Article, error)
	// ListByCategory returns the category's articles, newest first.
	ListByCategory(ctx context.Context, category string) ([]Article, error)
	Categories(ctx context.Context) ([]CategorySummary, error)
	// Category returns nil without error for unknown categories.
	Category(ctx context.Context, slug string) (*CategorySummary, error)
}

// MemoryRepository serves a loaded Catalog from memory.
type MemoryRepository struct {
	articles   []Article
	byKey      map[string]int
	categories []Category
}

// NewMemoryRepository indexes the catalog. The catalog is copied, so later
// changes to it are not observed.
func NewMemoryRepository(c *Catalog) *MemoryRepository {
	r := &MemoryRepository{byKey: make(map[string]int)}
	if c == nil {
		return r
	}

	r.articles = make([]Article, len(c.Articles))
	for i := range c.Articles {
		r.articles[i] = *c.Articles[i].Clone()
	}
	SortByRecency(r.articles)
	for i := range r.articles {
		r.byKey[r.articles[i].Key()] = i
	}
	r.categories = append([]Category(nil), c.Categories...)
	return r
}

func (r *MemoryRepository) All(_ context.Context) ([]Article, error) {
	return cloneAll(r.articles), nil
}

func (r *MemoryRepository) FindBySlug(_ context.Context, category, slug string) (*Article, error) {
	idx, ok := r.byKey[ArticleKey(category, slug)]
	if !ok {
		return nil, nil
	}
	return r.articles[idx].Clone(), nil
}

func (r *MemoryRepository) ListByCategory(_ context.Context, category string) ([]Article, error) {
	category = strings.ToLower(category)
	var out []Article
	for i := range r.articles {
		if strings.ToLower(r.articles[i].CategorySlug) == category {
			out = append(out, *r.articles[i].Clone())
		}
	}
	return out, nil
}

func (r *MemoryRepository) Categories(_ context.Context) ([]CategorySummary, error) {
	return Summarize(r.categories, r.articles), nil
}

func (r *MemoryRepository) Category(ctx context.Context, slug string) (*CategorySummary, error) {
	summaries, err := r.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return findSummary(summaries, slug), nil
}

func findSummary(summaries []CategorySummary, slug string) *CategorySummary {
	for i := range summaries {
		if strings.EqualFold(summaries[i].Slug, slug) {
			s := summaries[i]
			return &s
		}
	}
	return nil
}

// SortByRecency orders articles newest first by update time, falling back to
// publish time. Ties keep their existing order.
func SortByRecency(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].LastModified().After(articles[j].LastModified())
	})
}

// FilterByType keeps the articles of one content type, preserving order.
func FilterByType(articles []Article, ct ContentType) []Article {
	var out []Article
	for _, a := range articles {
		if a.ContentType == ct {
			out = append(out, a)
		}
	}
	return out
}

func cloneAll(in []Article) []Article {
	out := make([]Article, len(in))
	for i := range in {
		out[i] = *in[i].Clone()
	}
	return out
}
