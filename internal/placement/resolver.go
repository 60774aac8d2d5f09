package placement

import (
	"sort"
	"strings"

	"ebikereviewlab/internal/content"
)

// Resolver turns configured identifiers into articles. It never fails: unknown
// identifiers are dropped and missing regions resolve to empty lists.
type Resolver struct {
	cfg      Config
	articles []content.Article
	byKey    map[string]int
}

// NewResolver indexes articles, which are kept in the given order for bare
// slug lookups.
func NewResolver(cfg Config, articles []content.Article) *Resolver {
	r := &Resolver{
		cfg:      cfg,
		articles: make([]content.Article, len(articles)),
		byKey:    make(map[string]int, len(articles)),
	}
	for i := range articles {
		r.articles[i] = *articles[i].Clone()
		key := articles[i].Key()
		if _, dup := r.byKey[key]; !dup {
			r.byKey[key] = i
		}
	}
	return r
}

// Find accepts "category/slug" or a bare slug, compared case-insensitively.
// A bare slug matches the first article with that slug.
func (r *Resolver) Find(id string) (*content.Article, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil, false
	}
	if strings.Contains(id, "/") {
		i, ok := r.byKey[strings.Trim(id, "/")]
		if !ok {
			return nil, false
		}
		return r.articles[i].Clone(), true
	}
	for i := range r.articles {
		if strings.ToLower(r.articles[i].Slug) == id {
			return r.articles[i].Clone(), true
		}
	}
	return nil, false
}

// Resolve maps ids to articles in order, skipping unknown ones.
func (r *Resolver) Resolve(ids []string) []content.Article {
	out := make([]content.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := r.Find(id); ok {
			out = append(out, *a)
		}
	}
	return out
}

// HomePlacements are the resolved home page regions.
type HomePlacements struct {
	Hero    []content.Article
	Latest  []content.Article
	Sidebar []content.Article
	Gallery []content.Article
	// LatestConfigured and SidebarConfigured report whether the showcase key
	// was present in the file, even if empty.
	LatestConfigured  bool
	SidebarConfigured bool
}

func (r *Resolver) Home() HomePlacements {
	home := r.cfg.Home
	p := HomePlacements{
		Hero:    r.Resolve(home.Hero),
		Gallery: r.Resolve(home.Gallery),
	}
	if home.Showcase.Latest != nil {
		p.LatestConfigured = true
		p.Latest = r.Resolve(*home.Showcase.Latest)
	} else {
		p.Latest = []content.Article{}
	}
	if home.Showcase.Sidebar != nil {
		p.SidebarConfigured = true
		p.Sidebar = r.Resolve(*home.Showcase.Sidebar)
	} else {
		p.Sidebar = []content.Article{}
	}
	return p
}

// Category resolves the sidebar of a category page.
func (r *Resolver) Category(slug string) []content.Article {
	return r.Resolve(r.cfg.Categories[strings.ToLower(slug)].Sidebar)
}

// PostPlacements are the resolved regions of an article page.
type PostPlacements struct {
	Sidebar []content.Article
	Related []content.Article
}

// Post resolves the sidebar and related regions of one article. Post level
// settings are looked up by "category/slug", then by bare slug; empty regions
// fall through to the category sidebar. The article itself is never related
// to itself.
func (r *Resolver) Post(category, slug string) PostPlacements {
	category = strings.ToLower(category)
	slug = strings.ToLower(slug)

	post, ok := r.cfg.Posts[content.ArticleKey(category, slug)]
	if !ok {
		post = r.cfg.Posts[slug]
	}
	catSidebar := r.cfg.Categories[category].Sidebar

	sidebar := firstNonEmpty(post.Sidebar, post.Popular, post.Related, catSidebar)
	related := firstNonEmpty(post.Related, catSidebar)

	resolved := r.Resolve(related)
	kept := resolved[:0]
	for _, a := range resolved {
		if strings.ToLower(a.Slug) != slug {
			kept = append(kept, a)
		}
	}
	return PostPlacements{
		Sidebar: r.Resolve(sidebar),
		Related: kept,
	}
}

// IsHero reports whether the article is featured in the home hero.
func (r *Resolver) IsHero(category, slug string) bool {
	key := content.ArticleKey(category, slug)
	for _, id := range r.cfg.Home.Hero {
		if a, ok := r.Find(id); ok && a.Key() == key {
			return true
		}
	}
	return false
}

// Keys lists every configured identifier once, sorted.
func (r *Resolver) Keys() []string {
	seen := make(map[string]struct{})
	add := func(ids []string) {
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}
	home := r.cfg.Home
	add(home.Hero)
	add(home.Gallery)
	if home.Showcase.Latest != nil {
		add(*home.Showcase.Latest)
	}
	if home.Showcase.Sidebar != nil {
		add(*home.Showcase.Sidebar)
	}
	for _, c := range r.cfg.Categories {
		add(c.Sidebar)
	}
	for _, p := range r.cfg.Posts {
		add(p.Sidebar)
		add(p.Popular)
		add(p.Related)
	}

	keys := make([]string, 0, len(seen))
	for id := range seen {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys
}

// Unresolved lists configured identifiers that match no article.
func (r *Resolver) Unresolved() []string {
	var missing []string
	for _, id := range r.Keys() {
		if _, ok := r.Find(id); !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// DedupeBySlug concatenates lists, keeping the first article seen for each
// slug. Articles without a slug are dropped.
func DedupeBySlug(lists ...[]content.Article) []content.Article {
	seen := make(map[string]struct{})
	out := make([]content.Article, 0)
	for _, list := range lists {
		for _, a := range list {
			if a.Slug == "" {
				continue
			}
			if _, dup := seen[a.Slug]; dup {
				continue
			}
			seen[a.Slug] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}

func firstNonEmpty(lists ...IDList) IDList {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}
