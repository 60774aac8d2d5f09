package app

import (
	"context"
	"net/http"
	"strings"

	"ebikereviewlab/internal/content"
	"ebikereviewlab/internal/placement"
	"ebikereviewlab/internal/seo"
	"ebikereviewlab/internal/sitemap"
)

const (
	heroDefaultSize     = 6
	showcaseDefaultSize = 4
	galleryDefaultSize  = 4
	sidebarDefaultSize  = 4
	articleSidebarSize  = 6
	supportingProducts  = 3
)

type homeView struct {
	SEO        seo.HomeSEO
	Hero       []content.Article
	Latest     []content.Article
	Sidebar    []content.Article
	Gallery    []content.Article
	Categories []content.CategorySummary
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	all, err := s.repo.All(ctx)
	if err != nil {
		s.serverError(w, r, "list articles", err)
		return
	}
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		s.serverError(w, r, "list categories", err)
		return
	}

	money := content.FilterByType(all, content.Money)
	info := content.FilterByType(all, content.Information)
	configured := placement.NewResolver(s.placements, all).Home()

	view := homeView{
		SEO:        s.seo.Home(s.now()),
		Hero:       configured.Hero,
		Latest:     configured.Latest,
		Sidebar:    configured.Sidebar,
		Gallery:    configured.Gallery,
		Categories: categories,
	}
	if len(view.Hero) == 0 {
		view.Hero = firstN(money, heroDefaultSize)
	}
	if !configured.LatestConfigured {
		view.Latest = firstN(money, showcaseDefaultSize)
	}
	if !configured.SidebarConfigured {
		view.Sidebar = window(money, showcaseDefaultSize, 2*showcaseDefaultSize)
		if len(view.Sidebar) == 0 {
			view.Sidebar = firstN(money, showcaseDefaultSize)
		}
	}
	if len(view.Gallery) == 0 {
		view.Gallery = firstN(info, galleryDefaultSize)
	}

	s.render(w, r, http.StatusOK, "home.gohtml", view, view.SEO.Metadata,
		s.seo.WebsiteSchema(), s.seo.OrganizationSchema())
}

type categoryView struct {
	SEO      seo.CategorySEO
	Category content.CategorySummary
	Posts    []content.Article
	Sidebar  []content.Article
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request, slug string) {
	ctx := r.Context()
	posts, err := s.repo.ListByCategory(ctx, slug)
	if err != nil {
		s.serverError(w, r, "list category "+slug, err)
		return
	}
	if len(posts) == 0 {
		s.notFound(w, r)
		return
	}
	summary, err := s.repo.Category(ctx, slug)
	if err != nil {
		s.serverError(w, r, "load category "+slug, err)
		return
	}
	resolver, err := s.resolver(ctx)
	if err != nil {
		s.serverError(w, r, "list articles", err)
		return
	}
	if summary == nil {
		summary = &content.CategorySummary{
			Category:   content.Category{Slug: slug},
			TotalPosts: len(posts),
		}
	}

	projection := s.seo.Category(*summary, posts, s.now())
	view := categoryView{
		SEO:      projection,
		Category: *summary,
		Posts:    posts,
		Sidebar:  resolver.Category(slug),
	}
	if len(view.Sidebar) == 0 {
		view.Sidebar = firstN(posts, sidebarDefaultSize)
	}

	s.render(w, r, http.StatusOK, "category.gohtml", view, s.seo.CategoryMetadata(projection),
		s.seo.CategorySchemas(projection, posts)...)
}

type articleView struct {
	Article    *content.Article
	SEO        seo.ArticleSEO
	Published  string
	Updated    string
	Sidebar    []content.Article
	Supporting []content.Product
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request, category, slug string) {
	ctx := r.Context()
	article, err := s.repo.FindBySlug(ctx, category, slug)
	if err != nil {
		s.serverError(w, r, "load article "+category+"/"+slug, err)
		return
	}
	if article == nil {
		s.notFound(w, r)
		return
	}

	siblings, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		s.serverError(w, r, "list category "+category, err)
		return
	}
	others := make([]content.Article, 0, len(siblings))
	for _, a := range siblings {
		if a.Slug != article.Slug {
			others = append(others, a)
		}
	}

	resolver, err := s.resolver(ctx)
	if err != nil {
		s.serverError(w, r, "list articles", err)
		return
	}
	configured := resolver.Post(category, slug)
	sidebar := configured.Sidebar
	if len(sidebar) == 0 {
		sidebar = placement.DedupeBySlug(configured.Related, others)
	}
	sidebar = firstN(placement.DedupeBySlug(sidebar), articleSidebarSize)

	projection := s.seo.Article(article)
	view := articleView{
		Article:   article,
		SEO:       projection,
		Published: formatDate(article.PublishedAt),
		Sidebar:   sidebar,
	}
	if !article.UpdatedAt.IsZero() && !article.UpdatedAt.Equal(article.PublishedAt) {
		view.Updated = formatDate(article.UpdatedAt)
	}
	if !article.IsMoney() {
		view.Supporting = firstN(article.Products, supportingProducts)
	}

	s.render(w, r, http.StatusOK, "article.gohtml", view, s.seo.ArticleMetadata(article),
		s.seo.ArticleSchemas(article, projection)...)
}

func (s *Server) staticHandler(page staticPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
			return
		}
		var schemas []seo.Schema
		if page.SchemaType != "" {
			schemas = append(schemas, s.seo.PolicySchema(page.Path, page.SchemaName, page.SchemaType))
		} else {
			schemas = append(schemas, s.seo.OrganizationSchema())
		}
		s.render(w, r, http.StatusOK, "static.gohtml", page, s.seo.Page(page.options()), schemas...)
	}
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	entries, err := sitemap.Build(r.Context(), s.repo, s.seo.Site().URL, s.now())
	if err != nil {
		s.serverError(w, r, "build sitemap", err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if err := sitemap.Write(w, entries); err != nil {
		s.requestLogger(r.Context()).Error("write sitemap", "error", err)
	}
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := sitemap.DefaultRobots(s.seo.Site().URL).WriteTo(w); err != nil {
		s.requestLogger(r.Context()).Debug("write robots", "error", err)
	}
}

// resolver indexes the catalog as it is now, so placements follow imports
// made while the server runs.
func (s *Server) resolver(ctx context.Context) (*placement.Resolver, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return placement.NewResolver(s.placements, all), nil
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// window returns items[from:to], clipped to the slice.
func window[T any](items []T, from, to int) []T {
	if from >= len(items) {
		return nil
	}
	if to > len(items) {
		to = len(items)
	}
	return items[from:to]
}

// isActive reports whether a navigation link points at the current path.
func isActive(current, href string) bool {
	return current == href || strings.HasPrefix(current, href+"/")
}
