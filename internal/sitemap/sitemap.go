// Package sitemap enumerates the public routes of the site for crawlers.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ebikereviewlab/internal/content"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Entry is a single URL in the sitemap.
type Entry struct {
	Location   string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

// Source is the part of a content repository the sitemap reads.
type Source interface {
	All(ctx context.Context) ([]content.Article, error)
	Categories(ctx context.Context) ([]content.CategorySummary, error)
}

type staticRoute struct {
	path       string
	changeFreq string
	priority   float64
}

var staticRoutes = []staticRoute{
	{"/", "weekly", 1.0},
	{"/about", "yearly", 0.6},
	{"/contact", "yearly", 0.5},
	{"/newsletter", "monthly", 0.5},
	{"/privacy", "yearly", 0.3},
	{"/terms", "yearly", 0.3},
}

// Build lists static pages, then categories, then articles. Static pages and
// categories without posts are stamped with now.
func Build(ctx context.Context, src Source, siteURL string, now time.Time) ([]Entry, error) {
	siteURL = strings.TrimRight(siteURL, "/")

	var (
		posts      []content.Article
		categories []content.CategorySummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = src.All(gctx)
		if err != nil {
			return fmt.Errorf("list articles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = src.Categories(gctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(staticRoutes)+len(categories)+len(posts))
	for _, r := range staticRoutes {
		entries = append(entries, Entry{
			Location:   siteURL + r.path,
			LastMod:    now,
			ChangeFreq: r.changeFreq,
			Priority:   r.priority,
		})
	}

	latest := make(map[string]time.Time, len(categories))
	for i := range posts {
		slug := strings.ToLower(posts[i].CategorySlug)
		if mod := posts[i].LastModified(); mod.After(latest[slug]) {
			latest[slug] = mod
		}
	}
	for _, c := range categories {
		mod, ok := latest[strings.ToLower(c.Slug)]
		if !ok || mod.IsZero() {
			mod = now
		}
		entries = append(entries, Entry{
			Location:   siteURL + "/" + c.Slug,
			LastMod:    mod,
			ChangeFreq: "weekly",
			Priority:   0.8,
		})
	}

	for i := range posts {
		entries = append(entries, Entry{
			Location:   siteURL + posts[i].Path(),
			LastMod:    posts[i].LastModified(),
			ChangeFreq: "weekly",
			Priority:   0.9,
		})
	}
	return entries, nil
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Location   string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Write encodes entries as a sitemap urlset.
func Write(w io.Writer, entries []Entry) error {
	set := urlSet{Xmlns: xmlns, URLs: make([]urlEntry, 0, len(entries))}
	for _, e := range entries {
		u := urlEntry{
			Location:   e.Location,
			ChangeFreq: e.ChangeFreq,
		}
		if !e.LastMod.IsZero() {
			u.LastMod = e.LastMod.UTC().Format(time.RFC3339)
		}
		if e.Priority > 0 {
			u.Priority = strconv.FormatFloat(e.Priority, 'f', 1, 64)
		}
		set.URLs = append(set.URLs, u)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
