package seo

import (
	"strconv"
	"strings"
	"time"

	"ebikereviewlab/internal/content"
)

const (
	ogImageWidth  = 1200
	ogImageHeight = 630

	robotsIndex   = "index, follow"
	robotsNoIndex = "noindex, nofollow"
)

// Metadata is everything rendered into a page's <head>.
type Metadata struct {
	Title       string
	Description string
	Keywords    []string
	// CanonicalPath is site relative; Canonical is absolute.
	CanonicalPath string
	Canonical     string
	Robots        string
	OpenGraph     OpenGraph
	Twitter       TwitterCard
}

type OpenGraph struct {
	Type          string
	Title         string
	Description   string
	URL           string
	SiteName      string
	Image         Image
	PublishedTime string
	ModifiedTime  string
	Section       string
}

type Image struct {
	URL    string
	Width  int
	Height int
	Alt    string
}

type TwitterCard struct {
	Card        string
	Title       string
	Description string
	Image       string
}

// KeywordList joins keywords for the meta tag.
func (m Metadata) KeywordList() string {
	return strings.Join(m.Keywords, ", ")
}

// ArticleMetadata wraps the article projection into head metadata.
func (b *Builder) ArticleMetadata(a *content.Article) Metadata {
	return b.articleMetadata(b.Article(a))
}

func (b *Builder) articleMetadata(s ArticleSEO) Metadata {
	m := b.page(pageInput{
		title:       s.Title,
		shareTitle:  s.Title + " | " + b.site.Name,
		description: s.Description,
		path:        s.CanonicalPath,
		image:       s.Image,
		imageAlt:    s.Title,
		ogType:      "article",
	})
	m.Keywords = s.Keywords
	m.OpenGraph.PublishedTime = formatTime(s.PublishedTime)
	m.OpenGraph.ModifiedTime = formatTime(s.UpdatedTime)
	m.OpenGraph.Section = s.Category
	return m
}

// CategorySEO is the projection of a category listing page.
type CategorySEO struct {
	Name          string
	FocusKeyword  string
	Title         string
	Heading       string
	Description   string
	CanonicalPath string
	Image         string
	Keywords      []string
}

// Category derives the listing projection from the category and its posts,
// newest first. now supplies the year shown in the title.
func (b *Builder) Category(cat content.CategorySummary, posts []content.Article, now time.Time) CategorySEO {
	name := cat.Name
	if name == "" && len(posts) > 0 {
		name = posts[0].Category
	}
	if name == "" {
		name = content.Humanize(cat.Slug)
	}

	// names that already end in "Bikes" are their own focus keyword
	focus := name
	if !strings.HasSuffix(strings.ToLower(name), "bikes") {
		focus = name + " Electric Bikes"
	}

	description := cat.Description
	if description == "" && len(posts) > 0 {
		description = posts[0].MetaDescription
	}

	image := cat.HeroImage
	if image == "" && len(posts) > 0 {
		image = posts[0].HeroImage
		if image == "" && len(posts[0].Products) > 0 {
			image = posts[0].Products[0].ImageURL
		}
	}
	if image == "" {
		image = b.site.DefaultOGImage
	}

	return CategorySEO{
		Name:          name,
		FocusKeyword:  focus,
		Title:         Truncate(focus+" "+strconv.Itoa(now.Year())+" – Buyer's Guide", TitleLimit),
		Heading:       strings.TrimSuffix(focus, "s") + " Guides",
		Description:   b.describe(description),
		CanonicalPath: CanonicalPath(cat.Slug),
		Image:         image,
		Keywords:      KeywordVariants(focus, name),
	}
}

// CategoryMetadata wraps a category projection into head metadata.
func (b *Builder) CategoryMetadata(s CategorySEO) Metadata {
	m := b.page(pageInput{
		title:       s.Title,
		shareTitle:  s.Title + " | " + b.site.Name,
		description: s.Description,
		path:        s.CanonicalPath,
		image:       s.Image,
		imageAlt:    s.Title,
		ogType:      "website",
	})
	m.Keywords = s.Keywords
	return m
}

// HomeSEO is the projection of the home page.
type HomeSEO struct {
	Heading    string
	Subheading string
	Metadata   Metadata
}

// Home derives the home page projection; now supplies the year.
func (b *Builder) Home(now time.Time) HomeSEO {
	const focus = "Best Electric Bike Reviews"
	year := strconv.Itoa(now.Year())

	m := b.page(pageInput{
		title:       focus + " " + year,
		shareTitle:  focus + " " + year + " | " + b.site.Name,
		description: b.site.Name + " delivers independent electric bike reviews, comparison data, and buyer guides so you can choose the perfect e-bike for commuting, cargo, or trail riding.",
		path:        "/",
		imageAlt:    b.site.Name + " hero image",
		ogType:      "website",
	})
	m.Keywords = Dedupe([]string{focus, "electric bike buying guide", "top e-bike picks", "best e-bikes"})
	m.Twitter.Image = b.AbsoluteURL(b.site.DefaultTwitterImage)

	return HomeSEO{
		Heading:    focus + " & Buying Guides " + year,
		Subheading: b.site.Tagline,
		Metadata:   m,
	}
}

// PageOptions describe a static page.
type PageOptions struct {
	Title       string
	Description string
	Path        string
	Image       string
	NoIndex     bool
}

// Page builds metadata for a static page such as /about or /contact.
func (b *Builder) Page(opts PageOptions) Metadata {
	m := b.page(pageInput{
		title:       opts.Title,
		shareTitle:  opts.Title,
		description: opts.Description,
		path:        opts.Path,
		image:       opts.Image,
		imageAlt:    opts.Title + " open graph image",
		ogType:      "website",
	})
	if opts.NoIndex {
		m.Robots = robotsNoIndex
	}
	return m
}

// NotFound builds metadata for a missing page; crawlers are told not to index it.
func (b *Builder) NotFound(path string) Metadata {
	return b.Page(PageOptions{
		Title:       "Page Not Found | " + b.site.Name,
		Description: "The page you are looking for does not exist.",
		Path:        path,
		NoIndex:     true,
	})
}

type pageInput struct {
	title       string
	shareTitle  string
	description string
	path        string
	image       string
	imageAlt    string
	ogType      string
}

func (b *Builder) page(in pageInput) Metadata {
	path := in.path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		path = ensureLeadingSlash(path)
	}
	canonical := b.AbsoluteURL(path)
	if path == "/" {
		canonical = b.site.URL
	}
	image := b.AbsoluteURL(in.image)
	description := b.describe(in.description)

	return Metadata{
		Title:         in.title,
		Description:   description,
		CanonicalPath: path,
		Canonical:     canonical,
		Robots:        robotsIndex,
		OpenGraph: OpenGraph{
			Type:        in.ogType,
			Title:       in.shareTitle,
			Description: description,
			URL:         canonical,
			SiteName:    b.site.Name,
			Image: Image{
				URL:    image,
				Width:  ogImageWidth,
				Height: ogImageHeight,
				Alt:    in.imageAlt,
			},
		},
		Twitter: TwitterCard{
			Card:        "summary_large_image",
			Title:       in.shareTitle,
			Description: description,
			Image:       image,
		},
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
