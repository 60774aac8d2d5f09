package seo

import (
	"encoding/json"
	"strings"

	"ebikereviewlab/internal/content"
)

const (
	schemaContext     = "https://schema.org"
	maxCollectionSize = 12
)

// Schema is one schema.org JSON-LD object.
type Schema map[string]any

// MarshalSchemas encodes schemas for a <script type="application/ld+json"> block.
// A single schema is emitted as an object, several as an array.
func MarshalSchemas(schemas []Schema) ([]byte, error) {
	if len(schemas) == 1 {
		return json.Marshal(schemas[0])
	}
	return json.Marshal(schemas)
}

// ArticleSchemas returns the Article and BreadcrumbList pair for an article page.
// s must be the projection of a.
func (b *Builder) ArticleSchemas(a *content.Article, s ArticleSEO) []Schema {
	pageURL := b.AbsoluteURL(s.CanonicalPath)
	author := a.AuthorName
	if author == "" {
		author = b.site.Name
	}

	article := Schema{
		"@context": schemaContext,
		"@type":    "Article",
		"mainEntityOfPage": Schema{
			"@type": "WebPage",
			"@id":   pageURL,
		},
		"headline":    s.H1,
		"description": s.Description,
		"image":       []string{b.AbsoluteURL(s.Image)},
		"author": Schema{
			"@type": "Person",
			"name":  author,
		},
		"publisher":      b.publisher(),
		"articleSection": s.Category,
		"keywords":       strings.Join(s.Keywords, ", "),
	}
	if v := formatTime(s.PublishedTime); v != "" {
		article["datePublished"] = v
	}
	if v := formatTime(s.UpdatedTime); v != "" {
		article["dateModified"] = v
	}

	breadcrumbs := b.breadcrumbs(
		crumb{b.site.Name, b.site.URL},
		crumb{s.Category, b.AbsoluteURL(CanonicalPath(a.CategorySlug))},
		crumb{s.H1, pageURL},
	)
	return []Schema{article, breadcrumbs}
}

// CategorySchemas returns the CollectionPage and BreadcrumbList pair for a
// category page. At most twelve posts are listed.
func (b *Builder) CategorySchemas(s CategorySEO, posts []content.Article) []Schema {
	pageURL := b.AbsoluteURL(s.CanonicalPath)

	if len(posts) > maxCollectionSize {
		posts = posts[:maxCollectionSize]
	}
	entries := make([]Schema, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		entries = append(entries, Schema{
			"@type":    "Article",
			"headline": firstNonEmpty(p.SEOTitle, p.H1, p.Title, content.Humanize(p.Slug)),
			"url":      b.AbsoluteURL(p.Path()),
		})
	}

	collection := Schema{
		"@context":    schemaContext,
		"@type":       "CollectionPage",
		"name":        s.Heading,
		"description": s.Description,
		"url":         pageURL,
		"about":       s.FocusKeyword,
		"mainEntity":  entries,
	}
	breadcrumbs := b.breadcrumbs(
		crumb{b.site.Name, b.site.URL},
		crumb{s.Name, pageURL},
	)
	return []Schema{collection, breadcrumbs}
}

// WebsiteSchema describes the site itself for the home page.
func (b *Builder) WebsiteSchema() Schema {
	return Schema{
		"@context":    schemaContext,
		"@type":       "WebSite",
		"name":        b.site.Name,
		"url":         b.site.URL,
		"description": b.site.DefaultDescription,
		"potentialAction": Schema{
			"@type":       "SearchAction",
			"target":      b.site.URL + "/?q={search_term_string}",
			"query-input": "required name=search_term_string",
		},
	}
}

// OrganizationSchema describes the publisher for about and contact style pages.
func (b *Builder) OrganizationSchema() Schema {
	return Schema{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     b.site.Name,
		"url":      b.site.URL,
		"logo":     b.AbsoluteURL(b.site.DefaultOGImage),
		"sameAs":   b.site.SocialProfiles,
	}
}

// ContactPageSchema describes the contact route.
func (b *Builder) ContactPageSchema() Schema {
	return Schema{
		"@context": schemaContext,
		"@type":    "ContactPage",
		"url":      b.AbsoluteURL("/contact"),
		"mainEntity": Schema{
			"@type": "Organization",
			"name":  b.site.Name,
			"contactPoint": []Schema{{
				"@type":             "ContactPoint",
				"email":             b.site.ContactEmail,
				"contactType":       "customer support",
				"availableLanguage": []string{"English"},
			}},
		},
	}
}

// PolicySchema describes a legal page; schemaType is usually "WebPage".
func (b *Builder) PolicySchema(path, name, schemaType string) Schema {
	if schemaType == "" {
		schemaType = "WebPage"
	}
	return Schema{
		"@context": schemaContext,
		"@type":    schemaType,
		"url":      b.AbsoluteURL(path),
		"name":     name,
		"publisher": Schema{
			"@type": "Organization",
			"name":  b.site.Name,
			"url":   b.site.URL,
		},
	}
}

func (b *Builder) publisher() Schema {
	return Schema{
		"@type": "Organization",
		"name":  b.site.Name,
		"logo": Schema{
			"@type": "ImageObject",
			"url":   b.AbsoluteURL(b.site.DefaultOGImage),
		},
	}
}

type crumb struct {
	name string
	url  string
}

func (b *Builder) breadcrumbs(crumbs ...crumb) Schema {
	items := make([]Schema, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, Schema{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.name,
			"item":     c.url,
		})
	}
	return Schema{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}
