package seo

import (
	"strconv"
	"strings"
	"time"

	"ebikereviewlab/internal/content"
)

const (
	moneyModifier       = "Top Picks & Buying Guide"
	informationModifier = "Expert Guide & Insights"
)

// ArticleSEO is the derived, never persisted projection of one article.
type ArticleSEO struct {
	FocusKeyword  string
	Keywords      []string
	Title         string
	H1            string
	Description   string
	CanonicalPath string
	Image         string
	Category      string
	Year          int
	PublishedTime time.Time
	UpdatedTime   time.Time
	ReadingTime   int
}

// Article derives the projection for a. The article is not modified.
func (b *Builder) Article(a *content.Article) ArticleSEO {
	focus := FocusKeyword(a)
	year := a.Year
	if year == 0 && !a.PublishedAt.IsZero() {
		year = a.PublishedAt.UTC().Year()
	}

	title := composeTitle(a, focus, year)

	heading := firstNonEmpty(Sanitize(a.H1), Sanitize(a.Title), focus)
	if heading == title {
		qualifier := "Reviewed"
		if a.ContentType == content.Information {
			qualifier = "Explained"
		}
		heading = joinNonEmpty(focus, yearText(year), qualifier)
		if heading == title {
			heading = title + " " + qualifier
		}
	}

	description := ""
	switch {
	case a.MetaDescription != "":
		description = a.MetaDescription
	case len(a.Introduction) > 0:
		description = a.Introduction[0]
	}

	category := categoryName(a)
	updated := a.UpdatedAt
	if updated.IsZero() {
		updated = a.PublishedAt
	}

	return ArticleSEO{
		FocusKeyword:  focus,
		Keywords:      KeywordVariants(focus, category),
		Title:         title,
		H1:            heading,
		Description:   b.describe(description),
		CanonicalPath: CanonicalPath(a.CategorySlug, a.Slug),
		Image:         b.articleImage(a),
		Category:      category,
		Year:          year,
		PublishedTime: a.PublishedAt,
		UpdatedTime:   updated,
		ReadingTime:   a.EstimatedReadingTime,
	}
}

// FocusKeyword resolves the term an article is optimised around: the explicit
// keyword, then the heading, then the title, then the humanized slug.
func FocusKeyword(a *content.Article) string {
	return firstNonEmpty(
		Sanitize(a.FocusKeyword),
		Sanitize(a.H1),
		Sanitize(a.Title),
		content.Humanize(a.Slug),
	)
}

func composeTitle(a *content.Article, focus string, year int) string {
	base := Sanitize(a.SEOTitle)
	if base == "" {
		base = joinNonEmpty(focus, yearText(year))
	}

	modifier := a.TitleModifier
	if modifier == "" {
		modifier = moneyModifier
		if a.ContentType == content.Information {
			modifier = informationModifier
		}
	}

	title := base
	if base == "" {
		title = modifier
	} else if !strings.Contains(strings.ToLower(base), strings.ToLower(modifier)) {
		title = base + " – " + modifier
	}
	return Truncate(title, TitleLimit)
}

func (b *Builder) articleImage(a *content.Article) string {
	if a.ArticleHeroImage != "" {
		return a.ArticleHeroImage
	}
	if a.HeroImage != "" {
		return a.HeroImage
	}
	for _, p := range a.Products {
		if p.ImageURL != "" {
			return p.ImageURL
		}
	}
	return b.site.DefaultOGImage
}

func categoryName(a *content.Article) string {
	if a.Category != "" {
		return a.Category
	}
	return content.Humanize(a.CategorySlug)
}

func yearText(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
