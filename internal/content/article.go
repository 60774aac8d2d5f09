package content

import (
	"strings"
	"time"
)

// ContentType discriminates money (product roundup) articles from informational ones.
type ContentType string

const (
	Money       ContentType = "money"
	Information ContentType = "information"
)

// ParseContentType maps stored spellings onto the two known article kinds.
// Anything unrecognised is treated as a money article.
func ParseContentType(raw string) ContentType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "information", "informational", "info":
		return Information
	default:
		return Money
	}
}

// Article is a single published post. Money-only and informational-only fields
// are left empty for the other kind.
type Article struct {
	CategorySlug string      `json:"categorySlug"`
	Category     string      `json:"category,omitempty"`
	Slug         string      `json:"slug"`
	ContentType  ContentType `json:"contentType"`

	Title           string `json:"title,omitempty"`
	H1              string `json:"h1,omitempty"`
	SEOTitle        string `json:"seoTitle,omitempty"`
	TitleModifier   string `json:"titleModifier,omitempty"`
	FocusKeyword    string `json:"focusKeyword,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	Year            int    `json:"year,omitempty"`
	AuthorName      string `json:"authorName,omitempty"`

	PublishedAt time.Time `json:"publishedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	HeroImage        string `json:"heroImage,omitempty"`
	ArticleHeroImage string `json:"articleHeroImage,omitempty"`
	CardImage        string `json:"cardImage,omitempty"`
	HeroImageAlt     string `json:"heroImageAlt,omitempty"`

	Introduction         []string    `json:"introduction,omitempty"`
	EstimatedReadingTime int         `json:"estimatedReadingTime,omitempty"`
	RelatedGuides        []GuideLink `json:"relatedGuides,omitempty"`
	Products             []Product   `json:"products,omitempty"`

	// money
	TopProductsHeading string         `json:"topProductsHeading,omitempty"`
	TopProductsIntro   string         `json:"topProductsIntro,omitempty"`
	ProductCTALabel    string         `json:"productCtaLabel,omitempty"`
	Comparison         Table          `json:"comparison"`
	BuyersGuideTitle   string         `json:"buyersGuideTitle,omitempty"`
	BuyersGuide        []GuideSection `json:"buyersGuide,omitempty"`

	// information
	IntroductionHeading string        `json:"introductionHeading,omitempty"`
	IntroductionHook    string        `json:"introductionHook,omitempty"`
	SnippetAnswer       string        `json:"snippetAnswer,omitempty"`
	Roadmap             string        `json:"roadmap,omitempty"`
	CoreHeading         string        `json:"coreHeading,omitempty"`
	CoreSections        []CoreSection `json:"coreSections,omitempty"`
	FAQHeading          string        `json:"faqHeading,omitempty"`
	FAQs                []FAQ         `json:"faqs,omitempty"`
	TakeawayHeading     string        `json:"takeawayHeading,omitempty"`
	Takeaways           []string      `json:"takeaways,omitempty"`
}

// Product is one ranked entry of a money article.
type Product struct {
	ID               string   `json:"id,omitempty"`
	Rank             int      `json:"rank,omitempty"`
	Name             string   `json:"name"`
	Badge            string   `json:"badge,omitempty"`
	ImageURL         string   `json:"imageUrl,omitempty"`
	Description      string   `json:"description,omitempty"`
	KeyFeatures      []string `json:"keyFeatures,omitempty"`
	PerformanceNotes []string `json:"performanceNotes,omitempty"`
	WhoItsBestFor    string   `json:"whoItsBestFor,omitempty"`
	Pros             []string `json:"pros,omitempty"`
	Cons             []string `json:"cons,omitempty"`
	AffiliateLink    string   `json:"affiliateLink,omitempty"`
}

// Table is the canonical comparison table shape.
type Table struct {
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}

// Empty reports whether the table has nothing to render.
func (t Table) Empty() bool {
	return len(t.Headers) == 0 || len(t.Rows) == 0
}

// CoreSection is a titled block of an informational article.
type CoreSection struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	Bullets    []string `json:"bullets,omitempty"`
}

// GuideSection is a titled block of a money article's buyer's guide.
type GuideSection struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	Bullets    []string `json:"bullets,omitempty"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type GuideLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Key returns the lower-cased "category/slug" identity used by placements.
func (a *Article) Key() string {
	return ArticleKey(a.CategorySlug, a.Slug)
}

// Path returns the routing path of the article.
func (a *Article) Path() string {
	return "/" + a.CategorySlug + "/" + a.Slug
}

// IsMoney reports whether the article is a product roundup.
func (a *Article) IsMoney() bool {
	return a.ContentType != Information
}

// LastModified prefers the update timestamp over the publish timestamp.
func (a *Article) LastModified() time.Time {
	if !a.UpdatedAt.IsZero() {
		return a.UpdatedAt
	}
	return a.PublishedAt
}

// PrimaryImage returns the first configured image usable on cards.
func (a *Article) PrimaryImage() string {
	for _, candidate := range []string{a.CardImage, a.HeroImage, a.ArticleHeroImage} {
		if candidate != "" {
			return candidate
		}
	}
	for _, p := range a.Products {
		if p.ImageURL != "" {
			return p.ImageURL
		}
	}
	return ""
}

// Summary returns the short text shown on cards.
func (a *Article) Summary() string {
	if a.MetaDescription != "" {
		return a.MetaDescription
	}
	if len(a.Introduction) > 0 {
		return a.Introduction[0]
	}
	return ""
}

// DisplayTitle returns the best human facing title.
func (a *Article) DisplayTitle() string {
	if a.Title != "" {
		return a.Title
	}
	if a.H1 != "" {
		return a.H1
	}
	return Humanize(a.Slug)
}

// Clone returns a deep copy so callers can never mutate catalog state.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	c := *a
	c.Introduction = cloneStrings(a.Introduction)
	c.Takeaways = cloneStrings(a.Takeaways)
	c.RelatedGuides = append([]GuideLink(nil), a.RelatedGuides...)
	c.FAQs = append([]FAQ(nil), a.FAQs...)

	if a.Products != nil {
		c.Products = make([]Product, len(a.Products))
		for i, p := range a.Products {
			p.KeyFeatures = cloneStrings(p.KeyFeatures)
			p.PerformanceNotes = cloneStrings(p.PerformanceNotes)
			p.Pros = cloneStrings(p.Pros)
			p.Cons = cloneStrings(p.Cons)
			c.Products[i] = p
		}
	}

	c.Comparison.Headers = cloneStrings(a.Comparison.Headers)
	if a.Comparison.Rows != nil {
		c.Comparison.Rows = make([][]string, len(a.Comparison.Rows))
		for i, row := range a.Comparison.Rows {
			c.Comparison.Rows[i] = cloneStrings(row)
		}
	}

	if a.BuyersGuide != nil {
		c.BuyersGuide = make([]GuideSection, len(a.BuyersGuide))
		for i, s := range a.BuyersGuide {
			s.Paragraphs = cloneStrings(s.Paragraphs)
			s.Bullets = cloneStrings(s.Bullets)
			c.BuyersGuide[i] = s
		}
	}
	if a.CoreSections != nil {
		c.CoreSections = make([]CoreSection, len(a.CoreSections))
		for i, s := range a.CoreSections {
			s.Paragraphs = cloneStrings(s.Paragraphs)
			s.Bullets = cloneStrings(s.Bullets)
			c.CoreSections[i] = s
		}
	}
	return &c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ArticleKey builds the lower-cased "category/slug" identity.
func ArticleKey(category, slug string) string {
	return strings.ToLower(strings.Trim(category, "/") + "/" + strings.Trim(slug, "/"))
}

// Category is one entry of the fixed category set.
type Category struct {
	Slug        string `json:"slug" yaml:"slug"`
	Name        string `json:"name" yaml:"name"`
	HeroImage   string `json:"heroImage,omitempty" yaml:"heroImage"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// CategorySummary is a category together with what is published in it.
type CategorySummary struct {
	Category
	TotalPosts int
}
