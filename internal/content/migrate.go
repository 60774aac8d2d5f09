package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// decodeArticle converts one raw document into an Article. Legacy field names and
// loosely shaped values are resolved here once, so rendering code only ever sees
// the canonical shape.
func decodeArticle(doc any) (Article, error) {
	if !isMapping(doc) {
		return Article{}, errors.New("article document is not a mapping")
	}
	text := func(keys ...string) string {
		for _, key := range keys {
			if s := DisplayText(lookup(doc, key)); s != "" {
				return s
			}
		}
		return ""
	}

	a := Article{
		CategorySlug:    text("categorySlug"),
		Category:        text("category", "categoryName"),
		Slug:            text("slug"),
		ContentType:     ParseContentType(text("contentType")),
		Title:           text("title"),
		H1:              text("h1"),
		SEOTitle:        text("seoTitle"),
		TitleModifier:   text("titleModifier"),
		FocusKeyword:    text("focusKeyword", "primaryKeyword"),
		MetaDescription: text("metaDescription"),
		Year:            intValue(lookup(doc, "year")),
		AuthorName:      text("authorName", "author"),

		HeroImage:        text("heroImage"),
		ArticleHeroImage: text("articleHeroImage"),
		CardImage:        text("cardImage"),
		HeroImageAlt:     text("heroImageAlt"),

		EstimatedReadingTime: intValue(lookup(doc, "estimatedReadingTime")),

		TopProductsHeading: text("topProductsHeading"),
		TopProductsIntro:   text("topProductsIntro"),
		ProductCTALabel:    text("productCtaLabel"),
		BuyersGuideTitle:   text("buyersGuideTitle"),

		IntroductionHeading: text("introductionHeading"),
		IntroductionHook:    text("introductionHook"),
		SnippetAnswer:       text("snippetAnswer"),
		Roadmap:             text("roadmap"),
		CoreHeading:         text("coreHeading"),
		FAQHeading:          text("contextHeading", "faqHeading"),
		TakeawayHeading:     text("takeawayHeading"),
	}

	if err := checkSlug("categorySlug", a.CategorySlug); err != nil {
		return a, err
	}
	if err := checkSlug("slug", a.Slug); err != nil {
		return a, err
	}

	var err error
	if a.PublishedAt, err = parseTimestamp(lookup(doc, "publishedAt")); err != nil {
		return a, fmt.Errorf("%s publishedAt: %w", a.Key(), err)
	}
	if a.UpdatedAt, err = parseTimestamp(lookup(doc, "updatedAt")); err != nil {
		return a, fmt.Errorf("%s updatedAt: %w", a.Key(), err)
	}

	for _, key := range []string{"introduction", "introductionParagraphs", "secondaryIntroduction"} {
		if paragraphs := Strings(lookup(doc, key)); len(paragraphs) > 0 {
			a.Introduction = paragraphs
			break
		}
	}

	a.Products = decodeProducts(lookup(doc, "products"))
	a.RelatedGuides = decodeGuideLinks(lookup(doc, "relatedGuides"))

	if raw := firstPresent(doc, "comparisonTable", "comparison"); raw != nil {
		a.Comparison = ToTable(raw)
	}
	for _, raw := range ToList(firstPresent(doc, "buyersGuideSections", "buyersGuide")) {
		s := GuideSection{
			Title:      DisplayText(lookup(raw, "title")),
			Paragraphs: Strings(lookup(raw, "paragraphs")),
			Bullets:    Strings(lookup(raw, "bullets")),
		}
		if s.Title != "" || len(s.Paragraphs) > 0 || len(s.Bullets) > 0 {
			a.BuyersGuide = append(a.BuyersGuide, s)
		}
	}
	for _, raw := range ToList(lookup(doc, "coreSections")) {
		s := CoreSection{
			Title:      DisplayText(lookup(raw, "title")),
			Paragraphs: Strings(lookup(raw, "paragraphs")),
			Bullets:    Strings(lookup(raw, "bullets")),
		}
		if s.Title != "" || len(s.Paragraphs) > 0 || len(s.Bullets) > 0 {
			a.CoreSections = append(a.CoreSections, s)
		}
	}
	a.FAQs = decodeFAQs(firstPresent(doc, "contextFAQs", "faqs"))
	a.Takeaways = Strings(firstPresent(doc, "takeawayBullets", "takeaways"))

	return a, nil
}

func checkSlug(field, value string) error {
	if value == "" {
		return fmt.Errorf("missing %s", field)
	}
	normalized, err := NormalizeSlug(value)
	if err != nil {
		return fmt.Errorf("%s %q: %w", field, value, err)
	}
	if normalized != value {
		return fmt.Errorf("%s %q is not normalized (want %q)", field, value, normalized)
	}
	return nil
}

func firstPresent(doc any, keys ...string) any {
	for _, key := range keys {
		if v := lookup(doc, key); v != nil {
			return v
		}
	}
	return nil
}

func decodeProducts(raw any) []Product {
	items := ToList(raw)
	products := make([]Product, 0, len(items))
	for _, item := range items {
		if !isMapping(item) {
			continue
		}
		p := Product{
			ID:               DisplayText(lookup(item, "id")),
			Rank:             intValue(lookup(item, "rank")),
			Name:             DisplayText(lookup(item, "name")),
			Badge:            DisplayText(lookup(item, "badge")),
			ImageURL:         FirstText(lookup(item, "imageUrl"), lookup(item, "image")),
			Description:      DisplayText(lookup(item, "description")),
			KeyFeatures:      Strings(lookup(item, "keyFeatures")),
			PerformanceNotes: Strings(lookup(item, "performanceNotes")),
			WhoItsBestFor:    DisplayText(lookup(item, "whoItsBestFor")),
			Pros:             Strings(lookup(item, "pros")),
			Cons:             Strings(lookup(item, "cons")),
			AffiliateLink:    DisplayText(lookup(item, "affiliateLink")),
		}
		if p.Name == "" {
			continue
		}
		products = append(products, p)
	}

	sort.SliceStable(products, func(i, j int) bool {
		ri, rj := products[i].Rank, products[j].Rank
		if ri == 0 || rj == 0 {
			return ri != 0 && rj == 0
		}
		return ri < rj
	})
	if len(products) == 0 {
		return nil
	}
	return products
}

func decodeGuideLinks(raw any) []GuideLink {
	var links []GuideLink
	for _, item := range ToList(raw) {
		link := GuideLink{
			Title: FirstText(lookup(item, "title"), lookup(item, "label")),
			URL:   FirstText(lookup(item, "url"), lookup(item, "href")),
		}
		if s, ok := item.(string); ok {
			link = GuideLink{Title: Humanize(s), URL: strings.TrimSpace(s)}
		}
		if link.URL == "" {
			continue
		}
		if link.Title == "" {
			link.Title = Humanize(link.URL)
		}
		links = append(links, link)
	}
	return links
}

func decodeFAQs(raw any) []FAQ {
	var faqs []FAQ
	for i, item := range ToList(raw) {
		if !isMapping(item) {
			continue
		}
		q := FirstText(lookup(item, "question"), lookup(item, "heading"), lookup(item, "title"))
		if q == "" {
			q = fmt.Sprintf("FAQ %d", i+1)
		}
		a := FirstText(lookup(item, "answer"), lookup(item, "response"))
		faqs = append(faqs, FAQ{Question: q, Answer: a})
	}
	return faqs
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t.UTC(), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, nil
		}
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
	case fmt.Stringer:
		// TOML local dates and datetimes
		return parseTimestamp(t.String())
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp value %T", v)
	}
}
