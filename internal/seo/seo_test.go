package seo

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"ebikereviewlab/internal/content"
)

func newTestBuilder() *Builder {
	return NewBuilder(Site{})
}

func TestTruncate(t *testing.T) {
	tests := map[string]struct {
		in    string
		limit int
		want  string
	}{
		"short":              {"hello", 10, "hello"},
		"collapse":           {"  a \n\t b  ", 10, "a b"},
		"exact":              {"abcde", 5, "abcde"},
		"cut":                {"abcdef", 5, "abcd…"},
		"trailing space cut": {"abc defgh", 5, "abc…"},
		"multibyte":          {"ééééé", 4, "ééé…"},
		"empty":              {"   ", 5, ""},
	}
	for name, tc := range tests {
		if got := Truncate(tc.in, tc.limit); got != tc.want {
			t.Errorf("%s: Truncate(%q, %d) = %q, want %q", name, tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestCanonicalPath(t *testing.T) {
	tests := map[[2]string]string{
		{"electric-bikes", "best"}:    "/electric-bikes/best",
		{"electric-bikes/", "/best"}:  "/electric-bikes/best",
		{"/electric-bikes//", "best"}: "/electric-bikes/best",
		{"", "orphan"}:                "/orphan",
	}
	for in, want := range tests {
		if got := CanonicalPath(in[0], in[1]); got != want {
			t.Fatalf("CanonicalPath(%q, %q) = %q, want %q", in[0], in[1], got, want)
		}
	}
}

func TestKeywordVariants(t *testing.T) {
	got := KeywordVariants("Electric Bike", "Electric Bikes")
	want := []string{"Electric Bike", "Electric Bikes", "Electric Bike reviews", "Electric Bike guide", "Electric Bikes reviews"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("KeywordVariants() = %v, want %v", got, want)
	}

	if got := Pluralize("Cargo Battery"); !reflect.DeepEqual(got, []string{"Cargo Batteries"}) {
		t.Fatalf("Pluralize(y) = %v", got)
	}
	if got := Pluralize("Folding Bikes"); got != nil {
		t.Fatalf("Pluralize(s) = %v, want none", got)
	}
	if got := KeywordVariants("Bikes", ""); len(got) != 3 {
		t.Fatalf("KeywordVariants without category = %v", got)
	}
}

func TestArticleFocusKeywordFallbacks(t *testing.T) {
	tests := []struct {
		article content.Article
		want    string
	}{
		{content.Article{Slug: "x", FocusKeyword: "Keyword", H1: "Heading", Title: "Title"}, "Keyword"},
		{content.Article{Slug: "x", H1: "Heading", Title: "Title"}, "Heading"},
		{content.Article{Slug: "x", Title: "  Title  "}, "Title"},
		{content.Article{Slug: "best-cargo-bikes"}, "Best Cargo Bikes"},
	}
	for _, tc := range tests {
		if got := FocusKeyword(&tc.article); got != tc.want {
			t.Fatalf("FocusKeyword(%+v) = %q, want %q", tc.article, got, tc.want)
		}
	}
}

func TestArticleTitleComposition(t *testing.T) {
	b := newTestBuilder()
	published := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	money := content.Article{CategorySlug: "electric-bikes", Slug: "cargo", FocusKeyword: "Cargo E-Bikes", PublishedAt: published}
	if got, want := b.Article(&money).Title, "Cargo E-Bikes 2025 – Top Picks & Buying Guide"; got != want {
		t.Fatalf("money title = %q, want %q", got, want)
	}

	info := money
	info.ContentType = content.Information
	info.Year = 2026
	if got, want := b.Article(&info).Title, "Cargo E-Bikes 2026 – Expert Guide & Insights"; got != want {
		t.Fatalf("information title = %q, want %q", got, want)
	}

	already := money
	already.SEOTitle = "Cargo E-Bikes: top picks & buying guide"
	if got := b.Article(&already).Title; got != already.SEOTitle {
		t.Fatalf("modifier appended twice: %q", got)
	}

	custom := money
	custom.TitleModifier = "Tested"
	if got := b.Article(&custom).Title; got != "Cargo E-Bikes 2025 – Tested" {
		t.Fatalf("custom modifier title = %q", got)
	}
}

func TestArticleHeadingDiffersFromTitle(t *testing.T) {
	b := newTestBuilder()

	same := content.Article{
		CategorySlug: "electric-bikes",
		Slug:         "x",
		SEOTitle:     "Best Bikes Top Picks & Buying Guide",
		H1:           "Best Bikes Top Picks & Buying Guide",
		FocusKeyword: "Best Bikes",
		Year:         2025,
	}
	s := b.Article(&same)
	if s.H1 == s.Title {
		t.Fatalf("heading equals title: %q", s.H1)
	}
	if s.H1 != "Best Bikes 2025 Reviewed" {
		t.Fatalf("heading = %q, want qualifier with year", s.H1)
	}

	info := same
	info.ContentType = content.Information
	info.TitleModifier = "Top Picks & Buying Guide"
	if got := b.Article(&info).H1; got != "Best Bikes 2025 Explained" {
		t.Fatalf("information heading = %q", got)
	}

	// the qualified heading collides with the title as well
	twice := content.Article{
		CategorySlug:  "electric-bikes",
		Slug:          "y",
		FocusKeyword:  "Cargo Bikes",
		Year:          2025,
		SEOTitle:      "Cargo Bikes 2025 Reviewed",
		TitleModifier: "Reviewed",
		H1:            "Cargo Bikes 2025 Reviewed",
	}
	s = b.Article(&twice)
	if s.H1 == s.Title {
		t.Fatalf("heading equals title after qualifier: %q", s.H1)
	}
}

func TestArticleDescriptionAndImageFallbacks(t *testing.T) {
	b := newTestBuilder()

	a := content.Article{CategorySlug: "c", Slug: "s", Introduction: []string{"First   paragraph\nhere.", "Second"}}
	s := b.Article(&a)
	if s.Description != "First paragraph here." {
		t.Fatalf("intro description = %q", s.Description)
	}
	if s.Image != "/default-og.png" {
		t.Fatalf("default image = %q", s.Image)
	}

	a.Introduction = nil
	if got := b.Article(&a).Description; !strings.HasPrefix(got, "EBikeReviewLab delivers") || utf8.RuneCountInString(got) > DescriptionLimit {
		t.Fatalf("default description = %q", got)
	}

	a.Products = []content.Product{{Name: "No image"}, {Name: "Pic", ImageURL: "/p.png"}}
	if got := b.Article(&a).Image; got != "/p.png" {
		t.Fatalf("product image fallback = %q", got)
	}
	a.HeroImage = "/hero.png"
	if got := b.Article(&a).Image; got != "/hero.png" {
		t.Fatalf("hero image = %q", got)
	}
	a.ArticleHeroImage = "/article-hero.png"
	if got := b.Article(&a).Image; got != "/article-hero.png" {
		t.Fatalf("article hero image = %q", got)
	}
}

func TestArticleDoesNotMutateInput(t *testing.T) {
	a := content.Article{CategorySlug: "c", Slug: "s", Title: strings.Repeat("long title ", 20)}
	before := *a.Clone()
	newTestBuilder().Article(&a)
	if !reflect.DeepEqual(before, a) {
		t.Fatalf("Article() modified its input")
	}
}

func TestDefaultCatalogProjectionLimits(t *testing.T) {
	catalog, err := content.LoadFS(content.DefaultFS())
	if err != nil {
		t.Fatalf("LoadFS error: %v", err)
	}
	b := newTestBuilder()

	for i := range catalog.Articles {
		a := &catalog.Articles[i]
		s := b.Article(a)
		if n := utf8.RuneCountInString(s.Title); n > TitleLimit {
			t.Errorf("%s: title has %d characters: %q", a.Key(), n, s.Title)
		}
		if n := utf8.RuneCountInString(s.Description); n > DescriptionLimit {
			t.Errorf("%s: description has %d characters", a.Key(), n)
		}
		if s.CanonicalPath != "/"+a.CategorySlug+"/"+a.Slug || strings.Contains(s.CanonicalPath, "//") {
			t.Errorf("%s: canonical path %q", a.Key(), s.CanonicalPath)
		}
		if s.H1 == s.Title {
			t.Errorf("%s: heading equals title", a.Key())
		}
	}
}

func TestLongTitlesAreCapped(t *testing.T) {
	b := newTestBuilder()
	a := content.Article{
		CategorySlug: "electric-bikes",
		Slug:         "best-electric-bikes",
		SEOTitle:     "Best Electric Bikes 2025: Top E-Bike Reviews & Guide",
	}
	got := b.Article(&a).Title
	if utf8.RuneCountInString(got) != TitleLimit || !strings.HasSuffix(got, "…") {
		t.Fatalf("capped title = %q (%d chars)", got, utf8.RuneCountInString(got))
	}
}

func TestArticleMetadata(t *testing.T) {
	b := NewBuilder(Site{URL: "https://example.test/"})
	a := content.Article{
		CategorySlug: "electric-bikes",
		Category:     "Electric Bikes",
		Slug:         "best",
		FocusKeyword: "Best Bikes",
		HeroImage:    "/hero.png",
		PublishedAt:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	m := b.ArticleMetadata(&a)

	if m.Canonical != "https://example.test/electric-bikes/best" {
		t.Fatalf("canonical = %q", m.Canonical)
	}
	if m.OpenGraph.Image.URL != "https://example.test/hero.png" || m.OpenGraph.Image.Width != 1200 || m.OpenGraph.Image.Height != 630 {
		t.Fatalf("og image = %+v", m.OpenGraph.Image)
	}
	if m.OpenGraph.Type != "article" || !strings.HasSuffix(m.OpenGraph.Title, " | EBikeReviewLab") {
		t.Fatalf("og = %+v", m.OpenGraph)
	}
	if m.Twitter.Card != "summary_large_image" || m.Twitter.Image != m.OpenGraph.Image.URL {
		t.Fatalf("twitter = %+v", m.Twitter)
	}
	if m.OpenGraph.PublishedTime != "2025-01-15T00:00:00Z" || m.OpenGraph.ModifiedTime != m.OpenGraph.PublishedTime {
		t.Fatalf("times = %q / %q", m.OpenGraph.PublishedTime, m.OpenGraph.ModifiedTime)
	}

	a.HeroImage = "https://cdn.example.test/hero.png"
	if got := b.ArticleMetadata(&a).OpenGraph.Image.URL; got != a.HeroImage {
		t.Fatalf("absolute image rewritten to %q", got)
	}
}

func TestArticleSchemas(t *testing.T) {
	b := newTestBuilder()
	a := content.Article{CategorySlug: "electric-bikes", Slug: "best", Title: "Best", PublishedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)}
	s := b.Article(&a)
	schemas := b.ArticleSchemas(&a, s)

	if len(schemas) != 2 || schemas[0]["@type"] != "Article" || schemas[1]["@type"] != "BreadcrumbList" {
		t.Fatalf("schemas = %+v", schemas)
	}
	if schemas[0]["headline"] != s.H1 {
		t.Fatalf("headline = %v, want %q", schemas[0]["headline"], s.H1)
	}
	items := schemas[1]["itemListElement"].([]Schema)
	if len(items) != 3 || items[2]["item"] != "https://www.ebikereviewlab.com/electric-bikes/best" {
		t.Fatalf("breadcrumbs = %+v", items)
	}
	if items[1]["name"] != "Electric Bikes" {
		t.Fatalf("humanized category crumb = %v", items[1]["name"])
	}

	raw, err := MarshalSchemas(schemas)
	if err != nil {
		t.Fatalf("MarshalSchemas error: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("schemas are not a JSON array: %v", err)
	}
	if decoded[0]["datePublished"] != "2025-01-15T00:00:00Z" {
		t.Fatalf("datePublished = %v", decoded[0]["datePublished"])
	}
}

func TestCategoryProjection(t *testing.T) {
	b := newTestBuilder()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	var posts []content.Article
	for i := 0; i < 15; i++ {
		posts = append(posts, content.Article{CategorySlug: "electric-bikes", Slug: "post-" + string(rune('a'+i))})
	}
	cat := content.CategorySummary{Category: content.Category{Slug: "electric-bikes", Name: "Electric Bikes"}}
	s := b.Category(cat, posts, now)

	if s.Title != "Electric Bikes 2026 – Buyer's Guide" {
		t.Fatalf("category title = %q", s.Title)
	}
	if s.Heading != "Electric Bike Guides" {
		t.Fatalf("category heading = %q", s.Heading)
	}
	if s.CanonicalPath != "/electric-bikes" || s.Image != "/default-og.png" {
		t.Fatalf("category projection = %+v", s)
	}

	schemas := b.CategorySchemas(s, posts)
	if got := len(schemas[0]["mainEntity"].([]Schema)); got != 12 {
		t.Fatalf("collection entries = %d, want 12", got)
	}

	tests := map[string]struct{ focus, heading string }{
		"Cargo":                   {"Cargo Electric Bikes", "Cargo Electric Bike Guides"},
		"E-Bike Accessories":      {"E-Bike Accessories Electric Bikes", "E-Bike Accessories Electric Bike Guides"},
		"Electric Mountain Bikes": {"Electric Mountain Bikes", "Electric Mountain Bike Guides"},
		"Folding E-Bikes":         {"Folding E-Bikes", "Folding E-Bike Guides"},
	}
	for name, want := range tests {
		got := b.Category(content.CategorySummary{Category: content.Category{Slug: "c", Name: name}}, nil, now)
		if got.FocusKeyword != want.focus || got.Heading != want.heading {
			t.Errorf("Category(%q) focus %q heading %q, want %q / %q", name, got.FocusKeyword, got.Heading, want.focus, want.heading)
		}
	}
}

func TestHomeAndStaticPages(t *testing.T) {
	b := newTestBuilder()
	home := b.Home(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if home.Heading != "Best Electric Bike Reviews & Buying Guides 2026" {
		t.Fatalf("home heading = %q", home.Heading)
	}
	if home.Metadata.Canonical != "https://www.ebikereviewlab.com" || home.Metadata.Twitter.Image != "https://www.ebikereviewlab.com/default-twitter.png" {
		t.Fatalf("home metadata = %+v", home.Metadata)
	}

	about := b.Page(PageOptions{Title: "About", Path: "about"})
	if about.CanonicalPath != "/about" || about.Robots != "index, follow" {
		t.Fatalf("about metadata = %+v", about)
	}
	if nf := b.NotFound("/x/y"); nf.Robots != "noindex, nofollow" {
		t.Fatalf("not found robots = %q", nf.Robots)
	}

	contact := b.ContactPageSchema()
	if contact["url"] != "https://www.ebikereviewlab.com/contact" {
		t.Fatalf("contact schema = %+v", contact)
	}
	if got := b.PolicySchema("/privacy", "Privacy Policy", "")["@type"]; got != "WebPage" {
		t.Fatalf("policy schema type = %v", got)
	}
}
