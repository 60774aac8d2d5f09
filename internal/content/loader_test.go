package content

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func loadDefault(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := LoadFS(DefaultFS())
	if err != nil {
		t.Fatalf("LoadFS(DefaultFS()) error: %v", err)
	}
	return catalog
}

func findArticle(t *testing.T, c *Catalog, key string) Article {
	t.Helper()
	for _, a := range c.Articles {
		if a.Key() == key {
			return a
		}
	}
	t.Fatalf("article %s not found", key)
	return Article{}
}

func TestLoadDefaultCatalog(t *testing.T) {
	c := loadDefault(t)

	if len(c.Categories) != 3 {
		t.Fatalf("categories = %d, want 3", len(c.Categories))
	}
	if len(c.Articles) != 4 {
		t.Fatalf("articles = %d, want 4", len(c.Articles))
	}
}

func TestLoadMoneyArticleFromYAML(t *testing.T) {
	a := findArticle(t, loadDefault(t), "electric-bikes/best-electric-bikes")

	if a.ContentType != Money {
		t.Fatalf("content type = %q, want money", a.ContentType)
	}
	if len(a.Introduction) != 3 {
		t.Fatalf("introduction paragraphs = %d, want 3", len(a.Introduction))
	}
	if got := a.Products[0].ID; got != "aventon-level-3" {
		t.Fatalf("first product = %q, want products ordered by rank", got)
	}
	wantHeaders := []string{"model", "affiliateLink", "price", "motor", "battery", "range", "weight", "bestFor"}
	if !reflect.DeepEqual(a.Comparison.Headers, wantHeaders) {
		t.Fatalf("comparison headers = %v, want %v", a.Comparison.Headers, wantHeaders)
	}
	if len(a.BuyersGuide) != 3 {
		t.Fatalf("buyers guide sections = %d, want 3", len(a.BuyersGuide))
	}
	if got := a.BuyersGuide[1].Bullets[2]; !strings.HasPrefix(got, "1000W+") {
		t.Fatalf("label bullet = %q", got)
	}
	if !a.PublishedAt.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("publishedAt = %v", a.PublishedAt)
	}
}

func TestLoadInformationalArticleFromYAML(t *testing.T) {
	a := findArticle(t, loadDefault(t), "electric-bikes/is-it-worth-getting-electric-bike")

	if a.ContentType != Information {
		t.Fatalf("content type = %q, want information", a.ContentType)
	}
	if len(a.CoreSections) != 3 {
		t.Fatalf("core sections = %d, want 3", len(a.CoreSections))
	}
	if got := a.CoreSections[2].Paragraphs; len(got) != 1 {
		t.Fatalf("scalar paragraphs should become one paragraph, got %v", got)
	}
	if got := a.FAQs[1]; got.Question != "Can I ride an electric bike in the rain?" || !strings.HasPrefix(got.Answer, "Yes.") {
		t.Fatalf("faq aliases not resolved: %+v", got)
	}
	if got := a.FAQs[2].Question; got != "FAQ 3" {
		t.Fatalf("missing question = %q, want FAQ 3", got)
	}
	if len(a.Takeaways) != 3 {
		t.Fatalf("takeaways = %d, want 3", len(a.Takeaways))
	}
}

func TestLoadTOMLAndJSONArticles(t *testing.T) {
	c := loadDefault(t)

	mtb := findArticle(t, c, "electric-mountain-bikes/best-electric-mountain-bikes")
	if len(mtb.Introduction) != 1 {
		t.Fatalf("toml introduction = %v", mtb.Introduction)
	}
	if got := []string{mtb.Products[0].ID, mtb.Products[1].ID, mtb.Products[2].ID}; !reflect.DeepEqual(got, []string{"trek-rail-97", "turbo-levo", "orbea-rise"}) {
		t.Fatalf("toml products order = %v", got)
	}
	if got := mtb.Products[2].Pros; len(got) != 1 {
		t.Fatalf("scalar pros = %v, want one item", got)
	}
	if got := mtb.Comparison.Headers[0]; got != "Model" || len(mtb.Comparison.Rows) != 3 {
		t.Fatalf("toml comparison = %+v", mtb.Comparison)
	}
	if !mtb.PublishedAt.Equal(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date-only publishedAt = %v", mtb.PublishedAt)
	}

	fold := findArticle(t, c, "electric-folding-bikes/how-to-fold-an-electric-bike")
	if fold.ContentType != Information {
		t.Fatalf("legacy informational spelling not mapped: %q", fold.ContentType)
	}
	if fold.FocusKeyword != "How to Fold an Electric Bike" {
		t.Fatalf("primaryKeyword alias = %q", fold.FocusKeyword)
	}
	if len(fold.Introduction) != 1 {
		t.Fatalf("secondaryIntroduction fallback = %v", fold.Introduction)
	}
	if got := fold.CoreSections[0].Bullets; !reflect.DeepEqual(got, []string{"Turn the display off", "Lock or remove the battery"}) {
		t.Fatalf("object bullets = %v", got)
	}
	if fold.FAQs[0].Question != "Does folding wear out the hinge?" {
		t.Fatalf("faq title alias = %q", fold.FAQs[0].Question)
	}
}

func TestLoadFSArticlesListAndErrors(t *testing.T) {
	good := fstest.MapFS{
		"posts/batch.yaml": {Data: []byte(`
articles:
  - categorySlug: electric-bikes
    slug: one
  - categorySlug: electric-bikes
    slug: two
`)},
	}
	c, err := LoadFS(good)
	if err != nil {
		t.Fatalf("LoadFS() error: %v", err)
	}
	if len(c.Articles) != 2 || len(c.Categories) != 0 {
		t.Fatalf("catalog = %+v", c)
	}

	dup := fstest.MapFS{
		"posts/a.yaml": {Data: []byte("categorySlug: electric-bikes\nslug: one\n")},
		"posts/b.json": {Data: []byte(`{"categorySlug": "electric-bikes", "slug": "one"}`)},
	}
	if _, err := LoadFS(dup); !errors.Is(err, ErrDuplicateArticle) {
		t.Fatalf("duplicate identity error = %v, want ErrDuplicateArticle", err)
	}

	bad := map[string]string{
		"unnormalized slug": "categorySlug: electric-bikes\nslug: Best Bikes\n",
		"missing category":  "slug: one\n",
		"bad date":          "categorySlug: electric-bikes\nslug: one\npublishedAt: yesterday\n",
	}
	for name, doc := range bad {
		fsys := fstest.MapFS{"posts/x.yaml": {Data: []byte(doc)}}
		if _, err := LoadFS(fsys); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
