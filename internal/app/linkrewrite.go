package app

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ebikereviewlab/internal/content"
)

const outboundRel = "sponsored nofollow noopener"

// reservedPrefixes are first path segments that never name a category.
var reservedPrefixes = map[string]struct{}{
	"static":     {},
	"newsletter": {},
	"contact":    {},
}

// decorateLinks rewrites the anchors of a rendered page body. Links to
// articles that published does not report are turned into plain text spans
// and outbound links are marked as sponsored.
func decorateLinks(body string, published func(key string) bool) (string, error) {
	if !strings.Contains(body, "<a") {
		return body, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse body: %w", err)
	}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if isOutbound(href) {
			a.SetAttr("rel", outboundRel)
			a.SetAttr("target", "_blank")
			return
		}
		key, ok := articleKeyFromPath(href)
		if !ok || published(key) {
			return
		}
		a.ReplaceWithHtml(fmt.Sprintf(`<span class="missing-guide" data-href="%s">%s</span>`,
			html.EscapeString(href), html.EscapeString(a.Text())))
	})

	return doc.Find("body").Html()
}

func isOutbound(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") || strings.HasPrefix(href, "//")
}

// articleKeyFromPath returns the article key for site paths of the form
// /category/slug, ignoring any query or fragment.
func articleKeyFromPath(href string) (string, bool) {
	if !strings.HasPrefix(href, "/") || strings.HasPrefix(href, "//") {
		return "", false
	}
	if idx := strings.IndexAny(href, "?#"); idx >= 0 {
		href = href[:idx]
	}
	parts := strings.Split(strings.Trim(href, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	if _, reserved := reservedPrefixes[strings.ToLower(parts[0])]; reserved {
		return "", false
	}
	return content.ArticleKey(parts[0], parts[1]), true
}
