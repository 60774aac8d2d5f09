package seo

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// TitleLimit caps document titles, in characters.
	TitleLimit = 58
	// DescriptionLimit caps meta descriptions, in characters.
	DescriptionLimit = 158

	ellipsis = "…"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	slashRun      = regexp.MustCompile(`/+`)
)

// Sanitize collapses runs of whitespace and trims the ends.
func Sanitize(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// Truncate sanitizes s and, when it exceeds limit characters, cuts it to
// limit-1 characters, trims trailing space and appends an ellipsis.
func Truncate(s string, limit int) string {
	text := Sanitize(s)
	if text == "" || utf8.RuneCountInString(text) <= limit {
		return text
	}
	if limit <= 1 {
		return ellipsis
	}
	runes := []rune(text)
	cut := strings.TrimRightFunc(string(runes[:limit-1]), unicode.IsSpace)
	return cut + ellipsis
}

// CanonicalPath joins path segments with single slashes behind one leading slash.
func CanonicalPath(segments ...string) string {
	joined := slashRun.ReplaceAllString(strings.Join(segments, "/"), "/")
	return ensureLeadingSlash(joined)
}

func ensureLeadingSlash(p string) string {
	if p == "" {
		return "/"
	}
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// Pluralize returns the naive plural forms of a keyword: none when it already
// ends in "s", "ies" for a trailing "y", otherwise an appended "s".
func Pluralize(keyword string) []string {
	if keyword == "" {
		return nil
	}
	lower := strings.ToLower(keyword)
	switch {
	case strings.HasSuffix(lower, "s"):
		return nil
	case strings.HasSuffix(lower, "y"):
		return []string{keyword[:len(keyword)-1] + "ies"}
	default:
		return []string{keyword + "s"}
	}
}

// Dedupe trims entries and drops empties and repeats, keeping first-seen order.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// KeywordVariants builds the keyword set for a focus keyword and optional category.
func KeywordVariants(focus, category string) []string {
	items := []string{focus}
	items = append(items, Pluralize(focus)...)
	if focus != "" {
		items = append(items, focus+" reviews", focus+" guide")
	}
	if category != "" {
		items = append(items, category+" reviews")
	}
	return Dedupe(items)
}
