package content

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugAllowed  = regexp.MustCompile(`^[a-z0-9\-]+$`)
	repeatedDash = regexp.MustCompile(`-+`)
	wordSplitter = regexp.MustCompile(`[/\-]+`)
)

// NormalizeSlug turns raw input into a lower-case, hyphenated URL segment.
func NormalizeSlug(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if strings.ContainsAny(trimmed, "/\\?&:#'\"") || strings.Contains(trimmed, "..") {
		return "", errors.New("slug contains invalid path characters")
	}

	trimmed = stripDiacritics(trimmed)
	trimmed = strings.ReplaceAll(trimmed, "%20", " ")

	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '_' || unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			// drop punctuation and symbols
		}
	}

	slug := repeatedDash.ReplaceAllString(b.String(), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "", errors.New("empty slug")
	}
	if !slugAllowed.MatchString(slug) {
		return "", errors.New("slug contains invalid characters")
	}
	return slug, nil
}

// Humanize converts "electric-bikes/best-picks" into "Electric Bikes Best Picks".
func Humanize(slug string) string {
	// Casers keep state, so each call gets its own.
	caser := cases.Title(language.English, cases.NoLower)
	parts := wordSplitter.Split(slug, -1)
	words := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		words = append(words, caser.String(part))
	}
	return strings.Join(words, " ")
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return stripped
}
