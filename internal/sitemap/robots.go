package sitemap

import (
	"io"
	"strings"
)

// DisallowedPaths are never offered to crawlers.
var DisallowedPaths = []string{"/private", "/drafts"}

// Robots is the crawl policy served at /robots.txt.
type Robots struct {
	UserAgent string
	Allow     string
	Disallow  []string
	Sitemap   string
	Host      string
}

// DefaultRobots allows everything except DisallowedPaths and points at the
// sitemap of siteURL.
func DefaultRobots(siteURL string) Robots {
	siteURL = strings.TrimRight(siteURL, "/")
	return Robots{
		UserAgent: "*",
		Allow:     "/",
		Disallow:  append([]string(nil), DisallowedPaths...),
		Sitemap:   siteURL + "/sitemap.xml",
		Host:      siteURL,
	}
}

func (r Robots) String() string {
	var b strings.Builder
	b.WriteString("User-Agent: " + r.UserAgent + "\n")
	if r.Allow != "" {
		b.WriteString("Allow: " + r.Allow + "\n")
	}
	for _, p := range r.Disallow {
		b.WriteString("Disallow: " + p + "\n")
	}
	b.WriteString("\n")
	if r.Host != "" {
		b.WriteString("Host: " + r.Host + "\n")
	}
	if r.Sitemap != "" {
		b.WriteString("Sitemap: " + r.Sitemap + "\n")
	}
	return b.String()
}

// WriteTo writes the rendered policy.
func (r Robots) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}
