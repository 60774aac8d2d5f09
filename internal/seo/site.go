// Package seo derives crawler-facing metadata and schema.org JSON-LD from content.
// Every builder is a pure function of its inputs and the Site settings; nothing is
// cached and nothing fails, missing fields fall back to site defaults.
package seo

import "strings"

// Site holds the site-wide values every projection falls back to.
type Site struct {
	URL                 string
	Name                string
	Tagline             string
	DefaultDescription  string
	DefaultOGImage      string
	DefaultTwitterImage string
	ContactEmail        string
	SocialProfiles      []string
}

// DefaultSite returns the production settings of the site.
func DefaultSite() Site {
	return Site{
		URL:                 "https://www.ebikereviewlab.com",
		Name:                "EBikeReviewLab",
		Tagline:             "Independent Electric Bike Reviews & Buying Guides",
		DefaultDescription:  "EBikeReviewLab delivers field-tested electric bike reviews, performance data, and buyer guides so commuters, cargo haulers, and trail riders can choose the perfect e-bike with confidence.",
		DefaultOGImage:      "/default-og.png",
		DefaultTwitterImage: "/default-twitter.png",
		ContactEmail:        "hello@ebikereviewlab.com",
		SocialProfiles: []string{
			"https://www.facebook.com/",
			"https://www.instagram.com/",
			"https://www.youtube.com/",
		},
	}
}

// Builder produces metadata for one site.
type Builder struct {
	site Site
}

// NewBuilder fills any empty Site field from DefaultSite.
func NewBuilder(site Site) *Builder {
	def := DefaultSite()
	if site.URL == "" {
		site.URL = def.URL
	}
	site.URL = strings.TrimRight(site.URL, "/")
	if site.Name == "" {
		site.Name = def.Name
	}
	if site.Tagline == "" {
		site.Tagline = def.Tagline
	}
	if site.DefaultDescription == "" {
		site.DefaultDescription = def.DefaultDescription
	}
	if site.DefaultOGImage == "" {
		site.DefaultOGImage = def.DefaultOGImage
	}
	if site.DefaultTwitterImage == "" {
		site.DefaultTwitterImage = def.DefaultTwitterImage
	}
	if site.ContactEmail == "" {
		site.ContactEmail = def.ContactEmail
	}
	if site.SocialProfiles == nil {
		site.SocialProfiles = def.SocialProfiles
	}
	return &Builder{site: site}
}

// Site returns the resolved settings.
func (b *Builder) Site() Site {
	return b.site
}

// AbsoluteURL resolves a site path against the site URL. Absolute URLs pass
// through; an empty path resolves to the default Open Graph image.
func (b *Builder) AbsoluteURL(p string) string {
	if p == "" {
		p = b.site.DefaultOGImage
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return b.site.URL + ensureLeadingSlash(p)
}

func (b *Builder) describe(text string) string {
	if s := Sanitize(text); s != "" {
		return Truncate(s, DescriptionLimit)
	}
	return Truncate(b.site.DefaultDescription, DescriptionLimit)
}
