package app

import (
	"embed"
	"html/template"
	"regexp"
	"strings"
	"time"

	"ebikereviewlab/internal/content"
)

// templateFS contains the HTML templates bundled with the binary.
//
//go:embed templates/*
var templateFS embed.FS

// staticFS holds the stylesheet and the contact form script.
//
//go:embed static/*
var staticFS embed.FS

var boldMarkup = regexp.MustCompile(`\*\*(.+?)\*\*`)

var templateFuncs = template.FuncMap{
	"inline":     inline,
	"active":     isActive,
	"date":       formatDate,
	"humanize":   content.Humanize,
	"add":        func(a, b int) int { return a + b },
	"hasPrefix":  strings.HasPrefix,
	"ctaLabel":   ctaLabel,
	"cardImage":  func(a content.Article) string { return a.PrimaryImage() },
	"cardTitle":  func(a content.Article) string { return a.DisplayTitle() },
	"cardText":   func(a content.Article) string { return a.Summary() },
	"articleURL": func(a content.Article) string { return a.Path() },
}

// inline escapes s and renders **bold** spans as <strong>.
func inline(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(boldMarkup.ReplaceAllString(escaped, "<strong>$1</strong>"))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("January 2, 2006")
}

func ctaLabel(a *content.Article) string {
	if a.ProductCTALabel != "" {
		return a.ProductCTALabel
	}
	return "Check Price"
}
