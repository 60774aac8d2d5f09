package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateArticle signals two documents sharing one category/slug identity.
var ErrDuplicateArticle = errors.New("duplicate article")

//go:embed data
var bundled embed.FS

// DefaultFS returns the content catalog bundled with the binary.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Catalog is the complete authored content set.
type Catalog struct {
	Categories []Category
	Articles   []Article
}

// LoadFS reads categories.yaml and every document under posts/ from fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	categories, err := loadCategories(fsys)
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(fsys, "posts")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read posts: %w", err)
	}

	catalog := &Catalog{Categories: categories}
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := path.Join("posts", entry.Name())
		format := formatOf(name)
		if format == "" {
			continue
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		docs, err := decodeDocuments(format, data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}

		for i, doc := range docs {
			article, err := decodeArticle(doc)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
			}
			key := article.Key()
			if prev, ok := seen[key]; ok {
				return nil, fmt.Errorf("%s: %w %s (first defined in %s)", name, ErrDuplicateArticle, key, prev)
			}
			seen[key] = name
			catalog.Articles = append(catalog.Articles, article)
		}
	}

	return catalog, nil
}

func loadCategories(fsys fs.FS) ([]Category, error) {
	data, err := fs.ReadFile(fsys, "categories.yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}

	var doc struct {
		Categories []Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Categories))
	for i, c := range doc.Categories {
		if err := checkSlug("category slug", c.Slug); err != nil {
			return nil, fmt.Errorf("categories[%d]: %w", i, err)
		}
		if _, dup := seen[c.Slug]; dup {
			return nil, fmt.Errorf("categories[%d]: duplicate slug %q", i, c.Slug)
		}
		seen[c.Slug] = struct{}{}
		if doc.Categories[i].Name == "" {
			doc.Categories[i].Name = Humanize(c.Slug)
		}
	}
	return doc.Categories, nil
}

func formatOf(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	}
	return ""
}

// decodeDocuments returns the article documents of one file: either a single
// document, a top-level list, or a list under "articles".
func decodeDocuments(format string, data []byte) ([]any, error) {
	var root any
	switch format {
	case "yaml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		v, err := nodeValue(&node)
		if err != nil {
			return nil, err
		}
		root = v
	case "toml":
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		root = m
	case "json":
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	if root == nil {
		return nil, nil
	}
	if isMapping(root) {
		if list := lookup(root, "articles"); list != nil {
			return ToList(list), nil
		}
	}
	return ToList(root), nil
}

// nodeValue converts a YAML node tree into plain values, keeping mapping key order.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := nodeValue(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		rec := Record{Values: make(map[string]any, len(n.Content)/2)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			if _, dup := rec.Values[key]; !dup {
				rec.Keys = append(rec.Keys, key)
			}
			rec.Values[key] = v
		}
		return rec, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, nil
}

// Summarize joins the configured categories with the articles published in them.
// Categories that only appear on articles borrow their display fields from the
// first such article.
func Summarize(categories []Category, articles []Article) []CategorySummary {
	counts := make(map[string]int)
	first := make(map[string]*Article)
	var order []string
	for i := range articles {
		slug := articles[i].CategorySlug
		if _, ok := first[slug]; !ok {
			first[slug] = &articles[i]
			order = append(order, slug)
		}
		counts[slug]++
	}

	out := make([]CategorySummary, 0, len(categories)+len(order))
	configured := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		configured[c.Slug] = struct{}{}
		out = append(out, CategorySummary{Category: c, TotalPosts: counts[c.Slug]})
	}

	sort.Strings(order)
	for _, slug := range order {
		if _, ok := configured[slug]; ok {
			continue
		}
		a := first[slug]
		name := a.Category
		if name == "" {
			name = Humanize(slug)
		}
		out = append(out, CategorySummary{
			Category: Category{
				Slug:        slug,
				Name:        name,
				HeroImage:   a.PrimaryImage(),
				Description: a.Summary(),
			},
			TotalPosts: counts[slug],
		})
	}
	return out
}
