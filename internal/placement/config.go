// Package placement resolves editorially configured article lists for the
// home, category and post pages.
package placement

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"ebikereviewlab/internal/content"
)

// DefaultFile is the placement file name inside the content tree.
const DefaultFile = "placements.yaml"

// IDList is a list of article identifiers. A single scalar decodes as a
// one-element list.
type IDList []string

func (l *IDList) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	ids := make([]string, 0)
	for _, s := range content.Strings(raw) {
		ids = append(ids, strings.ToLower(s))
	}
	*l = ids
	return nil
}

// Config mirrors placements.yaml.
type Config struct {
	Home       Home                   `yaml:"home"`
	Categories map[string]Region      `yaml:"categories"`
	Posts      map[string]PostRegions `yaml:"posts"`
}

type Home struct {
	Hero     IDList   `yaml:"hero"`
	Showcase Showcase `yaml:"showcase"`
	Gallery  IDList   `yaml:"gallery"`
}

// Showcase regions are nil when the key is absent, which lets the page tell
// "not configured" apart from "configured empty".
type Showcase struct {
	Latest  *IDList `yaml:"latest"`
	Sidebar *IDList `yaml:"sidebar"`
}

type Region struct {
	Sidebar IDList `yaml:"sidebar"`
}

type PostRegions struct {
	Sidebar IDList `yaml:"sidebar"`
	Popular IDList `yaml:"popular"`
	Related IDList `yaml:"related"`
}

// Parse decodes a placement document. Empty input yields an empty Config.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse placements: %w", err)
	}
	cfg.Categories = lowerKeys(cfg.Categories)
	cfg.Posts = lowerKeys(cfg.Posts)
	return cfg, nil
}

// Load reads name from fsys. A missing file is not an error.
func Load(fsys fs.FS, name string) (Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read placements: %w", err)
	}
	return Parse(data)
}

func lowerKeys[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[strings.Trim(strings.ToLower(strings.TrimSpace(k)), "/")] = v
	}
	return out
}
