package markdown

import (
	"bytes"
	"fmt"
	"maps"

	"github.com/adrg/frontmatter"
)

// HeroMatter describes an optional hero section declared in frontmatter.
type HeroMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	ButtonText  string `yaml:"button_text"`
	ButtonURL   string `yaml:"button_url"`
	MediaURL    string `yaml:"media_url"`
}

// FrontMatter is the metadata block of an imported page.
type FrontMatter struct {
	Title       string         `yaml:"title"`
	Slug        string         `yaml:"slug"`
	Description string         `yaml:"description"`
	Language    string         `yaml:"language"`
	Layout      string         `yaml:"layout"`
	MaxWidth    int            `yaml:"max_width"`
	Favicon     string         `yaml:"favicon"`
	Hero        *HeroMatter    `yaml:"hero"`
	Custom      map[string]any `yaml:",inline"`
}

// ParseFrontMatter splits source into its metadata and the Markdown body
// without delimiters. Sources without frontmatter return an empty FrontMatter.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	meta.Custom = cloneMap(meta.Custom)
	return meta, body, nil
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}
	return maps.Clone(input)
}
