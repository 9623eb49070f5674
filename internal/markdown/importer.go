package markdown

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-composer/internal/logging"
	sectionstore "github.com/goliatone/go-composer/internal/sections"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/sections"
)

var (
	ErrEmptyDocument      = errors.New("markdown importer: document has no content")
	ErrInvalidFrontMatter = errors.New("markdown importer: invalid frontmatter")
)

// ImporterConfig encapsulates the importer's collaborators.
type ImporterConfig struct {
	Factory *sectionstore.Factory
	Logger  interfaces.Logger
}

// Importer converts Markdown sources into page documents. Frontmatter maps
// onto page properties (and an optional hero); the body becomes one text
// section per thematic-break separated chunk.
type Importer struct {
	factory *sectionstore.Factory
	logger  interfaces.Logger
}

func NewImporter(cfg ImporterConfig) *Importer {
	factory := cfg.Factory
	if factory == nil {
		factory = sectionstore.NewFactory()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{factory: factory, logger: logger}
}

// Result is an imported document plus the metadata it came from.
type Result struct {
	Key         string
	FrontMatter FrontMatter
	Document    sections.Document
}

func (i *Importer) ImportReader(r io.Reader) (*Result, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("markdown importer: read: %w", err)
	}
	return i.Import(source)
}

func (i *Importer) Import(source []byte) (*Result, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	doc := sections.NewDocument()
	applyProperties(&doc.Properties, fm)
	if err := doc.Properties.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	if fm.Hero != nil {
		doc.Sections = append(doc.Sections, i.hero(*fm.Hero))
	}
	for _, chunk := range splitSections(body) {
		doc.Sections = append(doc.Sections, i.text(chunk))
	}
	if len(doc.Sections) == 0 {
		return nil, ErrEmptyDocument
	}

	i.logger.Debug("markdown imported",
		logging.FieldPageKey, fm.Slug,
		"sections", len(doc.Sections),
	)
	return &Result{Key: strings.TrimSpace(fm.Slug), FrontMatter: fm, Document: doc}, nil
}

func applyProperties(props *sections.PageProperties, fm FrontMatter) {
	if v := strings.TrimSpace(fm.Title); v != "" {
		props.Title = v
	}
	if v := strings.TrimSpace(fm.Description); v != "" {
		props.MetaDescription = v
	}
	if v := strings.TrimSpace(fm.Language); v != "" {
		props.Language = v
	}
	if v := strings.TrimSpace(fm.Layout); v != "" {
		props.LayoutWidth = v
	}
	if fm.MaxWidth > 0 {
		props.MaxWidth = fm.MaxWidth
	}
	if v := strings.TrimSpace(fm.Favicon); v != "" {
		props.Favicon = v
	}
}

func (i *Importer) hero(h HeroMatter) sections.Section {
	s := i.factory.Create(sections.VariantHero)
	hero := s.(*sections.Hero)
	if h.Title != "" {
		hero.Title = h.Title
	}
	hero.Description = h.Description
	if h.ButtonText != "" {
		hero.ButtonText = h.ButtonText
	}
	if h.ButtonURL != "" {
		hero.ButtonURL = h.ButtonURL
	}
	if h.MediaURL != "" {
		hero.BackgroundMediaURL = h.MediaURL
		hero.BackgroundMediaType = sections.MediaImage
	}
	return sections.Normalize(hero)
}

func (i *Importer) text(chunk string) sections.Section {
	s := i.factory.Create(sections.VariantText)
	text := s.(*sections.Text)
	text.Title, text.Content = splitHeading(chunk)
	return text
}

// splitHeading lifts a leading ATX heading out of chunk.
func splitHeading(chunk string) (string, string) {
	first, rest, _ := strings.Cut(chunk, "\n")
	trimmed := strings.TrimSpace(first)
	if !strings.HasPrefix(trimmed, "#") {
		return "", chunk
	}
	title := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
	if title == "" {
		return "", chunk
	}
	return title, strings.TrimSpace(rest)
}

// splitSections cuts body on thematic breaks outside fenced code. A dash
// line directly under text is a setext heading and does not split.
func splitSections(body []byte) []string {
	var (
		chunks  []string
		current []string
		fence   string
	)
	flush := func() {
		chunk := strings.TrimSpace(strings.Join(current, "\n"))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		current = current[:0]
	}

	lines := strings.Split(strings.ReplaceAll(string(body), "\r\n", "\n"), "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case fence != "":
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
		case strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~"):
			fence = trimmed[:3]
		case isThematicBreak(trimmed) && previousBlank(current):
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return chunks
}

func previousBlank(lines []string) bool {
	return len(lines) == 0 || strings.TrimSpace(lines[len(lines)-1]) == ""
}

func isThematicBreak(line string) bool {
	compact := strings.ReplaceAll(line, " ", "")
	if len(compact) < 3 {
		return false
	}
	marker := compact[0]
	if marker != '-' && marker != '*' && marker != '_' {
		return false
	}
	return strings.Count(compact, string(marker)) == len(compact)
}
