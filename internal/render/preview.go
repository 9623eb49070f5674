package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/goliatone/go-composer/internal/markdown"
	"github.com/goliatone/go-composer/sections"
)

// NewPreviewRegistry returns a registry with a generic HTML preview bound to
// every variant. Text content is rendered as Markdown.
func NewPreviewRegistry(parser *markdown.GoldmarkParser) *Registry {
	if parser == nil {
		parser = markdown.NewGoldmarkParser(markdown.DefaultOptions())
	}
	reg := NewRegistry()
	generic := &previewRenderer{markdown: parser}
	for _, v := range sections.Variants() {
		_ = reg.Register(v, generic)
	}
	return reg
}

var (
	titleKeys       = []string{"title", "headline", "siteName", "name"}
	subtitleKeys    = []string{"subtitle"}
	descriptionKeys = []string{"description", "bio", "caption", "copyright"}
	mediaKeys       = []string{"backgroundMediaUrl", "leftMediaUrl", "imageUrl", "videoUrl", "posterUrl", "logoUrl", "avatarUrl", "profileImageUrl"}
	collectionKeys  = []string{"cards", "slides", "images", "items", "plans", "members", "links", "social", "fields"}
	itemTitleKeys   = []string{"title", "name", "question", "label", "author", "network", "text"}
	itemTextKeys    = []string{"description", "subtitle", "answer", "quote", "value", "caption", "bio", "price"}
	itemMediaKeys   = []string{"thumbnailUrl", "mediaUrl", "photoUrl", "avatarUrl"}
	itemLinkKeys    = []string{"linkUrl", "buttonUrl"}
)

type previewItem struct {
	ID       string
	Title    string
	Text     string
	MediaURL string
	LinkURL  string
}

type previewData struct {
	ID          string
	Type        string
	Title       string
	Subtitle    string
	Description string
	Body        template.HTML
	Media       []string
	Items       []previewItem
	ButtonText  string
	ButtonURL   string
	Editing     bool
}

type previewRenderer struct {
	markdown *markdown.GoldmarkParser
}

func (p *previewRenderer) Render(_ context.Context, s sections.Section, view View) (template.HTML, error) {
	fields, err := fieldMap(s)
	if err != nil {
		return "", err
	}
	data := previewData{
		ID:          s.SectionBase().ID,
		Type:        string(s.Variant()),
		Title:       firstString(fields, titleKeys),
		Subtitle:    firstString(fields, subtitleKeys),
		Description: firstString(fields, descriptionKeys),
		ButtonText:  stringField(fields, "buttonText"),
		ButtonURL:   stringField(fields, "buttonUrl"),
		Editing:     view.Editing,
	}
	for _, key := range mediaKeys {
		if url := stringField(fields, key); url != "" {
			data.Media = append(data.Media, url)
		}
	}
	for _, key := range collectionKeys {
		data.Items = append(data.Items, collectItems(fields[key], key == "images")...)
	}
	if content := stringField(fields, "content"); content != "" {
		html, err := p.markdown.Render([]byte(content))
		if err != nil {
			return "", err
		}
		data.Body = template.HTML(html)
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render preview %s: %w", data.Type, err)
	}
	return template.HTML(buf.String()), nil
}

func fieldMap(s sections.Section) (map[string]any, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("render: encode section: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("render: decode section: %w", err)
	}
	return out, nil
}

// collectItems flattens a nested list. A bare "url" is the item's image when
// urlIsMedia is set and its link otherwise.
func collectItems(value any, urlIsMedia bool) []previewItem {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	items := make([]previewItem, 0, len(list))
	for _, entry := range list {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		item := previewItem{
			ID:       stringField(fields, "id"),
			Title:    firstString(fields, itemTitleKeys),
			Text:     firstString(fields, itemTextKeys),
			MediaURL: firstString(fields, itemMediaKeys),
			LinkURL:  firstString(fields, itemLinkKeys),
		}
		if url := stringField(fields, "url"); url != "" {
			if urlIsMedia && item.MediaURL == "" {
				item.MediaURL = url
			} else if !urlIsMedia && item.LinkURL == "" {
				item.LinkURL = url
			}
		}
		items = append(items, item)
	}
	return items
}

func firstString(fields map[string]any, keys []string) string {
	for _, key := range keys {
		if v := stringField(fields, key); v != "" {
			return v
		}
	}
	return ""
}

func stringField(fields map[string]any, key string) string {
	v, _ := fields[key].(string)
	return v
}

var previewTemplate = template.Must(template.New("preview").Parse(`<div class="composer-{{.Type}}">
{{- range .Media}}<img src="{{.}}" alt="">{{end -}}
{{- if .Title}}<h2>{{.Title}}</h2>{{end -}}
{{- if .Subtitle}}<h3>{{.Subtitle}}</h3>{{end -}}
{{- if .Description}}<p>{{.Description}}</p>{{end -}}
{{- .Body -}}
{{- if .Items}}<ul>{{range .Items}}<li{{if $.Editing}}{{if .ID}} data-item-id="{{.ID}}"{{end}}{{end}}>
{{- if .MediaURL}}<img src="{{.MediaURL}}" alt="">{{end -}}
{{- if .LinkURL}}<a href="{{.LinkURL}}">{{.Title}}</a>{{else}}{{.Title}}{{end -}}
{{- if .Text}} <span>{{.Text}}</span>{{end -}}
</li>{{end}}</ul>{{end -}}
{{- if .ButtonText}}<a class="button" href="{{.ButtonURL}}">{{.ButtonText}}</a>{{end -}}
</div>`))
