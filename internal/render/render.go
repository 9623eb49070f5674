package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-composer/internal/media"
	sectionstore "github.com/goliatone/go-composer/internal/sections"
	"github.com/goliatone/go-composer/sections"
)

var (
	ErrUnknownVariant    = errors.New("render: unknown variant")
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
	ErrUnhandledVariant  = errors.New("render: variant has no renderer")
)

// Intents are the mutation entry points a renderer may call while editing.
type Intents interface {
	UpdateSection(ctx context.Context, id string, patch sectionstore.Patch) (bool, error)
	RemoveSection(ctx context.Context, id string) (bool, error)
	MoveUp(ctx context.Context, id string) (bool, error)
	MoveDown(ctx context.Context, id string) (bool, error)
	Duplicate(ctx context.Context, id string) (bool, error)
	OpenMediaPicker(ctx context.Context, target media.EditingTarget) error
}

// View carries per-render state. Intents is nil for read-only renders.
type View struct {
	Editing bool
	Intents Intents
}

// Renderer renders one section.
type Renderer interface {
	Render(ctx context.Context, s sections.Section, view View) (template.HTML, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, s sections.Section, view View) (template.HTML, error)

func (fn RendererFunc) Render(ctx context.Context, s sections.Section, view View) (template.HTML, error) {
	return fn(ctx, s, view)
}

// UnhandledVariantsError lists the variants a registry cannot render.
type UnhandledVariantsError struct {
	Variants []sections.Variant
}

func (e *UnhandledVariantsError) Error() string {
	names := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		names[i] = string(v)
	}
	return fmt.Sprintf("%s: %s", ErrUnhandledVariant, strings.Join(names, ", "))
}

func (e *UnhandledVariantsError) Unwrap() error { return ErrUnhandledVariant }

// Registry maps variants to renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[sections.Variant]Renderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[sections.Variant]Renderer)}
}

// Register binds r to variant. Each variant takes exactly one renderer.
func (r *Registry) Register(variant sections.Variant, renderer Renderer) error {
	if !variant.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	if renderer == nil {
		return fmt.Errorf("render: nil renderer for %s", variant)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[variant]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRenderer, variant)
	}
	r.renderers[variant] = renderer
	return nil
}

// Replace binds renderer to variant, overriding any previous binding.
func (r *Registry) Replace(variant sections.Variant, renderer Renderer) error {
	if !variant.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[variant] = renderer
	return nil
}

func (r *Registry) Lookup(variant sections.Variant) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[variant]
	return renderer, ok && renderer != nil
}

// Validate fails with *UnhandledVariantsError when any known variant lacks a
// renderer.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var missing []sections.Variant
	for _, v := range sections.Variants() {
		if renderer, ok := r.renderers[v]; !ok || renderer == nil {
			missing = append(missing, v)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &UnhandledVariantsError{Variants: missing}
}

// Dispatch renders doc's sections in order. Hidden sections are skipped
// unless the view is editing; unknown variants render nothing.
func (r *Registry) Dispatch(ctx context.Context, doc sections.Document, view View) (template.HTML, error) {
	var buf bytes.Buffer
	for i, s := range doc.Sections {
		if s == nil {
			continue
		}
		if _, unknown := s.(*sections.Unknown); unknown {
			continue
		}
		base := s.SectionBase()
		if !base.Visible && !view.Editing {
			continue
		}
		renderer, ok := r.Lookup(s.Variant())
		if !ok {
			return "", &UnhandledVariantsError{Variants: []sections.Variant{s.Variant()}}
		}
		out, err := renderer.Render(ctx, s, view)
		if err != nil {
			return "", fmt.Errorf("render: section %d (%s): %w", i, base.ID, err)
		}
		if err := sectionWrapper.Execute(&buf, wrapperData{
			ID:      base.ID,
			Type:    string(s.Variant()),
			Hidden:  !base.Visible,
			Editing: view.Editing,
			Style:   template.CSS(sectionStyle(base)),
			Body:    out,
		}); err != nil {
			return "", fmt.Errorf("render: wrap section %s: %w", base.ID, err)
		}
	}
	return template.HTML(buf.String()), nil
}

// Registered returns the bound variants in canonical order.
func (r *Registry) Registered() []sections.Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]sections.Variant, 0, len(r.renderers))
	for _, v := range sections.Variants() {
		if _, ok := r.renderers[v]; ok {
			out = append(out, v)
		}
	}
	return slices.Clip(out)
}

type wrapperData struct {
	ID      string
	Type    string
	Hidden  bool
	Editing bool
	Style   template.CSS
	Body    template.HTML
}

var sectionWrapper = template.Must(template.New("section").Parse(
	`<section id="{{.ID}}" data-section-type="{{.Type}}"{{if .Editing}} data-editable="true"{{end}}{{if .Hidden}} data-hidden="true"{{end}}{{if .Style}} style="{{.Style}}"{{end}}>{{.Body}}</section>`,
))

var cssColor = regexp.MustCompile(`^[#a-zA-Z0-9(),.% ]+$`)

func sectionStyle(base *sections.Base) string {
	var parts []string
	if sp := base.Spacing; sp != nil {
		parts = append(parts, fmt.Sprintf("padding:%dpx %dpx %dpx %dpx", sp.Top, sp.Right, sp.Bottom, sp.Left))
	}
	if bg := base.Background; bg != nil && cssColor.MatchString(bg.Color) {
		parts = append(parts, "background-color:"+bg.Color)
	}
	return strings.Join(parts, ";")
}
