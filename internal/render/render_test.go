package render_test

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"

	"github.com/goliatone/go-composer/internal/media"
	"github.com/goliatone/go-composer/internal/render"
	sectionstore "github.com/goliatone/go-composer/internal/sections"
	"github.com/goliatone/go-composer/sections"
)

func TestPreviewRegistryHandlesEveryVariant(t *testing.T) {
	if err := render.NewPreviewRegistry(nil).Validate(); err != nil {
		t.Fatalf("expected exhaustive registry, got %v", err)
	}
}

func TestValidateReportsUnhandledVariants(t *testing.T) {
	reg := render.NewRegistry()
	if err := reg.Register(sections.VariantText, stub("text")); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := reg.Validate()
	var unhandled *render.UnhandledVariantsError
	if !errors.As(err, &unhandled) {
		t.Fatalf("expected UnhandledVariantsError, got %v", err)
	}
	if !errors.Is(err, render.ErrUnhandledVariant) {
		t.Fatalf("expected ErrUnhandledVariant in chain")
	}
	if len(unhandled.Variants) != len(sections.Variants())-1 {
		t.Fatalf("expected %d missing variants, got %d", len(sections.Variants())-1, len(unhandled.Variants))
	}
	for _, v := range unhandled.Variants {
		if v == sections.VariantText {
			t.Fatalf("text should be handled")
		}
	}
}

func TestRegisterRejectsDuplicatesAndUnknown(t *testing.T) {
	reg := render.NewRegistry()
	if err := reg.Register(sections.VariantHero, stub("a")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(sections.VariantHero, stub("b")); !errors.Is(err, render.ErrDuplicateRenderer) {
		t.Fatalf("expected ErrDuplicateRenderer, got %v", err)
	}
	if err := reg.Register("carousel-3d", stub("c")); !errors.Is(err, render.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if err := reg.Replace(sections.VariantHero, stub("b")); err != nil {
		t.Fatalf("replace: %v", err)
	}
	out, err := reg.Dispatch(context.Background(), docOf(newSection(t, sections.VariantHero, "h1")), render.View{})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !strings.Contains(string(out), "[b]") {
		t.Fatalf("expected replaced renderer output, got %s", out)
	}
}

func TestDispatchOrderVisibilityAndUnknown(t *testing.T) {
	text := newSection(t, sections.VariantText, "text-1").(*sections.Text)
	text.Content = "Some **bold** words"
	hero := newSection(t, sections.VariantHero, "hero-1")
	hero.SectionBase().Visible = false
	unknown, err := sections.Decode([]byte(`{"id":"legacy-1","type":"legacy","visible":true}`))
	if err != nil {
		t.Fatalf("decode unknown: %v", err)
	}
	gallery := newSection(t, sections.VariantGallery, "gallery-1")

	doc := docOf(text, hero, unknown, gallery)
	reg := render.NewPreviewRegistry(nil)

	out, err := reg.Dispatch(context.Background(), doc, render.View{})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Fatalf("expected markdown rendered, got %s", html)
	}
	if strings.Contains(html, "hero-1") {
		t.Fatalf("hidden section rendered outside edit mode: %s", html)
	}
	if strings.Contains(html, "legacy-1") {
		t.Fatalf("unknown section rendered: %s", html)
	}
	if strings.Index(html, `id="text-1"`) > strings.Index(html, `id="gallery-1"`) {
		t.Fatalf("expected document order kept: %s", html)
	}

	editing, err := reg.Dispatch(context.Background(), doc, render.View{Editing: true})
	if err != nil {
		t.Fatalf("dispatch editing: %v", err)
	}
	if !strings.Contains(string(editing), `id="hero-1" data-section-type="hero" data-editable="true" data-hidden="true"`) {
		t.Fatalf("expected hidden hero in edit mode, got %s", editing)
	}
}

func TestDispatchFailsOnMissingRenderer(t *testing.T) {
	reg := render.NewRegistry()
	_, err := reg.Dispatch(context.Background(), docOf(newSection(t, sections.VariantFAQ, "faq-1")), render.View{})
	if !errors.Is(err, render.ErrUnhandledVariant) {
		t.Fatalf("expected ErrUnhandledVariant, got %v", err)
	}
}

func TestRendererReceivesIntents(t *testing.T) {
	intents := &recordingIntents{}
	reg := render.NewRegistry()
	_ = reg.Register(sections.VariantImage, render.RendererFunc(func(ctx context.Context, s sections.Section, view render.View) (template.HTML, error) {
		if view.Intents != nil {
			_ = view.Intents.OpenMediaPicker(ctx, media.SlotTarget(s.SectionBase().ID, media.SlotImage))
		}
		return "", nil
	}))

	_, err := reg.Dispatch(context.Background(), docOf(newSection(t, sections.VariantImage, "img-1")), render.View{Editing: true, Intents: intents})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(intents.targets) != 1 || intents.targets[0].SectionID != "img-1" || intents.targets[0].Slot != media.SlotImage {
		t.Fatalf("unexpected intents %+v", intents.targets)
	}
}

func TestPreviewRendersCardsAndMedia(t *testing.T) {
	grid := newSection(t, sections.VariantMiniCardGrid, "mcg-1").(*sections.MiniCardGrid)
	grid.Cards = []sections.Card{{ID: "card-1", Title: "One", ThumbnailURL: "https://x/1.png"}}
	reg := render.NewPreviewRegistry(nil)
	out, err := reg.Dispatch(context.Background(), docOf(grid), render.View{Editing: true})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `data-item-id="card-1"`) || !strings.Contains(html, `src="https://x/1.png"`) {
		t.Fatalf("expected card preview, got %s", html)
	}
}

type recordingIntents struct {
	targets []media.EditingTarget
}

func (r *recordingIntents) UpdateSection(context.Context, string, sectionstore.Patch) (bool, error) {
	return false, nil
}
func (r *recordingIntents) RemoveSection(context.Context, string) (bool, error) { return false, nil }
func (r *recordingIntents) MoveUp(context.Context, string) (bool, error)        { return false, nil }
func (r *recordingIntents) MoveDown(context.Context, string) (bool, error)      { return false, nil }
func (r *recordingIntents) Duplicate(context.Context, string) (bool, error)     { return false, nil }
func (r *recordingIntents) OpenMediaPicker(_ context.Context, target media.EditingTarget) error {
	r.targets = append(r.targets, target)
	return nil
}

func stub(label string) render.Renderer {
	return render.RendererFunc(func(context.Context, sections.Section, render.View) (template.HTML, error) {
		return template.HTML("[" + label + "]"), nil
	})
}

func newSection(t *testing.T, v sections.Variant, id string) sections.Section {
	t.Helper()
	s, ok := sections.Defaults(v)
	if !ok {
		t.Fatalf("no defaults for %s", v)
	}
	s.SectionBase().ID = id
	return sections.Normalize(s)
}

func docOf(seq ...sections.Section) sections.Document {
	doc := sections.NewDocument()
	doc.Sections = seq
	return doc
}
