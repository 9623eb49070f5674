package editor_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-composer/internal/auth"
	"github.com/goliatone/go-composer/internal/editor"
	"github.com/goliatone/go-composer/internal/media"
	"github.com/goliatone/go-composer/internal/permissions"
	"github.com/goliatone/go-composer/internal/persistence"
	sectionstore "github.com/goliatone/go-composer/internal/sections"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/sections"
)

var (
	admin  = permissions.NewSet(permissions.PagesUpdate)
	reader = permissions.NewSet(permissions.PagesRead)
	now    = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
)

type fakeGateway struct {
	mu      sync.Mutex
	doc     sections.Document
	loadErr error
	saveErr error
	saves   []sections.Document
	tokens  []string
	started chan struct{}
	release chan struct{}
}

func (g *fakeGateway) Load(context.Context, string) (sections.Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.loadErr != nil {
		return sections.Document{}, g.loadErr
	}
	return g.doc.Clone(), nil
}

func (g *fakeGateway) Save(_ context.Context, _ string, doc sections.Document, cred auth.Credential) error {
	g.mu.Lock()
	g.saves = append(g.saves, doc.Clone())
	g.tokens = append(g.tokens, cred.Token)
	started, release, err := g.started, g.release, g.saveErr
	g.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return err
}

func (g *fakeGateway) saveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.saves)
}

type recordingURL struct {
	mu    sync.Mutex
	flags []bool
}

func (r *recordingURL) SetEditMode(_ context.Context, _ string, editing bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags = append(r.flags, editing)
	return nil
}

func (r *recordingURL) last() (bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.flags) == 0 {
		return false, false
	}
	return r.flags[len(r.flags)-1], true
}

type recordingNotifier struct {
	mu    sync.Mutex
	codes []string
}

func (r *recordingNotifier) Notify(_ context.Context, n interfaces.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = append(r.codes, n.Code)
}

func (r *recordingNotifier) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.codes) == 0 {
		return ""
	}
	return r.codes[len(r.codes)-1]
}

type harness struct {
	ctrl     *editor.Controller
	gateway  *fakeGateway
	url      *recordingURL
	notifier *recordingNotifier
	creds    *auth.StaticCredentials
	confirm  bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		gateway:  &fakeGateway{doc: sections.NewDocument()},
		url:      &recordingURL{},
		notifier: &recordingNotifier{},
		creds:    auth.NewStaticCredentials(auth.Credential{Token: "tok", ExpiresAt: now.Add(time.Hour)}),
		confirm:  true,
	}
	n := 0
	ctrl, err := editor.New(editor.Config{
		Gateway:     h.gateway,
		Credentials: h.creds,
		Notifier:    h.notifier,
		URLState:    h.url,
		Confirmer: editor.ConfirmFunc(func(context.Context, string) bool {
			return h.confirm
		}),
		Factory: sectionstore.NewFactory(sectionstore.WithIDGenerator(func(v sections.Variant) string {
			n++
			return fmt.Sprintf("%s-%d", v, n)
		})),
		Clock: func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	h.ctrl = ctrl
	if err := ctrl.Load(context.Background(), "home"); err != nil {
		t.Fatalf("load: %v", err)
	}
	return h
}

func (h *harness) edit(t *testing.T) {
	t.Helper()
	if err := h.ctrl.EnterEdit(context.Background(), admin); err != nil {
		t.Fatalf("enter edit: %v", err)
	}
}

func ids(doc sections.Document) []string {
	out := make([]string, len(doc.Sections))
	for i, s := range doc.Sections {
		out[i] = s.SectionBase().ID
	}
	return out
}

func TestNewRequiresGateway(t *testing.T) {
	if _, err := editor.New(editor.Config{}); !errors.Is(err, editor.ErrGatewayRequired) {
		t.Fatalf("expected ErrGatewayRequired, got %v", err)
	}
}

func TestComposeScenarioAndSave(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.edit(t)

	if flag, ok := h.url.last(); !ok || !flag {
		t.Fatalf("expected edit=true published")
	}
	hero, err := h.ctrl.AddSection(ctx, sections.VariantHero)
	if err != nil {
		t.Fatalf("add hero: %v", err)
	}
	text, err := h.ctrl.AddSection(ctx, sections.VariantText)
	if err != nil {
		t.Fatalf("add text: %v", err)
	}
	if moved, err := h.ctrl.MoveUp(ctx, text.SectionBase().ID); err != nil || !moved {
		t.Fatalf("move up: %v %v", moved, err)
	}
	if dup, err := h.ctrl.Duplicate(ctx, hero.SectionBase().ID); err != nil || !dup {
		t.Fatalf("duplicate: %v %v", dup, err)
	}

	got := ids(h.ctrl.Snapshot())
	want := []string{"text-2", "hero-1", "hero-3"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !h.ctrl.Dirty() || !h.ctrl.CanSave() {
		t.Fatalf("expected dirty session ready to save")
	}

	if err := h.ctrl.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if h.ctrl.Dirty() {
		t.Fatalf("expected clean after save")
	}
	if h.ctrl.State() != editor.Editing {
		t.Fatalf("expected Editing after save, got %s", h.ctrl.State())
	}
	if h.gateway.saveCount() != 1 || h.gateway.tokens[0] != "tok" {
		t.Fatalf("expected one save with bearer tok, got %d %v", h.gateway.saveCount(), h.gateway.tokens)
	}
	if len(h.gateway.saves[0].Sections) != 3 {
		t.Fatalf("expected full document saved")
	}
	if h.notifier.last() != editor.CodeSaved {
		t.Fatalf("expected saved notification, got %q", h.notifier.last())
	}
	st := h.ctrl.Status()
	if !st.LastSavedAt.Equal(now) || st.Level != interfaces.NotificationSuccess {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestSaveRejectedWhileSaving(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.edit(t)
	if _, err := h.ctrl.AddSection(ctx, sections.VariantText); err != nil {
		t.Fatalf("add: %v", err)
	}

	h.gateway.started = make(chan struct{}, 1)
	h.gateway.release = make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- h.ctrl.Save(ctx) }()
	<-h.gateway.started

	if h.ctrl.State() != editor.Saving {
		t.Fatalf("expected Saving, got %s", h.ctrl.State())
	}
	if h.ctrl.CanSave() {
		t.Fatalf("save button must be disabled while saving")
	}
	if err := h.ctrl.Save(ctx); !errors.Is(err, editor.ErrSaveInFlight) {
		t.Fatalf("expected ErrSaveInFlight, got %v", err)
	}
	if _, err := h.ctrl.AddSection(ctx, sections.VariantSpacer); err != nil {
		t.Fatalf("mutation during save should be accepted: %v", err)
	}

	close(h.gateway.release)
	if err := <-done; err != nil {
		t.Fatalf("first save: %v", err)
	}
	if h.gateway.saveCount() != 1 {
		t.Fatalf("expected exactly one network call, got %d", h.gateway.saveCount())
	}
	if !h.ctrl.Dirty() {
		t.Fatalf("edit made during save must stay dirty")
	}
	if h.ctrl.State() != editor.Editing {
		t.Fatalf("expected Editing, got %s", h.ctrl.State())
	}
	if len(h.gateway.saves[0].Sections) != 1 {
		t.Fatalf("saved snapshot should exclude the later edit")
	}
}

func TestSaveWithoutSessionAsksToReauthenticate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.edit(t)
	_, _ = h.ctrl.AddSection(ctx, sections.VariantText)

	h.creds.Clear()
	if err := h.ctrl.Save(ctx); !errors.Is(err, editor.ErrReauthenticate) {
		t.Fatalf("expected ErrReauthenticate, got %v", err)
	}

	h.creds.Set(auth.Credential{Token: "old", ExpiresAt: now.Add(-time.Minute)})
	if err := h.ctrl.Save(ctx); !errors.Is(err, editor.ErrReauthenticate) {
		t.Fatalf("expected ErrReauthenticate for expired credential, got %v", err)
	}

	if h.gateway.saveCount() != 0 {
		t.Fatalf("no network call expected, got %d", h.gateway.saveCount())
	}
	if !h.ctrl.Dirty() || h.ctrl.State() != editor.Editing {
		t.Fatalf("expected dirty Editing session, got dirty=%v state=%s", h.ctrl.Dirty(), h.ctrl.State())
	}
	if h.notifier.last() != editor.CodeReauthenticate {
		t.Fatalf("expected reauthenticate notification, got %q", h.notifier.last())
	}
}

func TestSaveFailureKeepsEdits(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.edit(t)
	_, _ = h.ctrl.AddSection(ctx, sections.VariantHero)

	h.gateway.saveErr = &persistence.StatusError{Op: "save", StatusCode: 502}
	err := h.ctrl.Save(ctx)
	if !errors.Is(err, editor.ErrSaveFailed) || !errors.Is(err, persistence.ErrSaveFailed) {
		t.Fatalf("expected wrapped save failure, got %v", err)
	}
	if !h.ctrl.Dirty() || len(h.ctrl.Snapshot().Sections) != 1 {
		t.Fatalf("edits must survive a failed save")
	}
	if h.ctrl.State() != editor.Editing {
		t.Fatalf("expected Editing, got %s", h.ctrl.State())
	}
	if h.notifier.last() != editor.CodeSaveFailed {
		t.Fatalf("expected save failure notification, got %q", h.notifier.last())
	}

	h.gateway.saveErr = persistence.ErrUnauthorized
	if err := h.ctrl.Save(ctx); !errors.Is(err, editor.ErrReauthenticate) {
		t.Fatalf("expected 401 to ask for reauthentication, got %v", err)
	}

	h.gateway.saveErr = nil
	if err := h.ctrl.Save(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if h.ctrl.Dirty() {
		t.Fatalf("expected clean after retry")
	}
}

func TestSaveGuards(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	if err := h.ctrl.Save(ctx); !errors.Is(err, editor.ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}
	h.edit(t)
	if err := h.ctrl.Save(ctx); !errors.Is(err, editor.ErrNothingToSave) {
		t.Fatalf("expected ErrNothingToSave, got %v", err)
	}
}

func TestEnterEditRequiresCapability(t *testing.T) {
	h := newHarness(t)
	if err := h.ctrl.EnterEdit(context.Background(), reader); !errors.Is(err, editor.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if h.ctrl.State() != editor.Viewing {
		t.Fatalf("expected Viewing")
	}
}

func TestMutationInViewing(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	if _, err := h.ctrl.AddSection(ctx, sections.VariantText); !errors.Is(err, editor.ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing without capability, got %v", err)
	}
	if len(h.ctrl.Snapshot().Sections) != 0 {
		t.Fatalf("document must be untouched")
	}

	h.ctrl.SetCapabilities(admin)
	if _, err := h.ctrl.AddSection(ctx, sections.VariantText); err != nil {
		t.Fatalf("expected force-enabled edit, got %v", err)
	}
	if h.ctrl.State() != editor.Editing {
		t.Fatalf("expected Editing, got %s", h.ctrl.State())
	}
	if flag, ok := h.url.last(); !ok || !flag {
		t.Fatalf("expected edit flag written back")
	}
}

func TestApplyEditFlag(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	if err := h.ctrl.ApplyEditFlag(ctx, reader, true); err != nil {
		t.Fatalf("apply flag: %v", err)
	}
	if h.ctrl.State() != editor.Viewing {
		t.Fatalf("flag must be ignored without capability")
	}
	if flag, ok := h.url.last(); !ok || flag {
		t.Fatalf("expected edit=false written back")
	}
	if err := h.ctrl.ApplyEditFlag(ctx, admin, true); err != nil {
		t.Fatalf("apply flag: %v", err)
	}
	if h.ctrl.State() != editor.Editing {
		t.Fatalf("expected Editing")
	}
}

func TestExitConfirmation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	hero, _ := sections.Defaults(sections.VariantHero)
	hero.SectionBase().ID = "hero-0"
	h.gateway.doc.Sections = []sections.Section{hero}
	if err := h.ctrl.Load(ctx, "home"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	h.edit(t)
	_, _ = h.ctrl.AddSection(ctx, sections.VariantText)

	h.confirm = false
	if err := h.ctrl.Exit(ctx); !errors.Is(err, editor.ErrExitCancelled) {
		t.Fatalf("expected ErrExitCancelled, got %v", err)
	}
	if h.ctrl.State() != editor.Editing || !h.ctrl.Dirty() {
		t.Fatalf("declined exit must keep editing")
	}

	h.confirm = true
	if err := h.ctrl.Exit(ctx); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if h.ctrl.State() != editor.Viewing || h.ctrl.Dirty() {
		t.Fatalf("expected clean Viewing session")
	}
	if got := ids(h.ctrl.Snapshot()); len(got) != 1 || got[0] != "hero-0" {
		t.Fatalf("expected persisted document restored, got %v", got)
	}
	if flag, _ := h.url.last(); flag {
		t.Fatalf("expected edit=false on exit")
	}
}

func TestLoadWhileDirtyAsksBeforeDiscarding(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.edit(t)
	if _, err := h.ctrl.AddSection(ctx, sections.VariantHero); err != nil {
		t.Fatalf("add: %v", err)
	}
	about, _ := sections.Defaults(sections.VariantText)
	about.SectionBase().ID = "text-about"
	h.gateway.doc.Sections = []sections.Section{about}

	h.confirm = false
	if err := h.ctrl.Load(ctx, "about"); !errors.Is(err, editor.ErrNavigateCancelled) {
		t.Fatalf("expected ErrNavigateCancelled, got %v", err)
	}
	if h.ctrl.State() != editor.Editing || !h.ctrl.Dirty() || h.ctrl.PageKey() != "home" {
		t.Fatalf("declined navigation must keep the session, got %s dirty=%v key=%s", h.ctrl.State(), h.ctrl.Dirty(), h.ctrl.PageKey())
	}
	if got := ids(h.ctrl.Snapshot()); len(got) != 1 || got[0] != "hero-1" {
		t.Fatalf("expected unsaved hero kept, got %v", got)
	}

	h.confirm = true
	if err := h.ctrl.Load(ctx, "about"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if h.ctrl.State() != editor.Viewing || h.ctrl.Dirty() || h.ctrl.PageKey() != "about" {
		t.Fatalf("expected clean Viewing session on about")
	}
	if got := ids(h.ctrl.Snapshot()); len(got) != 1 || got[0] != "text-about" {
		t.Fatalf("expected loaded document, got %v", got)
	}

	h.confirm = false
	if err := h.ctrl.Load(ctx, "about"); err != nil {
		t.Fatalf("clean reload must not ask: %v", err)
	}
}

func TestExitDuringSaveStillAppliesResult(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.edit(t)
	_, _ = h.ctrl.AddSection(ctx, sections.VariantText)

	h.gateway.started = make(chan struct{}, 1)
	h.gateway.release = make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- h.ctrl.Save(ctx) }()
	<-h.gateway.started

	if err := h.ctrl.Exit(ctx); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if err := h.ctrl.Save(ctx); !errors.Is(err, editor.ErrSaveInFlight) {
		t.Fatalf("expected ErrSaveInFlight after exit, got %v", err)
	}
	close(h.gateway.release)
	if err := <-done; err != nil {
		t.Fatalf("save: %v", err)
	}
	if h.ctrl.State() != editor.Viewing {
		t.Fatalf("expected Viewing, got %s", h.ctrl.State())
	}
	if len(h.ctrl.Snapshot().Sections) != 1 {
		t.Fatalf("expected saved document shown after exit")
	}
	if h.notifier.last() != editor.CodeSaved {
		t.Fatalf("expected save reported after exit")
	}
}

func TestRemoveSectionNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.edit(t)
	text, _ := h.ctrl.AddSection(ctx, sections.VariantText)
	if err := h.ctrl.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	h.confirm = false
	if removed, err := h.ctrl.RemoveSection(ctx, text.SectionBase().ID); err != nil || removed {
		t.Fatalf("declined remove must be a no-op, got %v %v", removed, err)
	}
	if h.ctrl.Dirty() {
		t.Fatalf("declined remove must not dirty the session")
	}

	h.confirm = true
	if removed, err := h.ctrl.RemoveSection(ctx, text.SectionBase().ID); err != nil || !removed {
		t.Fatalf("remove: %v %v", removed, err)
	}
	if removed, _ := h.ctrl.RemoveSection(ctx, text.SectionBase().ID); removed {
		t.Fatalf("second remove must be a no-op")
	}
}

func TestBoundaryMovesDoNotDirty(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.edit(t)
	first, _ := h.ctrl.AddSection(ctx, sections.VariantText)
	last, _ := h.ctrl.AddSection(ctx, sections.VariantText)
	if err := h.ctrl.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if moved, _ := h.ctrl.MoveUp(ctx, first.SectionBase().ID); moved {
		t.Fatalf("move up at top must be a no-op")
	}
	if moved, _ := h.ctrl.MoveDown(ctx, last.SectionBase().ID); moved {
		t.Fatalf("move down at bottom must be a no-op")
	}
	if dup, _ := h.ctrl.Duplicate(ctx, "missing"); dup {
		t.Fatalf("duplicate of missing id must be a no-op")
	}
	if h.ctrl.Dirty() {
		t.Fatalf("no-op mutations must not dirty the session")
	}
}

func TestMediaPickerThroughController(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.edit(t)
	grid, _ := h.ctrl.AddSection(ctx, sections.VariantMiniCardGrid)
	gridID := grid.SectionBase().ID
	_, err := h.ctrl.UpdateSection(ctx, gridID, sectionstore.PatchFunc(func(s sections.Section) {
		s.(*sections.MiniCardGrid).Cards = []sections.Card{{ID: "card-1"}, {ID: "card-2"}}
	}))
	if err != nil {
		t.Fatalf("seed cards: %v", err)
	}

	if err := h.ctrl.OpenMediaPicker(ctx, media.CardTarget(gridID, "card-2")); err != nil {
		t.Fatalf("open picker: %v", err)
	}
	outcome, err := h.ctrl.SelectMedia(ctx, media.Asset{URL: "https://x/img.png"})
	if err != nil || outcome != media.Applied {
		t.Fatalf("expected Applied, got %s %v", outcome, err)
	}
	if _, open := h.ctrl.ActiveMediaTarget(); open {
		t.Fatalf("picker must close after selection")
	}
	cards := h.ctrl.Snapshot().Sections[0].(*sections.MiniCardGrid).Cards
	if cards[1].ThumbnailURL != "https://x/img.png" || cards[0].ThumbnailURL != "" {
		t.Fatalf("unexpected cards %+v", cards)
	}

	if err := h.ctrl.OpenMediaPicker(ctx, media.CardTarget(gridID, "card-1")); err != nil {
		t.Fatalf("open picker: %v", err)
	}
	if removed, _ := h.ctrl.RemoveSection(ctx, gridID); !removed {
		t.Fatalf("remove grid")
	}
	before := h.ctrl.Snapshot()
	outcome, _ = h.ctrl.SelectMedia(ctx, media.Asset{URL: "https://x/late.png"})
	if outcome != media.SectionMissing {
		t.Fatalf("expected SectionMissing, got %s", outcome)
	}
	if len(h.ctrl.Snapshot().Sections) != len(before.Sections) {
		t.Fatalf("stale target must not mutate")
	}
}

func TestReselectingSameMediaKeepsSessionClean(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.edit(t)
	img, _ := h.ctrl.AddSection(ctx, sections.VariantImage)
	target := media.SlotTarget(img.SectionBase().ID, media.SlotImage)
	asset := media.Asset{URL: "https://x/photo.png"}

	if err := h.ctrl.OpenMediaPicker(ctx, target); err != nil {
		t.Fatalf("open picker: %v", err)
	}
	if outcome, _ := h.ctrl.SelectMedia(ctx, asset); outcome != media.Applied {
		t.Fatalf("expected Applied, got %s", outcome)
	}
	if err := h.ctrl.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := h.ctrl.OpenMediaPicker(ctx, target); err != nil {
		t.Fatalf("reopen picker: %v", err)
	}
	outcome, err := h.ctrl.SelectMedia(ctx, asset)
	if err != nil || outcome != media.Unchanged {
		t.Fatalf("expected Unchanged, got %s %v", outcome, err)
	}
	if h.ctrl.Dirty() {
		t.Fatalf("selecting the current asset must not dirty the session")
	}
}

func TestUpdateProperties(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.edit(t)
	changed, err := h.ctrl.UpdateProperties(ctx, func(p *sections.PageProperties) { p.Title = "Launch" })
	if err != nil || !changed {
		t.Fatalf("update: %v %v", changed, err)
	}
	if h.ctrl.Snapshot().Properties.Title != "Launch" || !h.ctrl.Dirty() {
		t.Fatalf("expected title applied and dirty")
	}
	if _, err := h.ctrl.UpdateProperties(ctx, func(p *sections.PageProperties) { p.LayoutWidth = "sideways" }); err == nil {
		t.Fatalf("expected invalid layout rejected")
	}
	if h.ctrl.Snapshot().Properties.LayoutWidth == "sideways" {
		t.Fatalf("invalid properties must not be applied")
	}
}

func TestLoadFailureKeepsDocument(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.edit(t)
	_, _ = h.ctrl.AddSection(ctx, sections.VariantText)

	h.gateway.loadErr = errors.New("network down")
	if err := h.ctrl.Load(ctx, "home"); !errors.Is(err, editor.ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed, got %v", err)
	}
	if len(h.ctrl.Snapshot().Sections) != 1 {
		t.Fatalf("failed load must not replace the document")
	}
	if h.notifier.last() != editor.CodeLoadFailed {
		t.Fatalf("expected load failure notification")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.edit(t)
	_, _ = h.ctrl.AddSection(ctx, sections.VariantText)
	snap := h.ctrl.Snapshot()
	snap.Sections[0].(*sections.Text).Content = "mutated"
	if h.ctrl.Snapshot().Sections[0].(*sections.Text).Content == "mutated" {
		t.Fatalf("snapshot must not alias the live document")
	}
}
