package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-composer/internal/auth"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/media"
	"github.com/goliatone/go-composer/internal/permissions"
	"github.com/goliatone/go-composer/internal/persistence"
	"github.com/goliatone/go-composer/internal/render"
	sectionstore "github.com/goliatone/go-composer/internal/sections"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/sections"
)

var ErrGatewayRequired = errors.New("editor: persistence gateway is required")

const (
	promptRemoveSection = "Remove this section? This cannot be undone."
	promptDiscard       = "Discard unsaved changes?"
)

// Config wires the controller's collaborators. Only Gateway is required.
type Config struct {
	Gateway      persistence.Gateway
	Credentials  auth.CredentialSource
	Capabilities permissions.Checker
	Notifier     interfaces.Notifier
	URLState     interfaces.URLState
	Confirmer    interfaces.Confirmer
	Factory      *sectionstore.Factory
	Router       *media.Router
	Logger       interfaces.Logger
	Clock        func() time.Time
}

// Controller owns one page's edit session.
//
// The controller is either Viewing or Editing; while a save is outstanding
// an Editing session reports Saving and keeps accepting mutations. Only one
// save runs at a time. Collaborators are called without the lock held.
type Controller struct {
	gateway     persistence.Gateway
	credentials auth.CredentialSource
	notifier    interfaces.Notifier
	urlState    interfaces.URLState
	confirmer   interfaces.Confirmer
	factory     *sectionstore.Factory
	picker      *media.Picker
	logger      interfaces.Logger
	now         func() time.Time

	mu        sync.Mutex
	caps      permissions.Checker
	pageKey   string
	loaded    bool
	doc       sections.Document
	persisted sections.Document
	mode      State
	saving    bool
	dirty     bool
	revision  uint64
	status    Status
}

var _ render.Intents = (*Controller)(nil)

func New(cfg Config) (*Controller, error) {
	if cfg.Gateway == nil {
		return nil, ErrGatewayRequired
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	factory := cfg.Factory
	if factory == nil {
		factory = sectionstore.NewFactory(sectionstore.WithFactoryLogger(logger))
	}
	router := cfg.Router
	if router == nil {
		router = media.NewRouter(media.WithRouterLogger(logger))
	}
	now := cfg.Clock
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Controller{
		gateway:     cfg.Gateway,
		credentials: cfg.Credentials,
		notifier:    cfg.Notifier,
		urlState:    cfg.URLState,
		confirmer:   cfg.Confirmer,
		factory:     factory,
		picker:      media.NewPicker(router),
		logger:      logger,
		now:         now,
		caps:        cfg.Capabilities,
		doc:         sections.NewDocument(),
		persisted:   sections.NewDocument(),
		mode:        Viewing,
	}, nil
}

// Load fetches pageKey and resets the session to Viewing. Unsaved edits are
// only discarded after confirmation. On failure the current document is left
// untouched.
func (c *Controller) Load(ctx context.Context, pageKey string) error {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return ErrSaveInFlight
	}
	dirty := c.dirty
	c.mu.Unlock()

	if dirty && !c.confirm(ctx, promptDiscard) {
		c.log(ctx, pageKey).Info("navigation cancelled, unsaved changes kept")
		return ErrNavigateCancelled
	}

	doc, err := c.gateway.Load(ctx, pageKey)
	if err != nil {
		c.log(ctx, pageKey).Error("document load failed", "error", err)
		c.report(ctx, interfaces.NotificationError, CodeLoadFailed, "Could not load the page. Try again.")
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	c.mu.Lock()
	c.pageKey = pageKey
	c.loaded = true
	c.doc = doc.Clone()
	c.persisted = doc
	c.mode = Viewing
	c.dirty = false
	c.revision = 0
	c.status = Status{}
	c.mu.Unlock()
	c.picker.Cancel()

	c.log(ctx, pageKey).Info("document loaded", "sections", len(doc.Sections))
	return nil
}

// SetCapabilities replaces the operator's capabilities.
func (c *Controller) SetCapabilities(caps permissions.Checker) {
	c.mu.Lock()
	c.caps = caps
	c.mu.Unlock()
}

// EnterEdit switches to Editing when caps grants pages:update and publishes
// edit=true into the URL.
func (c *Controller) EnterEdit(ctx context.Context, caps permissions.Checker) error {
	if !permissions.Has(caps, permissions.PagesUpdate) {
		return ErrNotAuthorized
	}
	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	c.caps = caps
	c.mode = Editing
	key := c.pageKey
	c.mu.Unlock()

	c.publishEditFlag(ctx, key, true)
	c.log(ctx, key).Info("edit mode entered")
	return nil
}

// ApplyEditFlag honours an edit flag read from the URL. The flag only takes
// effect for operators holding pages:update; for anyone else it is reset.
func (c *Controller) ApplyEditFlag(ctx context.Context, caps permissions.Checker, requested bool) error {
	if !requested {
		return nil
	}
	if err := c.EnterEdit(ctx, caps); err != nil {
		if errors.Is(err, ErrNotAuthorized) {
			c.publishEditFlag(ctx, c.PageKey(), false)
			return nil
		}
		return err
	}
	return nil
}

// Exit returns to Viewing. Unsaved edits are discarded after confirmation;
// a declined confirmation keeps the session editing.
func (c *Controller) Exit(ctx context.Context) error {
	c.mu.Lock()
	if c.mode == Viewing {
		c.mu.Unlock()
		return nil
	}
	dirty := c.dirty
	c.mu.Unlock()

	if dirty && !c.confirm(ctx, promptDiscard) {
		return ErrExitCancelled
	}

	c.mu.Lock()
	c.doc = c.persisted.Clone()
	c.dirty = false
	c.revision++
	c.mode = Viewing
	key := c.pageKey
	c.mu.Unlock()
	c.picker.Cancel()

	c.publishEditFlag(ctx, key, false)
	c.log(ctx, key).Info("edit mode exited", "discarded", dirty)
	return nil
}

// AddSection creates a section for tag and inserts it, at the end unless an
// index option is given.
func (c *Controller) AddSection(ctx context.Context, tag sections.Variant, opts ...sectionstore.InsertOption) (sections.Section, error) {
	s := c.factory.Create(tag)
	_, err := c.mutate(ctx, "add", func(seq []sections.Section) ([]sections.Section, bool, error) {
		next, ok := sectionstore.Insert(seq, s, opts...)
		return next, ok, nil
	})
	if err != nil {
		return nil, err
	}
	return sections.Clone(s), nil
}

func (c *Controller) UpdateSection(ctx context.Context, id string, patch sectionstore.Patch) (bool, error) {
	return c.mutate(ctx, "update", func(seq []sections.Section) ([]sections.Section, bool, error) {
		return sectionstore.Update(seq, id, patch)
	})
}

// RemoveSection deletes id after the operator confirms. Declining, or an
// id that is not present, changes nothing.
func (c *Controller) RemoveSection(ctx context.Context, id string) (bool, error) {
	if err := c.ensureEditable(ctx); err != nil {
		return false, err
	}
	c.mu.Lock()
	present := sectionstore.IndexOf(c.doc.Sections, id) >= 0
	c.mu.Unlock()
	if !present || !c.confirm(ctx, promptRemoveSection) {
		return false, nil
	}
	return c.mutate(ctx, "remove", func(seq []sections.Section) ([]sections.Section, bool, error) {
		next, ok := sectionstore.Remove(seq, id)
		return next, ok, nil
	})
}

func (c *Controller) MoveUp(ctx context.Context, id string) (bool, error) {
	return c.mutate(ctx, "move_up", func(seq []sections.Section) ([]sections.Section, bool, error) {
		next, ok := sectionstore.MoveUp(seq, id)
		return next, ok, nil
	})
}

func (c *Controller) MoveDown(ctx context.Context, id string) (bool, error) {
	return c.mutate(ctx, "move_down", func(seq []sections.Section) ([]sections.Section, bool, error) {
		next, ok := sectionstore.MoveDown(seq, id)
		return next, ok, nil
	})
}

// Duplicate inserts a copy of id right after it under a fresh id. A missing
// source is a silent no-op.
func (c *Controller) Duplicate(ctx context.Context, id string) (bool, error) {
	return c.mutate(ctx, "duplicate", func(seq []sections.Section) ([]sections.Section, bool, error) {
		src, ok := sectionstore.Find(seq, id)
		if !ok {
			return seq, false, nil
		}
		next, ok := sectionstore.Duplicate(seq, id, c.factory.NewID(src.Variant()))
		return next, ok, nil
	})
}

// UpdateProperties applies fn to a copy of the page properties and keeps the
// result when it validates.
func (c *Controller) UpdateProperties(ctx context.Context, fn func(*sections.PageProperties)) (bool, error) {
	if err := c.ensureEditable(ctx); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.doc.Properties
	fn(&next)
	if err := next.Validate(); err != nil {
		return false, fmt.Errorf("editor: invalid page properties: %w", err)
	}
	if next == c.doc.Properties {
		return false, nil
	}
	c.doc.Properties = next
	c.markChangedLocked()
	return true, nil
}

// OpenMediaPicker makes target the active media target.
func (c *Controller) OpenMediaPicker(ctx context.Context, target media.EditingTarget) error {
	if err := c.ensureEditable(ctx); err != nil {
		return err
	}
	return c.picker.Open(target)
}

// SelectMedia applies asset to the active target and closes the picker.
// Targets that no longer resolve drop the asset without error. Only an
// Applied outcome dirties the session.
func (c *Controller) SelectMedia(ctx context.Context, asset media.Asset) (media.Outcome, error) {
	c.mu.Lock()
	next, outcome := c.picker.Resolve(c.doc.Sections, asset)
	if outcome == media.Applied {
		c.doc.Sections = next
		c.markChangedLocked()
	}
	key := c.pageKey
	c.mu.Unlock()

	c.log(ctx, key).Debug("media selected", "outcome", outcome.String())
	return outcome, nil
}

func (c *Controller) CancelMediaPicker() {
	c.picker.Cancel()
}

func (c *Controller) ActiveMediaTarget() (media.EditingTarget, bool) {
	return c.picker.Active()
}

// Save persists the whole document. See the package errors for the ways a
// save is refused; every path leaves the session out of Saving.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case !c.loaded:
		c.mu.Unlock()
		return ErrNotLoaded
	case c.saving:
		c.mu.Unlock()
		return ErrSaveInFlight
	case c.mode != Editing:
		c.mu.Unlock()
		return ErrNotEditing
	case !c.dirty:
		c.mu.Unlock()
		return ErrNothingToSave
	}
	key := c.pageKey
	c.mu.Unlock()

	cred, ok := c.credential(ctx)
	if !ok || !cred.Usable(c.now()) {
		c.log(ctx, key).Warn("save aborted, credential missing or expired")
		c.report(ctx, interfaces.NotificationError, CodeReauthenticate, "Your session has expired. Sign in again to save.")
		return ErrReauthenticate
	}

	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return ErrSaveInFlight
	}
	c.saving = true
	snapshot := c.doc.Clone()
	revision := c.revision
	c.mu.Unlock()

	c.log(ctx, key).Debug("save started", "sections", len(snapshot.Sections))
	err := c.gateway.Save(ctx, key, snapshot, cred)

	c.mu.Lock()
	c.saving = false
	if err != nil {
		c.mu.Unlock()
		c.log(ctx, key).Error("save failed", "error", err)
		if errors.Is(err, persistence.ErrUnauthorized) {
			c.report(ctx, interfaces.NotificationError, CodeReauthenticate, "Your session has expired. Sign in again to save.")
			return fmt.Errorf("%w: %w", ErrReauthenticate, err)
		}
		c.report(ctx, interfaces.NotificationError, CodeSaveFailed, "Could not save your changes. They are still here; try again.")
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	c.persisted = snapshot
	if c.revision == revision {
		c.dirty = false
	}
	if c.mode == Viewing {
		c.doc = snapshot.Clone()
		c.dirty = false
	}
	c.status.LastSavedAt = c.now()
	stillDirty := c.dirty
	c.mu.Unlock()

	c.log(ctx, key).Info("save completed", "dirty", stillDirty)
	c.report(ctx, interfaces.NotificationSuccess, CodeSaved, "Changes saved.")
	return nil
}

// Snapshot returns a deep copy of the current document.
func (c *Controller) Snapshot() sections.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// HasSection reports whether the current document holds id.
func (c *Controller) HasSection(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sectionstore.IndexOf(c.doc.Sections, id) >= 0
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

func (c *Controller) PageKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageKey
}

// CanMutate reports whether mutations apply without entering edit mode.
func (c *Controller) CanMutate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded && c.mode == Editing
}

// CanSave mirrors the save button: dirty and not already saving.
func (c *Controller) CanSave() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty && c.stateLocked() == Editing
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.status
	st.State = c.stateLocked()
	st.Dirty = c.dirty
	st.PageKey = c.pageKey
	return st
}

func (c *Controller) stateLocked() State {
	if c.saving && c.mode == Editing {
		return Saving
	}
	return c.mode
}

func (c *Controller) markChangedLocked() {
	c.dirty = true
	c.revision++
}

func (c *Controller) mutate(ctx context.Context, op string, fn func([]sections.Section) ([]sections.Section, bool, error)) (bool, error) {
	if err := c.ensureEditable(ctx); err != nil {
		return false, err
	}
	c.mu.Lock()
	next, changed, err := fn(c.doc.Sections)
	if err != nil {
		c.mu.Unlock()
		return false, err
	}
	if changed {
		c.doc.Sections = next
		c.markChangedLocked()
	}
	key := c.pageKey
	c.mu.Unlock()

	c.log(ctx, key).Debug("section mutation", "op", op, "changed", changed)
	return changed, nil
}

// ensureEditable force-enables edit mode for operators holding pages:update.
func (c *Controller) ensureEditable(ctx context.Context) error {
	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	if c.mode == Editing {
		c.mu.Unlock()
		return nil
	}
	if !permissions.Has(c.caps, permissions.PagesUpdate) {
		c.mu.Unlock()
		return ErrNotEditing
	}
	c.mode = Editing
	key := c.pageKey
	c.mu.Unlock()

	c.publishEditFlag(ctx, key, true)
	c.log(ctx, key).Info("edit mode enabled by mutation")
	return nil
}

func (c *Controller) credential(ctx context.Context) (auth.Credential, bool) {
	if c.credentials == nil {
		return auth.Credential{}, false
	}
	return c.credentials.Credential(ctx)
}

func (c *Controller) confirm(ctx context.Context, prompt string) bool {
	if c.confirmer == nil {
		return false
	}
	return c.confirmer.Confirm(ctx, prompt)
}

func (c *Controller) publishEditFlag(ctx context.Context, key string, editing bool) {
	if c.urlState == nil {
		return
	}
	if err := c.urlState.SetEditMode(ctx, key, editing); err != nil {
		c.log(ctx, key).Warn("edit flag not published", "editing", editing, "error", err)
	}
}

func (c *Controller) report(ctx context.Context, level interfaces.NotificationLevel, code, message string) {
	c.mu.Lock()
	c.status.Level = level
	c.status.Message = message
	c.mu.Unlock()
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(ctx, interfaces.Notification{Level: level, Code: code, Message: message})
}

func (c *Controller) log(ctx context.Context, key string) interfaces.Logger {
	return c.logger.WithContext(logging.WithPageKey(ctx, key))
}
