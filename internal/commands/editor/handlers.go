package editorcmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-composer/internal/commands"
	"github.com/goliatone/go-composer/internal/editor"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/media"
	"github.com/goliatone/go-composer/internal/permissions"
	sectionstore "github.com/goliatone/go-composer/internal/sections"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/sections"
	command "github.com/goliatone/go-command"
)

var (
	// ErrSectionNotFound reports a command naming a section the document does not hold.
	ErrSectionNotFound = errors.New("editor command: section not found")
	// ErrMediaNotApplied reports a media selection the router dropped.
	ErrMediaNotApplied = errors.New("editor command: media selection not applied")
	// ErrControllerRequired is returned when no controller is supplied.
	ErrControllerRequired = errors.New("editor command: controller is required")
)

var (
	_ command.Commander[LoadPageCommand]         = (*commands.Handler[LoadPageCommand])(nil)
	_ command.Commander[AddSectionCommand]       = (*commands.Handler[AddSectionCommand])(nil)
	_ command.Commander[SaveCommand]             = (*commands.Handler[SaveCommand])(nil)
	_ command.Commander[UpdatePropertiesCommand] = (*commands.Handler[UpdatePropertiesCommand])(nil)
)

// Session drives one editor.Controller through command messages.
type Session struct {
	ctrl   *editor.Controller
	caps   permissions.Checker
	logger interfaces.Logger

	mu        sync.Mutex
	lastAdded string

	Load             *commands.Handler[LoadPageCommand]
	EnterEdit        *commands.Handler[EnterEditCommand]
	ExitEdit         *commands.Handler[ExitEditCommand]
	AddSection       *commands.Handler[AddSectionCommand]
	UpdateSection    *commands.Handler[UpdateSectionCommand]
	RemoveSection    *commands.Handler[RemoveSectionCommand]
	MoveSection      *commands.Handler[MoveSectionCommand]
	DuplicateSection *commands.Handler[DuplicateSectionCommand]
	SelectMedia      *commands.Handler[SelectMediaCommand]
	UpdateProperties *commands.Handler[UpdatePropertiesCommand]
	Save             *commands.Handler[SaveCommand]
}

// NewSession builds the command handlers around ctrl. caps are the
// capabilities EnterEditCommand presents.
func NewSession(ctrl *editor.Controller, caps permissions.Checker, logger interfaces.Logger) (*Session, error) {
	if ctrl == nil {
		return nil, ErrControllerRequired
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	s := &Session{ctrl: ctrl, caps: caps, logger: logger}

	s.Load = newHandler[LoadPageCommand](logger, "editor.load_page", func(ctx context.Context, msg LoadPageCommand) error {
		return ctrl.Load(ctx, msg.PageKey)
	}, func(msg LoadPageCommand) map[string]any {
		return map[string]any{logging.FieldPageKey: msg.PageKey}
	})
	s.EnterEdit = newHandler[EnterEditCommand](logger, "editor.enter_edit", func(ctx context.Context, _ EnterEditCommand) error {
		return ctrl.EnterEdit(ctx, s.caps)
	}, nil)
	s.ExitEdit = newHandler[ExitEditCommand](logger, "editor.exit_edit", s.exitEdit, nil)
	s.AddSection = newHandler[AddSectionCommand](logger, "editor.add_section", s.addSection, func(msg AddSectionCommand) map[string]any {
		return map[string]any{logging.FieldVariant: string(msg.Variant)}
	})
	s.UpdateSection = newHandler[UpdateSectionCommand](logger, "editor.update_section", func(ctx context.Context, msg UpdateSectionCommand) error {
		changed, err := ctrl.UpdateSection(ctx, msg.SectionID, sectionstore.Fields(msg.Fields))
		if err != nil {
			return err
		}
		if !changed && !ctrl.HasSection(msg.SectionID) {
			return fmt.Errorf("%w: %s", ErrSectionNotFound, msg.SectionID)
		}
		return nil
	}, sectionFields(func(msg UpdateSectionCommand) string { return msg.SectionID }))
	s.RemoveSection = newHandler[RemoveSectionCommand](logger, "editor.remove_section", func(ctx context.Context, msg RemoveSectionCommand) error {
		_, err := ctrl.RemoveSection(ctx, msg.SectionID)
		return err
	}, sectionFields(func(msg RemoveSectionCommand) string { return msg.SectionID }))
	s.MoveSection = newHandler[MoveSectionCommand](logger, "editor.move_section", func(ctx context.Context, msg MoveSectionCommand) error {
		var err error
		if msg.Direction == DirectionUp {
			_, err = ctrl.MoveUp(ctx, msg.SectionID)
		} else {
			_, err = ctrl.MoveDown(ctx, msg.SectionID)
		}
		return err
	}, sectionFields(func(msg MoveSectionCommand) string { return msg.SectionID }))
	s.DuplicateSection = newHandler[DuplicateSectionCommand](logger, "editor.duplicate_section", func(ctx context.Context, msg DuplicateSectionCommand) error {
		_, err := ctrl.Duplicate(ctx, msg.SectionID)
		return err
	}, sectionFields(func(msg DuplicateSectionCommand) string { return msg.SectionID }))
	s.SelectMedia = newHandler[SelectMediaCommand](logger, "editor.select_media", s.selectMedia, sectionFields(func(msg SelectMediaCommand) string { return msg.SectionID }))
	s.UpdateProperties = newHandler[UpdatePropertiesCommand](logger, "editor.update_properties", s.updateProperties, nil)
	s.Save = newHandler[SaveCommand](logger, "editor.save", func(ctx context.Context, _ SaveCommand) error {
		return ctrl.Save(ctx)
	}, nil)
	return s, nil
}

// Controller exposes the driven controller.
func (s *Session) Controller() *editor.Controller {
	return s.ctrl
}

// LastAdded returns the id of the section created by the latest AddSectionCommand.
func (s *Session) LastAdded() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAdded
}

// Handlers lists every handler in registration order.
func (s *Session) Handlers() []any {
	return []any{
		s.Load, s.EnterEdit, s.ExitEdit,
		s.AddSection, s.UpdateSection, s.RemoveSection, s.MoveSection, s.DuplicateSection,
		s.SelectMedia, s.UpdateProperties, s.Save,
	}
}

func (s *Session) exitEdit(ctx context.Context, _ ExitEditCommand) error {
	return s.ctrl.Exit(ctx)
}

func (s *Session) addSection(ctx context.Context, msg AddSectionCommand) error {
	var opts []sectionstore.InsertOption
	if msg.Index != nil {
		opts = append(opts, sectionstore.AtIndex(*msg.Index))
	}
	added, err := s.ctrl.AddSection(ctx, msg.Variant, opts...)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.lastAdded = added.SectionBase().ID
	s.mu.Unlock()
	return nil
}

func (s *Session) selectMedia(ctx context.Context, msg SelectMediaCommand) error {
	if err := s.ctrl.OpenMediaPicker(ctx, msg.Target()); err != nil {
		return err
	}
	outcome, err := s.ctrl.SelectMedia(ctx, msg.Asset())
	if err != nil {
		return err
	}
	if outcome != media.Applied && outcome != media.Unchanged {
		return fmt.Errorf("%w: %s", ErrMediaNotApplied, outcome)
	}
	return nil
}

func (s *Session) updateProperties(ctx context.Context, msg UpdatePropertiesCommand) error {
	var patchErr error
	_, err := s.ctrl.UpdateProperties(ctx, func(props *sections.PageProperties) {
		patchErr = mergeProperties(props, msg.Fields)
	})
	if patchErr != nil {
		return patchErr
	}
	return err
}

// mergeProperties overlays wire-named fields onto props.
func mergeProperties(props *sections.PageProperties, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("editor command: encode properties: %w", err)
	}
	next := *props
	if err := json.Unmarshal(patch, &next); err != nil {
		return fmt.Errorf("editor command: decode properties: %w", err)
	}
	*props = next
	return nil
}

func newHandler[T command.Message](logger interfaces.Logger, operation string, fn command.CommandFunc[T], fields func(T) map[string]any) *commands.Handler[T] {
	opts := []commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
		commands.WithTelemetry[T](commands.DefaultTelemetry[T](logger)),
	}
	if fields != nil {
		opts = append(opts, commands.WithMessageFields[T](fields))
	}
	return commands.NewHandler(fn, opts...)
}

func sectionFields[T command.Message](id func(T) string) func(T) map[string]any {
	return func(msg T) map[string]any {
		return map[string]any{logging.FieldSectionID: id(msg)}
	}
}
