package editorcmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-composer/internal/media"
	"github.com/goliatone/go-composer/sections"
)

// Script operations.
const (
	OpEnterEdit  = "enter_edit"
	OpExit       = "exit"
	OpAdd        = "add"
	OpUpdate     = "update"
	OpRemove     = "remove"
	OpMove       = "move"
	OpDuplicate  = "duplicate"
	OpMedia      = "media"
	OpProperties = "properties"
	OpSave       = "save"
)

var (
	ErrScriptEmpty     = errors.New("editor script: no steps")
	ErrUnknownOp       = errors.New("editor script: unknown op")
	ErrUnknownAlias    = errors.New("editor script: unknown section alias")
	ErrAliasRedeclared = errors.New("editor script: alias already declared")
)

// Script is a YAML edit session: an optional page to load followed by steps.
//
//	page: home
//	steps:
//	  - op: add
//	    variant: hero
//	    as: intro
//	  - op: update
//	    section: $intro
//	    fields: {title: Welcome}
//	  - op: save
type Script struct {
	Page  string `yaml:"page,omitempty"`
	Steps []Step `yaml:"steps"`
}

// Step is one script operation. Section accepts a literal id or a $alias
// bound by an earlier add step.
type Step struct {
	Op        string             `yaml:"op"`
	Variant   sections.Variant   `yaml:"variant,omitempty"`
	Index     *int               `yaml:"index,omitempty"`
	As        string             `yaml:"as,omitempty"`
	Section   string             `yaml:"section,omitempty"`
	Fields    map[string]any     `yaml:"fields,omitempty"`
	Direction string             `yaml:"direction,omitempty"`
	Card      string             `yaml:"card,omitempty"`
	Slot      media.Slot         `yaml:"slot,omitempty"`
	URL       string             `yaml:"url,omitempty"`
	MediaType sections.MediaType `yaml:"media_type,omitempty"`
}

// Report summarises a script run.
type Report struct {
	Steps   int               `json:"steps"`
	Aliases map[string]string `json:"aliases,omitempty"`
}

// ParseScript decodes a YAML script, rejecting unknown keys.
func ParseScript(r io.Reader) (Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Script{}, fmt.Errorf("editor script: read: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var script Script
	if err := dec.Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, ErrScriptEmpty
		}
		return Script{}, fmt.Errorf("editor script: decode: %w", err)
	}
	if len(script.Steps) == 0 {
		return Script{}, ErrScriptEmpty
	}
	return script, nil
}

// Run executes script against session, stopping at the first failing step.
// The report counts the steps that completed.
func Run(ctx context.Context, session *Session, script Script) (Report, error) {
	report := Report{Aliases: map[string]string{}}
	if session == nil {
		return report, ErrControllerRequired
	}
	if strings.TrimSpace(script.Page) != "" {
		if err := session.Load.Execute(ctx, LoadPageCommand{PageKey: script.Page}); err != nil {
			return report, fmt.Errorf("editor script: load %s: %w", script.Page, err)
		}
	}
	for i, step := range script.Steps {
		if err := runStep(ctx, session, step, report.Aliases); err != nil {
			return report, fmt.Errorf("editor script: step %d (%s): %w", i+1, step.Op, err)
		}
		report.Steps++
	}
	return report, nil
}

func runStep(ctx context.Context, s *Session, step Step, aliases map[string]string) error {
	section, err := resolveSection(step.Section, aliases)
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(step.Op)) {
	case OpEnterEdit:
		return s.EnterEdit.Execute(ctx, EnterEditCommand{})
	case OpExit:
		return s.ExitEdit.Execute(ctx, ExitEditCommand{})
	case OpAdd:
		if err := s.AddSection.Execute(ctx, AddSectionCommand{Variant: step.Variant, Index: step.Index}); err != nil {
			return err
		}
		return bindAlias(aliases, step.As, s.LastAdded())
	case OpUpdate:
		return s.UpdateSection.Execute(ctx, UpdateSectionCommand{SectionID: section, Fields: step.Fields})
	case OpRemove:
		return s.RemoveSection.Execute(ctx, RemoveSectionCommand{SectionID: section})
	case OpMove:
		return s.MoveSection.Execute(ctx, MoveSectionCommand{SectionID: section, Direction: step.Direction})
	case OpDuplicate:
		return s.DuplicateSection.Execute(ctx, DuplicateSectionCommand{SectionID: section})
	case OpMedia:
		return s.SelectMedia.Execute(ctx, SelectMediaCommand{
			SectionID: section,
			CardID:    step.Card,
			Slot:      step.Slot,
			URL:       step.URL,
			MediaType: step.MediaType,
		})
	case OpProperties:
		return s.UpdateProperties.Execute(ctx, UpdatePropertiesCommand{Fields: step.Fields})
	case OpSave:
		return s.Save.Execute(ctx, SaveCommand{})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
}

func resolveSection(ref string, aliases map[string]string) (string, error) {
	ref = strings.TrimSpace(ref)
	name, ok := strings.CutPrefix(ref, "$")
	if !ok {
		return ref, nil
	}
	id, found := aliases[name]
	if !found {
		return "", fmt.Errorf("%w: %s", ErrUnknownAlias, ref)
	}
	return id, nil
}

func bindAlias(aliases map[string]string, name, id string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if _, exists := aliases[name]; exists {
		return fmt.Errorf("%w: %s", ErrAliasRedeclared, name)
	}
	aliases[name] = id
	return nil
}
