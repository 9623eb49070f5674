package editorcmd

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-composer/internal/media"
	"github.com/goliatone/go-composer/sections"
)

const (
	loadPageMessageType         = "composer.editor.load_page"
	enterEditMessageType        = "composer.editor.enter_edit"
	exitEditMessageType         = "composer.editor.exit_edit"
	addSectionMessageType       = "composer.editor.add_section"
	updateSectionMessageType    = "composer.editor.update_section"
	removeSectionMessageType    = "composer.editor.remove_section"
	moveSectionMessageType      = "composer.editor.move_section"
	duplicateSectionMessageType = "composer.editor.duplicate_section"
	selectMediaMessageType      = "composer.editor.select_media"
	updatePropertiesMessageType = "composer.editor.update_properties"
	saveMessageType             = "composer.editor.save"
)

// Move directions accepted by MoveSectionCommand.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

func requiredText(code, message string) validation.Rule {
	return validation.By(func(value any) error {
		text, _ := value.(string)
		if strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	})
}

// LoadPageCommand opens PageKey in the session.
type LoadPageCommand struct {
	PageKey string `json:"page_key" yaml:"page_key"`
}

func (LoadPageCommand) Type() string { return loadPageMessageType }

func (m LoadPageCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.PageKey, requiredText("composer.editor.load_page.page_key_required", "page_key is required")),
	)
}

// EnterEditCommand switches the session into edit mode using the session's
// capabilities.
type EnterEditCommand struct{}

func (EnterEditCommand) Type() string { return enterEditMessageType }

func (EnterEditCommand) Validate() error { return nil }

// ExitEditCommand leaves edit mode. Unsaved edits go through the
// controller's confirmer.
type ExitEditCommand struct{}

func (ExitEditCommand) Type() string { return exitEditMessageType }

func (ExitEditCommand) Validate() error { return nil }

// AddSectionCommand creates a section of Variant. Index inserts at a position
// instead of appending.
type AddSectionCommand struct {
	Variant sections.Variant `json:"variant" yaml:"variant"`
	Index   *int             `json:"index,omitempty" yaml:"index,omitempty"`
}

func (AddSectionCommand) Type() string { return addSectionMessageType }

func (m AddSectionCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Variant, validation.By(func(value any) error {
			variant, _ := value.(sections.Variant)
			if !variant.Valid() {
				return validation.NewError("composer.editor.add_section.variant_invalid", "variant is not a known section type")
			}
			return nil
		})),
		validation.Field(&m.Index, validation.When(m.Index != nil, validation.Min(0))),
	)
}

// UpdateSectionCommand merges wire-named Fields onto SectionID.
type UpdateSectionCommand struct {
	SectionID string         `json:"section_id" yaml:"section_id"`
	Fields    map[string]any `json:"fields" yaml:"fields"`
}

func (UpdateSectionCommand) Type() string { return updateSectionMessageType }

func (m UpdateSectionCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.SectionID, requiredText("composer.editor.update_section.section_id_required", "section_id is required")),
		validation.Field(&m.Fields, validation.Required.Error("fields are required")),
	)
}

// RemoveSectionCommand deletes SectionID after the session confirms.
type RemoveSectionCommand struct {
	SectionID string `json:"section_id" yaml:"section_id"`
}

func (RemoveSectionCommand) Type() string { return removeSectionMessageType }

func (m RemoveSectionCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.SectionID, requiredText("composer.editor.remove_section.section_id_required", "section_id is required")),
	)
}

// MoveSectionCommand moves SectionID one step up or down.
type MoveSectionCommand struct {
	SectionID string `json:"section_id" yaml:"section_id"`
	Direction string `json:"direction" yaml:"direction"`
}

func (MoveSectionCommand) Type() string { return moveSectionMessageType }

func (m MoveSectionCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.SectionID, requiredText("composer.editor.move_section.section_id_required", "section_id is required")),
		validation.Field(&m.Direction, validation.Required, validation.In(DirectionUp, DirectionDown)),
	)
}

// DuplicateSectionCommand copies SectionID right after itself.
type DuplicateSectionCommand struct {
	SectionID string `json:"section_id" yaml:"section_id"`
}

func (DuplicateSectionCommand) Type() string { return duplicateSectionMessageType }

func (m DuplicateSectionCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.SectionID, requiredText("composer.editor.duplicate_section.section_id_required", "section_id is required")),
	)
}

// SelectMediaCommand opens the media picker on a card or slot and answers it
// with URL in one step.
type SelectMediaCommand struct {
	SectionID string             `json:"section_id" yaml:"section_id"`
	CardID    string             `json:"card_id,omitempty" yaml:"card_id,omitempty"`
	Slot      media.Slot         `json:"slot,omitempty" yaml:"slot,omitempty"`
	URL       string             `json:"url" yaml:"url"`
	MediaType sections.MediaType `json:"media_type,omitempty" yaml:"media_type,omitempty"`
}

func (SelectMediaCommand) Type() string { return selectMediaMessageType }

func (m SelectMediaCommand) Target() media.EditingTarget {
	return media.EditingTarget{SectionID: m.SectionID, CardID: m.CardID, Slot: m.Slot}
}

func (m SelectMediaCommand) Asset() media.Asset {
	return media.Asset{URL: m.URL, Type: m.MediaType}
}

func (m SelectMediaCommand) Validate() error {
	errs := validation.Errors{}
	if err := m.Target().Validate(); err != nil {
		errs["target"] = validation.NewError("composer.editor.select_media.target_invalid", err.Error())
	}
	if err := m.Asset().Validate(); err != nil {
		errs["asset"] = validation.NewError("composer.editor.select_media.asset_invalid", err.Error())
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePropertiesCommand merges wire-named Fields onto the page properties.
type UpdatePropertiesCommand struct {
	Fields map[string]any `json:"fields" yaml:"fields"`
}

func (UpdatePropertiesCommand) Type() string { return updatePropertiesMessageType }

func (m UpdatePropertiesCommand) Validate() error {
	if len(m.Fields) == 0 {
		return validation.Errors{"fields": errors.New("fields are required")}
	}
	return nil
}

// SaveCommand persists the session document.
type SaveCommand struct{}

func (SaveCommand) Type() string { return saveMessageType }

func (SaveCommand) Validate() error { return nil }
