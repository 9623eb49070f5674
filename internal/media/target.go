package media

import (
	"errors"
	"strings"

	"github.com/goliatone/go-composer/sections"
)

var (
	ErrTargetSectionRequired = errors.New("media: target section id is required")
	ErrTargetAmbiguous       = errors.New("media: target must name exactly one of card id or slot")
	ErrAssetURLRequired      = errors.New("media: asset url is required")
	ErrAssetTypeInvalid      = errors.New("media: asset type is invalid")
)

// Slot names a top-level media field of a section.
type Slot string

const (
	SlotProfileImage        Slot = "profile-image"
	SlotBackgroundMedia     Slot = "background-media"
	SlotBackgroundLeftMedia Slot = "background-left-media"
	SlotImage               Slot = "image"
	SlotVideo               Slot = "video"
	SlotPoster              Slot = "poster"
	SlotLogo                Slot = "logo"
	SlotAvatar              Slot = "avatar"
)

// EditingTarget points at the field a pending media selection will update:
// either one card (or slide) of a section, or one named slot.
type EditingTarget struct {
	SectionID string `json:"sectionId"`
	CardID    string `json:"cardId,omitempty"`
	Slot      Slot   `json:"mediaType,omitempty"`
}

// CardTarget addresses the card cardID inside sectionID.
func CardTarget(sectionID, cardID string) EditingTarget {
	return EditingTarget{SectionID: sectionID, CardID: cardID}
}

// SlotTarget addresses a named slot of sectionID.
func SlotTarget(sectionID string, slot Slot) EditingTarget {
	return EditingTarget{SectionID: sectionID, Slot: slot}
}

// IsCard reports whether the target addresses a card.
func (t EditingTarget) IsCard() bool { return t.CardID != "" }

// Validate checks that exactly one of CardID and Slot is set.
func (t EditingTarget) Validate() error {
	if strings.TrimSpace(t.SectionID) == "" {
		return ErrTargetSectionRequired
	}
	if (t.CardID == "") == (t.Slot == "") {
		return ErrTargetAmbiguous
	}
	return nil
}

// Asset is the picker's answer: a URL and what kind of media it is.
type Asset struct {
	URL  string             `json:"url"`
	Type sections.MediaType `json:"type"`
}

// Validate rejects empty URLs and unknown types. An empty type means image.
func (a Asset) Validate() error {
	if strings.TrimSpace(a.URL) == "" {
		return ErrAssetURLRequired
	}
	if a.Type != "" && !a.Type.Valid() {
		return ErrAssetTypeInvalid
	}
	return nil
}

func (a Asset) mediaType() sections.MediaType {
	if a.Type == "" {
		return sections.MediaImage
	}
	return a.Type
}
