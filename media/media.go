// Package media re-exports the media binding types used to answer an
// editor's media picker.
package media

import (
	internalmedia "github.com/goliatone/go-composer/internal/media"
	"github.com/goliatone/go-composer/sections"
)

// Re-exported errors from the internal media package.
var (
	ErrTargetSectionRequired = internalmedia.ErrTargetSectionRequired
	ErrTargetAmbiguous       = internalmedia.ErrTargetAmbiguous
	ErrAssetURLRequired      = internalmedia.ErrAssetURLRequired
	ErrAssetTypeInvalid      = internalmedia.ErrAssetTypeInvalid
)

// Re-exported types from the internal media package.
type (
	Slot          = internalmedia.Slot
	EditingTarget = internalmedia.EditingTarget
	Asset         = internalmedia.Asset
	Outcome       = internalmedia.Outcome
)

const (
	SlotProfileImage        = internalmedia.SlotProfileImage
	SlotBackgroundMedia     = internalmedia.SlotBackgroundMedia
	SlotBackgroundLeftMedia = internalmedia.SlotBackgroundLeftMedia
	SlotImage               = internalmedia.SlotImage
	SlotVideo               = internalmedia.SlotVideo
	SlotPoster              = internalmedia.SlotPoster
	SlotLogo                = internalmedia.SlotLogo
	SlotAvatar              = internalmedia.SlotAvatar
)

const (
	Applied         = internalmedia.Applied
	SectionMissing  = internalmedia.SectionMissing
	CardMissing     = internalmedia.CardMissing
	SlotUnsupported = internalmedia.SlotUnsupported
	Rejected        = internalmedia.Rejected
	NoActiveTarget  = internalmedia.NoActiveTarget
	Unchanged       = internalmedia.Unchanged
)

// CardTarget addresses a card or slide inside a section.
func CardTarget(sectionID, cardID string) EditingTarget {
	return internalmedia.CardTarget(sectionID, cardID)
}

// SlotTarget addresses a named media slot of a section.
func SlotTarget(sectionID string, slot Slot) EditingTarget {
	return internalmedia.SlotTarget(sectionID, slot)
}

// Slots lists the media slots variant v exposes.
func Slots(v sections.Variant) []Slot {
	return internalmedia.Slots(v)
}

// Supports reports whether variant v has slot.
func Supports(v sections.Variant, slot Slot) bool {
	return internalmedia.Supports(v, slot)
}
