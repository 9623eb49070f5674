package media

import (
	"slices"

	"github.com/goliatone/go-composer/sections"
)

type slotSetter func(sections.Section, Asset) bool

func set[T sections.Section](fn func(T, Asset)) slotSetter {
	return func(s sections.Section, a Asset) bool {
		typed, ok := s.(T)
		if !ok {
			return false
		}
		fn(typed, a)
		return true
	}
}

// slotTable lists, per variant, the slots a media selection may target.
// Variants without top-level media map to an empty set.
var slotTable = map[sections.Variant]map[Slot]slotSetter{
	sections.VariantHero: {
		SlotBackgroundMedia: set(func(s *sections.Hero, a Asset) {
			s.BackgroundMediaURL, s.BackgroundMediaType = a.URL, a.mediaType()
		}),
	},
	sections.VariantText: {},
	sections.VariantImage: {
		SlotImage: set(func(s *sections.Image, a Asset) { s.ImageURL = a.URL }),
	},
	sections.VariantVideo: {
		SlotVideo:  set(func(s *sections.Video, a Asset) { s.VideoURL = a.URL }),
		SlotPoster: set(func(s *sections.Video, a Asset) { s.PosterURL = a.URL }),
	},
	sections.VariantGallery:          {},
	sections.VariantSlider:           {},
	sections.VariantAdvancedSlider:   {},
	sections.VariantFeatureCardGrid:  {},
	sections.VariantInfoCard:         {},
	sections.VariantMediaStoryCards:  {},
	sections.VariantMiniCardGrid:     {},
	sections.VariantMediaPlaceholder: {},
	sections.VariantContactForm: {
		SlotAvatar: set(func(s *sections.ContactForm, a Asset) { s.AvatarURL = a.URL }),
	},
	sections.VariantHeader: {
		SlotLogo: set(func(s *sections.Header, a Asset) { s.LogoURL = a.URL }),
	},
	sections.VariantFooter: {
		SlotLogo: set(func(s *sections.Footer, a Asset) { s.LogoURL = a.URL }),
	},
	sections.VariantTestimonials: {},
	sections.VariantPricing:      {},
	sections.VariantFAQ:          {},
	sections.VariantCallToAction: {
		SlotBackgroundMedia: set(func(s *sections.CallToAction, a Asset) {
			s.BackgroundMediaURL, s.BackgroundMediaType = a.URL, a.mediaType()
		}),
	},
	sections.VariantProfile: {
		SlotProfileImage: set(func(s *sections.Profile, a Asset) { s.ProfileImageURL = a.URL }),
		SlotBackgroundMedia: set(func(s *sections.Profile, a Asset) {
			s.BackgroundMediaURL, s.BackgroundMediaType = a.URL, a.mediaType()
		}),
	},
	sections.VariantSplitMedia: {
		SlotBackgroundLeftMedia: set(func(s *sections.SplitMedia, a Asset) {
			s.LeftMediaURL, s.LeftMediaType = a.URL, a.mediaType()
		}),
		SlotImage: set(func(s *sections.SplitMedia, a Asset) { s.ImageURL = a.URL }),
	},
	sections.VariantStats:  {},
	sections.VariantTeam:   {},
	sections.VariantEmbed:  {},
	sections.VariantSpacer: {},
}

// Slots returns the slots of variant v in lexical order.
func Slots(v sections.Variant) []Slot {
	entries := slotTable[v]
	out := make([]Slot, 0, len(entries))
	for slot := range entries {
		out = append(out, slot)
	}
	slices.Sort(out)
	return out
}

// Supports reports whether variant v exposes slot.
func Supports(v sections.Variant, slot Slot) bool {
	_, ok := slotTable[v][slot]
	return ok
}
