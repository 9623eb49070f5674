package media

import (
	"github.com/goliatone/go-composer/internal/logging"
	sectionstore "github.com/goliatone/go-composer/internal/sections"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/sections"
)

// Outcome reports what Apply did with a selection.
type Outcome int

const (
	// Applied means the target field was updated.
	Applied Outcome = iota
	// SectionMissing means the section was removed while the picker was open;
	// the selection is dropped.
	SectionMissing
	// CardMissing means the section has no card or slide with the target id.
	CardMissing
	// SlotUnsupported means the variant has no such slot.
	SlotUnsupported
	// Rejected means the target or asset failed validation.
	Rejected
	// NoActiveTarget means no picker session was open.
	NoActiveTarget
	// Unchanged means the target already held the asset.
	Unchanged
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case SectionMissing:
		return "section_missing"
	case CardMissing:
		return "card_missing"
	case SlotUnsupported:
		return "slot_unsupported"
	case Rejected:
		return "rejected"
	case NoActiveTarget:
		return "no_active_target"
	case Unchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// Router applies media selections to a section sequence.
type Router struct {
	logger interfaces.Logger
}

// RouterOption customises a Router.
type RouterOption func(*Router)

// WithRouterLogger sets the router logger.
func WithRouterLogger(logger interfaces.Logger) RouterOption {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRouter builds a Router.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Apply sets asset on the field addressed by target. seq is never mutated;
// the returned sequence equals seq unless the outcome is Applied. Selecting
// the asset a field already holds reports Unchanged.
func (r *Router) Apply(seq []sections.Section, target EditingTarget, asset Asset) ([]sections.Section, Outcome) {
	if target.Validate() != nil || asset.Validate() != nil {
		return seq, Rejected
	}
	if sectionstore.IndexOf(seq, target.SectionID) < 0 {
		r.logger.Debug("media.selection.dropped", logging.FieldSectionID, target.SectionID)
		return seq, SectionMissing
	}

	outcome := Applied
	next, changed, err := sectionstore.Update(seq, target.SectionID, sectionstore.PatchFunc(func(s sections.Section) {
		if target.IsCard() {
			if !setCardMedia(s, target.CardID, asset) {
				outcome = CardMissing
			}
			return
		}
		setter, ok := slotTable[s.Variant()][target.Slot]
		if !ok || !setter(s, asset) {
			outcome = SlotUnsupported
		}
	}))
	if err != nil {
		return seq, Rejected
	}
	if outcome != Applied {
		return seq, outcome
	}
	if !changed {
		return seq, Unchanged
	}
	return next, Applied
}

func setCardMedia(s sections.Section, cardID string, asset Asset) bool {
	switch typed := s.(type) {
	case sections.CardCollection:
		cards := typed.CardList()
		for i := range cards {
			if cards[i].ID == cardID {
				cards[i].ThumbnailURL = asset.URL
				cards[i].MediaType = asset.mediaType()
				return true
			}
		}
	case sections.SlideCollection:
		slides := typed.SlideList()
		for i := range slides {
			if slides[i].ID == cardID {
				slides[i].MediaURL = asset.URL
				slides[i].MediaType = asset.mediaType()
				return true
			}
		}
	}
	return false
}
