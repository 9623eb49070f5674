package media_test

import (
	"reflect"
	"testing"

	"github.com/goliatone/go-composer/internal/media"
	"github.com/goliatone/go-composer/sections"
)

func scenario() []sections.Section {
	return []sections.Section{
		&sections.Hero{Base: sections.Base{ID: "hero-1", Type: sections.VariantHero}},
		&sections.MiniCardGrid{
			Base: sections.Base{ID: "mcg-1", Type: sections.VariantMiniCardGrid},
			Cards: []sections.Card{
				{ID: "card-1", ThumbnailURL: "https://x/one.png"},
				{ID: "card-2"},
				{ID: "card-3"},
			},
		},
		&sections.MiniCardGrid{
			Base:  sections.Base{ID: "mcg-2", Type: sections.VariantMiniCardGrid},
			Cards: []sections.Card{{ID: "card-2"}},
		},
	}
}

func TestApplyCardTargetTouchesOnlyThatCard(t *testing.T) {
	seq := scenario()
	before := sections.CloneAll(seq)

	next, outcome := media.NewRouter().Apply(seq, media.CardTarget("mcg-1", "card-2"), media.Asset{URL: "https://x/img.png"})
	if outcome != media.Applied {
		t.Fatalf("expected Applied, got %s", outcome)
	}
	grid := next[1].(*sections.MiniCardGrid)
	if grid.Cards[1].ThumbnailURL != "https://x/img.png" || grid.Cards[1].MediaType != sections.MediaImage {
		t.Fatalf("card-2 not updated: %+v", grid.Cards[1])
	}

	expected := sections.CloneAll(before)
	expected[1].(*sections.MiniCardGrid).Cards[1].ThumbnailURL = "https://x/img.png"
	expected[1].(*sections.MiniCardGrid).Cards[1].MediaType = sections.MediaImage
	if !reflect.DeepEqual(next, expected) {
		t.Fatalf("unexpected changes outside the target card")
	}
	if !reflect.DeepEqual(seq, before) {
		t.Fatal("input sequence mutated")
	}
}

func TestApplySameAssetIsUnchanged(t *testing.T) {
	router := media.NewRouter()
	target := media.CardTarget("mcg-1", "card-2")
	asset := media.Asset{URL: "https://x/img.png", Type: sections.MediaImage}

	first, outcome := router.Apply(scenario(), target, asset)
	if outcome != media.Applied {
		t.Fatalf("expected Applied, got %s", outcome)
	}
	again, outcome := router.Apply(first, target, asset)
	if outcome != media.Unchanged {
		t.Fatalf("expected Unchanged, got %s", outcome)
	}
	if &again[0] != &first[0] {
		t.Fatalf("unchanged selection must return the input sequence")
	}
}

func TestApplySlotTargets(t *testing.T) {
	seq := []sections.Section{
		&sections.Profile{Base: sections.Base{ID: "p", Type: sections.VariantProfile}},
		&sections.SplitMedia{Base: sections.Base{ID: "s", Type: sections.VariantSplitMedia}},
	}
	router := media.NewRouter()

	seq, outcome := router.Apply(seq, media.SlotTarget("p", media.SlotProfileImage), media.Asset{URL: "me.png"})
	if outcome != media.Applied || seq[0].(*sections.Profile).ProfileImageURL != "me.png" {
		t.Fatalf("profile-image not applied: %s", outcome)
	}
	seq, outcome = router.Apply(seq, media.SlotTarget("s", media.SlotBackgroundLeftMedia), media.Asset{URL: "bg.mp4", Type: sections.MediaVideo})
	split := seq[1].(*sections.SplitMedia)
	if outcome != media.Applied || split.LeftMediaURL != "bg.mp4" || split.LeftMediaType != sections.MediaVideo {
		t.Fatalf("background-left-media not applied: %s %+v", outcome, split)
	}
	if _, outcome := router.Apply(seq, media.SlotTarget("p", media.SlotLogo), media.Asset{URL: "x"}); outcome != media.SlotUnsupported {
		t.Fatalf("expected SlotUnsupported, got %s", outcome)
	}
}

func TestApplySlideTarget(t *testing.T) {
	seq := []sections.Section{&sections.AdvancedSlider{
		Base:   sections.Base{ID: "as", Type: sections.VariantAdvancedSlider},
		Slides: []sections.Slide{{ID: "as-slide-1"}},
	}}
	next, outcome := media.NewRouter().Apply(seq, media.CardTarget("as", "as-slide-1"), media.Asset{URL: "v.mp4", Type: sections.MediaVideo})
	slide := next[0].(*sections.AdvancedSlider).Slides[0]
	if outcome != media.Applied || slide.MediaURL != "v.mp4" || slide.MediaType != sections.MediaVideo {
		t.Fatalf("slide not updated: %s %+v", outcome, slide)
	}
}

func TestApplyMissingTargets(t *testing.T) {
	seq := scenario()
	router := media.NewRouter()

	next, outcome := router.Apply(seq, media.CardTarget("gone", "card-1"), media.Asset{URL: "u"})
	if outcome != media.SectionMissing || !reflect.DeepEqual(next, seq) {
		t.Fatalf("expected SectionMissing without change, got %s", outcome)
	}
	next, outcome = router.Apply(seq, media.CardTarget("mcg-1", "card-9"), media.Asset{URL: "u"})
	if outcome != media.CardMissing || !reflect.DeepEqual(next, seq) {
		t.Fatalf("expected CardMissing without change, got %s", outcome)
	}
	if _, outcome = router.Apply(seq, media.CardTarget("mcg-1", "card-1"), media.Asset{}); outcome != media.Rejected {
		t.Fatalf("expected Rejected for empty url, got %s", outcome)
	}
}

func TestEditingTargetValidate(t *testing.T) {
	if err := (media.EditingTarget{SectionID: "a", CardID: "c", Slot: media.SlotLogo}).Validate(); err != media.ErrTargetAmbiguous {
		t.Fatalf("expected ErrTargetAmbiguous, got %v", err)
	}
	if err := media.SlotTarget("", media.SlotLogo).Validate(); err != media.ErrTargetSectionRequired {
		t.Fatalf("expected ErrTargetSectionRequired, got %v", err)
	}
}

func TestSlotTableCoversEveryVariant(t *testing.T) {
	for _, v := range sections.Variants() {
		slots := media.Slots(v)
		for _, slot := range slots {
			if !media.Supports(v, slot) {
				t.Fatalf("%s lists unsupported slot %s", v, slot)
			}
		}
	}
	if got := media.Slots(sections.VariantVideo); !reflect.DeepEqual(got, []media.Slot{media.SlotPoster, media.SlotVideo}) {
		t.Fatalf("unexpected video slots %v", got)
	}
}

func TestPickerLifecycle(t *testing.T) {
	picker := media.NewPicker(nil)
	if _, ok := picker.Active(); ok {
		t.Fatal("picker should start closed")
	}
	if err := picker.Open(media.CardTarget("mcg-1", "card-1")); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := picker.Open(media.CardTarget("mcg-1", "card-2")); err != nil {
		t.Fatalf("Open: %v", err)
	}
	active, ok := picker.Active()
	if !ok || active.CardID != "card-2" {
		t.Fatalf("expected replaced target, got %+v", active)
	}

	next, outcome := picker.Resolve(scenario(), media.Asset{URL: "https://x/img.png"})
	if outcome != media.Applied || next[1].(*sections.MiniCardGrid).Cards[1].ThumbnailURL != "https://x/img.png" {
		t.Fatalf("unexpected resolve outcome %s", outcome)
	}
	if _, ok := picker.Active(); ok {
		t.Fatal("picker should close after resolve")
	}
	if _, outcome := picker.Resolve(scenario(), media.Asset{URL: "u"}); outcome != media.NoActiveTarget {
		t.Fatalf("expected NoActiveTarget, got %s", outcome)
	}

	_ = picker.Open(media.SlotTarget("hero-1", media.SlotBackgroundMedia))
	picker.Cancel()
	if _, ok := picker.Active(); ok {
		t.Fatal("picker should close after cancel")
	}
}
