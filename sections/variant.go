package sections

// Variant is the discriminant tag carried in every section's "type" field.
type Variant string

const (
	VariantHero             Variant = "hero"
	VariantText             Variant = "text"
	VariantImage            Variant = "image"
	VariantVideo            Variant = "video"
	VariantGallery          Variant = "gallery"
	VariantSlider           Variant = "slider"
	VariantAdvancedSlider   Variant = "advanced-slider"
	VariantFeatureCardGrid  Variant = "feature-card-grid"
	VariantInfoCard         Variant = "info-card"
	VariantMediaStoryCards  Variant = "media-story-cards"
	VariantMiniCardGrid     Variant = "mini-card-grid"
	VariantMediaPlaceholder Variant = "media-placeholder"
	VariantContactForm      Variant = "contact-form"
	VariantHeader           Variant = "header"
	VariantFooter           Variant = "footer"
	VariantTestimonials     Variant = "testimonials"
	VariantPricing          Variant = "pricing"
	VariantFAQ              Variant = "faq"
	VariantCallToAction     Variant = "call-to-action"
	VariantProfile          Variant = "profile"
	VariantSplitMedia       Variant = "split-media"
	VariantStats            Variant = "stats"
	VariantTeam             Variant = "team"
	VariantEmbed            Variant = "embed"
	VariantSpacer           Variant = "spacer"
)

var canonicalOrder = []Variant{
	VariantHero,
	VariantText,
	VariantImage,
	VariantVideo,
	VariantGallery,
	VariantSlider,
	VariantAdvancedSlider,
	VariantFeatureCardGrid,
	VariantInfoCard,
	VariantMediaStoryCards,
	VariantMiniCardGrid,
	VariantMediaPlaceholder,
	VariantContactForm,
	VariantHeader,
	VariantFooter,
	VariantTestimonials,
	VariantPricing,
	VariantFAQ,
	VariantCallToAction,
	VariantProfile,
	VariantSplitMedia,
	VariantStats,
	VariantTeam,
	VariantEmbed,
	VariantSpacer,
}

// Variants returns every known tag in canonical order.
func Variants() []Variant {
	out := make([]Variant, len(canonicalOrder))
	copy(out, canonicalOrder)
	return out
}

// Valid reports whether v is one of the known tags.
func (v Variant) Valid() bool {
	_, ok := table[v]
	return ok
}

func (v Variant) String() string { return string(v) }
