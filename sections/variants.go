package sections

import "github.com/goliatone/go-composer/internal/identity"

const (
	minSliderInterval     = 1000
	defaultSliderInterval = 5000
	defaultColumns        = 3
	maxColumns            = 6
)

type Hero struct {
	Base
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	ButtonText          string     `json:"buttonText"`
	ButtonURL           string     `json:"buttonUrl"`
	OverlayColor        string     `json:"overlayColor"`
	BackgroundMediaURL  string     `json:"backgroundMediaUrl,omitempty"`
	BackgroundMediaType MediaType  `json:"backgroundMediaType,omitempty"`
	Alignment           string     `json:"alignment,omitempty"`
	Height              string     `json:"height,omitempty"`
	TitleStyle          *TextStyle `json:"titleStyle,omitempty"`
	DescriptionStyle    *TextStyle `json:"descriptionStyle,omitempty"`
}

func (s *Hero) normalize() { s.Type = VariantHero }

type Text struct {
	Base
	Title        string     `json:"title,omitempty"`
	Content      string     `json:"content"`
	Alignment    string     `json:"alignment,omitempty"`
	TitleStyle   *TextStyle `json:"titleStyle,omitempty"`
	ContentStyle *TextStyle `json:"contentStyle,omitempty"`
}

func (s *Text) normalize() { s.Type = VariantText }

type Image struct {
	Base
	ImageURL string `json:"imageUrl"`
	Alt      string `json:"alt,omitempty"`
	Caption  string `json:"caption,omitempty"`
	LinkURL  string `json:"linkUrl,omitempty"`
	Width    string `json:"width,omitempty"`
}

func (s *Image) normalize() { s.Type = VariantImage }

type Video struct {
	Base
	VideoURL  string `json:"videoUrl"`
	PosterURL string `json:"posterUrl,omitempty"`
	Caption   string `json:"caption,omitempty"`
	Autoplay  bool   `json:"autoplay"`
	Loop      bool   `json:"loop"`
	Muted     bool   `json:"muted"`
	Controls  bool   `json:"controls"`
}

func (s *Video) normalize() { s.Type = VariantVideo }

type Gallery struct {
	Base
	Title    string         `json:"title,omitempty"`
	Images   []GalleryImage `json:"images"`
	Columns  int            `json:"columns"`
	Lightbox bool           `json:"lightbox"`
}

func (s *Gallery) normalize() {
	s.Type = VariantGallery
	if s.Images == nil {
		s.Images = []GalleryImage{}
	}
	for i := range s.Images {
		if s.Images[i].ID == "" {
			s.Images[i].ID = identity.ChildID(s.ID, "image", i+1)
		}
	}
	s.Columns = clampColumns(s.Columns)
}

type Slider struct {
	Base
	Slides     []Slide `json:"slides"`
	Autoplay   bool    `json:"autoplay"`
	Interval   int     `json:"interval"`
	ShowArrows bool    `json:"showArrows"`
	ShowDots   bool    `json:"showDots"`
}

func (s *Slider) normalize() {
	s.Type = VariantSlider
	s.Slides = normalizeSlides(s.ID, s.Slides)
	s.Interval = clampInterval(s.Interval)
}

func (s *Slider) SlideList() []Slide { return s.Slides }

type AdvancedSlider struct {
	Base
	Slides     []Slide `json:"slides"`
	Autoplay   bool    `json:"autoplay"`
	Interval   int     `json:"interval"`
	Loop       bool    `json:"loop"`
	Transition string  `json:"transition"`
	Height     string  `json:"height,omitempty"`
}

func (s *AdvancedSlider) normalize() {
	s.Type = VariantAdvancedSlider
	s.Slides = normalizeSlides(s.ID, s.Slides)
	s.Interval = clampInterval(s.Interval)
	if s.Transition == "" {
		s.Transition = "slide"
	}
}

func (s *AdvancedSlider) SlideList() []Slide { return s.Slides }

type FeatureCardGrid struct {
	Base
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle,omitempty"`
	Cards      []Card     `json:"cards"`
	Columns    int        `json:"columns"`
	TitleStyle *TextStyle `json:"titleStyle,omitempty"`
}

func (s *FeatureCardGrid) normalize() {
	s.Type = VariantFeatureCardGrid
	s.Cards = normalizeCards(s.ID, s.Cards)
	s.Columns = clampColumns(s.Columns)
}

func (s *FeatureCardGrid) CardList() []Card { return s.Cards }

type InfoCard struct {
	Base
	Title  string `json:"title"`
	Cards  []Card `json:"cards"`
	Layout string `json:"layout"`
}

func (s *InfoCard) normalize() {
	s.Type = VariantInfoCard
	s.Cards = normalizeCards(s.ID, s.Cards)
	if s.Layout == "" {
		s.Layout = "horizontal"
	}
}

func (s *InfoCard) CardList() []Card { return s.Cards }

type MediaStoryCards struct {
	Base
	Title    string `json:"title"`
	Cards    []Card `json:"cards"`
	Autoplay bool   `json:"autoplay"`
}

func (s *MediaStoryCards) normalize() {
	s.Type = VariantMediaStoryCards
	s.Cards = normalizeCards(s.ID, s.Cards)
}

func (s *MediaStoryCards) CardList() []Card { return s.Cards }

type MiniCardGrid struct {
	Base
	Title   string `json:"title"`
	Cards   []Card `json:"cards"`
	Columns int    `json:"columns"`
}

func (s *MiniCardGrid) normalize() {
	s.Type = VariantMiniCardGrid
	s.Cards = normalizeCards(s.ID, s.Cards)
	s.Columns = clampColumns(s.Columns)
}

func (s *MiniCardGrid) CardList() []Card { return s.Cards }

type MediaPlaceholder struct {
	Base
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Cards       []Card `json:"cards"`
}

func (s *MediaPlaceholder) normalize() {
	s.Type = VariantMediaPlaceholder
	s.Cards = normalizeCards(s.ID, s.Cards)
}

func (s *MediaPlaceholder) CardList() []Card { return s.Cards }

type ContactForm struct {
	Base
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	Fields         []FormField `json:"fields"`
	SubmitText     string      `json:"submitText"`
	SuccessMessage string      `json:"successMessage"`
	RecipientEmail string      `json:"recipientEmail,omitempty"`
	AvatarURL      string      `json:"avatarUrl,omitempty"`
}

func (s *ContactForm) normalize() {
	s.Type = VariantContactForm
	if s.Fields == nil {
		s.Fields = []FormField{}
	}
	for i := range s.Fields {
		if s.Fields[i].ID == "" {
			s.Fields[i].ID = identity.ChildID(s.ID, "field", i+1)
		}
		if s.Fields[i].Kind == "" {
			s.Fields[i].Kind = "text"
		}
	}
	if s.SubmitText == "" {
		s.SubmitText = "Send"
	}
}

type Header struct {
	Base
	SiteName string    `json:"siteName"`
	LogoURL  string    `json:"logoUrl,omitempty"`
	Links    []NavLink `json:"links"`
	Sticky   bool      `json:"sticky"`
}

func (s *Header) normalize() {
	s.Type = VariantHeader
	if s.Links == nil {
		s.Links = []NavLink{}
	}
}

type Footer struct {
	Base
	LogoURL   string       `json:"logoUrl,omitempty"`
	Text      string       `json:"text"`
	Links     []NavLink    `json:"links"`
	Social    []SocialLink `json:"social"`
	Copyright string       `json:"copyright,omitempty"`
}

func (s *Footer) normalize() {
	s.Type = VariantFooter
	if s.Links == nil {
		s.Links = []NavLink{}
	}
	if s.Social == nil {
		s.Social = []SocialLink{}
	}
}

type Testimonials struct {
	Base
	Title string        `json:"title"`
	Items []Testimonial `json:"items"`
}

func (s *Testimonials) normalize() {
	s.Type = VariantTestimonials
	if s.Items == nil {
		s.Items = []Testimonial{}
	}
	for i := range s.Items {
		if s.Items[i].ID == "" {
			s.Items[i].ID = identity.ChildID(s.ID, "testimonial", i+1)
		}
	}
}

type Pricing struct {
	Base
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle,omitempty"`
	Plans    []PricingPlan `json:"plans"`
}

func (s *Pricing) normalize() {
	s.Type = VariantPricing
	if s.Plans == nil {
		s.Plans = []PricingPlan{}
	}
	for i := range s.Plans {
		if s.Plans[i].ID == "" {
			s.Plans[i].ID = identity.ChildID(s.ID, "plan", i+1)
		}
		if s.Plans[i].Features == nil {
			s.Plans[i].Features = []string{}
		}
	}
}

type FAQ struct {
	Base
	Title string    `json:"title"`
	Items []FAQItem `json:"items"`
}

func (s *FAQ) normalize() {
	s.Type = VariantFAQ
	if s.Items == nil {
		s.Items = []FAQItem{}
	}
	for i := range s.Items {
		if s.Items[i].ID == "" {
			s.Items[i].ID = identity.ChildID(s.ID, "faq", i+1)
		}
	}
}

type CallToAction struct {
	Base
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Button              Button    `json:"button"`
	BackgroundMediaURL  string    `json:"backgroundMediaUrl,omitempty"`
	BackgroundMediaType MediaType `json:"backgroundMediaType,omitempty"`
}

func (s *CallToAction) normalize() { s.Type = VariantCallToAction }

type Profile struct {
	Base
	Name                string       `json:"name"`
	Headline            string       `json:"headline,omitempty"`
	Bio                 string       `json:"bio,omitempty"`
	ProfileImageURL     string       `json:"profileImageUrl,omitempty"`
	BackgroundMediaURL  string       `json:"backgroundMediaUrl,omitempty"`
	BackgroundMediaType MediaType    `json:"backgroundMediaType,omitempty"`
	Links               []SocialLink `json:"links"`
}

func (s *Profile) normalize() {
	s.Type = VariantProfile
	if s.Links == nil {
		s.Links = []SocialLink{}
	}
}

type SplitMedia struct {
	Base
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	LeftMediaURL  string    `json:"leftMediaUrl,omitempty"`
	LeftMediaType MediaType `json:"leftMediaType,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	MediaPosition string    `json:"mediaPosition"`
}

func (s *SplitMedia) normalize() {
	s.Type = VariantSplitMedia
	if s.MediaPosition != "right" {
		s.MediaPosition = "left"
	}
}

type Stats struct {
	Base
	Title   string `json:"title,omitempty"`
	Items   []Stat `json:"items"`
	Columns int    `json:"columns"`
}

func (s *Stats) normalize() {
	s.Type = VariantStats
	if s.Items == nil {
		s.Items = []Stat{}
	}
	for i := range s.Items {
		if s.Items[i].ID == "" {
			s.Items[i].ID = identity.ChildID(s.ID, "stat", i+1)
		}
	}
	s.Columns = clampColumns(s.Columns)
}

type Team struct {
	Base
	Title   string       `json:"title"`
	Members []TeamMember `json:"members"`
}

func (s *Team) normalize() {
	s.Type = VariantTeam
	if s.Members == nil {
		s.Members = []TeamMember{}
	}
	for i := range s.Members {
		if s.Members[i].ID == "" {
			s.Members[i].ID = identity.ChildID(s.ID, "member", i+1)
		}
	}
}

type Embed struct {
	Base
	URL         string `json:"url"`
	Provider    string `json:"provider,omitempty"`
	AspectRatio string `json:"aspectRatio"`
	Height      int    `json:"height,omitempty"`
}

func (s *Embed) normalize() {
	s.Type = VariantEmbed
	if s.AspectRatio == "" {
		s.AspectRatio = "16:9"
	}
	if s.Height < 0 {
		s.Height = 0
	}
}

type Spacer struct {
	Base
	Height       int    `json:"height"`
	ShowDivider  bool   `json:"showDivider"`
	DividerColor string `json:"dividerColor,omitempty"`
}

func (s *Spacer) normalize() {
	s.Type = VariantSpacer
	if s.Height < 0 {
		s.Height = 0
	}
}

func normalizeCards(sectionID string, cards []Card) []Card {
	if cards == nil {
		return []Card{}
	}
	ids := make([]*string, len(cards))
	for i := range cards {
		ids[i] = &cards[i].ID
	}
	fillChildIDs(sectionID, "card", ids)
	return cards
}

func normalizeSlides(sectionID string, slides []Slide) []Slide {
	if slides == nil {
		return []Slide{}
	}
	ids := make([]*string, len(slides))
	for i := range slides {
		ids[i] = &slides[i].ID
	}
	fillChildIDs(sectionID, "slide", ids)
	return slides
}

// fillChildIDs derives <sectionId>-<kind>-<n> for empty ids, skipping any n
// whose id is already held by a sibling.
func fillChildIDs(sectionID, kind string, ids []*string) {
	taken := make(map[string]bool, len(ids))
	for _, id := range ids {
		if *id != "" {
			taken[*id] = true
		}
	}
	for i, id := range ids {
		if *id != "" {
			continue
		}
		n := i + 1
		candidate := identity.ChildID(sectionID, kind, n)
		for taken[candidate] {
			n++
			candidate = identity.ChildID(sectionID, kind, n)
		}
		*id = candidate
		taken[candidate] = true
	}
}

func clampInterval(ms int) int {
	switch {
	case ms == 0:
		return defaultSliderInterval
	case ms < minSliderInterval:
		return minSliderInterval
	default:
		return ms
	}
}

func clampColumns(n int) int {
	switch {
	case n <= 0:
		return defaultColumns
	case n > maxColumns:
		return maxColumns
	default:
		return n
	}
}
