package sections

// Section is one block of a page. The set of implementations is closed:
// every variant struct in this package plus Unknown.
type Section interface {
	SectionBase() *Base
	Variant() Variant
	normalize()
}

// Base carries the fields shared by every variant. It is flattened into the
// variant's JSON object.
type Base struct {
	ID           string      `json:"id"`
	Type         Variant     `json:"type"`
	Visible      bool        `json:"visible"`
	EnableSpeech bool        `json:"enableSpeech"`
	Spacing      *Spacing    `json:"spacing,omitempty"`
	Background   *Background `json:"background,omitempty"`
}

func newBase(v Variant) Base {
	return Base{Type: v, Visible: true}
}

// SectionBase exposes the shared fields for in-place edits.
func (b *Base) SectionBase() *Base { return b }

// Variant returns the section's tag.
func (b *Base) Variant() Variant { return b.Type }

// Spacing holds box offsets in pixels.
type Spacing struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Background is the optional backdrop of a section.
type Background struct {
	Color        string    `json:"color,omitempty"`
	MediaURL     string    `json:"mediaUrl,omitempty"`
	MediaType    MediaType `json:"mediaType,omitempty"`
	OverlayColor string    `json:"overlayColor,omitempty"`
}

// MediaType classifies a media reference.
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaAudio    MediaType = "audio"
	MediaDocument MediaType = "document"
)

// Valid reports whether t is a known media type.
func (t MediaType) Valid() bool {
	switch t {
	case MediaImage, MediaVideo, MediaAudio, MediaDocument:
		return true
	default:
		return false
	}
}

// Card is a nested item owned by card based variants.
type Card struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	ThumbnailURL     string     `json:"thumbnailUrl"`
	MediaType        MediaType  `json:"mediaType,omitempty"`
	LinkURL          string     `json:"linkUrl,omitempty"`
	ButtonText       string     `json:"buttonText,omitempty"`
	TitleStyle       *TextStyle `json:"titleStyle,omitempty"`
	DescriptionStyle *TextStyle `json:"descriptionStyle,omitempty"`
}

// Slide is a nested item owned by slider variants.
type Slide struct {
	ID         string     `json:"id"`
	MediaURL   string     `json:"mediaUrl"`
	MediaType  MediaType  `json:"mediaType,omitempty"`
	Title      string     `json:"title,omitempty"`
	Subtitle   string     `json:"subtitle,omitempty"`
	ButtonText string     `json:"buttonText,omitempty"`
	ButtonURL  string     `json:"buttonUrl,omitempty"`
	TitleStyle *TextStyle `json:"titleStyle,omitempty"`
}

// Button is a call to action link.
type Button struct {
	Text  string `json:"text"`
	URL   string `json:"url"`
	Style string `json:"style,omitempty"`
}

// FormField is one input of a contact form.
type FormField struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Kind        string `json:"kind"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
}

type GalleryImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

type NavLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type SocialLink struct {
	Network string `json:"network"`
	URL     string `json:"url"`
}

type Testimonial struct {
	ID        string `json:"id"`
	Quote     string `json:"quote"`
	Author    string `json:"author"`
	Role      string `json:"role,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type PricingPlan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period,omitempty"`
	Features    []string `json:"features"`
	ButtonText  string   `json:"buttonText,omitempty"`
	ButtonURL   string   `json:"buttonUrl,omitempty"`
	Highlighted bool     `json:"highlighted"`
}

type FAQItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Stat struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	Suffix string `json:"suffix,omitempty"`
}

type TeamMember struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// CardCollection is implemented by variants that own a list of cards.
type CardCollection interface {
	Section
	CardList() []Card
}

// SlideCollection is implemented by variants that own a list of slides.
type SlideCollection interface {
	Section
	SlideList() []Slide
}
