package sections

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/multierr"
)

var (
	ErrEmptySectionID     = errors.New("sections: section id is required")
	ErrDuplicateSectionID = errors.New("sections: duplicate section id")
	ErrEmptySectionType   = errors.New("sections: section type is required")
	ErrNilSection         = errors.New("sections: nil section")
)

var languagePattern = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z0-9]{2,8})*$`)

// PageProperties holds page wide presentation settings.
type PageProperties struct {
	Title              string `json:"title"`
	MetaDescription    string `json:"metaDescription,omitempty"`
	Language           string `json:"language"`
	BackgroundColor    string `json:"backgroundColor"`
	BackgroundImageURL string `json:"backgroundImageUrl,omitempty"`
	FontFamily         string `json:"fontFamily"`
	TextColor          string `json:"textColor"`
	LayoutWidth        string `json:"layoutWidth"`
	MaxWidth           int    `json:"maxWidth"`
	Favicon            string `json:"favicon,omitempty"`
}

// DefaultPageProperties returns the properties of a page that was never saved.
func DefaultPageProperties() PageProperties {
	return PageProperties{
		Language:        "en",
		BackgroundColor: "#ffffff",
		FontFamily:      "Inter, sans-serif",
		TextColor:       "#111827",
		LayoutWidth:     "boxed",
		MaxWidth:        1200,
	}
}

// Validate checks the properties against their documented ranges.
func (p PageProperties) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Length(0, 200)),
		validation.Field(&p.MetaDescription, validation.Length(0, 500)),
		validation.Field(&p.Language, validation.Match(languagePattern)),
		validation.Field(&p.LayoutWidth, validation.In("boxed", "full")),
		validation.Field(&p.MaxWidth, validation.Min(0)),
	)
}

// Document is the persisted unit of a page: its ordered sections plus page
// properties. Order is significant and never sorted.
type Document struct {
	Sections   []Section
	Properties PageProperties
}

// NewDocument returns an empty document with default properties.
func NewDocument() Document {
	return Document{Sections: []Section{}, Properties: DefaultPageProperties()}
}

type documentJSON struct {
	Sections   json.RawMessage `json:"sections"`
	Properties json.RawMessage `json:"properties,omitempty"`
}

// MarshalJSON encodes the document as {sections, properties}.
func (d Document) MarshalJSON() ([]byte, error) {
	seq := d.Sections
	if seq == nil {
		seq = []Section{}
	}
	return json.Marshal(struct {
		Sections   []Section      `json:"sections"`
		Properties PageProperties `json:"properties"`
	}{seq, d.Properties})
}

// UnmarshalJSON decodes {sections, properties}. Missing sections yield an
// empty list and missing properties fall back to the defaults.
func (d *Document) UnmarshalJSON(data []byte) error {
	var wire documentJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("sections: decode document: %w", err)
	}
	seq, err := UnmarshalSections(wire.Sections)
	if err != nil {
		return err
	}
	props := DefaultPageProperties()
	if len(wire.Properties) > 0 && string(wire.Properties) != "null" {
		if err := json.Unmarshal(wire.Properties, &props); err != nil {
			return fmt.Errorf("sections: decode properties: %w", err)
		}
	}
	d.Sections = seq
	d.Properties = props
	return nil
}

// Clone deep-copies the document.
func (d Document) Clone() Document {
	return Document{Sections: CloneAll(d.Sections), Properties: d.Properties}
}

// Validate reports every structural problem of the document at once.
func (d Document) Validate() error {
	var err error
	seen := make(map[string]int, len(d.Sections))
	for i, s := range d.Sections {
		if s == nil {
			err = multierr.Append(err, fmt.Errorf("index %d: %w", i, ErrNilSection))
			continue
		}
		base := s.SectionBase()
		if strings.TrimSpace(base.ID) == "" {
			err = multierr.Append(err, fmt.Errorf("index %d: %w", i, ErrEmptySectionID))
		} else if prev, dup := seen[base.ID]; dup {
			err = multierr.Append(err, fmt.Errorf("index %d: %w %q (first at %d)", i, ErrDuplicateSectionID, base.ID, prev))
		} else {
			seen[base.ID] = i
		}
		if strings.TrimSpace(string(base.Type)) == "" {
			err = multierr.Append(err, fmt.Errorf("index %d: %w", i, ErrEmptySectionType))
		}
	}
	if propsErr := d.Properties.Validate(); propsErr != nil {
		err = multierr.Append(err, fmt.Errorf("properties: %w", propsErr))
	}
	return err
}
