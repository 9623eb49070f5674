package sections

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-composer/sections"
)

// Patch transforms a private copy of a section.
type Patch interface {
	Apply(sections.Section) (sections.Section, error)
}

// PatchFunc edits the copy in place.
type PatchFunc func(sections.Section)

func (fn PatchFunc) Apply(s sections.Section) (sections.Section, error) {
	fn(s)
	return s, nil
}

// Fields merges wire-named fields onto the section. The "id" and "type"
// keys are ignored.
type Fields map[string]any

func (f Fields) Apply(s sections.Section) (sections.Section, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	merged := map[string]any{}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, err
	}
	for key, value := range f {
		if key == "id" || key == "type" {
			continue
		}
		merged[key] = value
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	patched, err := sections.Decode(out)
	if err != nil {
		return nil, fmt.Errorf("apply fields to %s: %w", s.Variant(), err)
	}
	return patched, nil
}

// SetVisible toggles the section's visibility.
func SetVisible(visible bool) Patch {
	return PatchFunc(func(s sections.Section) {
		s.SectionBase().Visible = visible
	})
}
