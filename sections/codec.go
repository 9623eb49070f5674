package sections

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidSection reports a payload that is not a JSON object.
var ErrInvalidSection = errors.New("sections: section payload must be a JSON object")

// Unknown preserves a section whose tag is not recognised so that loading and
// saving a document never drops data. It is never rendered or edited.
type Unknown struct {
	Base
	Raw json.RawMessage `json:"-"`
}

func (u *Unknown) normalize() {}

// MarshalJSON re-emits the original payload verbatim.
func (u *Unknown) MarshalJSON() ([]byte, error) {
	if len(u.Raw) == 0 {
		return json.Marshal(u.Base)
	}
	return u.Raw, nil
}

// UnmarshalJSON keeps the payload and lifts the shared fields out of it.
func (u *Unknown) UnmarshalJSON(data []byte) error {
	var base Base
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}
	u.Base = base
	u.Raw = append(json.RawMessage(nil), data...)
	return nil
}

type envelope struct {
	Type Variant `json:"type"`
}

// Decode builds the concrete section for raw and normalizes it.
func Decode(raw json.RawMessage) (Section, error) {
	s, err := decode(raw)
	if err != nil {
		return nil, err
	}
	s.normalize()
	return s, nil
}

func decode(raw json.RawMessage) (Section, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidSection
	}
	var head envelope
	if err := json.Unmarshal(trimmed, &head); err != nil {
		return nil, fmt.Errorf("sections: decode type: %w", err)
	}
	entry, ok := table[head.Type]
	if !ok {
		unknown := &Unknown{}
		if err := unknown.UnmarshalJSON(trimmed); err != nil {
			return nil, fmt.Errorf("sections: decode %q: %w", head.Type, err)
		}
		return unknown, nil
	}
	s := entry.zero()
	if err := json.Unmarshal(trimmed, s); err != nil {
		return nil, fmt.Errorf("sections: decode %q: %w", head.Type, err)
	}
	return s, nil
}

// UnmarshalSections decodes a JSON array of sections. A null or empty
// payload yields an empty, non-nil slice.
func UnmarshalSections(data []byte) ([]Section, error) {
	var raws []json.RawMessage
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("sections: decode list: %w", err)
		}
	}
	out := make([]Section, 0, len(raws))
	for i, raw := range raws {
		s, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("sections: index %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// MarshalSections encodes seq as a JSON array; nil encodes as [].
func MarshalSections(seq []Section) ([]byte, error) {
	if seq == nil {
		seq = []Section{}
	}
	return json.Marshal(seq)
}

// Normalize returns a normalized deep copy of s.
func Normalize(s Section) Section {
	out := Clone(s)
	if out != nil {
		out.normalize()
	}
	return out
}

// Clone deep-copies s, nested cards and styles included.
func Clone(s Section) Section {
	if s == nil {
		return nil
	}
	if u, ok := s.(*Unknown); ok {
		out := &Unknown{Base: u.Base}
		if len(u.Raw) > 0 {
			_ = out.UnmarshalJSON(u.Raw)
		}
		return out
	}
	raw, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("sections: clone %s: %v", s.Variant(), err))
	}
	out, err := decode(raw)
	if err != nil {
		panic(fmt.Sprintf("sections: clone %s: %v", s.Variant(), err))
	}
	return out
}

// CloneAll deep-copies a sequence.
func CloneAll(seq []Section) []Section {
	out := make([]Section, len(seq))
	for i, s := range seq {
		out[i] = Clone(s)
	}
	return out
}
