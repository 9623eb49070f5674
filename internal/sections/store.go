package sections

import (
	"errors"
	"reflect"

	"github.com/goliatone/go-composer/sections"
)

// ErrPatchFailed wraps errors returned by a Patch.
var ErrPatchFailed = errors.New("sections: patch failed")

// The operations below never mutate their input. Each returns the next
// sequence and whether anything changed; unchanged results return the input.

type insertOptions struct {
	index int
	atEnd  bool
}

// InsertOption customises Insert.
type InsertOption func(*insertOptions)

// AtIndex inserts at i instead of appending; i is clamped to the sequence bounds.
func AtIndex(i int) InsertOption {
	return func(o *insertOptions) {
		o.index = i
		o.atEnd = false
	}
}

// Insert adds s to seq. Nil sections, empty ids and ids already present are
// rejected without change.
func Insert(seq []sections.Section, s sections.Section, opts ...InsertOption) ([]sections.Section, bool) {
	if s == nil || s.SectionBase().ID == "" || IndexOf(seq, s.SectionBase().ID) >= 0 {
		return seq, false
	}
	o := insertOptions{atEnd: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	at := len(seq)
	if !o.atEnd {
		at = min(max(o.index, 0), len(seq))
	}
	next := make([]sections.Section, 0, len(seq)+1)
	next = append(next, seq[:at]...)
	next = append(next, s)
	next = append(next, seq[at:]...)
	return next, true
}

// Update applies patch to a copy of the section with id. The id and type are
// restored after the patch. Absent ids and preserved unknown sections are
// left alone.
func Update(seq []sections.Section, id string, patch Patch) ([]sections.Section, bool, error) {
	idx := IndexOf(seq, id)
	if idx < 0 || patch == nil {
		return seq, false, nil
	}
	current := seq[idx]
	if _, unknown := current.(*sections.Unknown); unknown {
		return seq, false, nil
	}
	patched, err := patch.Apply(sections.Clone(current))
	if err != nil {
		return seq, false, errors.Join(ErrPatchFailed, err)
	}
	if patched == nil {
		return seq, false, nil
	}
	base := patched.SectionBase()
	base.ID = current.SectionBase().ID
	base.Type = current.Variant()
	if reflect.TypeOf(patched) != reflect.TypeOf(current) || reflect.DeepEqual(patched, current) {
		return seq, false, nil
	}
	next := make([]sections.Section, len(seq))
	copy(next, seq)
	next[idx] = patched
	return next, true, nil
}

// Remove drops the section with id. Removing an absent id is a no-op.
func Remove(seq []sections.Section, id string) ([]sections.Section, bool) {
	idx := IndexOf(seq, id)
	if idx < 0 {
		return seq, false
	}
	next := make([]sections.Section, 0, len(seq)-1)
	next = append(next, seq[:idx]...)
	next = append(next, seq[idx+1:]...)
	return next, true
}

// MoveUp swaps the section with its predecessor.
func MoveUp(seq []sections.Section, id string) ([]sections.Section, bool) {
	idx := IndexOf(seq, id)
	if idx <= 0 {
		return seq, false
	}
	return swap(seq, idx, idx-1), true
}

// MoveDown swaps the section with its successor.
func MoveDown(seq []sections.Section, id string) ([]sections.Section, bool) {
	idx := IndexOf(seq, id)
	if idx < 0 || idx >= len(seq)-1 {
		return seq, false
	}
	return swap(seq, idx, idx+1), true
}

// Duplicate inserts a deep copy of originalID right after it, carrying newID.
// Nested cards keep their ids since they are scoped by the parent. A missing
// source, a colliding newID or an unknown section leaves seq unchanged.
func Duplicate(seq []sections.Section, originalID, newID string) ([]sections.Section, bool) {
	idx := IndexOf(seq, originalID)
	if idx < 0 || newID == "" || IndexOf(seq, newID) >= 0 {
		return seq, false
	}
	if _, unknown := seq[idx].(*sections.Unknown); unknown {
		return seq, false
	}
	clone := sections.Clone(seq[idx])
	clone.SectionBase().ID = newID
	return Insert(seq, clone, AtIndex(idx+1))
}

// IndexOf returns the position of id or -1.
func IndexOf(seq []sections.Section, id string) int {
	if id == "" {
		return -1
	}
	for i, s := range seq {
		if s != nil && s.SectionBase().ID == id {
			return i
		}
	}
	return -1
}

// Find returns the section with id.
func Find(seq []sections.Section, id string) (sections.Section, bool) {
	idx := IndexOf(seq, id)
	if idx < 0 {
		return nil, false
	}
	return seq[idx], true
}

func swap(seq []sections.Section, i, j int) []sections.Section {
	next := make([]sections.Section, len(seq))
	copy(next, seq)
	next[i], next[j] = next[j], next[i]
	return next
}
