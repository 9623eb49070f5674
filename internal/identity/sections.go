package identity

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NewSectionID returns a fresh section identifier prefixed with the variant
// tag, e.g. "hero-1b4e28ba". Identifiers are never reused.
func NewSectionID(variant string) string {
	prefix := strings.TrimSpace(variant)
	if prefix == "" {
		prefix = "section"
	}
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + raw[:12]
}

// ChildID derives the id of the n-th (1-based) nested entity of a section.
func ChildID(sectionID, kind string, n int) string {
	return sectionID + "-" + kind + "-" + strconv.Itoa(n)
}
