package sections

import (
	"github.com/goliatone/go-composer/internal/identity"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/sections"
)

// IDGenerator returns a fresh, never reused section id for variant.
type IDGenerator func(variant sections.Variant) string

// Factory creates new sections with fresh ids and variant defaults.
type Factory struct {
	ids    IDGenerator
	logger interfaces.Logger
}

// FactoryOption customises a Factory.
type FactoryOption func(*Factory)

// WithIDGenerator overrides the id source.
func WithIDGenerator(gen IDGenerator) FactoryOption {
	return func(f *Factory) {
		if gen != nil {
			f.ids = gen
		}
	}
}

// WithFactoryLogger sets the logger used to report unknown tags.
func WithFactoryLogger(logger interfaces.Logger) FactoryOption {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFactory builds a factory using variant-prefixed UUIDs by default.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		ids: func(v sections.Variant) string {
			return identity.NewSectionID(string(v))
		},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Known reports whether tag has a table entry.
func (f *Factory) Known(tag sections.Variant) bool {
	return tag.Valid()
}

// Create returns a new section for tag. Unrecognised tags fall back to the
// text defaults; Create never fails.
func (f *Factory) Create(tag sections.Variant) sections.Section {
	s, ok := sections.Defaults(tag)
	if !ok {
		f.logger.Warn("sections.factory.unknown_variant", logging.FieldVariant, string(tag))
		s, _ = sections.Defaults(sections.VariantText)
	}
	s.SectionBase().ID = f.ids(s.Variant())
	return sections.Normalize(s)
}

// NewID returns a fresh id for variant without building a section.
func (f *Factory) NewID(tag sections.Variant) string {
	return f.ids(tag)
}
