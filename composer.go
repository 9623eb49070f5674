// Package composer is the entry point for embedding the page composer: a
// block-based page document store, its HTTP API, and edit sessions that
// mutate documents section by section.
package composer

import (
	"context"
	"net/http"

	"github.com/goliatone/go-composer/internal/auth"
	"github.com/goliatone/go-composer/internal/di"
	"github.com/goliatone/go-composer/internal/documents"
	"github.com/goliatone/go-composer/internal/editor"
	"github.com/goliatone/go-composer/internal/render"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/sections"
)

type (
	// Document is an ordered list of sections plus page properties.
	Document = sections.Document
	// Section is one content block of a page.
	Section = sections.Section
	// Variant names a section type.
	Variant = sections.Variant
	// PageProperties are the page-level settings of a document.
	PageProperties = sections.PageProperties

	// DocumentService loads and saves page documents.
	DocumentService = *documents.Service
	// Editor is one page's edit session.
	Editor = *editor.Controller
	// EditorOptions configures a session built by NewEditor.
	EditorOptions = di.EditorOptions
	// Credential is a bearer token with its subject and expiry.
	Credential = auth.Credential
	// RenderRegistry maps variants to renderers.
	RenderRegistry = *render.Registry
)

// Module represents the top level composer runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg and optional DI overrides.
func New(ctx context.Context, cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Close releases storage connections.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

// Documents returns the page document service.
func (m *Module) Documents() DocumentService {
	return m.container.DocumentService()
}

// Handler returns the HTTP pages API.
func (m *Module) Handler() (http.Handler, error) {
	return m.container.Handler()
}

// IssueToken signs a bearer token for subject granting caps for the
// configured token lifetime.
func (m *Module) IssueToken(subject string, caps ...string) (Credential, error) {
	return m.container.Issuer().Issue(subject, caps, m.container.Config.Auth.TokenTTL)
}

// NewEditor opens an edit session.
func (m *Module) NewEditor(opts EditorOptions) (Editor, error) {
	return m.container.NewEditor(opts)
}

// Preview returns HTML renderers for every variant.
func (m *Module) Preview() RenderRegistry {
	return m.container.PreviewRegistry()
}

// LoggerProvider returns the configured logger provider.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// NewDocument returns an empty document with default properties.
func NewDocument() Document {
	return sections.NewDocument()
}

// Variants lists every section variant in palette order.
func Variants() []Variant {
	return sections.Variants()
}
