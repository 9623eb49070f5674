package di

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-composer/internal/auth"
	editorcmd "github.com/goliatone/go-composer/internal/commands/editor"
	"github.com/goliatone/go-composer/internal/editor"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/permissions"
	"github.com/goliatone/go-composer/internal/persistence"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

// EditorOptions configures one edit session built by the container.
type EditorOptions struct {
	// Remote talks to the pages API at Config.Editor.BaseURL instead of the
	// container's own document service.
	Remote       bool
	Credentials  auth.CredentialSource
	Capabilities permissions.Checker
	Notifier     interfaces.Notifier
	Confirmer    interfaces.Confirmer
	// Publish receives every URL written by the edit-mode URL state.
	Publish func(ctx context.Context, rawURL string) error
}

// NewEditor builds an edit session controller.
func (c *Container) NewEditor(opts EditorOptions) (*editor.Controller, error) {
	gateway, err := c.gateway(opts.Remote)
	if err != nil {
		return nil, err
	}

	logger := logging.EditorLogger(c.loggerProvider)
	notifier := opts.Notifier
	if notifier == nil {
		notifier = editor.LogNotifier(logger)
	}

	cfg := editor.Config{
		Gateway:      gateway,
		Credentials:  opts.Credentials,
		Capabilities: opts.Capabilities,
		Notifier:     notifier,
		Confirmer:    opts.Confirmer,
		Factory:      c.factory,
		Logger:       logger,
		Clock:        c.clock,
	}
	if c.routeManager != nil {
		state, err := editor.NewURLKitState(c.routeManager, opts.Publish)
		if err != nil {
			return nil, err
		}
		cfg.URLState = state
	}
	return editor.New(cfg)
}

// NewEditorSession wraps NewEditor in the editor command handlers.
func (c *Container) NewEditorSession(opts EditorOptions) (*editorcmd.Session, error) {
	ctrl, err := c.NewEditor(opts)
	if err != nil {
		return nil, err
	}
	return editorcmd.NewSession(ctrl, opts.Capabilities, logging.CommandsLogger(c.loggerProvider))
}

func (c *Container) gateway(remote bool) (persistence.Gateway, error) {
	if !remote {
		return persistence.NewRepositoryGateway(c.documentSvc, c.verifier), nil
	}
	baseURL := strings.TrimSpace(c.Config.Editor.BaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("di: editor base url is required for remote sessions")
	}
	return persistence.NewHTTPGateway(baseURL,
		persistence.WithLogger(logging.PersistenceLogger(c.loggerProvider)),
	)
}
