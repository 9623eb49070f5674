package markdowncmd

import (
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/markdown"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the Markdown import handlers.
type HandlerSet struct {
	ImportPage      *ImportPageHandler
	ImportDirectory *ImportDirectoryHandler
}

// Handlers lists the set in registration order.
func (s *HandlerSet) Handlers() []any {
	return []any{s.ImportPage, s.ImportDirectory}
}

// RegisterMarkdownCommands builds the import handlers and registers them with
// reg. A nil registry still returns the handlers.
func RegisterMarkdownCommands(reg CommandRegistry, store PageStore, imp *markdown.Importer, provider interfaces.LoggerProvider) (*HandlerSet, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if imp == nil {
		return nil, ErrImporterRequired
	}
	logger := logging.ModuleLogger(provider, "composer.commands.markdown")
	set := &HandlerSet{
		ImportPage:      NewImportPageHandler(store, imp, logger),
		ImportDirectory: NewImportDirectoryHandler(store, imp, logger),
	}
	if reg == nil {
		return set, nil
	}
	for _, handler := range set.Handlers() {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return set, nil
}
