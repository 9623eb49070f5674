package markdowncmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-composer/internal/commands"
	"github.com/goliatone/go-composer/internal/documents"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/markdown"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/sections"
	command "github.com/goliatone/go-command"
)

var (
	// ErrStoreRequired is returned when no page store is supplied.
	ErrStoreRequired = errors.New("markdown command: page store is required")
	// ErrImporterRequired is returned when no importer is supplied.
	ErrImporterRequired = errors.New("markdown command: importer is required")
)

// PageStore persists imported documents. documents.Service satisfies it.
type PageStore interface {
	Save(ctx context.Context, key string, doc sections.Document, actor string) (*documents.Record, error)
}

// Imported describes one converted file.
type Imported struct {
	Path     string `json:"path"`
	Key      string `json:"key"`
	Sections int    `json:"sections"`
	Revision int64  `json:"revision,omitempty"`
	Saved    bool   `json:"saved"`
}

// Summary is the outcome of the most recent import run.
type Summary struct {
	Pages  []Imported `json:"pages"`
	DryRun bool       `json:"dry_run,omitempty"`
}

type importer struct {
	store  PageStore
	conv   *markdown.Importer
	logger interfaces.Logger

	mu   sync.Mutex
	last Summary
}

func (i *importer) record(summary Summary) {
	i.mu.Lock()
	i.last = summary
	i.mu.Unlock()
}

func (i *importer) summary() Summary {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := Summary{DryRun: i.last.DryRun}
	out.Pages = append([]Imported(nil), i.last.Pages...)
	return out
}

// importFile converts path and saves it under key (or the derived key) unless dryRun.
func (i *importer) importFile(ctx context.Context, path, key, actor string, dryRun bool) (Imported, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return Imported{}, fmt.Errorf("markdown command: read %s: %w", path, err)
	}
	result, err := i.conv.Import(source)
	if err != nil {
		return Imported{}, fmt.Errorf("markdown command: import %s: %w", path, err)
	}

	key = pageKey(key, result.Key, path)
	normalized, err := documents.NormalizeKey(key)
	if err != nil {
		return Imported{}, fmt.Errorf("markdown command: %s: %w", path, err)
	}
	out := Imported{Path: path, Key: normalized, Sections: len(result.Document.Sections)}
	if dryRun {
		return out, nil
	}

	record, err := i.store.Save(ctx, normalized, result.Document, actor)
	if err != nil {
		return Imported{}, fmt.Errorf("markdown command: save %s: %w", normalized, err)
	}
	out.Saved = true
	if record != nil {
		out.Revision = record.Revision
	}
	return out, nil
}

// pageKey prefers an explicit key, then the frontmatter slug, then the file name.
func pageKey(explicit, slug, path string) string {
	if k := strings.TrimSpace(explicit); k != "" {
		return k
	}
	if k := strings.TrimSpace(slug); k != "" {
		return k
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ImportPageHandler imports a single Markdown file.
type ImportPageHandler struct {
	*importer
	inner *commands.Handler[ImportPageCommand]
}

// NewImportPageHandler constructs a handler wired to store and imp.
func NewImportPageHandler(store PageStore, imp *markdown.Importer, logger interfaces.Logger, opts ...commands.HandlerOption[ImportPageCommand]) *ImportPageHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	h := &ImportPageHandler{importer: &importer{store: store, conv: imp, logger: logger}}

	base := []commands.HandlerOption[ImportPageCommand]{
		commands.WithLogger[ImportPageCommand](logger),
		commands.WithOperation[ImportPageCommand]("markdown.import_page"),
		commands.WithMessageFields[ImportPageCommand](func(msg ImportPageCommand) map[string]any {
			fields := map[string]any{"path": msg.Path, "dry_run": msg.DryRun}
			if msg.Key != "" {
				fields[logging.FieldPageKey] = msg.Key
			}
			return fields
		}),
		commands.WithTelemetry[ImportPageCommand](commands.DefaultTelemetry[ImportPageCommand](logger)),
	}
	base = append(base, opts...)
	h.inner = commands.NewHandler[ImportPageCommand](h.exec, base...)
	return h
}

// Execute satisfies command.Commander[ImportPageCommand].
func (h *ImportPageHandler) Execute(ctx context.Context, msg ImportPageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Summary returns the outcome of the last successful run.
func (h *ImportPageHandler) Summary() Summary {
	return h.summary()
}

func (h *ImportPageHandler) exec(ctx context.Context, msg ImportPageCommand) error {
	if err := h.ready(); err != nil {
		return err
	}
	imported, err := h.importFile(ctx, msg.Path, msg.Key, msg.Actor, msg.DryRun)
	if err != nil {
		return err
	}
	h.record(Summary{Pages: []Imported{imported}, DryRun: msg.DryRun})
	h.logger.Info("markdown page imported",
		logging.FieldPageKey, imported.Key,
		"sections", imported.Sections,
		"saved", imported.Saved,
	)
	return nil
}

// ImportDirectoryHandler imports every Markdown file below a directory.
type ImportDirectoryHandler struct {
	*importer
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler constructs a handler wired to store and imp.
func NewImportDirectoryHandler(store PageStore, imp *markdown.Importer, logger interfaces.Logger, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	h := &ImportDirectoryHandler{importer: &importer{store: store, conv: imp, logger: logger}}

	base := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](logger),
		commands.WithOperation[ImportDirectoryCommand]("markdown.import_directory"),
		commands.WithMessageFields[ImportDirectoryCommand](func(msg ImportDirectoryCommand) map[string]any {
			return map[string]any{"directory": msg.Directory, "dry_run": msg.DryRun}
		}),
		commands.WithTelemetry[ImportDirectoryCommand](commands.DefaultTelemetry[ImportDirectoryCommand](logger)),
	}
	base = append(base, opts...)
	h.inner = commands.NewHandler[ImportDirectoryCommand](h.exec, base...)
	return h
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Summary returns the outcome of the last successful run.
func (h *ImportDirectoryHandler) Summary() Summary {
	return h.summary()
}

func (h *ImportDirectoryHandler) exec(ctx context.Context, msg ImportDirectoryCommand) error {
	if err := h.ready(); err != nil {
		return err
	}
	paths, err := markdownFiles(msg.Directory)
	if err != nil {
		return err
	}

	summary := Summary{DryRun: msg.DryRun}
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		imported, err := h.importFile(ctx, path, "", msg.Actor, msg.DryRun)
		if err != nil {
			return err
		}
		summary.Pages = append(summary.Pages, imported)
	}
	h.record(summary)
	h.logger.Info("markdown directory imported",
		"directory", msg.Directory,
		"pages", len(summary.Pages),
		"dry_run", msg.DryRun,
	)
	return nil
}

func (i *importer) ready() error {
	if i.store == nil {
		return ErrStoreRequired
	}
	if i.conv == nil {
		return ErrImporterRequired
	}
	return nil
}

// markdownFiles lists *.md files below dir in lexical order.
func markdownFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("markdown command: walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

var (
	_ command.Commander[ImportPageCommand]      = (*ImportPageHandler)(nil)
	_ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)
)
