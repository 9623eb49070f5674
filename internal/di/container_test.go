package di_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/goliatone/go-composer/internal/auth"
	editorcmd "github.com/goliatone/go-composer/internal/commands/editor"
	markdowncmd "github.com/goliatone/go-composer/internal/commands/markdown"
	"github.com/goliatone/go-composer/internal/di"
	"github.com/goliatone/go-composer/internal/documents"
	"github.com/goliatone/go-composer/internal/editor"
	"github.com/goliatone/go-composer/internal/permissions"
	"github.com/goliatone/go-composer/internal/runtimeconfig"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/pkg/testsupport"
	"github.com/goliatone/go-composer/sections"
)

func newContainer(t *testing.T, cfg runtimeconfig.Config, opts ...di.Option) *di.Container {
	t.Helper()
	container, err := di.NewContainer(context.Background(), cfg, opts...)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })
	return container
}

func quietConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Auth.Secret = "container-secret"
	return cfg
}

func saveHero(t *testing.T, container *di.Container, key string) {
	t.Helper()
	doc := sections.NewDocument()
	doc.Sections = append(doc.Sections, container.Factory().Create(sections.VariantHero))
	if _, err := container.DocumentService().Save(context.Background(), key, doc, "tester"); err != nil {
		t.Fatalf("save %s: %v", key, err)
	}
}

func TestContainerDefaultsToMemoryStorage(t *testing.T) {
	rec := newRecordingProvider()
	container := newContainer(t, quietConfig(), di.WithLoggerProvider(rec))

	if _, ok := container.Repository().(*documents.MemoryRepository); !ok {
		t.Fatalf("expected memory repository, got %T", container.Repository())
	}
	entry := rec.find("container.configured")
	if entry == nil {
		t.Fatalf("expected container.configured log entry, got %#v", rec.snapshot())
	}
	if got := entry.fields["storage"]; got != "memory" {
		t.Fatalf("expected storage field memory, got %v", got)
	}
	if got := entry.fields["module"]; got != "composer.di" {
		t.Fatalf("expected module field composer.di, got %v", got)
	}
	if container.RouteManager() == nil {
		t.Fatalf("expected route manager from default site url")
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := quietConfig()
	cfg.Storage.Provider = "etcd"
	if _, err := di.NewContainer(context.Background(), cfg); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestContainerBunStorageWithProvidedDB(t *testing.T) {
	cfg := quietConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.DSN = "unused"
	container := newContainer(t, cfg, di.WithBunDB(testsupport.NewBunDB(t)), di.WithLoggerProvider(newRecordingProvider()))

	if _, ok := container.Repository().(*documents.BunRepository); !ok {
		t.Fatalf("expected bun repository, got %T", container.Repository())
	}
	saveHero(t, container, "home")
	doc, err := container.DocumentService().Load(context.Background(), "home")
	if err != nil || len(doc.Sections) != 1 {
		t.Fatalf("expected stored hero, got %+v / %v", doc, err)
	}
}

func TestContainerOpensSQLiteFromDSN(t *testing.T) {
	cfg := quietConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "sqlite"
	cfg.Storage.DSN = "file:" + filepath.Join(t.TempDir(), "composer.db")
	cfg.Cache.Enabled = false

	container, err := di.NewContainer(context.Background(), cfg, di.WithLoggerProvider(newRecordingProvider()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	saveHero(t, container, "about")
	if err := container.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestContainerRedisStorage(t *testing.T) {
	server := miniredis.RunT(t)
	cfg := quietConfig()
	cfg.Storage.Provider = "redis"
	cfg.Storage.RedisURL = "redis://" + server.Addr()
	container := newContainer(t, cfg, di.WithLoggerProvider(newRecordingProvider()))

	saveHero(t, container, "pricing")
	if !server.Exists("composer:pages:pricing") {
		t.Fatalf("expected redis key for saved page, got %v", server.Keys())
	}
}

func TestContainerHandlerServesAPIAndMetrics(t *testing.T) {
	cfg := quietConfig()
	cfg.HTTP.Metrics = true
	container := newContainer(t, cfg, di.WithLoggerProvider(newRecordingProvider()))
	saveHero(t, container, "home")

	handler, err := container.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	for _, path := range []string{"/api/pages/home/content", "/api/variants", "/healthz", "/metrics"} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestContainerEditorSessionSavesAndPublishesURL(t *testing.T) {
	ctx := context.Background()
	container := newContainer(t, quietConfig(), di.WithLoggerProvider(newRecordingProvider()))

	cred, err := container.Issuer().Issue("editor", []string{permissions.PagesUpdate}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	var (
		mu        sync.Mutex
		published []string
	)
	session, err := container.NewEditorSession(di.EditorOptions{
		Credentials:  auth.NewStaticCredentials(cred),
		Capabilities: permissions.NewSet(permissions.PagesUpdate),
		Confirmer:    editor.AutoConfirm,
		Publish: func(_ context.Context, rawURL string) error {
			mu.Lock()
			published = append(published, rawURL)
			mu.Unlock()
			return nil
		},
	})
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	script := editorcmd.Script{
		Page: "launch",
		Steps: []editorcmd.Step{
			{Op: editorcmd.OpEnterEdit},
			{Op: editorcmd.OpAdd, Variant: sections.VariantCallToAction},
			{Op: editorcmd.OpSave},
		},
	}
	if _, err := editorcmd.Run(ctx, session, script); err != nil {
		t.Fatalf("run: %v", err)
	}

	doc, err := container.DocumentService().Load(ctx, "launch")
	if err != nil || len(doc.Sections) != 1 || doc.Sections[0].Variant() != sections.VariantCallToAction {
		t.Fatalf("expected saved cta, got %+v / %v", doc, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(published) == 0 || !strings.Contains(published[0], "/pages/launch") || !editor.EditFlag(published[0]) {
		t.Fatalf("expected edit=true page url, got %v", published)
	}
}

func TestContainerRemoteEditorRequiresBaseURL(t *testing.T) {
	cfg := quietConfig()
	cfg.Editor.BaseURL = ""
	container := newContainer(t, cfg, di.WithLoggerProvider(newRecordingProvider()))
	if _, err := container.NewEditor(di.EditorOptions{Remote: true}); err == nil {
		t.Fatalf("expected error without base url")
	}
	if _, err := container.NewEditor(di.EditorOptions{}); err != nil {
		t.Fatalf("local editor: %v", err)
	}
}

func TestContainerMarkdownCommands(t *testing.T) {
	ctx := context.Background()
	container := newContainer(t, quietConfig(), di.WithLoggerProvider(newRecordingProvider()))

	path := filepath.Join(t.TempDir(), "faq.md")
	if err := os.WriteFile(path, []byte("---\ntitle: FAQ\n---\nAsk away.\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	set, err := container.MarkdownCommands(nil)
	if err != nil {
		t.Fatalf("markdown commands: %v", err)
	}
	if err := set.ImportPage.Execute(ctx, markdowncmd.ImportPageCommand{Path: path}); err != nil {
		t.Fatalf("import: %v", err)
	}
	doc, err := container.DocumentService().Load(ctx, "faq")
	if err != nil || doc.Properties.Title != "FAQ" {
		t.Fatalf("expected imported faq page, got %+v / %v", doc, err)
	}
}

func TestContainerForwardsActivity(t *testing.T) {
	sink := &recordingSink{}
	container := newContainer(t, quietConfig(), di.WithLoggerProvider(newRecordingProvider()), di.WithActivitySink(sink))
	saveHero(t, container, "home")
	if err := container.DocumentService().Delete(context.Background(), "home", "tester"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.records) != 2 || sink.records[0].Verb != "save" || sink.records[1].Verb != "delete" {
		t.Fatalf("unexpected activity %+v", sink.records)
	}
}

func TestContainerPreviewRegistryCoversEveryVariant(t *testing.T) {
	container := newContainer(t, quietConfig(), di.WithLoggerProvider(newRecordingProvider()))
	if err := container.PreviewRegistry().Validate(); err != nil {
		t.Fatalf("preview registry: %v", err)
	}
}

type recordingSink struct {
	mu      sync.Mutex
	records []interfaces.ActivityRecord
}

func (s *recordingSink) Log(_ context.Context, record interfaces.ActivityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}
