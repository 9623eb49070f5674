package logging

import (
	"context"
	"maps"
	"testing"

	"github.com/goliatone/go-composer/pkg/interfaces"
)

type recordingLogger struct {
	fields []map[string]any
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = append(r.fields, maps.Clone(fields))
	return r
}

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, editorModule)
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger.WithContext(context.Background()).Info("noop")
}

func TestModuleLoggerAnnotatesModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	EditorLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != editorModule {
		t.Fatalf("expected module %s, got %v", editorModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != editorModule {
		t.Fatalf("expected module field, got %v", rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	ModuleLogger(provider, "")
	if provider.requested[0] != rootModule {
		t.Fatalf("expected root module, got %v", provider.requested)
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"a": 1})
	ctx = WithPageKey(ctx, "home")

	fields := ContextFields(ctx)
	if fields["a"] != 1 || fields[FieldPageKey] != "home" {
		t.Fatalf("unexpected context fields %v", fields)
	}

	fields["a"] = 2
	if ContextFields(ctx)["a"] != 1 {
		t.Fatalf("expected context fields to be copied")
	}
}
