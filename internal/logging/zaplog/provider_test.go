package zaplog_test

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/logging/zaplog"
)

func TestProviderNamesLoggerAndCarriesContextFields(t *testing.T) {
	core, observed := observer.New(zap.DebugLevel)
	provider := zaplog.NewProviderFromLogger(zap.New(core))

	logger := logging.EditorLogger(provider)
	ctx := logging.WithPageKey(context.Background(), "home")
	logger.WithContext(ctx).Info("editor.saved", "sections", 3)

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.LoggerName != "composer.editor" {
		t.Fatalf("expected logger name composer.editor, got %q", entry.LoggerName)
	}
	fields := entry.ContextMap()
	if fields["page_key"] != "home" || fields["module"] != "composer.editor" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if fields["sections"] != int64(3) {
		t.Fatalf("expected sections=3, got %#v", fields["sections"])
	}
}

func TestNewProviderRejectsBadFormat(t *testing.T) {
	if _, err := zaplog.NewProvider(zaplog.Config{Format: "xml"}); err == nil {
		t.Fatalf("expected error")
	}
}
