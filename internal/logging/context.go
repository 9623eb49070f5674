package logging

import (
	"context"
	"maps"
)

type contextKey string

const contextFieldsKey contextKey = "composer.logging.fields"

// ContextWithFields returns a context carrying structured logging fields that
// providers merge into subsequent entries. Existing fields are preserved.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextFields extracts the fields annotated on ctx. The returned map is a
// copy and may be mutated by the caller.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// WithPageKey annotates ctx with the page key every editor and persistence
// entry should carry.
func WithPageKey(ctx context.Context, pageKey string) context.Context {
	if pageKey == "" {
		return ctx
	}
	return ContextWithFields(ctx, map[string]any{FieldPageKey: pageKey})
}
