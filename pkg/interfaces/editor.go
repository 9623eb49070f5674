package interfaces

import "context"

// NotificationLevel classifies operator-facing notifications.
type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is a single operator-facing message emitted by the editor.
type Notification struct {
	Level   NotificationLevel
	Code    string
	Message string
}

// Notifier is the single channel through which the editor reports user-visible
// outcomes (save success, save failure, re-authentication prompts).
type Notifier interface {
	Notify(ctx context.Context, notification Notification)
}

// URLState publishes the edit-mode flag into the navigable URL so the mode
// survives a reload.
type URLState interface {
	SetEditMode(ctx context.Context, pageKey string, editing bool) error
}

// Confirmer asks the operator to confirm a destructive or discarding action.
// Implementations return false when the operator declines.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}
