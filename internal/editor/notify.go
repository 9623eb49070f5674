package editor

import (
	"context"

	"github.com/goliatone/go-composer/pkg/interfaces"
)

// NotifierFunc adapts a function to interfaces.Notifier.
type NotifierFunc func(ctx context.Context, n interfaces.Notification)

func (fn NotifierFunc) Notify(ctx context.Context, n interfaces.Notification) {
	fn(ctx, n)
}

// ConfirmFunc adapts a function to interfaces.Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (fn ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return fn(ctx, prompt)
}

// AutoConfirm accepts every prompt. Scripted sessions use it once the
// operator has opted in up front.
var AutoConfirm = ConfirmFunc(func(context.Context, string) bool { return true })

// LogNotifier writes notifications to logger.
func LogNotifier(logger interfaces.Logger) interfaces.Notifier {
	return NotifierFunc(func(ctx context.Context, n interfaces.Notification) {
		l := logger.WithContext(ctx)
		switch n.Level {
		case interfaces.NotificationError:
			l.Error(n.Message, "code", n.Code)
		default:
			l.Info(n.Message, "code", n.Code)
		}
	})
}
