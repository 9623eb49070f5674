package commands

import (
	"context"
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeCanceled = "COMPOSER_COMMAND_CANCELED"
	codeTimeout  = "COMPOSER_COMMAND_TIMEOUT"
)

// textCode turns a message type such as "composer.editor.add_section" into
// COMPOSER_EDITOR_ADD_SECTION_<suffix>.
func textCode(messageType, suffix string) string {
	base := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(strings.TrimSpace(messageType)))
	if base == "" {
		base = "COMPOSER_COMMAND"
	}
	return base + "_" + suffix
}

func wrapValidationError(messageType string, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, messageType+": invalid message").
		WithTextCode(textCode(messageType, "INVALID"))
}

// wrapContextError reports cancellation and deadlines, including ones
// surfaced wrapped inside a handler error.
func wrapContextError(err error) error {
	switch {
	case err == nil:
		return nil
	case goerrors.IsWrapped(err):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command deadline exceeded").WithTextCode(codeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command cancelled").WithTextCode(codeCanceled)
	}
}

// wrapExecuteError tags handler failures with the command category and a
// per-message text code. Errors that already carry a category pass through.
func wrapExecuteError(messageType string, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, messageType+": failed").
		WithTextCode(textCode(messageType, "FAILED"))
}
