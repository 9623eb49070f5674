package editor

import (
	"errors"
	"time"

	"github.com/goliatone/go-composer/pkg/interfaces"
)

var (
	ErrNotLoaded         = errors.New("editor: no document loaded")
	ErrLoadFailed        = errors.New("editor: load failed")
	ErrNotAuthorized     = errors.New("editor: admin capability required")
	ErrNotEditing        = errors.New("editor: not in edit mode")
	ErrExitCancelled     = errors.New("editor: exit cancelled")
	ErrNavigateCancelled = errors.New("editor: navigation cancelled, unsaved changes kept")
	ErrSaveInFlight      = errors.New("editor: a save is already in flight")
	ErrNothingToSave     = errors.New("editor: no unsaved changes")
	ErrReauthenticate    = errors.New("editor: session expired, sign in again")
	ErrSaveFailed        = errors.New("editor: save failed")
)

// State is the session mode.
type State int

const (
	Viewing State = iota
	Editing
	Saving
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return "unknown"
	}
}

// Notification codes.
const (
	CodeSaved          = "editor.saved"
	CodeSaveFailed     = "editor.save_failed"
	CodeReauthenticate = "editor.reauthenticate"
	CodeLoadFailed     = "editor.load_failed"
)

// Status is the inline status shown next to the editor controls.
type Status struct {
	State       State
	Dirty       bool
	PageKey     string
	Level       interfaces.NotificationLevel
	Message     string
	LastSavedAt time.Time
}
