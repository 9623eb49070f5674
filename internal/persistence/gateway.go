package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-composer/internal/auth"
	"github.com/goliatone/go-composer/sections"
)

var (
	ErrLoadFailed      = errors.New("persistence: load failed")
	ErrSaveFailed      = errors.New("persistence: save failed")
	ErrUnauthorized    = errors.New("persistence: credential rejected, re-authenticate")
	ErrForbidden       = errors.New("persistence: credential lacks permission")
	ErrPageKeyRequired = errors.New("persistence: page key is required")
)

// Gateway loads and saves whole page documents.
//
// Load never reports a missing document as an error: it returns an empty
// section list with default properties instead. Save sends the full document
// as one payload together with the caller's credential.
type Gateway interface {
	Load(ctx context.Context, pageKey string) (sections.Document, error)
	Save(ctx context.Context, pageKey string, doc sections.Document, cred auth.Credential) error
}

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("persistence: %s returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("persistence: %s returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.Op == "load" {
		return ErrLoadFailed
	}
	return ErrSaveFailed
}
