package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-composer/internal/validation"
)

func TestValidateDocumentAcceptsUnknownVariants(t *testing.T) {
	payload := `{"sections":[{"id":"a","type":"marquee","speed":2}],"properties":{"title":"Home","maxWidth":960}}`
	if err := validation.ValidateDocument([]byte(payload)); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestValidateDocumentReportsIssues(t *testing.T) {
	payload := `{"sections":[{"id":"","type":"hero"},{"type":"text","visible":"yes"}],"properties":{"maxWidth":-1}}`
	err := validation.ValidateDocument([]byte(payload))
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := validation.Issues(err)
	if len(issues) < 3 {
		t.Fatalf("expected at least 3 issues, got %v", issues)
	}
	joined := err.Error()
	for _, loc := range []string{"#/sections/0/id", "#/sections/1", "#/properties/maxWidth"} {
		if !strings.Contains(joined, loc) {
			t.Fatalf("expected %s in %q", loc, joined)
		}
	}
}

func TestValidateDocumentRejectsGarbage(t *testing.T) {
	err := validation.ValidateDocument([]byte(`{nope`))
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	if len(validation.Issues(err)) != 1 {
		t.Fatalf("expected a single issue")
	}
}
