package testsupport

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/goliatone/go-composer/sections"
)

// MustFixture reads a fixture file or fails the test.
func MustFixture(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load fixture %s: %v", path, err)
	}
	return data
}

// MustDocument decodes a stored page fixture through the section codec.
func MustDocument(t testing.TB, path string) sections.Document {
	t.Helper()
	var doc sections.Document
	if err := json.Unmarshal(MustFixture(t, path), &doc); err != nil {
		t.Fatalf("decode fixture %s: %v", path, err)
	}
	return doc
}
