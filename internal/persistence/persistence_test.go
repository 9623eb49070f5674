package persistence_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goliatone/go-composer/internal/auth"
	"github.com/goliatone/go-composer/internal/documents"
	"github.com/goliatone/go-composer/internal/permissions"
	"github.com/goliatone/go-composer/internal/persistence"
	"github.com/goliatone/go-composer/sections"
)

func TestHTTPGatewayLoadMissingDocumentIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	gw := mustGateway(t, srv.URL)
	doc, err := gw.Load(context.Background(), "home")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Sections) != 0 {
		t.Fatalf("expected empty sections, got %d", len(doc.Sections))
	}
	if doc.Properties != sections.DefaultPageProperties() {
		t.Fatalf("expected default properties, got %+v", doc.Properties)
	}
}

func TestHTTPGatewayLoadMissingSectionsIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"content":{}}`)
	}))
	defer srv.Close()

	doc, err := mustGateway(t, srv.URL).Load(context.Background(), "home")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Sections == nil || len(doc.Sections) != 0 {
		t.Fatalf("expected empty non-nil sections, got %#v", doc.Sections)
	}
}

func TestHTTPGatewayLoadDecodesContent(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `{"content":{"sections":[{"id":"t1","type":"text","content":"hi"}],"properties":{"title":"Home"}}}`)
	}))
	defer srv.Close()

	doc, err := mustGateway(t, srv.URL+"/api").Load(context.Background(), "home")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if gotPath != "/api/pages/home/content" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	text, ok := doc.Sections[0].(*sections.Text)
	if !ok || text.Content != "hi" || !text.Visible {
		t.Fatalf("unexpected section %#v", doc.Sections[0])
	}
	if doc.Properties.Title != "Home" || doc.Properties.Language != "en" {
		t.Fatalf("expected merged properties, got %+v", doc.Properties)
	}
}

func TestHTTPGatewayLoadFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pages/broken/content" {
			_, _ = io.WriteString(w, `{not json`)
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	gw := mustGateway(t, srv.URL)
	_, err := gw.Load(context.Background(), "home")
	var statusErr *persistence.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status error, got %v", err)
	}
	if !errors.Is(err, persistence.ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed, got %v", err)
	}
	if _, err := gw.Load(context.Background(), "broken"); !errors.Is(err, persistence.ErrLoadFailed) {
		t.Fatalf("expected parse failure to be ErrLoadFailed, got %v", err)
	}
}

func TestHTTPGatewaySaveSendsBearerAndPayload(t *testing.T) {
	var (
		gotMethod string
		gotAuth   string
		gotBody   map[string]json.RawMessage
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	doc := sections.NewDocument()
	hero, _ := sections.Defaults(sections.VariantHero)
	hero.SectionBase().ID = "hero-1"
	doc.Sections = append(doc.Sections, hero)

	err := mustGateway(t, srv.URL).Save(context.Background(), "home", doc, auth.Credential{Token: "abc"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Fatalf("expected PATCH, got %s", gotMethod)
	}
	if gotAuth != "Bearer abc" {
		t.Fatalf("unexpected authorization %q", gotAuth)
	}
	if _, ok := gotBody["sections"]; !ok {
		t.Fatalf("expected sections in body, got %v", gotBody)
	}
	if _, ok := gotBody["properties"]; !ok {
		t.Fatalf("expected properties in body, got %v", gotBody)
	}
}

func TestHTTPGatewaySaveErrors(t *testing.T) {
	calls := 0
	status := http.StatusUnauthorized
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
	}))
	defer srv.Close()

	gw := mustGateway(t, srv.URL)
	ctx := context.Background()
	doc := sections.NewDocument()

	if err := gw.Save(ctx, "home", doc, auth.Credential{}); !errors.Is(err, persistence.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty credential, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no request without a credential, got %d", calls)
	}

	if err := gw.Save(ctx, "home", doc, auth.Credential{Token: "t"}); !errors.Is(err, persistence.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for 401, got %v", err)
	}

	status = http.StatusBadGateway
	err := gw.Save(ctx, "home", doc, auth.Credential{Token: "t"})
	if !errors.Is(err, persistence.ErrSaveFailed) {
		t.Fatalf("expected ErrSaveFailed, got %v", err)
	}
}

func TestNewHTTPGatewayRequiresAbsoluteURL(t *testing.T) {
	if _, err := persistence.NewHTTPGateway("/relative"); err == nil {
		t.Fatalf("expected error for relative url")
	}
}

func TestRepositoryGatewayRoundTrip(t *testing.T) {
	ctx := context.Background()
	issuer, err := auth.NewIssuer("secret")
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	verifier, err := auth.NewVerifier("secret")
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	svc := documents.NewService(documents.NewMemoryRepository())
	gw := persistence.NewRepositoryGateway(svc, verifier)

	empty, err := gw.Load(ctx, "home")
	if err != nil || len(empty.Sections) != 0 {
		t.Fatalf("expected empty document, got %v / %v", empty, err)
	}

	doc := sections.NewDocument()
	for _, v := range sections.Variants() {
		s, _ := sections.Defaults(v)
		s.SectionBase().ID = "s-" + string(v)
		doc.Sections = append(doc.Sections, sections.Normalize(s))
	}

	reader, _ := issuer.Issue("viewer", []string{permissions.PagesRead}, time.Hour)
	if err := gw.Save(ctx, "home", doc, reader); !errors.Is(err, persistence.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := gw.Save(ctx, "home", doc, auth.Credential{Token: "garbage"}); !errors.Is(err, persistence.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	editor, _ := issuer.Issue("editor", []string{permissions.PagesUpdate}, time.Hour)
	if err := gw.Save(ctx, "home", doc, editor); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := gw.Load(ctx, "home")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := gw.Save(ctx, "home", loaded, editor); err != nil {
		t.Fatalf("second save: %v", err)
	}
	again, err := gw.Load(ctx, "home")
	if err != nil {
		t.Fatalf("second load: %v", err)
	}

	want, _ := json.Marshal(doc)
	got, _ := json.Marshal(again)
	if string(want) != string(got) {
		t.Fatalf("round trip mismatch\n got: %s\nwant: %s", got, want)
	}
}

func mustGateway(t *testing.T, base string) *persistence.HTTPGateway {
	t.Helper()
	gw, err := persistence.NewHTTPGateway(base)
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	return gw
}
