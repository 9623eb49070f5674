package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-composer/internal/auth"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/sections"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 512
)

// HTTPGateway talks to the page content API:
//
//	GET   {base}/pages/{key}/content -> {"content": {"sections": [...], "properties": {...}}}
//	PATCH {base}/pages/{key}/content <- {"sections": [...], "properties": {...}}
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	logger  interfaces.Logger
}

type HTTPOption func(*HTTPGateway)

func WithHTTPClient(client *http.Client) HTTPOption {
	return func(g *HTTPGateway) {
		if client != nil {
			g.client = client
		}
	}
}

func WithLogger(logger interfaces.Logger) HTTPOption {
	return func(g *HTTPGateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewHTTPGateway returns a gateway rooted at baseURL (for example
// "https://example.com/api").
func NewHTTPGateway(baseURL string, opts ...HTTPOption) (*HTTPGateway, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("persistence: invalid base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("persistence: base url %q must be absolute", baseURL)
	}
	g := &HTTPGateway{
		baseURL: strings.TrimRight(parsed.String(), "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

func (g *HTTPGateway) contentURL(pageKey string) (string, error) {
	key := strings.TrimSpace(pageKey)
	if key == "" {
		return "", ErrPageKeyRequired
	}
	return g.baseURL + "/pages/" + url.PathEscape(key) + "/content", nil
}

type loadResponse struct {
	Content *json.RawMessage `json:"content"`
}

func (g *HTTPGateway) Load(ctx context.Context, pageKey string) (sections.Document, error) {
	target, err := g.contentURL(pageKey)
	if err != nil {
		return sections.Document{}, err
	}
	logger := g.logger.WithContext(logging.WithPageKey(ctx, pageKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return sections.Document{}, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Error("load request failed", "error", err)
		return sections.Document{}, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		logger.Debug("no stored document, starting empty")
		return sections.NewDocument(), nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return sections.Document{}, statusError("load", resp)
	}

	var body loadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return sections.Document{}, fmt.Errorf("%w: decode response: %v", ErrLoadFailed, err)
	}
	if body.Content == nil || string(*body.Content) == "null" {
		return sections.NewDocument(), nil
	}
	var doc sections.Document
	if err := json.Unmarshal(*body.Content, &doc); err != nil {
		return sections.Document{}, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	logger.Debug("document loaded", "sections", len(doc.Sections))
	return doc, nil
}

func (g *HTTPGateway) Save(ctx context.Context, pageKey string, doc sections.Document, cred auth.Credential) error {
	target, err := g.contentURL(pageKey)
	if err != nil {
		return err
	}
	if cred.Empty() {
		return ErrUnauthorized
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", ErrSaveFailed, err)
	}
	logger := g.logger.WithContext(logging.WithPageKey(ctx, pageKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, target, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+cred.Token)

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Error("save request failed", "error", err)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrForbidden
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		err := statusError("save", resp)
		logger.Warn("save rejected", "status", resp.StatusCode)
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	logger.Info("document saved", "sections", len(doc.Sections))
	return nil
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
