package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-composer/internal/auth"
	"github.com/goliatone/go-composer/internal/documents"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/openapi"
	"github.com/goliatone/go-composer/internal/permissions"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

const (
	defaultMaxBodyBytes int64 = 4 << 20
	apiVersion                = "1.0.0"
)

var errBodyRequired = errors.New("http: request body is required")

// PagesAPI serves page documents over HTTP.
type PagesAPI struct {
	basePath     string
	service      *documents.Service
	verifier     *auth.Verifier
	metrics      *Metrics
	logger       interfaces.Logger
	maxBodyBytes int64
}

// Option mutates the PagesAPI configuration.
type Option func(*PagesAPI)

// NewPagesAPI constructs the API around service. Mutating routes answer 401
// until a verifier is configured.
func NewPagesAPI(service *documents.Service, opts ...Option) *PagesAPI {
	api := &PagesAPI{
		basePath:     "/api",
		service:      service,
		logger:       logging.NoOp(),
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *PagesAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithVerifier wires the bearer token verifier.
func WithVerifier(verifier *auth.Verifier) Option {
	return func(api *PagesAPI) {
		api.verifier = verifier
	}
}

// WithMetrics records request counts and latency.
func WithMetrics(metrics *Metrics) Option {
	return func(api *PagesAPI) {
		api.metrics = metrics
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *PagesAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithMaxBodyBytes caps PATCH payloads.
func WithMaxBodyBytes(limit int64) Option {
	return func(api *PagesAPI) {
		if limit > 0 {
			api.maxBodyBytes = limit
		}
	}
}

// Register attaches the API endpoints to the provided mux.
func (api *PagesAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api.service == nil {
		return fmt.Errorf("http: documents service is required")
	}

	pages := joinPath(api.basePath, "pages")
	content := pages + "/{key}/content"

	api.handle(mux, "GET "+pages, "pages.list", api.handlePageList)
	api.handle(mux, "GET "+content, "pages.content.get", api.handleContentGet)
	api.handle(mux, "PATCH "+content, "pages.content.update", api.handleContentUpdate)
	api.handle(mux, "DELETE "+content, "pages.content.delete", api.handleContentDelete)
	api.handle(mux, "GET "+joinPath(api.basePath, "variants"), "variants.list", api.handleVariantList)
	api.handle(mux, "GET "+joinPath(api.basePath, "openapi.json"), "openapi.get", api.handleOpenAPI)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if api.metrics != nil {
		mux.Handle("GET /metrics", api.metrics.Handler())
	}
	return nil
}

func (api *PagesAPI) handle(mux *http.ServeMux, pattern, route string, fn http.HandlerFunc) {
	var handler http.Handler = api.logged(route, fn)
	if api.metrics != nil {
		handler = api.metrics.Instrument(route, handler)
	}
	mux.Handle(pattern, api.authenticate(handler))
}

func (api *PagesAPI) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, openapi.PagesDocument(api.basePath, apiVersion).AsMap())
}

type claimsContextKey struct{}

// authenticate verifies an Authorization bearer token when one is sent and
// places its capabilities on the request context. Requests without a token
// continue anonymously; invalid tokens are rejected.
func (api *PagesAPI) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if strings.TrimSpace(header) == "" {
			next.ServeHTTP(w, r)
			return
		}
		if api.verifier == nil {
			writeError(w, fmt.Errorf("%w: no verifier configured", auth.ErrTokenInvalid))
			return
		}
		claims, err := api.verifier.Verify(auth.BearerToken(header))
		if err != nil {
			writeError(w, err)
			return
		}
		ctx := permissions.WithChecker(r.Context(), claims.Checker())
		ctx = context.WithValue(ctx, claimsContextKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireClaims returns the verified caller or writes 401.
func requireClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(claimsContextKey{}).(*auth.Claims)
	if !ok || claims == nil {
		writeError(w, auth.ErrTokenMissing)
		return nil, false
	}
	return claims, true
}

func (api *PagesAPI) logged(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)
		api.logger.WithContext(r.Context()).Debug("http request",
			"route", route,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
