package di

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"
	"go.uber.org/multierr"

	"github.com/goliatone/go-composer/internal/auth"
	markdowncmd "github.com/goliatone/go-composer/internal/commands/markdown"
	"github.com/goliatone/go-composer/internal/documents"
	"github.com/goliatone/go-composer/internal/editor"
	composerhttp "github.com/goliatone/go-composer/internal/http"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/markdown"
	"github.com/goliatone/go-composer/internal/render"
	"github.com/goliatone/go-composer/internal/runtimeconfig"
	sectionstore "github.com/goliatone/go-composer/internal/sections"
	"github.com/goliatone/go-composer/pkg/activity"
	"github.com/goliatone/go-composer/pkg/activity/usersink"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

// Container wires the composer services from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger
	clock          func() time.Time

	bunDB         *bun.DB
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	repository    documents.Repository
	activitySink  interfaces.ActivitySink

	documentSvc  *documents.Service
	factory      *sectionstore.Factory
	issuer       *auth.Issuer
	verifier     *auth.Verifier
	metrics      *composerhttp.Metrics
	importer     *markdown.Importer
	routeManager *urlkit.RouteManager

	closers []func() error
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB uses db for the bun storage provider instead of opening
// Config.Storage.DSN. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service used by the bun repository.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithRepository bypasses Config.Storage entirely.
func WithRepository(repo documents.Repository) Option {
	return func(c *Container) {
		c.repository = repo
	}
}

// WithActivitySink forwards document save and delete events to sink.
func WithActivitySink(sink interfaces.ActivitySink) Option {
	return func(c *Container) {
		c.activitySink = sink
	}
}

// WithClock overrides time.Now for services and tokens.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.clock = now
		}
	}
}

// NewContainer validates cfg and builds every service. Call Close to release
// storage connections.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{
		Config: cfg,
		clock:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "composer.di")

	c.configureCacheDefaults()
	if err := c.configureRepository(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.configureAuth(); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.configureServices()

	c.logger.Info("container.configured",
		"storage", c.storageName(),
		"cache", c.cacheService != nil,
		"metrics", c.metrics != nil,
	)
	return c, nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.TTL > 0 {
			cfg.TTL = c.Config.Cache.TTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureAuth() error {
	authOpts := []auth.Option{
		auth.WithIssuerName(c.Config.Auth.Issuer),
		auth.WithClock(c.clock),
	}
	issuer, err := auth.NewIssuer(c.Config.Auth.Secret, authOpts...)
	if err != nil {
		return fmt.Errorf("di: token issuer: %w", err)
	}
	verifier, err := auth.NewVerifier(c.Config.Auth.Secret, authOpts...)
	if err != nil {
		return fmt.Errorf("di: token verifier: %w", err)
	}
	c.issuer = issuer
	c.verifier = verifier
	return nil
}

func (c *Container) configureServices() {
	serviceOpts := []documents.ServiceOption{
		documents.WithLogger(logging.DocumentsLogger(c.loggerProvider)),
		documents.WithClock(c.clock),
	}
	if c.activitySink != nil {
		serviceOpts = append(serviceOpts, documents.WithActivityHook(activity.Hooks{usersink.Hook{Sink: c.activitySink}}))
	}
	c.documentSvc = documents.NewService(c.repository, serviceOpts...)

	c.factory = sectionstore.NewFactory(sectionstore.WithFactoryLogger(logging.StoreLogger(c.loggerProvider)))
	c.importer = markdown.NewImporter(markdown.ImporterConfig{
		Factory: c.factory,
		Logger:  logging.ModuleLogger(c.loggerProvider, "composer.markdown"),
	})

	if c.Config.HTTP.Metrics {
		c.metrics = composerhttp.NewMetrics()
	}
	if site := strings.TrimSpace(c.Config.Editor.SiteURL); site != "" {
		c.routeManager = editor.NewRouteManager(site, c.Config.Editor.PageRoute)
	}
}

// Close releases storage connections and flushes loggers.
func (c *Container) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Repository exposes the configured document repository.
func (c *Container) Repository() documents.Repository {
	return c.repository
}

// DocumentService returns the page document service.
func (c *Container) DocumentService() *documents.Service {
	return c.documentSvc
}

// Factory returns the shared section factory.
func (c *Container) Factory() *sectionstore.Factory {
	return c.factory
}

// Issuer returns the bearer token issuer.
func (c *Container) Issuer() *auth.Issuer {
	return c.issuer
}

// Verifier returns the bearer token verifier.
func (c *Container) Verifier() *auth.Verifier {
	return c.verifier
}

// RouteManager returns the page URL manager, or nil without Editor.SiteURL.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// PagesAPI builds the HTTP API bound to the container's services.
func (c *Container) PagesAPI() *composerhttp.PagesAPI {
	opts := []composerhttp.Option{
		composerhttp.WithBasePath(c.Config.HTTP.BasePath),
		composerhttp.WithVerifier(c.verifier),
		composerhttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	}
	if c.metrics != nil {
		opts = append(opts, composerhttp.WithMetrics(c.metrics))
	}
	return composerhttp.NewPagesAPI(c.documentSvc, opts...)
}

// Handler returns a mux serving the pages API.
func (c *Container) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := c.PagesAPI().Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// PreviewRegistry returns renderers for every variant with Markdown text.
func (c *Container) PreviewRegistry() *render.Registry {
	return render.NewPreviewRegistry(markdown.NewGoldmarkParser(markdown.DefaultOptions()))
}

// MarkdownCommands builds the Markdown import handlers and registers them
// with reg when one is given.
func (c *Container) MarkdownCommands(reg markdowncmd.CommandRegistry) (*markdowncmd.HandlerSet, error) {
	return markdowncmd.RegisterMarkdownCommands(reg, c.documentSvc, c.importer, c.loggerProvider)
}

func (c *Container) storageName() string {
	provider := strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))
	if provider == "bun" {
		return provider + "/" + strings.ToLower(strings.TrimSpace(c.Config.Storage.Dialect))
	}
	return provider
}
