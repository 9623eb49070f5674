package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	ErrStorageProviderUnknown = errors.New("composer config: storage provider is invalid")
	ErrStorageDialectUnknown  = errors.New("composer config: storage dialect is invalid")
	ErrStorageDSNRequired     = errors.New("composer config: storage dsn is required for the bun provider")
	ErrRedisURLRequired       = errors.New("composer config: redis url is required for the redis provider")
	ErrCacheTTLInvalid        = errors.New("composer config: cache ttl must be positive when cache is enabled")
	ErrAuthSecretRequired     = errors.New("composer config: auth secret is required")
	ErrTokenTTLInvalid        = errors.New("composer config: token ttl must be positive")
	ErrHTTPAddrRequired       = errors.New("composer config: http address is required")
	ErrEditorBaseURLInvalid   = errors.New("composer config: editor base url is invalid")
	ErrLoggingProviderUnknown = errors.New("composer config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("composer config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("composer config: logging format is invalid")
)

// Config aggregates the settings shared by the API server and the CLI.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Cache   CacheConfig   `yaml:"cache"`
	Auth    AuthConfig    `yaml:"auth"`
	HTTP    HTTPConfig    `yaml:"http"`
	Editor  EditorConfig  `yaml:"editor"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects the document repository backend.
type StorageConfig struct {
	Provider  string `yaml:"provider" env:"COMPOSER_STORAGE_PROVIDER"`
	Dialect   string `yaml:"dialect" env:"COMPOSER_STORAGE_DIALECT"`
	DSN       string `yaml:"dsn" env:"COMPOSER_STORAGE_DSN"`
	RedisURL  string `yaml:"redis_url" env:"COMPOSER_REDIS_URL"`
	KeyPrefix string `yaml:"key_prefix" env:"COMPOSER_REDIS_KEY_PREFIX"`
}

// CacheConfig toggles read-through caching of Bun document lookups.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" env:"COMPOSER_CACHE_ENABLED"`
	TTL     time.Duration `yaml:"ttl" env:"COMPOSER_CACHE_TTL"`
}

// AuthConfig configures bearer token issuing and verification.
type AuthConfig struct {
	Secret   string        `yaml:"secret" env:"COMPOSER_AUTH_SECRET"`
	Issuer   string        `yaml:"issuer" env:"COMPOSER_AUTH_ISSUER"`
	TokenTTL time.Duration `yaml:"token_ttl" env:"COMPOSER_AUTH_TOKEN_TTL"`
}

// HTTPConfig configures the backend API listener.
type HTTPConfig struct {
	Addr     string `yaml:"addr" env:"COMPOSER_HTTP_ADDR"`
	BasePath string `yaml:"base_path" env:"COMPOSER_HTTP_BASE_PATH"`
	Metrics  bool   `yaml:"metrics" env:"COMPOSER_HTTP_METRICS"`
}

// EditorConfig configures the client side of an edit session.
type EditorConfig struct {
	BaseURL   string `yaml:"base_url" env:"COMPOSER_EDITOR_BASE_URL"`
	SiteURL   string `yaml:"site_url" env:"COMPOSER_EDITOR_SITE_URL"`
	PageRoute string `yaml:"page_route" env:"COMPOSER_EDITOR_PAGE_ROUTE"`
}

// LoggingConfig selects the logging provider.
type LoggingConfig struct {
	Provider string `yaml:"provider" env:"COMPOSER_LOG_PROVIDER"`
	Level    string `yaml:"level" env:"COMPOSER_LOG_LEVEL"`
	Format   string `yaml:"format" env:"COMPOSER_LOG_FORMAT"`
}

// DefaultConfig returns a configuration suitable for local development.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider:  "memory",
			Dialect:   "sqlite",
			KeyPrefix: "composer:pages:",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Minute,
		},
		Auth: AuthConfig{
			Secret:   "change-me",
			Issuer:   "go-composer",
			TokenTTL: time.Hour,
		},
		HTTP: HTTPConfig{
			Addr:     ":8080",
			BasePath: "/api",
		},
		Editor: EditorConfig{
			BaseURL:   "http://localhost:8080/api",
			SiteURL:   "http://localhost:8080",
			PageRoute: "/pages/:key",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate reports the first inconsistency found.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Provider) {
	case "memory":
	case "bun":
		switch normalize(cfg.Storage.Dialect) {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	case "redis":
		if strings.TrimSpace(cfg.Storage.RedisURL) == "" {
			return ErrRedisURLRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if strings.TrimSpace(cfg.Auth.Secret) == "" {
		return ErrAuthSecretRequired
	}
	if cfg.Auth.TokenTTL <= 0 {
		return ErrTokenTTLInvalid
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	for _, raw := range []string{cfg.Editor.BaseURL, cfg.Editor.SiteURL} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%w: %s", ErrEditorBaseURLInvalid, raw)
		}
	}

	provider := normalize(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "", "console", "gologger", "zap":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
