package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-composer/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"unknown storage", func(c *runtimeconfig.Config) { c.Storage.Provider = "s3" }, runtimeconfig.ErrStorageProviderUnknown},
		{"bun without dsn", func(c *runtimeconfig.Config) { c.Storage.Provider = "bun" }, runtimeconfig.ErrStorageDSNRequired},
		{"bun bad dialect", func(c *runtimeconfig.Config) {
			c.Storage.Provider = "bun"
			c.Storage.Dialect = "mysql"
			c.Storage.DSN = "x"
		}, runtimeconfig.ErrStorageDialectUnknown},
		{"redis without url", func(c *runtimeconfig.Config) { c.Storage.Provider = "redis" }, runtimeconfig.ErrRedisURLRequired},
		{"cache ttl", func(c *runtimeconfig.Config) { c.Cache.TTL = 0 }, runtimeconfig.ErrCacheTTLInvalid},
		{"secret", func(c *runtimeconfig.Config) { c.Auth.Secret = " " }, runtimeconfig.ErrAuthSecretRequired},
		{"token ttl", func(c *runtimeconfig.Config) { c.Auth.TokenTTL = -time.Second }, runtimeconfig.ErrTokenTTLInvalid},
		{"addr", func(c *runtimeconfig.Config) { c.HTTP.Addr = "" }, runtimeconfig.ErrHTTPAddrRequired},
		{"editor url", func(c *runtimeconfig.Config) { c.Editor.BaseURL = "not a url" }, runtimeconfig.ErrEditorBaseURLInvalid},
		{"log provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"log level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"log format", func(c *runtimeconfig.Config) { c.Logging.Format = "xml" }, runtimeconfig.ErrLoggingFormatInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "composer.yaml")
	body := "storage:\n  provider: bun\n  dsn: file::memory:\nauth:\n  secret: s3cret\n  token_ttl: 15m\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Provider != "bun" || cfg.Storage.Dialect != "sqlite" {
		t.Fatalf("unexpected storage config %+v", cfg.Storage)
	}
	if cfg.Auth.Secret != "s3cret" || cfg.Auth.TokenTTL != 15*time.Minute {
		t.Fatalf("unexpected auth config %+v", cfg.Auth)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.HTTP.Addr)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("COMPOSER_HTTP_ADDR", ":9999")
	cfg, err := runtimeconfig.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":9999" {
		t.Fatalf("expected env addr, got %q", cfg.HTTP.Addr)
	}
}
