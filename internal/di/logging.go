package di

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-composer/internal/logging/console"
	"github.com/goliatone/go-composer/internal/logging/gologger"
	"github.com/goliatone/go-composer/internal/logging/zaplog"
)

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}

	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		level := console.ParseLevel(cfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{Level: cfg.Level, Format: cfg.Format})
		if err != nil {
			return fmt.Errorf("di: go-logger provider: %w", err)
		}
		c.loggerProvider = provider
	case "zap":
		provider, err := zaplog.NewProvider(zaplog.Config{Level: cfg.Level, Format: cfg.Format})
		if err != nil {
			return fmt.Errorf("di: zap provider: %w", err)
		}
		c.loggerProvider = provider
		c.closers = append(c.closers, func() error {
			// stdout and stderr reject fsync on most terminals
			_ = provider.Sync()
			return nil
		})
	default:
		return fmt.Errorf("di: unsupported logging provider %q", cfg.Provider)
	}
	return nil
}
