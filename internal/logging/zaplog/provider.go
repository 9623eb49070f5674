// Package zaplog adapts go.uber.org/zap to the composer logging contract.
package zaplog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

// Config captures zap specific options.
type Config struct {
	Level  string
	Format string
}

// Provider hands out named sugared zap loggers.
type Provider struct {
	root *zap.Logger
}

// NewProvider builds a production zap logger honouring the level and
// encoding ("json" or "console").
func NewProvider(cfg Config) (*Provider, error) {
	zcfg := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(strings.TrimSpace(strings.ToLower(cfg.Level)))
	if err != nil && strings.TrimSpace(cfg.Level) != "" {
		return nil, fmt.Errorf("logging: invalid zap level %q: %w", cfg.Level, err)
	}
	if strings.TrimSpace(cfg.Level) != "" {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
	case "console", "pretty":
		zcfg.Encoding = "console"
	default:
		return nil, fmt.Errorf("logging: unsupported zap format %q", cfg.Format)
	}
	root, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return &Provider{root: root}, nil
}

// NewProviderFromLogger wraps an already configured zap logger.
func NewProviderFromLogger(root *zap.Logger) *Provider {
	if root == nil {
		root = zap.NewNop()
	}
	return &Provider{root: root}
}

// GetLogger returns a child named after the module.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	logger := p.root
	if name = strings.TrimSpace(name); name != "" {
		logger = logger.Named(name)
	}
	return &adapter{inner: logger.Sugar()}
}

// Sync flushes buffered entries.
func (p *Provider) Sync() error {
	if p == nil || p.root == nil {
		return nil
	}
	return p.root.Sync()
}

type adapter struct {
	inner *zap.SugaredLogger
}

var _ interfaces.FieldsLogger = (*adapter)(nil)

func (l *adapter) Trace(msg string, args ...any) { l.inner.Debugw(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debugw(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Infow(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warnw(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Errorw(msg, args...) }

// Fatal logs at error level; process termination is left to the caller.
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Errorw(msg, args...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	args := make([]any, 0, len(fields)*2)
	for key, value := range fields {
		args = append(args, key, value)
	}
	return &adapter{inner: l.inner.With(args...)}
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	fields := logging.ContextFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.WithFields(fields)
}
