package composer

import "github.com/goliatone/go-composer/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown = runtimeconfig.ErrStorageProviderUnknown
	ErrAuthSecretRequired     = runtimeconfig.ErrAuthSecretRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	AuthConfig    = runtimeconfig.AuthConfig
	HTTPConfig    = runtimeconfig.HTTPConfig
	EditorConfig  = runtimeconfig.EditorConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the development defaults.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file and COMPOSER_* environment overrides.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
