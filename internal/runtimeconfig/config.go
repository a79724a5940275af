// Package runtimeconfig holds the module's runtime configuration and its
// consistency checks. Fields use simple types so host applications can load
// them from whatever config source they already have.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrSiteRequired = errors.New("publish config: site id is required")
var ErrListingPerPageInvalid = errors.New("publish config: listing per-page must be positive")
var ErrArchiveYearInvalid = errors.New("publish config: archive year must be zero or positive")
var ErrCacheTTLInvalid = errors.New("publish config: cache ttl must be zero or positive")
var ErrExportTTLInvalid = errors.New("publish config: export ttl must be zero or positive")
var ErrLoggingProviderRequired = errors.New("publish config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("publish config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("publish config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("publish config: logging format is invalid")

// Config aggregates the resolution engine's tunables.
type Config struct {
	Site    uuid.UUID
	Storage StorageConfig
	Cache   CacheConfig
	Listing ListingConfig
	Export  ExportConfig
	Archive ArchiveConfig
	Logging LoggingConfig
}

// StorageConfig names the backing repository implementation.
type StorageConfig struct {
	Provider string
}

// CacheConfig toggles repository-level caching.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// ListingConfig tunes pagination.
type ListingConfig struct {
	PerPage int
}

// ExportConfig tunes the rendered-export cache.
type ExportConfig struct {
	Enabled bool
	TTL     time.Duration
}

// ArchiveConfig pins the archive entry year. Zero means "infer from the
// newest placement".
type ArchiveConfig struct {
	Year int
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Enabled   bool
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns opinionated defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Listing: ListingConfig{
			PerPage: 20,
		},
		Export: ExportConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Site == uuid.Nil {
		return ErrSiteRequired
	}
	if cfg.Listing.PerPage <= 0 {
		return ErrListingPerPageInvalid
	}
	if cfg.Archive.Year < 0 {
		return ErrArchiveYearInvalid
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Export.TTL < 0 {
		return ErrExportTTLInvalid
	}
	if cfg.Logging.Enabled {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
