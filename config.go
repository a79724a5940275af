package publish

import "github.com/goliatone/go-publish/internal/runtimeconfig"

var (
	ErrSiteRequired            = runtimeconfig.ErrSiteRequired
	ErrListingPerPageInvalid   = runtimeconfig.ErrListingPerPageInvalid
	ErrArchiveYearInvalid      = runtimeconfig.ErrArchiveYearInvalid
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrExportTTLInvalid        = runtimeconfig.ErrExportTTLInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	ListingConfig = runtimeconfig.ListingConfig
	ExportConfig  = runtimeconfig.ExportConfig
	ArchiveConfig = runtimeconfig.ArchiveConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
