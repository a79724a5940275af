package interfaces

import (
	"context"
	"time"
)

// CacheProvider is the generic key/value cache contract used for response
// caching (e.g. the banner export path). Entity lookups go through the
// repository cache layer instead; this interface never sees domain records.
type CacheProvider interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
