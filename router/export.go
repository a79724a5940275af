package router

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-publish/placements"
	"github.com/goliatone/go-publish/pkg/interfaces"
)

// DefaultExportTTL bounds how long an export rendering is served from cache.
const DefaultExportTTL = time.Hour

// WithExportCache enables caching of rendered exports. A zero ttl falls back
// to DefaultExportTTL.
func WithExportCache(cache interfaces.CacheProvider, ttl time.Duration) Option {
	return func(r *Router) {
		if cache == nil {
			return
		}
		if ttl <= 0 {
			ttl = DefaultExportTTL
		}
		r.exportCache = &exportCache{provider: cache, ttl: ttl}
	}
}

type exportCache struct {
	provider interfaces.CacheProvider
	ttl      time.Duration
}

// ExportRequest addresses a site-level banner export: the latest Count
// placements under the site root, optionally restricted to one content type.
// Name selects the export variant template.
type ExportRequest struct {
	Count       int
	Name        string
	ContentType string
}

// Export renders the latest-N listing for external embedding. Renderings are
// cached per (site, count, name, content type) when a cache is configured.
func (r *Router) Export(ctx context.Context, req ExportRequest) (*Response, error) {
	if err := req.Validate(); err != nil {
		return r.notFound(ctx, err)
	}

	key := exportCacheKey(r.siteID, req)
	if r.exportCache != nil {
		if cached, err := r.exportCache.provider.Get(ctx, key); err == nil {
			if body, ok := cached.(string); ok {
				return &Response{Status: 200, Body: body}, nil
			}
		}
	}

	root, err := r.deps.Categories.Resolve(ctx, "", r.siteID)
	if err != nil {
		return r.notFound(ctx, err)
	}

	var typeIDs []uuid.UUID
	ctName := req.ContentType
	if ctName != "" {
		resolved, err := r.deps.ContentTypes.Resolve(ctx, ctName)
		if err != nil {
			return r.notFound(ctx, err)
		}
		typeIDs = []uuid.UUID{resolved.ID}
	}

	items, _, err := r.deps.PlacementStore.List(ctx, placements.ListQuery{
		Subtree: &placements.SubtreeFilter{
			SiteID:   r.siteID,
			TreePath: root.TreePath,
		},
		ContentTypeIDs: typeIDs,
		Limit:          req.Count,
	})
	if err != nil {
		return r.notFound(ctx, err)
	}

	data := map[string]any{
		"category": root,
		"listings": items,
		"count":    req.Count,
		"name":     req.Name,
	}

	candidates := exportCandidates(req.Name)
	resp, err := r.render(candidates, data)
	if err != nil {
		return nil, err
	}

	if r.exportCache != nil {
		if err := r.exportCache.provider.Set(ctx, key, resp.Body, r.exportCache.ttl); err != nil {
			r.logger.Debug("export cache write failed", "key", key, "reason", err.Error())
		}
	}
	return resp, nil
}

// exportCandidates prefers the named variant and falls back to the shared
// banner template.
func exportCandidates(name string) []string {
	if name != "" && name != "banner" {
		return []string{
			"page/export/" + name + ".html",
			"page/export/banner.html",
		}
	}
	return []string{"page/export/banner.html"}
}

func exportCacheKey(siteID uuid.UUID, req ExportRequest) string {
	return fmt.Sprintf("publish.router.export:%s:%d:%s:%s", siteID, req.Count, req.Name, req.ContentType)
}
