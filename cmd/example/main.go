package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	publish "github.com/goliatone/go-publish"
	"github.com/goliatone/go-publish/categories"
	"github.com/goliatone/go-publish/content"
	"github.com/goliatone/go-publish/placements"
	"github.com/goliatone/go-publish/router"
)

// echoRenderer stands in for a real template engine: it reports which
// candidate would have been rendered, most specific first.
type echoRenderer struct{}

func (echoRenderer) Render(candidates []string, data any) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("render: no candidates")
	}
	return candidates[0], nil
}

func main() {
	ctx := context.Background()

	siteID := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	cfg := publish.DefaultConfig()
	cfg.Site = siteID
	cfg.Listing.PerPage = 10

	module, err := publish.New(cfg, publish.WithTemplate(echoRenderer{}))
	if err != nil {
		log.Fatalf("initialise publish: %v", err)
	}
	container := module.Container()

	root := &categories.Category{
		ID:       uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		SiteID:   siteID,
		TreePath: "",
		Path:     "",
		Title:    "Home",
	}
	news := &categories.Category{
		ID:       uuid.MustParse("11111111-1111-1111-1111-111111111112"),
		SiteID:   siteID,
		TreePath: "news",
		Path:     "news",
		Title:    "News",
	}
	container.MemoryCategoryRepository().Put(root)
	container.MemoryCategoryRepository().Put(news)

	articleType := &content.ContentType{
		ID:         uuid.MustParse("22222222-2222-2222-2222-222222222221"),
		AppLabel:   "articles",
		Model:      "article",
		Name:       "article",
		PluralName: "articles",
	}
	container.MemoryContentTypeStore().Put(articleType)

	story := &content.Publishable{
		ID:            uuid.MustParse("33333333-3333-3333-3333-333333333331"),
		ContentTypeID: articleType.ID,
		Slug:          "launch-day",
		Title:         "Launch Day",
		Type:          articleType,
	}

	publishFrom := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	container.MemoryPlacementRepository().Put(&placements.Placement{
		ID:            uuid.MustParse("44444444-4444-4444-4444-444444444441"),
		CategoryID:    news.ID,
		PublishableID: story.ID,
		Slug:          story.Slug,
		PublishFrom:   publishFrom,
		Category:      news,
		Publishable:   story,
	})

	engine := module.Router()

	detail, err := engine.ObjectDetail(ctx, router.DetailRequest{
		CategoryPath: "news",
		ContentType:  "articles",
		Slug:         "launch-day",
		Year:         2026,
		Month:        8,
		Day:          20,
	})
	if err != nil {
		log.Fatalf("object detail: %v", err)
	}

	home, err := engine.CategoryDetail(ctx, router.CategoryRequest{CategoryPath: ""})
	if err != nil {
		log.Fatalf("category detail: %v", err)
	}

	listing, err := engine.ListContent(ctx, router.ListingRequest{
		CategoryPath: "news",
		Year:         2026,
		Page:         1,
	})
	if err != nil {
		log.Fatalf("list content: %v", err)
	}

	export, err := engine.Export(ctx, router.ExportRequest{Count: 3, Name: "banner"})
	if err != nil {
		log.Fatalf("export: %v", err)
	}

	missing, err := engine.ObjectDetail(ctx, router.DetailRequest{
		CategoryPath: "news",
		ContentType:  "articles",
		Slug:         "no-such-story",
	})
	if err != nil {
		log.Fatalf("object detail (missing): %v", err)
	}

	payload := map[string]any{
		"object_detail":   map[string]any{"status": detail.Status, "template": detail.Body},
		"category_detail": map[string]any{"status": home.Status, "template": home.Body},
		"listing":         map[string]any{"status": listing.Status, "template": listing.Body},
		"export":          map[string]any{"status": export.Status, "template": export.Body},
		"missing":         map[string]any{"status": missing.Status, "template": missing.Body},
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		log.Fatalf("encode output: %v", err)
	}
}
