package publish_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	publish "github.com/goliatone/go-publish"
	"github.com/goliatone/go-publish/categories"
	"github.com/goliatone/go-publish/content"
	"github.com/goliatone/go-publish/pkg/testsupport"
	"github.com/goliatone/go-publish/placements"
	"github.com/goliatone/go-publish/router"
)

var integrationSite = uuid.MustParse("00000000-0000-0000-0000-00000000ab01")

type firstCandidateRenderer struct{}

func (firstCandidateRenderer) Render(candidates []string, data any) (string, error) {
	return candidates[0], nil
}

func newIntegrationDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	ctx := context.Background()
	for _, model := range []any{
		(*categories.Category)(nil),
		(*content.ContentType)(nil),
		(*content.Publishable)(nil),
		(*placements.Placement)(nil),
	} {
		if _, err := bunDB.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table for %T: %v", model, err)
		}
	}
	return bunDB
}

func seedIntegrationData(t *testing.T, db *bun.DB) {
	t.Helper()
	ctx := context.Background()

	rows := []any{
		&categories.Category{
			ID:       uuid.MustParse("00000000-0000-0000-0000-00000000ab10"),
			SiteID:   integrationSite,
			TreePath: "",
			Path:     "",
			Title:    "Home",
		},
		&categories.Category{
			ID:       uuid.MustParse("00000000-0000-0000-0000-00000000ab11"),
			SiteID:   integrationSite,
			TreePath: "news",
			Path:     "news",
			Title:    "News",
		},
		&content.ContentType{
			ID:         uuid.MustParse("00000000-0000-0000-0000-00000000ab20"),
			AppLabel:   "articles",
			Model:      "article",
			Name:       "article",
			PluralName: "articles",
		},
		&content.Publishable{
			ID:            uuid.MustParse("00000000-0000-0000-0000-00000000ab30"),
			ContentTypeID: uuid.MustParse("00000000-0000-0000-0000-00000000ab20"),
			Slug:          "launch-day",
			Title:         "Launch Day",
		},
		&placements.Placement{
			ID:            uuid.MustParse("00000000-0000-0000-0000-00000000ab40"),
			CategoryID:    uuid.MustParse("00000000-0000-0000-0000-00000000ab11"),
			PublishableID: uuid.MustParse("00000000-0000-0000-0000-00000000ab30"),
			Slug:          "launch-day",
			PublishFrom:   time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC),
		},
	}
	for _, row := range rows {
		if _, err := db.NewInsert().Model(row).Exec(ctx); err != nil {
			t.Fatalf("insert %T: %v", row, err)
		}
	}
}

func TestModuleEndToEndWithBunStorage(t *testing.T) {
	ctx := context.Background()
	db := newIntegrationDB(t)
	seedIntegrationData(t, db)

	cfg := publish.DefaultConfig()
	cfg.Site = integrationSite

	module, err := publish.New(cfg,
		publish.WithBunDB(db),
		publish.WithTemplate(firstCandidateRenderer{}),
		publish.WithClock(func() time.Time {
			return time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		}),
	)
	if err != nil {
		t.Fatalf("initialise module: %v", err)
	}
	engine := module.Router()
	if engine == nil {
		t.Fatal("expected a router when a renderer is configured")
	}

	detail, err := engine.ObjectDetail(ctx, router.DetailRequest{
		CategoryPath: "news",
		ContentType:  "articles",
		Slug:         "launch-day",
		Year:         2024,
		Month:        6,
		Day:          2,
	})
	if err != nil {
		t.Fatalf("object detail: %v", err)
	}
	if detail.Status != 200 {
		t.Fatalf("expected 200, got %d", detail.Status)
	}
	if detail.Body != "page/category/news/content_type/articles.article/launch-day/object.html" {
		t.Fatalf("unexpected template %q", detail.Body)
	}

	home, err := engine.CategoryDetail(ctx, router.CategoryRequest{CategoryPath: ""})
	if err != nil {
		t.Fatalf("category detail: %v", err)
	}
	if home.Status != 200 || home.Body != "page/category.html" {
		t.Fatalf("unexpected homepage response %d %q", home.Status, home.Body)
	}

	listing, err := engine.ListContent(ctx, router.ListingRequest{
		CategoryPath: "news",
		Year:         2024,
	})
	if err != nil {
		t.Fatalf("list content: %v", err)
	}
	if listing.Status != 200 {
		t.Fatalf("expected 200 listing, got %d", listing.Status)
	}

	missing, err := engine.ObjectDetail(ctx, router.DetailRequest{
		CategoryPath: "news",
		ContentType:  "articles",
		Slug:         "nope",
	})
	if err != nil {
		t.Fatalf("object detail (missing): %v", err)
	}
	if missing.Status != 404 || missing.Body != "page/404.html" {
		t.Fatalf("expected rendered 404, got %d %q", missing.Status, missing.Body)
	}
}

func TestModuleMemoryStorageDefaults(t *testing.T) {
	ctx := context.Background()

	cfg := publish.DefaultConfig()
	cfg.Site = integrationSite

	module, err := publish.New(cfg, publish.WithTemplate(firstCandidateRenderer{}))
	if err != nil {
		t.Fatalf("initialise module: %v", err)
	}
	container := module.Container()

	if container.MemoryCategoryRepository() == nil {
		t.Fatal("expected memory category repository without a database")
	}

	container.MemoryCategoryRepository().Put(&categories.Category{
		ID:       uuid.New(),
		SiteID:   integrationSite,
		TreePath: "opinion",
		Path:     "opinion",
		Title:    "Opinion",
	})

	cat, err := module.Categories().Resolve(ctx, "opinion", integrationSite)
	if err != nil {
		t.Fatalf("resolve seeded category: %v", err)
	}
	if cat.Title != "Opinion" {
		t.Fatalf("expected Opinion, got %s", cat.Title)
	}
}

func TestModuleRouterlessConstruction(t *testing.T) {
	cfg := publish.DefaultConfig()
	cfg.Site = integrationSite

	module, err := publish.New(cfg)
	if err != nil {
		t.Fatalf("initialise module: %v", err)
	}
	if module.Router() != nil {
		t.Fatal("expected nil router without a renderer")
	}
	if module.Categories() == nil || module.ContentTypes() == nil || module.Placements() == nil || module.Listings() == nil {
		t.Fatal("services must be available without a renderer")
	}
}
