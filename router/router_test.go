package router_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-publish/categories"
	"github.com/goliatone/go-publish/content"
	"github.com/goliatone/go-publish/placements"
	"github.com/goliatone/go-publish/router"
)

var testSite = uuid.MustParse("00000000-0000-0000-0000-0000000000e1")

// recordingRenderer renders the first candidate and remembers every candidate
// list it was asked for.
type recordingRenderer struct {
	calls [][]string
}

func (r *recordingRenderer) Render(candidates []string, data any) (string, error) {
	copied := make([]string, len(candidates))
	copy(copied, candidates)
	r.calls = append(r.calls, copied)
	if len(candidates) == 0 {
		return "", errors.New("no candidates")
	}
	return candidates[0], nil
}

func (r *recordingRenderer) last() []string {
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

type fixture struct {
	engine     *router.Router
	renderer   *recordingRenderer
	categories *categories.MemoryRepository
	types      *content.MemoryStore
	placements *placements.MemoryRepository

	root    *categories.Category
	news    *categories.Category
	article *content.ContentType
	story   *placements.Placement
}

func newFixture(t *testing.T, now time.Time, opts ...router.Option) *fixture {
	t.Helper()

	f := &fixture{
		renderer:   &recordingRenderer{},
		categories: categories.NewMemoryRepository(),
		types:      content.NewMemoryStore(),
		placements: placements.NewMemoryRepository(),
	}

	f.root = &categories.Category{
		ID:       uuid.MustParse("00000000-0000-0000-0000-00000000ee00"),
		SiteID:   testSite,
		TreePath: "",
		Path:     "",
		Title:    "Home",
	}
	f.news = &categories.Category{
		ID:       uuid.MustParse("00000000-0000-0000-0000-00000000ee01"),
		SiteID:   testSite,
		TreePath: "news",
		Path:     "news",
		Title:    "News",
	}
	f.categories.Put(f.root)
	f.categories.Put(f.news)

	f.article = &content.ContentType{
		ID:         uuid.MustParse("00000000-0000-0000-0000-00000000ee10"),
		AppLabel:   "articles",
		Model:      "article",
		Name:       "article",
		PluralName: "articles",
	}
	f.types.Put(f.article)

	f.story = &placements.Placement{
		ID:            uuid.MustParse("00000000-0000-0000-0000-00000000ee20"),
		CategoryID:    f.news.ID,
		PublishableID: uuid.MustParse("00000000-0000-0000-0000-00000000ee30"),
		Slug:          "my-story",
		PublishFrom:   time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC),
		Category:      f.news,
		Publishable: &content.Publishable{
			ID:            uuid.MustParse("00000000-0000-0000-0000-00000000ee30"),
			ContentTypeID: f.article.ID,
			Slug:          "my-story",
			Title:         "My Story",
			Type:          f.article,
		},
	}
	f.placements.Put(f.story)

	clock := func() time.Time { return now }
	engine, err := router.New(testSite, router.Dependencies{
		Categories:     categories.NewResolver(f.categories),
		ContentTypes:   content.NewRegistry(f.types),
		Placements:     placements.NewResolver(f.placements, placements.WithResolverClock(clock)),
		Listings:       placements.NewListingService(f.placements, placements.WithListingClock(clock)),
		PlacementStore: f.placements,
		Renderer:       f.renderer,
	}, opts...)
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	f.engine = engine
	return f
}

func TestObjectDetailStandardRender(t *testing.T) {
	now := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	resp, err := f.engine.ObjectDetail(context.Background(), router.DetailRequest{
		CategoryPath: "news",
		ContentType:  "articles",
		Slug:         "my-story",
		Year:         2024,
		Month:        6,
		Day:          2,
	})
	if err != nil {
		t.Fatalf("object detail: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("expected status 200, got %d", resp.Status)
	}
	want := []string{
		"page/category/news/content_type/articles.article/my-story/object.html",
		"page/category/news/content_type/articles.article/object.html",
		"page/category/news/object.html",
		"page/content_type/articles.article/object.html",
		"page/object.html",
	}
	got := f.renderer.last()
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidate %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestObjectDetailCustomDetailWins(t *testing.T) {
	now := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	var seen *router.Context
	f.engine.Dispatcher().RegisterDetail("articles.article", func(ctx context.Context, rc *router.Context) (*router.Response, error) {
		seen = rc
		return &router.Response{Status: 200, Body: "custom"}, nil
	})

	resp, err := f.engine.ObjectDetail(context.Background(), router.DetailRequest{
		CategoryPath: "news",
		ContentType:  "articles",
		Slug:         "my-story",
		Year:         2024,
		Month:        6,
		Day:          2,
	})
	if err != nil {
		t.Fatalf("object detail: %v", err)
	}
	if resp.Body != "custom" {
		t.Fatalf("expected custom body, got %s", resp.Body)
	}
	if len(f.renderer.calls) != 0 {
		t.Fatalf("custom detail must bypass the renderer, got %v", f.renderer.calls)
	}
	if seen == nil || seen.Placement == nil || seen.Placement.Slug != "my-story" {
		t.Fatalf("handler context missing placement: %+v", seen)
	}
	if seen.Category == nil || seen.Category.TreePath != "news" {
		t.Fatalf("handler context missing category: %+v", seen)
	}
}

func TestObjectDetailSubPathDispatch(t *testing.T) {
	now := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	var gotBits []string
	f.engine.Dispatcher().RegisterSubPath("articles.article", func(ctx context.Context, bits []string, rc *router.Context) (*router.Response, error) {
		gotBits = bits
		return &router.Response{Status: 200, Body: "sub:" + strings.Join(bits, ",")}, nil
	})
	// A detail override must not shadow the sub-path route.
	f.engine.Dispatcher().RegisterDetail("articles.article", func(ctx context.Context, rc *router.Context) (*router.Response, error) {
		t.Fatal("detail handler must not run for sub-path requests")
		return nil, nil
	})

	resp, err := f.engine.ObjectDetail(context.Background(), router.DetailRequest{
		CategoryPath: "news",
		ContentType:  "articles",
		Slug:         "my-story",
		Year:         2024,
		Month:        6,
		Day:          2,
		PathSuffix:   "comments/42/",
	})
	if err != nil {
		t.Fatalf("object detail: %v", err)
	}
	if resp.Body != "sub:comments,42" {
		t.Fatalf("unexpected body %q", resp.Body)
	}
	if len(gotBits) != 2 || gotBits[0] != "comments" || gotBits[1] != "42" {
		t.Fatalf("unexpected bits %v", gotBits)
	}
}

func TestObjectDetailSubPathWithoutHandlerIs404(t *testing.T) {
	now := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	resp, err := f.engine.ObjectDetail(context.Background(), router.DetailRequest{
		CategoryPath: "news",
		ContentType:  "articles",
		Slug:         "my-story",
		Year:         2024,
		Month:        6,
		Day:          2,
		PathSuffix:   "comments",
	})
	if err != nil {
		t.Fatalf("object detail: %v", err)
	}
	if resp.Status != 404 {
		t.Fatalf("expected 404, got %d", resp.Status)
	}
	if resp.Body != "page/404.html" {
		t.Fatalf("expected rendered 404 page, got %q", resp.Body)
	}
}

func TestObjectDetailResolutionFailuresRender404(t *testing.T) {
	now := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		req  router.DetailRequest
	}{
		{"unknown type", router.DetailRequest{CategoryPath: "news", ContentType: "podcasts", Slug: "my-story", Year: 2024, Month: 6, Day: 2}},
		{"unknown category", router.DetailRequest{CategoryPath: "nope", ContentType: "articles", Slug: "my-story", Year: 2024, Month: 6, Day: 2}},
		{"unknown slug", router.DetailRequest{CategoryPath: "news", ContentType: "articles", Slug: "nope", Year: 2024, Month: 6, Day: 2}},
		{"wrong date", router.DetailRequest{CategoryPath: "news", ContentType: "articles", Slug: "my-story", Year: 2024, Month: 6, Day: 3}},
		{"missing slug", router.DetailRequest{CategoryPath: "news", ContentType: "articles"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, now)
			resp, err := f.engine.ObjectDetail(context.Background(), tc.req)
			if err != nil {
				t.Fatalf("object detail: %v", err)
			}
			if resp.Status != 404 || resp.Body != "page/404.html" {
				t.Fatalf("expected rendered 404, got %d %q", resp.Status, resp.Body)
			}
		})
	}
}

func TestObjectDetailStaffPreview(t *testing.T) {
	// Before publish_from: anonymous sees 404, staff sees the object.
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	req := router.DetailRequest{
		CategoryPath: "news",
		ContentType:  "articles",
		Slug:         "my-story",
		Year:         2024,
		Month:        6,
		Day:          2,
	}

	anon, err := f.engine.ObjectDetail(context.Background(), req)
	if err != nil {
		t.Fatalf("anonymous detail: %v", err)
	}
	if anon.Status != 404 {
		t.Fatalf("expected 404 for anonymous, got %d", anon.Status)
	}

	req.Staff = true
	staff, err := f.engine.ObjectDetail(context.Background(), req)
	if err != nil {
		t.Fatalf("staff detail: %v", err)
	}
	if staff.Status != 200 {
		t.Fatalf("expected 200 for staff, got %d", staff.Status)
	}
}

func TestCategoryDetail(t *testing.T) {
	now := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	resp, err := f.engine.CategoryDetail(context.Background(), router.CategoryRequest{CategoryPath: "news"})
	if err != nil {
		t.Fatalf("category detail: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	got := f.renderer.last()
	if len(got) != 2 || got[0] != "page/category/news/category.html" || got[1] != "page/category.html" {
		t.Fatalf("unexpected candidates %v", got)
	}
}

func TestCategoryDetailHomepage(t *testing.T) {
	now := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	resp, err := f.engine.CategoryDetail(context.Background(), router.CategoryRequest{CategoryPath: "/"})
	if err != nil {
		t.Fatalf("homepage detail: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	got := f.renderer.last()
	if len(got) != 1 || got[0] != "page/category.html" {
		t.Fatalf("unexpected candidates %v", got)
	}
}

func TestListContent(t *testing.T) {
	now := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	resp, err := f.engine.ListContent(context.Background(), router.ListingRequest{
		CategoryPath: "news",
		ContentType:  "articles",
		Year:         2024,
	})
	if err != nil {
		t.Fatalf("list content: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	got := f.renderer.last()
	want := []string{
		"page/category/news/content_type/articles.article/listing.html",
		"page/category/news/listing.html",
		"page/content_type/articles.article/listing.html",
		"page/listing.html",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidate %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestListContentOutOfRangePageIs404(t *testing.T) {
	now := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	resp, err := f.engine.ListContent(context.Background(), router.ListingRequest{
		CategoryPath: "news",
		Page:         99,
	})
	if err != nil {
		t.Fatalf("list content: %v", err)
	}
	if resp.Status != 404 {
		t.Fatalf("expected 404, got %d", resp.Status)
	}
}

func TestNotFoundAndServerErrorPages(t *testing.T) {
	now := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	nf, err := f.engine.NotFound(context.Background())
	if err != nil {
		t.Fatalf("not found: %v", err)
	}
	if nf.Status != 404 || nf.Body != "page/404.html" {
		t.Fatalf("unexpected not-found response %d %q", nf.Status, nf.Body)
	}

	se, err := f.engine.ServerError(context.Background())
	if err != nil {
		t.Fatalf("server error: %v", err)
	}
	if se.Status != 500 || se.Body != "page/500.html" {
		t.Fatalf("unexpected server-error response %d %q", se.Status, se.Body)
	}
}

func TestNewRequiresSiteAndRenderer(t *testing.T) {
	if _, err := router.New(uuid.Nil, router.Dependencies{Renderer: &recordingRenderer{}}); !errors.Is(err, router.ErrSiteRequired) {
		t.Fatalf("expected ErrSiteRequired, got %v", err)
	}
	if _, err := router.New(testSite, router.Dependencies{}); !errors.Is(err, router.ErrRendererRequired) {
		t.Fatalf("expected ErrRendererRequired, got %v", err)
	}
}
