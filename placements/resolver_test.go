package placements_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-publish/categories"
	"github.com/goliatone/go-publish/content"
	"github.com/goliatone/go-publish/placements"
)

var testSite = uuid.MustParse("00000000-0000-0000-0000-0000000000f1")

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newsCategory() *categories.Category {
	return &categories.Category{
		ID:       uuid.MustParse("00000000-0000-0000-0000-00000000aa01"),
		SiteID:   testSite,
		TreePath: "news",
		Path:     "news",
		Title:    "News",
	}
}

func articleType() *content.ContentType {
	return &content.ContentType{
		ID:         uuid.MustParse("00000000-0000-0000-0000-00000000bb01"),
		AppLabel:   "articles",
		Model:      "article",
		Name:       "article",
		PluralName: "articles",
	}
}

func seedPlacement(repo *placements.MemoryRepository, cat *categories.Category, ct *content.ContentType, slug string, from time.Time, to *time.Time, static bool) *placements.Placement {
	p := &placements.Placement{
		ID:            uuid.New(),
		CategoryID:    cat.ID,
		PublishableID: uuid.New(),
		Slug:          slug,
		PublishFrom:   from,
		PublishTo:     to,
		Static:        static,
		Category:      cat,
		Publishable: &content.Publishable{
			ID:            uuid.New(),
			ContentTypeID: ct.ID,
			Slug:          slug,
			Title:         slug,
			Type:          ct,
		},
	}
	repo.Put(p)
	return p
}

func TestResolveDatedPlacement(t *testing.T) {
	repo := placements.NewMemoryRepository()
	cat := newsCategory()
	ct := articleType()
	from := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	seedPlacement(repo, cat, ct, "my-story", from, nil, false)

	resolver := placements.NewResolver(repo, placements.WithResolverClock(fixedClock(from.Add(time.Hour))))

	p, err := resolver.Resolve(context.Background(), placements.ResolveRequest{
		Category:    cat,
		ContentType: ct,
		Slug:        "my-story",
		Date:        &placements.Date{Year: 2024, Month: 6, Day: 2},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.Slug != "my-story" {
		t.Fatalf("expected my-story, got %s", p.Slug)
	}
}

func TestResolveSubstitutesResolvedInstances(t *testing.T) {
	repo := placements.NewMemoryRepository()
	cat := newsCategory()
	ct := articleType()
	from := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	seedPlacement(repo, cat, ct, "my-story", from, nil, true)

	resolver := placements.NewResolver(repo, placements.WithResolverClock(fixedClock(from.Add(time.Hour))))

	p, err := resolver.Resolve(context.Background(), placements.ResolveRequest{
		Category:    cat,
		ContentType: ct,
		Slug:        "my-story",
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.Category != cat {
		t.Fatal("placement must carry the caller's category instance")
	}
	if p.Publishable == nil || p.Publishable.Type != ct {
		t.Fatal("publishable must carry the caller's content type instance")
	}
}

func TestResolveStaticIgnoresDatedAddress(t *testing.T) {
	repo := placements.NewMemoryRepository()
	cat := newsCategory()
	ct := articleType()
	from := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	seedPlacement(repo, cat, ct, "about", from, nil, true)

	resolver := placements.NewResolver(repo, placements.WithResolverClock(fixedClock(from.Add(time.Hour))))

	// Static placements answer only undated addresses.
	if _, err := resolver.Resolve(context.Background(), placements.ResolveRequest{
		Category:    cat,
		ContentType: ct,
		Slug:        "about",
		Date:        &placements.Date{Year: 2024, Month: 6, Day: 2},
	}); !errors.Is(err, placements.ErrPlacementNotFound) {
		t.Fatalf("expected ErrPlacementNotFound, got %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), placements.ResolveRequest{
		Category:    cat,
		ContentType: ct,
		Slug:        "about",
	}); err != nil {
		t.Fatalf("static resolve: %v", err)
	}
}

func TestResolveInactiveDeniedForAnonymous(t *testing.T) {
	repo := placements.NewMemoryRepository()
	cat := newsCategory()
	ct := articleType()
	from := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	seedPlacement(repo, cat, ct, "embargoed", from, nil, true)

	resolver := placements.NewResolver(repo, placements.WithResolverClock(fixedClock(from.Add(-time.Minute))))

	_, err := resolver.Resolve(context.Background(), placements.ResolveRequest{
		Category:    cat,
		ContentType: ct,
		Slug:        "embargoed",
	})
	if !errors.Is(err, placements.ErrPlacementNotFound) {
		t.Fatalf("expected ErrPlacementNotFound, got %v", err)
	}
}

func TestResolveInactiveAllowedForStaff(t *testing.T) {
	repo := placements.NewMemoryRepository()
	cat := newsCategory()
	ct := articleType()
	from := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	seedPlacement(repo, cat, ct, "embargoed", from, nil, true)

	resolver := placements.NewResolver(repo, placements.WithResolverClock(fixedClock(from.Add(-time.Minute))))

	p, err := resolver.Resolve(context.Background(), placements.ResolveRequest{
		Category:    cat,
		ContentType: ct,
		Slug:        "embargoed",
		Staff:       true,
	})
	if err != nil {
		t.Fatalf("staff resolve: %v", err)
	}
	if p.Slug != "embargoed" {
		t.Fatalf("expected embargoed, got %s", p.Slug)
	}
}

func TestResolveWindowBoundaries(t *testing.T) {
	repo := placements.NewMemoryRepository()
	cat := newsCategory()
	ct := articleType()
	from := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	seedPlacement(repo, cat, ct, "limited", from, &to, true)

	req := placements.ResolveRequest{Category: cat, ContentType: ct, Slug: "limited"}

	// publish_from is inclusive.
	atStart := placements.NewResolver(repo, placements.WithResolverClock(fixedClock(from)))
	if _, err := atStart.Resolve(context.Background(), req); err != nil {
		t.Fatalf("resolve at publish_from: %v", err)
	}

	// publish_to is exclusive.
	atEnd := placements.NewResolver(repo, placements.WithResolverClock(fixedClock(to)))
	if _, err := atEnd.Resolve(context.Background(), req); !errors.Is(err, placements.ErrPlacementNotFound) {
		t.Fatalf("expected ErrPlacementNotFound at publish_to, got %v", err)
	}
}

func TestResolveImpossibleDate(t *testing.T) {
	repo := placements.NewMemoryRepository()
	cat := newsCategory()
	ct := articleType()
	from := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	seedPlacement(repo, cat, ct, "my-story", from, nil, false)

	resolver := placements.NewResolver(repo, placements.WithResolverClock(fixedClock(from.Add(time.Hour))))

	// Feb 30 must not normalize onto the Mar 2 placement.
	_, err := resolver.Resolve(context.Background(), placements.ResolveRequest{
		Category:    cat,
		ContentType: ct,
		Slug:        "my-story",
		Date:        &placements.Date{Year: 2024, Month: 2, Day: 30},
	})
	if !errors.Is(err, placements.ErrPlacementNotFound) {
		t.Fatalf("expected ErrPlacementNotFound, got %v", err)
	}
}

func TestResolveRequiresCategoryAndType(t *testing.T) {
	resolver := placements.NewResolver(placements.NewMemoryRepository())

	if _, err := resolver.Resolve(context.Background(), placements.ResolveRequest{
		ContentType: articleType(),
		Slug:        "x",
	}); !errors.Is(err, placements.ErrCategoryRequired) {
		t.Fatalf("expected ErrCategoryRequired, got %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), placements.ResolveRequest{
		Category: newsCategory(),
		Slug:     "x",
	}); !errors.Is(err, placements.ErrPlacementNotFound) {
		t.Fatalf("expected ErrPlacementNotFound, got %v", err)
	}
}
