package placements

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-publish/categories"
	"github.com/goliatone/go-publish/internal/logging"
	"github.com/goliatone/go-publish/pkg/interfaces"
)

// DefaultPerPage is the listing page size when no override is configured.
const DefaultPerPage = 20

// ListOptions filters and paginates a listing. Year is mandatory whenever
// Month or Day is set. Page is 1-indexed; zero values fall back to the first
// page and the service's default page size.
type ListOptions struct {
	Category       *categories.Category
	IncludeSubtree bool
	Year           int
	Month          int
	Day            int
	ContentTypeIDs []uuid.UUID
	Page           int
	PerPage        int
}

// Page is one page of a listing, publish_from descending.
type Page struct {
	Items      []*Placement
	Number     int
	PerPage    int
	Total      int
	TotalPages int
}

// HasPrevious reports whether an earlier page exists.
func (p *Page) HasPrevious() bool { return p != nil && p.Number > 1 }

// HasNext reports whether a later page exists.
func (p *Page) HasNext() bool { return p != nil && p.Number < p.TotalPages }

// IsPaginated reports whether the listing spans more than one page.
func (p *Page) IsPaginated() bool { return p != nil && p.TotalPages > 1 }

// ListingService builds filtered, paginated placement listings and infers
// archive years for category pages.
type ListingService interface {
	List(ctx context.Context, opts ListOptions) (*Page, error)
	ArchiveYear(ctx context.Context, cat *categories.Category) int
}

// ListingOption mutates the listing service.
type ListingOption func(*listingService)

// WithListingPerPage overrides the default page size.
func WithListingPerPage(perPage int) ListingOption {
	return func(s *listingService) {
		if perPage > 0 {
			s.perPage = perPage
		}
	}
}

// WithArchiveYear pins the archive year instead of inferring it from the
// newest listing.
func WithArchiveYear(year int) ListingOption {
	return func(s *listingService) {
		s.archiveYear = year
	}
}

// WithListingClock overrides the clock used for archive-year inference.
func WithListingClock(clock func() time.Time) ListingOption {
	return func(s *listingService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithListingLogger overrides the service's logger.
func WithListingLogger(logger interfaces.Logger) ListingOption {
	return func(s *listingService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewListingService constructs a listing service over the supplied repository.
func NewListingService(repo Repository, opts ...ListingOption) ListingService {
	s := &listingService{
		repo:    repo,
		perPage: DefaultPerPage,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

type listingService struct {
	repo        Repository
	perPage     int
	archiveYear int
	now         func() time.Time
	logger      interfaces.Logger
}

// List validates the filter, runs the query and paginates the result. Page
// numbers outside [1, TotalPages] are a routing error surfaced as NotFound,
// not an empty page.
func (s *listingService) List(ctx context.Context, opts ListOptions) (*Page, error) {
	if s == nil || s.repo == nil {
		return nil, errors.New("placements: listing service unavailable")
	}
	if opts.Category == nil {
		return nil, ErrCategoryRequired
	}
	if err := validateDateFilter(opts.Year, opts.Month, opts.Day); err != nil {
		return nil, err
	}

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = s.perPage
	}
	page := opts.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, &NotFoundError{Resource: "page", Key: strconv.Itoa(page)}
	}

	query := ListQuery{
		CategoryID:     opts.Category.ID,
		Year:           opts.Year,
		Month:          opts.Month,
		Day:            opts.Day,
		ContentTypeIDs: opts.ContentTypeIDs,
		Limit:          perPage,
		Offset:         (page - 1) * perPage,
	}
	if opts.IncludeSubtree && !opts.Category.IsRoot() {
		query.Subtree = &SubtreeFilter{
			SiteID:   opts.Category.SiteID,
			TreePath: opts.Category.TreePath,
		}
	}

	items, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		// An empty result set still has one valid (empty) page.
		totalPages = 1
	}
	if page > totalPages {
		return nil, &NotFoundError{Resource: "page", Key: strconv.Itoa(page)}
	}

	return &Page{
		Items:      items,
		Number:     page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// ArchiveYear returns the configured archive year when set; otherwise the
// year of the newest placement published at or before now within the
// category subtree, falling back to the current year on any failure
// (including an empty subtree).
func (s *listingService) ArchiveYear(ctx context.Context, cat *categories.Category) int {
	if s.archiveYear != 0 {
		return s.archiveYear
	}

	now := s.now()
	if cat == nil {
		return now.Year()
	}

	latest, err := s.repo.LatestPublishFrom(ctx, SubtreeFilter{
		SiteID:   cat.SiteID,
		TreePath: cat.TreePath,
	}, now)
	if err != nil {
		s.logger.Debug("archive year inference fell back to current year",
			"category", cat.TreePath,
			"reason", err.Error(),
		)
		return now.Year()
	}
	return latest.Year()
}

func validateDateFilter(year, month, day int) error {
	if year == 0 {
		if month != 0 || day != 0 {
			return ErrYearRequired
		}
		return nil
	}
	if month == 0 {
		if day != 0 {
			return &InvalidDateError{Year: year, Month: month, Day: day}
		}
		return nil
	}
	if day == 0 {
		return (Date{Year: year, Month: month, Day: 1}).Validate()
	}
	return (Date{Year: year, Month: month, Day: day}).Validate()
}
