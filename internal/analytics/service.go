package analytics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/Gokul-1737/mk-glass-dashboard/internal/views"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/db/models"
	pkgerrors "github.com/Gokul-1737/mk-glass-dashboard/pkg/errors"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/logger"
)

// Service exposes the derived analytics views.
type Service interface {
	GetRows(ctx context.Context) (*RowListResult, error)
	GetCategoryRollup(ctx context.Context) (*RollupResult, error)
	GetSummary(ctx context.Context) (*DashboardSummary, error)
	Warm(ctx context.Context) error
}

type productLister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type salesLoader interface {
	LoadSalesSince(ctx context.Context, start time.Time) ([]models.Sale, error)
}

type viewCache interface {
	GetJSON(ctx context.Context, view views.View, dest any) (bool, error)
	SetJSON(ctx context.Context, view views.View, value any) error
}

type service struct {
	products productLister
	sales    salesLoader
	cache    viewCache
	logg     *logger.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewService constructs an analytics service. loc sets the operator's
// calendar; nil means UTC.
func NewService(products productLister, sales salesLoader, cache viewCache, logg *logger.Logger, loc *time.Location) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if sales == nil {
		return nil, fmt.Errorf("sale repository required")
	}
	if cache == nil {
		return nil, fmt.Errorf("view cache required")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		products: products,
		sales:    sales,
		cache:    cache,
		logg:     logg,
		loc:      loc,
		now:      time.Now,
	}, nil
}

// GetRows serves the per-product analytics rows, read-through cached.
func (s *service) GetRows(ctx context.Context) (*RowListResult, error) {
	var cached RowListResult
	if s.cacheHit(ctx, views.ViewSalesAnalytics, &cached) {
		return &cached, nil
	}
	report, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	result := &RowListResult{Rows: report.Rows}
	s.cachePut(ctx, views.ViewSalesAnalytics, result)
	return result, nil
}

// GetCategoryRollup serves the monthly units per category.
func (s *service) GetCategoryRollup(ctx context.Context) (*RollupResult, error) {
	var cached RollupResult
	if s.cacheHit(ctx, views.ViewCategoryRollup, &cached) {
		return &cached, nil
	}
	report, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	result := &RollupResult{Categories: report.Rollups}
	s.cachePut(ctx, views.ViewCategoryRollup, result)
	return result, nil
}

// GetSummary serves the dashboard summary.
func (s *service) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	var cached DashboardSummary
	if s.cacheHit(ctx, views.ViewDashboardSummary, &cached) {
		return &cached, nil
	}
	report, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.cachePut(ctx, views.ViewDashboardSummary, report.Summary)
	return report.Summary, nil
}

// Warm populates every view so the first dashboard request after boot is a
// cache hit. Failures per view are collected rather than short-circuiting.
func (s *service) Warm(ctx context.Context) error {
	var errs []error
	if _, err := s.GetRows(ctx); err != nil {
		errs = append(errs, fmt.Errorf("warm %s: %w", views.ViewSalesAnalytics, err))
	}
	if _, err := s.GetCategoryRollup(ctx); err != nil {
		errs = append(errs, fmt.Errorf("warm %s: %w", views.ViewCategoryRollup, err))
	}
	if _, err := s.GetSummary(ctx); err != nil {
		errs = append(errs, fmt.Errorf("warm %s: %w", views.ViewDashboardSummary, err))
	}
	return multierr.Combine(errs...)
}

// compute loads a fresh snapshot and runs the engine over it. The snapshot
// window starts at Jan 1 or seven days back, whichever is earlier, so the
// last-7-days series stays complete across a year boundary.
func (s *service) compute(ctx context.Context) (*Report, error) {
	now := s.now()
	local := now.In(s.loc)
	yearStart := time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	weekStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -6)
	start := yearStart
	if weekStart.Before(start) {
		start = weekStart
	}

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	sales, err := s.sales.LoadSalesSince(ctx, start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales")
	}

	report := Compute(products, sales, now, s.loc)
	if report.OrphanSales > 0 && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("analytics snapshot carries %d orphan sales", report.OrphanSales))
	}
	return report, nil
}

// cacheHit reports whether the view was served from cache. Store failures
// degrade to recomputation.
func (s *service) cacheHit(ctx context.Context, view views.View, dest any) bool {
	hit, err := s.cache.GetJSON(ctx, view, dest)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("read view %s: %v", view, err))
		}
		return false
	}
	return hit
}

func (s *service) cachePut(ctx context.Context, view views.View, value any) {
	if err := s.cache.SetJSON(ctx, view, value); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("store view %s: %v", view, err))
	}
}
