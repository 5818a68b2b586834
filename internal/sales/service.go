package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Gokul-1737/mk-glass-dashboard/internal/views"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/db/models"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/enums"
	pkgerrors "github.com/Gokul-1737/mk-glass-dashboard/pkg/errors"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/logger"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/pagination"
)

// Service exposes sale recording and reporting operations.
type Service interface {
	RecordSale(ctx context.Context, input RecordSaleInput) (*SaleDTO, error)
	UpdateSale(ctx context.Context, saleID uuid.UUID, input UpdateSaleInput) (*SaleDTO, error)
	DeleteSale(ctx context.Context, saleID uuid.UUID) error
	ListSales(ctx context.Context, period enums.SalesPeriod, params pagination.Params) (*SaleListResult, error)
	ListSalesForDate(ctx context.Context, day time.Time, params pagination.Params) (*SaleListResult, error)
}

// RecordSaleInput holds the validated payload to record a sale. SalePrice is
// optional; when absent it is derived from the product's current price.
type RecordSaleInput struct {
	ProductID uuid.UUID
	Quantity  int
	SaleDate  time.Time
	SalePrice *decimal.Decimal
}

// UpdateSaleInput carries the mutable sale fields. Nil fields stay unchanged.
type UpdateSaleInput struct {
	Quantity *int
	SaleDate *time.Time
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type viewInvalidator interface {
	InvalidateFor(ctx context.Context, mutation views.Mutation) error
}

// service implements the sales service.
type service struct {
	repo     *Repository
	products productReader
	cache    viewInvalidator
	logg     *logger.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewService constructs a sales service instance. loc sets the operator's
// calendar for period windows and future-date checks; nil means UTC.
func NewService(repo *Repository, products productReader, cache viewInvalidator, logg *logger.Logger, loc *time.Location) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sale repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if cache == nil {
		return nil, fmt.Errorf("view cache required")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		repo:     repo,
		products: products,
		cache:    cache,
		logg:     logg,
		loc:      loc,
		now:      time.Now,
	}, nil
}

// RecordSale captures a sale at the product's current price. The stored
// sale_price never changes after this point, even if the product is repriced.
func (s *service) RecordSale(ctx context.Context, input RecordSaleInput) (*SaleDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.SaleDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale_date is required")
	}

	day := NormalizeDay(input.SaleDate)
	if day.After(s.localToday()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale_date cannot be in the future")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale references a nonexistent product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	salePrice := product.Price.Mul(decimal.NewFromInt(int64(input.Quantity)))
	if input.SalePrice != nil {
		if input.SalePrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale_price must not be negative")
		}
		salePrice = *input.SalePrice
	}

	sale := &models.Sale{
		ProductID: product.ID,
		Quantity:  input.Quantity,
		SaleDate:  day,
		SalePrice: salePrice,
	}
	created, err := s.repo.CreateSale(ctx, sale)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert sale")
	}

	s.invalidate(ctx)

	return &SaleDTO{
		ID:          created.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Category:    string(product.Category),
		Quantity:    created.Quantity,
		SaleDate:    created.SaleDate.UTC().Format("2006-01-02"),
		SalePrice:   created.SalePrice,
		CreatedAt:   created.CreatedAt,
	}, nil
}

// UpdateSale adjusts quantity and/or sale date. A quantity change re-derives
// sale_price from the originally captured unit price, so repricing the
// product still never rewrites history.
func (s *service) UpdateSale(ctx context.Context, saleID uuid.UUID, input UpdateSaleInput) (*SaleDTO, error) {
	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}

	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		unit := sale.SalePrice.Div(decimal.NewFromInt(int64(sale.Quantity)))
		sale.Quantity = *input.Quantity
		sale.SalePrice = unit.Mul(decimal.NewFromInt(int64(*input.Quantity)))
	}
	if input.SaleDate != nil {
		if input.SaleDate.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale_date is required")
		}
		day := NormalizeDay(*input.SaleDate)
		if day.After(s.localToday()) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale_date cannot be in the future")
		}
		sale.SaleDate = day
	}

	updated, err := s.repo.UpdateSale(ctx, sale)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update sale")
	}

	s.invalidate(ctx)

	product, err := s.products.FindByID(ctx, updated.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return &SaleDTO{
		ID:          updated.ID,
		ProductID:   updated.ProductID,
		ProductName: product.Name,
		Category:    string(product.Category),
		Quantity:    updated.Quantity,
		SaleDate:    updated.SaleDate.UTC().Format("2006-01-02"),
		SalePrice:   updated.SalePrice,
		CreatedAt:   updated.CreatedAt,
	}, nil
}

// DeleteSale removes a sale record.
func (s *service) DeleteSale(ctx context.Context, saleID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, saleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	if err := s.repo.DeleteSale(ctx, saleID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete sale")
	}
	s.invalidate(ctx)
	return nil
}

// ListSalesForDate returns the sales for an explicit calendar day.
func (s *service) ListSalesForDate(ctx context.Context, day time.Time, params pagination.Params) (*SaleListResult, error) {
	if day.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	result, err := s.repo.ListSalesOn(ctx, NormalizeDay(day), params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return result, nil
}

// ListSales returns the sales for the requested reporting period.
func (s *service) ListSales(ctx context.Context, period enums.SalesPeriod, params pagination.Params) (*SaleListResult, error) {
	if !period.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid period")
	}

	local := s.now().In(s.loc)
	var (
		result *SaleListResult
		err    error
	)
	switch period {
	case enums.SalesPeriodToday:
		result, err = s.repo.ListSalesOn(ctx, s.localToday(), params)
	case enums.SalesPeriodMonth:
		start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.UTC)
		result, err = s.repo.ListSalesSince(ctx, start, params)
	case enums.SalesPeriodYear:
		start := time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		result, err = s.repo.ListSalesSince(ctx, start, params)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return result, nil
}

// invalidate stales the derived views after a sale write. A cache outage
// must not fail the write itself.
func (s *service) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateFor(ctx, views.MutationSaleWrite); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("invalidate sale views: %v", err))
	}
}

// localToday returns the operator's current calendar day as a UTC-midnight
// date, matching how stored sale dates are normalized.
func (s *service) localToday() time.Time {
	local := s.now().In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeDay truncates a timestamp to its UTC calendar day.
func NormalizeDay(value time.Time) time.Time {
	v := value.UTC()
	return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
}
