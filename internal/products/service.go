package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Gokul-1737/mk-glass-dashboard/internal/views"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/db"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/db/models"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/enums"
	pkgerrors "github.com/Gokul-1737/mk-glass-dashboard/pkg/errors"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/logger"
)

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context) (*ProductListResult, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name       string
	Category   enums.ProductCategory
	Price      decimal.Decimal
	TotalStock int
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name       *string
	Category   *enums.ProductCategory
	Price      *decimal.Decimal
	TotalStock *int
}

type viewCache interface {
	GetJSON(ctx context.Context, view views.View, dest any) (bool, error)
	SetJSON(ctx context.Context, view views.View, value any) error
	InvalidateFor(ctx context.Context, mutation views.Mutation) error
}

// service implements the catalog service.
type service struct {
	repo  *Repository
	cache viewCache
	logg  *logger.Logger
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, cache viewCache, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if cache == nil {
		return nil, fmt.Errorf("view cache required")
	}
	return &service{repo: repo, cache: cache, logg: logg}, nil
}

// CreateProduct validates and inserts a catalog product.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.TotalStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_stock must be non-negative")
	}

	product := &models.Product{
		Name:       name,
		Category:   input.Category,
		Price:      input.Price,
		TotalStock: input.TotalStock,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_products_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}

	s.invalidate(ctx)
	return NewProductDTO(created), nil
}

// UpdateProduct applies the provided fields to an existing product.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
	}
	if input.Category != nil && !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.TotalStock != nil && *input.TotalStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_stock must be non-negative")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	applyUpdateToProduct(product, input)
	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_products_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}

	s.invalidate(ctx)
	return NewProductDTO(updated), nil
}

// DeleteProduct removes a product and relies on FK cascades for its sales.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}

	s.invalidate(ctx)
	return nil
}

// GetProduct returns a single product by ID.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

// ListProducts returns the full catalog ordered by name, read-through cached.
// Cache read failures degrade to a fresh load.
func (s *service) ListProducts(ctx context.Context) (*ProductListResult, error) {
	var cached ProductListResult
	hit, err := s.cache.GetJSON(ctx, views.ViewProducts, &cached)
	if err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("read view %s: %v", views.ViewProducts, err))
	}
	if hit && err == nil {
		return &cached, nil
	}

	rows, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	result := &ProductListResult{Products: make([]ProductDTO, 0, len(rows))}
	for i := range rows {
		result.Products = append(result.Products, *NewProductDTO(&rows[i]))
	}
	if err := s.cache.SetJSON(ctx, views.ViewProducts, result); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("store view %s: %v", views.ViewProducts, err))
	}
	return result, nil
}

// invalidate stales the derived views after a product write. A cache outage
// must not fail the write itself.
func (s *service) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateFor(ctx, views.MutationProductWrite); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("invalidate product views: %v", err))
	}
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.TotalStock != nil {
		product.TotalStock = *input.TotalStock
	}
}
