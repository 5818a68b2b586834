package product

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Gokul-1737/mk-glass-dashboard/pkg/db/models"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/enums"
)

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, name string, category enums.ProductCategory, price string, stock int) *models.Product {
	t.Helper()
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("parse price %q: %v", price, err)
	}
	product := &models.Product{
		ID:         uuid.New(),
		Name:       name,
		Category:   category,
		Price:      parsed,
		TotalStock: stock,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func ptr[T any](v T) *T {
	return &v
}
