package sales

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Gokul-1737/mk-glass-dashboard/pkg/db/models"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/enums"
)

func setupSalesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  price NUMERIC NOT NULL,
  total_stock INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	sales := `
CREATE TABLE IF NOT EXISTS sales (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  sale_date DATETIME NOT NULL,
  sale_price NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(sales).Error)
	return db
}

func mustCreateProduct(t *testing.T, tx *gorm.DB, name string, category enums.ProductCategory, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		Name:       name,
		Category:   category,
		Price:      decimal.RequireFromString(price),
		TotalStock: stock,
	}
	require.NoError(t, tx.Create(product).Error)
	return product
}

func mustCreateSale(t *testing.T, tx *gorm.DB, productID uuid.UUID, qty int, day time.Time, price string, createdAt time.Time) *models.Sale {
	t.Helper()
	sale := &models.Sale{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  qty,
		SaleDate:  day,
		SalePrice: decimal.RequireFromString(price),
		CreatedAt: createdAt,
	}
	require.NoError(t, tx.Create(sale).Error)
	return sale
}
