package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gokul-1737/mk-glass-dashboard/pkg/enums"
)

// Product represents a catalog listing managed through the dashboard.
type Product struct {
	ID         uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string                `gorm:"column:name;not null"`
	Category   enums.ProductCategory `gorm:"column:category;type:category;not null"`
	Price      decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	TotalStock int                   `gorm:"column:total_stock;not null;default:0"`
	Sales      []Sale                `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
