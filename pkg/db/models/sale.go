package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale records a quantity of a product sold on a given calendar day.
// SalePrice is the revenue captured at recording time (unit price times
// quantity), so later price edits never rewrite history.
type Sale struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int             `gorm:"column:quantity;not null"`
	SaleDate  time.Time       `gorm:"column:sale_date;type:date;not null"`
	SalePrice decimal.Decimal `gorm:"column:sale_price;type:numeric(14,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
