package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleDTO represents a recorded sale joined with its product.
type SaleDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	SaleDate    string          `json:"sale_date"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SaleListResult wraps a page of sales plus the cursor for the next page.
type SaleListResult struct {
	Sales      []SaleDTO `json:"sales"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

func (r saleRecord) toDTO() SaleDTO {
	return SaleDTO{
		ID:          r.ID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Category:    r.Category,
		Quantity:    r.Quantity,
		SaleDate:    r.SaleDate.UTC().Format("2006-01-02"),
		SalePrice:   r.SalePrice,
		CreatedAt:   r.CreatedAt,
	}
}
