package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gokul-1737/mk-glass-dashboard/pkg/db/models"
)

// Row is the per-product analytics view: the product joined with its period
// sale counts. RemainingStock may go negative when a month outsells the
// recorded stock; it is reported as-is, never clamped.
type Row struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Price          decimal.Decimal `json:"price"`
	TotalStock     int             `json:"total_stock"`
	TodaySales     int             `json:"today_sales"`
	MonthlySales   int             `json:"monthly_sales"`
	YearlySales    int             `json:"yearly_sales"`
	RemainingStock int             `json:"remaining_stock"`
	TodayRevenue   decimal.Decimal `json:"today_revenue"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
	YearlyRevenue  decimal.Decimal `json:"yearly_revenue"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func newRow(product models.Product) Row {
	return Row{
		ID:             product.ID,
		Name:           product.Name,
		Category:       string(product.Category),
		Price:          product.Price,
		TotalStock:     product.TotalStock,
		TodayRevenue:   decimal.Zero,
		MonthlyRevenue: decimal.Zero,
		YearlyRevenue:  decimal.Zero,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

// RowListResult wraps the per-product rows for the API envelope.
type RowListResult struct {
	Rows []Row `json:"rows"`
}

// RollupResult wraps the category rollup for the API envelope.
type RollupResult struct {
	Categories []CategoryRollup `json:"categories"`
}
