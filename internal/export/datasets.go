package export

import (
	"strconv"

	"github.com/Gokul-1737/mk-glass-dashboard/internal/analytics"
	"github.com/Gokul-1737/mk-glass-dashboard/internal/sales"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/enums"
)

// buildAnalyticsDocument lays out the per-product analytics rows for export.
func buildAnalyticsDocument(rows []analytics.Row) Document {
	doc := Document{
		Dataset: enums.ExportDatasetProductsAnalytics,
		Columns: []string{
			"name", "category", "price", "total_stock",
			"today_sales", "monthly_sales", "yearly_sales", "remaining_stock",
		},
	}
	for _, row := range rows {
		doc.Rows = append(doc.Rows, []string{
			row.Name,
			row.Category,
			row.Price.StringFixed(2),
			strconv.Itoa(row.TotalStock),
			strconv.Itoa(row.TodaySales),
			strconv.Itoa(row.MonthlySales),
			strconv.Itoa(row.YearlySales),
			strconv.Itoa(row.RemainingStock),
		})
	}
	return doc
}

// buildSalesDocument lays out a period sales listing for export.
func buildSalesDocument(dataset enums.ExportDataset, records []sales.SaleDTO) Document {
	doc := Document{
		Dataset: dataset,
		Columns: []string{"product_name", "category", "quantity", "sale_date", "sale_price"},
	}
	for _, record := range records {
		doc.Rows = append(doc.Rows, []string{
			record.ProductName,
			record.Category,
			strconv.Itoa(record.Quantity),
			record.SaleDate,
			record.SalePrice.StringFixed(2),
		})
	}
	return doc
}
