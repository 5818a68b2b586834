package enums

import "fmt"

// ExportDataset identifies a downloadable CSV dataset.
type ExportDataset string

const (
	ExportDatasetProductsAnalytics ExportDataset = "products_analytics"
	ExportDatasetTodaySales        ExportDataset = "today_sales"
	ExportDatasetMonthlySales      ExportDataset = "monthly_sales"
	ExportDatasetYearlySales       ExportDataset = "yearly_sales"
)

var validExportDatasets = []ExportDataset{
	ExportDatasetProductsAnalytics,
	ExportDatasetTodaySales,
	ExportDatasetMonthlySales,
	ExportDatasetYearlySales,
}

// String implements fmt.Stringer.
func (d ExportDataset) String() string {
	return string(d)
}

// IsValid reports whether the value is a known ExportDataset.
func (d ExportDataset) IsValid() bool {
	for _, candidate := range validExportDatasets {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseExportDataset converts raw input into an ExportDataset.
func ParseExportDataset(value string) (ExportDataset, error) {
	for _, candidate := range validExportDatasets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid export dataset %q", value)
}
