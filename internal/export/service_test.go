package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gokul-1737/mk-glass-dashboard/internal/analytics"
	"github.com/Gokul-1737/mk-glass-dashboard/internal/sales"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/enums"
	pkgerrors "github.com/Gokul-1737/mk-glass-dashboard/pkg/errors"
)

type fakeAnalytics struct {
	rows []analytics.Row
}

func (f *fakeAnalytics) GetRows(ctx context.Context) (*analytics.RowListResult, error) {
	return &analytics.RowListResult{Rows: f.rows}, nil
}

type fakeSalesExporter struct {
	onDay   []sales.SaleDTO
	since   []sales.SaleDTO
	lastDay time.Time
	start   time.Time
}

func (f *fakeSalesExporter) ExportSalesOn(ctx context.Context, day time.Time) ([]sales.SaleDTO, error) {
	f.lastDay = day
	return f.onDay, nil
}

func (f *fakeSalesExporter) ExportSalesSince(ctx context.Context, start time.Time) ([]sales.SaleDTO, error) {
	f.start = start
	return f.since, nil
}

type fakeCounter struct {
	datasets []string
}

func (f *fakeCounter) IncExport(dataset string) {
	f.datasets = append(f.datasets, dataset)
}

func newExportTestService(t *testing.T, analyticsSvc analyticsReader, salesRepo salesExporter, counter exportCounter, now time.Time) *service {
	t.Helper()
	svc, err := NewService(analyticsSvc, salesRepo, counter, nil, time.UTC)
	require.NoError(t, err)
	typed := svc.(*service)
	typed.now = func() time.Time { return now }
	return typed
}

func TestServiceExportAnalytics(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rows := []analytics.Row{{
		Name:           "Wireless Mouse",
		Category:       "electronics",
		Price:          decimal.RequireFromString("25.50"),
		TotalStock:     40,
		TodaySales:     2,
		MonthlySales:   5,
		YearlySales:    6,
		RemainingStock: 35,
	}}
	counter := &fakeCounter{}
	svc := newExportTestService(t, &fakeAnalytics{rows: rows}, &fakeSalesExporter{}, counter, now)

	result, err := svc.Export(context.Background(), enums.ExportDatasetProductsAnalytics)
	require.NoError(t, err)
	assert.Equal(t, "products_analytics_2026-03-10.csv", result.Filename)
	assert.Equal(t, 1, result.RowCount)
	assert.Contains(t, string(result.Payload), "Wireless Mouse,electronics,25.50,40,2,5,6,35")
	assert.Equal(t, []string{"products_analytics"}, counter.datasets)
}

func TestServiceExportPeriodWindows(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	exporter := &fakeSalesExporter{
		onDay: []sales.SaleDTO{{
			ProductName: "Novel",
			Category:    "books",
			Quantity:    1,
			SaleDate:    "2026-03-10",
			SalePrice:   decimal.RequireFromString("12.00"),
		}},
	}
	svc := newExportTestService(t, &fakeAnalytics{}, exporter, nil, now)
	ctx := context.Background()

	today, err := svc.Export(ctx, enums.ExportDatasetTodaySales)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), exporter.lastDay)
	lines := strings.Split(strings.TrimRight(string(today.Payload), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Novel,books,1,2026-03-10,12.00", lines[1])

	_, err = svc.Export(ctx, enums.ExportDatasetMonthlySales)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), exporter.start)

	_, err = svc.Export(ctx, enums.ExportDatasetYearlySales)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), exporter.start)
}

func TestServiceExportEmptyDataset(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	counter := &fakeCounter{}
	svc := newExportTestService(t, &fakeAnalytics{}, &fakeSalesExporter{}, counter, now)

	result, err := svc.Export(context.Background(), enums.ExportDatasetMonthlySales)
	require.NoError(t, err)
	assert.True(t, result.Empty)
	assert.Equal(t, 0, result.RowCount)
	assert.Equal(t, "product_name,category,quantity,sale_date,sale_price\n", string(result.Payload))
	assert.Len(t, counter.datasets, 1)
}

func TestServiceExportUnknownDataset(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newExportTestService(t, &fakeAnalytics{}, &fakeSalesExporter{}, nil, now)

	_, err := svc.Export(context.Background(), "inventory")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
