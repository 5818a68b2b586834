package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gokul-1737/mk-glass-dashboard/internal/views"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/db/models"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/enums"
)

type fakeSnapshot struct {
	products []models.Product
	sales    []models.Sale
	loads    int
}

func (f *fakeSnapshot) ListProducts(ctx context.Context) ([]models.Product, error) {
	f.loads++
	return f.products, nil
}

func (f *fakeSnapshot) LoadSalesSince(ctx context.Context, start time.Time) ([]models.Sale, error) {
	out := make([]models.Sale, 0, len(f.sales))
	for _, sale := range f.sales {
		if !sale.SaleDate.Before(start) {
			out = append(out, sale)
		}
	}
	return out, nil
}

type fakeViewCache struct {
	entries map[views.View]string
}

func newFakeViewCache() *fakeViewCache {
	return &fakeViewCache{entries: make(map[views.View]string)}
}

func (f *fakeViewCache) GetJSON(ctx context.Context, view views.View, dest any) (bool, error) {
	raw, ok := f.entries[view]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(raw), dest)
}

func (f *fakeViewCache) SetJSON(ctx context.Context, view views.View, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[view] = string(raw)
	return nil
}

func newAnalyticsTestService(t *testing.T, snapshot *fakeSnapshot, cache *fakeViewCache, now time.Time) *service {
	t.Helper()
	svc, err := NewService(snapshot, snapshot, cache, nil, time.UTC)
	require.NoError(t, err)
	typed := svc.(*service)
	typed.now = func() time.Time { return now }
	return typed
}

func TestServiceGetRowsReadThrough(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mouse := testProduct("Mouse", enums.ProductCategoryElectronics, "10.00", 100)
	snapshot := &fakeSnapshot{
		products: []models.Product{mouse},
		sales:    []models.Sale{testSale(mouse.ID, 2, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "20.00")},
	}
	cache := newFakeViewCache()
	svc := newAnalyticsTestService(t, snapshot, cache, now)
	ctx := context.Background()

	result, err := svc.GetRows(ctx)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, 2, result.Rows[0].TodaySales)
	assert.Equal(t, 1, snapshot.loads)
	assert.Contains(t, cache.entries, views.ViewSalesAnalytics)

	// second read is served from the cache even though the snapshot changed
	snapshot.products = nil
	again, err := svc.GetRows(ctx)
	require.NoError(t, err)
	require.Len(t, again.Rows, 1)
	assert.Equal(t, 1, snapshot.loads)

	// invalidation forces a recompute
	delete(cache.entries, views.ViewSalesAnalytics)
	fresh, err := svc.GetRows(ctx)
	require.NoError(t, err)
	assert.Empty(t, fresh.Rows)
	assert.Equal(t, 2, snapshot.loads)
}

func TestServiceGetCategoryRollup(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mouse := testProduct("Mouse", enums.ProductCategoryElectronics, "10.00", 100)
	shoes := testProduct("Shoes", enums.ProductCategoryFootwear, "50.00", 10)
	snapshot := &fakeSnapshot{
		products: []models.Product{mouse, shoes},
		sales: []models.Sale{
			testSale(mouse.ID, 2, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), "20.00"),
			testSale(shoes.ID, 1, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), "50.00"),
		},
	}
	svc := newAnalyticsTestService(t, snapshot, newFakeViewCache(), now)

	result, err := svc.GetCategoryRollup(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Categories, 2)
	assert.Equal(t, "electronics", result.Categories[0].Category)
	assert.Equal(t, 2, result.Categories[0].MonthlyUnits)
}

func TestServiceGetSummaryToleratesOrphans(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mouse := testProduct("Mouse", enums.ProductCategoryElectronics, "10.00", 100)
	snapshot := &fakeSnapshot{
		products: []models.Product{mouse},
		sales: []models.Sale{
			testSale(mouse.ID, 1, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "10.00"),
			testSale(uuid.New(), 2, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "30.00"),
		},
	}
	svc := newAnalyticsTestService(t, snapshot, newFakeViewCache(), now)

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalProducts)
	assert.Equal(t, 3, summary.Today.Units)
}

func TestServiceWarmPopulatesAllViews(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mouse := testProduct("Mouse", enums.ProductCategoryElectronics, "10.00", 100)
	snapshot := &fakeSnapshot{
		products: []models.Product{mouse},
		sales:    []models.Sale{testSale(mouse.ID, 2, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "20.00")},
	}
	cache := newFakeViewCache()
	svc := newAnalyticsTestService(t, snapshot, cache, now)

	require.NoError(t, svc.Warm(context.Background()))
	for _, view := range []views.View{views.ViewSalesAnalytics, views.ViewCategoryRollup, views.ViewDashboardSummary} {
		_, ok := cache.entries[view]
		assert.True(t, ok, "view %s not warmed", view)
	}

	loads := snapshot.loads
	_, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, loads, snapshot.loads)
}
