package views

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore struct {
	data map[string]string
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string]string)}
}

func (m *mapStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.data[key] = value.(string)
	return nil
}

func (m *mapStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *mapStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mapStore) ViewKey(view string) string {
	return "view:" + view
}

type payload struct {
	Count int `json:"count"`
}

func TestCacheRoundTrip(t *testing.T) {
	store := newMapStore()
	cache, err := NewCache(store, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()

	var out payload
	hit, err := cache.GetJSON(ctx, ViewDashboardSummary, &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.SetJSON(ctx, ViewDashboardSummary, payload{Count: 3}))

	hit, err = cache.GetJSON(ctx, ViewDashboardSummary, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 3, out.Count)
}

func TestInvalidateForDropsDependentViews(t *testing.T) {
	store := newMapStore()
	cache, err := NewCache(store, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()
	for _, view := range []View{ViewProducts, ViewSalesAnalytics, ViewCategoryRollup, ViewDashboardSummary} {
		require.NoError(t, cache.SetJSON(ctx, view, payload{Count: 1}))
	}

	require.NoError(t, cache.InvalidateFor(ctx, MutationSaleWrite))

	var out payload
	hit, err := cache.GetJSON(ctx, ViewProducts, &out)
	require.NoError(t, err)
	assert.True(t, hit, "sale writes must not stale the products view")

	for _, view := range Dependents(MutationSaleWrite) {
		hit, err := cache.GetJSON(ctx, view, &out)
		require.NoError(t, err)
		assert.False(t, hit, "expected %s to be invalidated", view)
	}
}

func TestProductWriteStalesEverything(t *testing.T) {
	deps := Dependents(MutationProductWrite)
	assert.Len(t, deps, 4)
	assert.Contains(t, deps, ViewProducts)
	assert.Contains(t, deps, ViewSalesAnalytics)
}
