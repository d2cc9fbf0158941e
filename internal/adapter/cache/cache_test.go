package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-planner/internal/domain"
)

func samplePlan() *domain.MonthlyPlan {
	v0, v1 := 100.0, 107.0
	stockID := uuid.MustParse("00000000-0000-0000-0000-000000000102")
	return &domain.MonthlyPlan{
		TotalMonths: 2,
		StockInvestments: []domain.StockPlan{{
			Asset:          domain.Asset{ID: stockID, AssetKind: domain.InstrumentKindStock, Name: "Index Fund"},
			TotalValues:    domain.Series{&v0, &v1},
			TaxedValues:    domain.Series{nil, &v1},
			InvestedValues: []float64{0, 5},
		}},
		StockSellOffs: map[uuid.UUID][]float64{stockID: {0, 0}},
		NetWorth:      []float64{100, 107},
		NetWorthTaxed: []float64{100, 107},
	}
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	got, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	plan := samplePlan()
	require.NoError(t, c.Set(ctx, "key", plan))

	got, err = c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Same(t, plan, got)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := NewMemoryCache(10 * time.Minute)
	c.now = func() time.Time { return now }
	require.NoError(t, c.Set(ctx, "key", samplePlan()))

	now = now.Add(9 * time.Minute)
	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.NotNil(t, got)

	now = now.Add(time.Minute)
	got, err = c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_SetSweepsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := NewMemoryCache(10 * time.Minute)
	c.now = func() time.Time { return now }
	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, key, samplePlan()))
	}
	assert.Equal(t, 3, c.Len())

	now = now.Add(10 * time.Minute)
	require.NoError(t, c.Set(ctx, "d", samplePlan()))
	assert.Equal(t, 1, c.Len(), "entries never read again are still released")

	got, err := c.Get(ctx, "d")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestMemoryCache_EvictsOldestWhenFull(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := NewMemoryCacheWithLimit(0, 2)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "first", samplePlan()))
	now = now.Add(time.Second)
	require.NoError(t, c.Set(ctx, "second", samplePlan()))
	now = now.Add(time.Second)
	require.NoError(t, c.Set(ctx, "third", samplePlan()))

	assert.Equal(t, 2, c.Len())
	got, err := c.Get(ctx, "first")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Replacing an existing key does not evict
	require.NoError(t, c.Set(ctx, "third", samplePlan()))
	assert.Equal(t, 2, c.Len())
	got, err = c.Get(ctx, "second")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestPlanCodec(t *testing.T) {
	plan := samplePlan()

	data, err := encodePlan(plan)
	require.NoError(t, err)
	assert.Contains(t, string(data), "null", "undefined months are encoded as null")

	decoded, err := decodePlan(data)
	require.NoError(t, err)
	assert.Equal(t, plan, decoded)

	_, err = encodePlan(nil)
	assert.Error(t, err)

	_, err = decodePlan([]byte("{"))
	assert.ErrorContains(t, err, "decode plan")
}

func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCacheWithClient(client, time.Minute)
	defer c.Close()

	ctx := context.Background()

	_, err := c.Get(ctx, "key")
	assert.ErrorContains(t, err, "redis get")

	err = c.Set(ctx, "key", samplePlan())
	assert.ErrorContains(t, err, "redis set")

	assert.Error(t, c.Ping(ctx))
}
