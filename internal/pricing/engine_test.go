package pricing

import (
	"testing"

	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func beerEngine() *Engine {
	products := []model.Product{
		{ID: 1, Name: "Skol", SuggestedUnitPrice: d("7"), UnitCost: d("3.2")},
		{ID: 2, Name: "Water", SuggestedUnitPrice: d("4"), UnitCost: d("1")},
	}
	promotions := []model.Promotion{
		{ID: 10, ProductID: 1, TriggerQuantity: 3, BundlePrice: d("18")},
		{ID: 11, ProductID: 1, TriggerQuantity: 6, BundlePrice: d("30")},
	}
	return NewEngine(products, promotions)
}

func TestPrice_GreedyPacking(t *testing.T) {
	e := beerEngine()

	tests := []struct {
		qty  int
		want string
	}{
		{0, "0"},
		{1, "7"},
		{2, "14"},
		{3, "18"},
		{5, "32"},  // one 3-bundle + 2 units
		{6, "30"},  // one 6-bundle
		{7, "37"},  // one 6-bundle + 1 unit
		{9, "48"},  // 6-bundle + 3-bundle
		{12, "60"}, // the 6-bundle repeats before the 3-bundle is tried
		{14, "74"}, // 2x6 + 2 units
	}
	for _, tt := range tests {
		got := e.Price(1, tt.qty)
		assert.Truef(t, got.Equal(d(tt.want)), "price(1,%d) = %s, want %s", tt.qty, got, tt.want)
	}
}

func TestPrice_NoPromotionsUsesUnitPrice(t *testing.T) {
	e := beerEngine()
	assert.True(t, e.Price(2, 5).Equal(d("20")))
}

func TestPrice_UnknownProductAndNonPositiveQuantity(t *testing.T) {
	e := beerEngine()
	assert.True(t, e.Price(99, 5).IsZero())
	assert.True(t, e.Price(1, 0).IsZero())
	assert.True(t, e.Price(1, -3).IsZero())
}

func TestPrice_Deterministic(t *testing.T) {
	e := beerEngine()
	for q := 0; q <= 40; q++ {
		assert.True(t, e.Price(1, q).Equal(e.Price(1, q)))
	}
}

func TestPrice_MonotoneWhenBundlesNeverUndercutSmallerQuantities(t *testing.T) {
	// A bundle never costs less than one unit fewer at list price.
	e := NewEngine(
		[]model.Product{{ID: 1, SuggestedUnitPrice: d("7")}},
		[]model.Promotion{{ID: 1, ProductID: 1, TriggerQuantity: 3, BundlePrice: d("20")}},
	)
	prev := decimal.Zero
	for q := 0; q <= 50; q++ {
		p := e.Price(1, q)
		assert.Truef(t, p.GreaterThanOrEqual(prev), "price dropped at q=%d", q)
		prev = p
	}
}

func TestPrice_IgnoresInvalidTrigger(t *testing.T) {
	e := NewEngine(
		[]model.Product{{ID: 1, SuggestedUnitPrice: d("5")}},
		[]model.Promotion{{ID: 1, ProductID: 1, TriggerQuantity: 0, BundlePrice: d("1")}},
	)
	assert.True(t, e.Price(1, 3).Equal(d("15")))
	assert.False(t, e.HasPromotion(1))
}

func TestBreakdown(t *testing.T) {
	q := beerEngine().Breakdown(1, 10)

	require.Len(t, q.Bundles, 2)
	assert.Equal(t, 6, q.Bundles[0].TriggerQuantity)
	assert.Equal(t, 1, q.Bundles[0].Times)
	assert.Equal(t, 3, q.Bundles[1].TriggerQuantity)
	assert.Equal(t, 1, q.Bundles[1].Times)
	assert.Equal(t, 1, q.LeftoverUnits)
	assert.True(t, q.Total.Equal(d("55")))
}

func TestHasPromotionAndLabel(t *testing.T) {
	e := beerEngine()

	assert.True(t, e.HasPromotion(1))
	assert.False(t, e.HasPromotion(2))

	label, ok := e.BestPromotionLabel(1)
	require.True(t, ok)
	assert.Equal(t, "3un R$ 18,00", label)

	_, ok = e.BestPromotionLabel(2)
	assert.False(t, ok)
}
