package cart

import (
	"testing"

	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockMap map[int64]int

func (s stockMap) Current(id int64) (int, bool) {
	q, ok := s[id]
	return q, ok
}

func quantityOf(c *Cart, productID int64) int {
	for _, l := range c.Lines() {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

func TestIncrement_CapsAtCurrentStock(t *testing.T) {
	c := New()
	stock := stockMap{1: 2}

	assert.True(t, c.Increment(1, stock))
	assert.True(t, c.Increment(1, stock))
	assert.False(t, c.Increment(1, stock))
	assert.Equal(t, 2, quantityOf(c, 1))
}

func TestIncrement_UnknownStockIsNoop(t *testing.T) {
	c := New()
	assert.False(t, c.Increment(42, stockMap{}))
	assert.True(t, c.IsEmpty())
}

func TestIncrement_OutOfStockIsNoop(t *testing.T) {
	c := New()
	assert.False(t, c.Increment(1, stockMap{1: 0}))
	assert.True(t, c.IsEmpty())
}

func TestDecrement(t *testing.T) {
	c := New()
	stock := stockMap{1: 5}
	c.Increment(1, stock)
	c.Increment(1, stock)

	assert.True(t, c.Decrement(1))
	assert.Equal(t, 1, quantityOf(c, 1))

	assert.True(t, c.Decrement(1))
	assert.Equal(t, 0, quantityOf(c, 1))
	assert.Empty(t, c.Lines())

	assert.False(t, c.Decrement(1))
}

func TestTotalAndCount(t *testing.T) {
	engine := pricing.NewEngine(
		[]model.Product{
			{ID: 1, SuggestedUnitPrice: decimal.NewFromInt(7)},
			{ID: 2, SuggestedUnitPrice: decimal.NewFromInt(4)},
		},
		[]model.Promotion{{ID: 1, ProductID: 1, TriggerQuantity: 3, BundlePrice: decimal.NewFromInt(18)}},
	)
	stock := stockMap{1: 10, 2: 10}

	c := New()
	for i := 0; i < 4; i++ {
		c.Increment(1, stock)
	}
	c.Increment(2, stock)

	want := engine.Price(1, 4).Add(engine.Price(2, 1))
	assert.True(t, c.Total(engine).Equal(want))
	assert.True(t, c.Total(engine).Equal(decimal.NewFromInt(29)))
	assert.Equal(t, 5, c.Count())

	c.Decrement(1)
	assert.True(t, c.Total(engine).Equal(decimal.NewFromInt(22)))
}

func TestLinesSortedAndClear(t *testing.T) {
	c := New()
	stock := stockMap{3: 1, 1: 1, 2: 1}
	c.Increment(3, stock)
	c.Increment(1, stock)
	c.Increment(2, stock)

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{lines[0].ProductID, lines[1].ProductID, lines[2].ProductID})

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Count())
}
