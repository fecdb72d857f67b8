package projection

import (
	"testing"
	"time"

	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/internal/state"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func settings() Settings {
	return Settings{
		StartHour:      8,
		EndHour:        18.5,
		PartnerCount:   2,
		GoalPerPartner: d("4000"),
		Location:       brt,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 18, hour, minute, 0, 0, brt)
}

func snapshot(sales []model.SaleRecord, expenses []model.ExpenseRecord) *state.Snapshot {
	products := []model.Product{
		{ID: 1, Name: "Skol", UnitCost: d("3"), SuggestedUnitPrice: d("7")},
		{ID: 2, Name: "Water", UnitCost: d("1"), SuggestedUnitPrice: d("4")},
	}
	inventory := []model.InventoryRecord{
		{ProductID: 1, InitialTotalQuantity: 100, CurrentQuantity: 20},
		{ProductID: 2, InitialTotalQuantity: 50, CurrentQuantity: 0},
	}
	return state.NewSnapshot(1, time.Now(), products, inventory, sales, nil, expenses)
}

func TestWindow(t *testing.T) {
	s := settings()

	tests := []struct {
		name      string
		now       time.Time
		elapsed   float64
		remaining float64
	}{
		{"before opening", at(6, 30), 0, 10.5},
		{"at opening", at(8, 0), 0, 10.5},
		{"mid event", at(12, 30), 4.5, 6},
		{"at close", at(18, 30), 10.5, 0},
		{"after close", at(22, 0), 10.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elapsed, remaining := s.Window(tt.now)
			assert.InDelta(t, tt.elapsed, elapsed, 1e-9)
			assert.InDelta(t, tt.remaining, remaining, 1e-9)
		})
	}
}

func TestWindow_UsesEventTimeZone(t *testing.T) {
	// 13:00 UTC is 10:00 in Brazil.
	elapsed, _ := settings().Window(time.Date(2026, 10, 18, 13, 0, 0, 0, time.UTC))
	assert.InDelta(t, 2, elapsed, 1e-9)
}

func TestCompute_MidEventProjection(t *testing.T) {
	snap := snapshot(
		[]model.SaleRecord{
			{ID: "s2", ProductID: 1, QuantitySold: 10, TotalPrice: d("60"), SoldAt: at(9, 40)},
			{ID: "s1", ProductID: 2, QuantitySold: 10, TotalPrice: d("40"), SoldAt: at(8, 15)},
		},
		[]model.ExpenseRecord{
			{ID: "e1", Label: "Gelo/Diversos", Quantity: 1, TotalCost: d("20"), RecordedAt: at(8, 5)},
		},
	)

	dash := Compute(snap, at(10, 0), settings())

	assert.InDelta(t, 2, dash.ElapsedHours, 1e-9)
	assert.InDelta(t, 8.5, dash.RemainingHours, 1e-9)
	assert.False(t, dash.EventClosed)
	assert.Equal(t, 2, dash.SalesCount)
	assert.Equal(t, 20, dash.ItemsSold)

	assert.Equal(t, "100", dash.Gross.String())
	assert.Equal(t, "40", dash.Cost.String())
	assert.Equal(t, "60", dash.Net.String())
	assert.Equal(t, "20", dash.ExpensesTotal.String())
	assert.Equal(t, "80", dash.CashBalance.String())
	assert.Equal(t, "40", dash.PerPartnerShare.String())
	assert.InDelta(t, 1, dash.GoalPercent, 1e-9)

	assert.Equal(t, "50", dash.RatePerHour.String())
	assert.Equal(t, "525", dash.ProjectedGross.String())
	assert.Equal(t, "105", dash.ProjectedExpense.String())
	assert.Equal(t, "210", dash.ProjectedPerPartnerNet.String())

	assert.Equal(t, "R$ 100,00", dash.Labels.Gross)
	assert.Equal(t, "R$ 210,00", dash.Labels.ProjectedPerPartnerNet)

	require.Len(t, dash.RecentSales, 2)
	assert.Equal(t, "s2", dash.RecentSales[0].SaleID)
	assert.Equal(t, "Skol", dash.RecentSales[0].Name)
}

func TestCompute_BeforeOpening(t *testing.T) {
	snap := snapshot(
		[]model.SaleRecord{{ID: "s1", ProductID: 1, QuantitySold: 1, TotalPrice: d("7"), SoldAt: at(7, 50)}},
		[]model.ExpenseRecord{{ID: "e1", Label: "Gelo", Quantity: 1, TotalCost: d("10"), RecordedAt: at(7, 0)}},
	)

	dash := Compute(snap, at(7, 55), settings())

	assert.Zero(t, dash.ElapsedHours)
	assert.True(t, dash.RatePerHour.IsZero())
	assert.Equal(t, "7", dash.ProjectedGross.String())
	// 10 + 10/0.5 * 10.5
	assert.Equal(t, "220", dash.ProjectedExpense.String())
}

func TestCompute_AfterClose(t *testing.T) {
	snap := snapshot(
		[]model.SaleRecord{{ID: "s1", ProductID: 1, QuantitySold: 3, TotalPrice: d("21"), SoldAt: at(12, 0)}},
		nil,
	)

	dash := Compute(snap, at(20, 0), settings())

	assert.True(t, dash.EventClosed)
	assert.Zero(t, dash.RemainingHours)
	assert.Equal(t, "21", dash.ProjectedGross.String())
	assert.Equal(t, "2", dash.RatePerHour.String())
}

func TestCompute_GoalPercentBounds(t *testing.T) {
	t.Run("negative balance reads as zero", func(t *testing.T) {
		snap := snapshot(nil, []model.ExpenseRecord{
			{ID: "e1", Label: "Skol", Quantity: 10, TotalCost: d("300"), RecordedAt: at(8, 30)},
		})
		dash := Compute(snap, at(9, 0), settings())
		assert.Equal(t, "-150", dash.PerPartnerShare.String())
		assert.Zero(t, dash.GoalPercent)
	})

	t.Run("over the goal caps at 100", func(t *testing.T) {
		snap := snapshot([]model.SaleRecord{
			{ID: "s1", ProductID: 1, QuantitySold: 1, TotalPrice: d("9000"), SoldAt: at(9, 0)},
		}, nil)
		dash := Compute(snap, at(10, 0), settings())
		assert.InDelta(t, 100, dash.GoalPercent, 1e-9)
	})

	t.Run("non-positive goal", func(t *testing.T) {
		s := settings()
		s.GoalPerPartner = decimal.Zero
		snap := snapshot([]model.SaleRecord{
			{ID: "s1", ProductID: 1, QuantitySold: 1, TotalPrice: d("50"), SoldAt: at(9, 0)},
		}, nil)
		assert.Zero(t, Compute(snap, at(10, 0), s).GoalPercent)
	})
}

func TestCompute_OnlyCountsToday(t *testing.T) {
	yesterday := at(12, 0).AddDate(0, 0, -1)
	snap := snapshot(
		[]model.SaleRecord{
			{ID: "today", ProductID: 1, QuantitySold: 1, TotalPrice: d("7"), SoldAt: at(9, 0)},
			// 01:30 UTC on the 19th is still the 18th in Brazil.
			{ID: "late", ProductID: 1, QuantitySold: 1, TotalPrice: d("7"), SoldAt: time.Date(2026, 10, 19, 1, 30, 0, 0, time.UTC)},
			{ID: "old", ProductID: 1, QuantitySold: 5, TotalPrice: d("35"), SoldAt: yesterday},
		},
		[]model.ExpenseRecord{
			{ID: "old", Label: "Gelo", Quantity: 1, TotalCost: d("99"), RecordedAt: yesterday},
		},
	)

	dash := Compute(snap, at(10, 0), settings())

	assert.Equal(t, 2, dash.SalesCount)
	assert.Equal(t, "14", dash.Gross.String())
	assert.True(t, dash.ExpensesTotal.IsZero())
}

func TestCompute_RecentSalesLimit(t *testing.T) {
	var sales []model.SaleRecord
	for i := 0; i < 20; i++ {
		sales = append(sales, model.SaleRecord{ProductID: 1, QuantitySold: 1, TotalPrice: d("7"), SoldAt: at(17, 59-i)})
	}
	dash := Compute(snapshot(sales, nil), at(18, 0), settings())

	assert.Len(t, dash.RecentSales, RecentSalesLimit)
	assert.Equal(t, 20, dash.SalesCount)
}

func TestCompute_StockOverview(t *testing.T) {
	dash := Compute(snapshot(nil, nil), at(10, 0), settings())

	require.NotNil(t, dash.Stock)
	assert.Len(t, dash.Stock.Items, 2)
}

func TestCompute_EmptySnapshot(t *testing.T) {
	dash := Compute(state.Empty(), at(10, 0), settings())

	assert.True(t, dash.Gross.IsZero())
	assert.True(t, dash.ProjectedPerPartnerNet.IsZero())
	assert.Empty(t, dash.RecentSales)
}
