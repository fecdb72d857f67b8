// Package projection derives the booth's financial dashboard from a state
// snapshot and the wall clock. Nothing here is persisted; every read
// recomputes from the ledgers.
package projection

import (
	"math"
	"time"

	"github.com/fekuna/omnipos-booth-service/internal/inventory"
	invdto "github.com/fekuna/omnipos-booth-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-booth-service/internal/money"
	"github.com/fekuna/omnipos-booth-service/internal/state"
	"github.com/shopspring/decimal"
)

const RecentSalesLimit = 15

// minExpenseWindow floors the elapsed hours used to extrapolate expenses so
// a purchase made right after opening does not explode the projection.
const minExpenseWindow = 0.5

type Settings struct {
	StartHour      float64
	EndHour        float64
	PartnerCount   int
	GoalPerPartner decimal.Decimal
	Location       *time.Location
}

type RecentSale struct {
	SaleID     string          `json:"sale_id"`
	ProductID  int64           `json:"product_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	SoldAt     time.Time       `json:"sold_at"`
}

type Labels struct {
	Gross                  string `json:"gross"`
	CashBalance            string `json:"cash_balance"`
	PerPartnerShare        string `json:"per_partner_share"`
	ProjectedPerPartnerNet string `json:"projected_per_partner_net"`
}

type Dashboard struct {
	Day            string  `json:"day"`
	ElapsedHours   float64 `json:"elapsed_hours"`
	RemainingHours float64 `json:"remaining_hours"`
	EventClosed    bool    `json:"event_closed"`
	SalesCount     int     `json:"sales_count"`
	ItemsSold      int     `json:"items_sold"`

	Gross           decimal.Decimal `json:"gross"`
	Cost            decimal.Decimal `json:"cost"`
	Net             decimal.Decimal `json:"net"`
	ExpensesTotal   decimal.Decimal `json:"expenses_total"`
	CashBalance     decimal.Decimal `json:"cash_balance"`
	PerPartnerShare decimal.Decimal `json:"per_partner_share"`
	GoalPerPartner  decimal.Decimal `json:"goal_per_partner"`
	GoalPercent     float64         `json:"goal_percent"`

	RatePerHour            decimal.Decimal `json:"rate_per_hour"`
	ProjectedGross         decimal.Decimal `json:"projected_gross"`
	ProjectedExpense       decimal.Decimal `json:"projected_expense"`
	ProjectedPerPartnerNet decimal.Decimal `json:"projected_per_partner_net"`

	Labels      Labels                `json:"labels"`
	RecentSales []RecentSale          `json:"recent_sales"`
	Stock       *invdto.StockOverview `json:"stock"`
}

// Window returns elapsed and remaining event hours at now, clamped to the
// event window.
func (s Settings) Window(now time.Time) (elapsed, remaining float64) {
	now = now.In(s.location(now))
	hour := float64(now.Hour()) + float64(now.Minute())/60
	window := s.EndHour - s.StartHour
	elapsed = math.Min(math.Max(hour-s.StartHour, 0), window)
	return elapsed, window - elapsed
}

func (s Settings) location(now time.Time) *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return now.Location()
}

// Compute builds the dashboard for the calendar day of now in the event
// time zone. Sales and expenses from other days are ignored.
func Compute(snap *state.Snapshot, now time.Time, s Settings) *Dashboard {
	loc := s.location(now)
	now = now.In(loc)
	y, m, d := now.Date()
	today := func(t time.Time) bool {
		ty, tm, td := t.In(loc).Date()
		return ty == y && tm == m && td == d
	}

	elapsed, remaining := s.Window(now)
	dash := &Dashboard{
		Day:            now.Format("2006-01-02"),
		ElapsedHours:   elapsed,
		RemainingHours: remaining,
		EventClosed:    remaining <= 0,
		RecentSales:    []RecentSale{},
		Stock:          inventory.Overview(snap),
	}

	gross, cost := decimal.Zero, decimal.Zero
	for _, sale := range snap.Sales {
		if !today(sale.SoldAt) {
			continue
		}
		dash.SalesCount++
		dash.ItemsSold += sale.QuantitySold
		gross = gross.Add(sale.TotalPrice)

		p, ok := snap.Product(sale.ProductID)
		if ok {
			cost = cost.Add(p.UnitCost.Mul(decimal.NewFromInt(int64(sale.QuantitySold))))
		}
		if len(dash.RecentSales) < RecentSalesLimit {
			dash.RecentSales = append(dash.RecentSales, RecentSale{
				SaleID:     sale.ID,
				ProductID:  sale.ProductID,
				Name:       p.Name,
				Quantity:   sale.QuantitySold,
				TotalPrice: sale.TotalPrice,
				SoldAt:     sale.SoldAt,
			})
		}
	}

	var costs []decimal.Decimal
	for _, e := range snap.Expenses {
		if today(e.RecordedAt) {
			costs = append(costs, e.TotalCost)
		}
	}
	expenses := money.Sum(costs...)

	partners := decimal.NewFromInt(int64(max(s.PartnerCount, 1)))
	elapsedD := decimal.NewFromFloat(elapsed)
	remainingD := decimal.NewFromFloat(remaining)

	cash := gross.Sub(expenses)
	share := cash.Div(partners)

	rate := decimal.Zero
	if elapsed > 0 {
		rate = gross.Div(elapsedD)
	}
	projectedGross := gross.Add(rate.Mul(remainingD))
	expenseWindow := decimal.NewFromFloat(math.Max(elapsed, minExpenseWindow))
	projectedExpense := expenses.Add(expenses.Div(expenseWindow).Mul(remainingD))
	projectedShare := projectedGross.Sub(projectedExpense).Div(partners)

	dash.Gross = gross.Round(2)
	dash.Cost = cost.Round(2)
	dash.Net = gross.Sub(cost).Round(2)
	dash.ExpensesTotal = expenses.Round(2)
	dash.CashBalance = cash.Round(2)
	dash.PerPartnerShare = share.Round(2)
	dash.GoalPerPartner = s.GoalPerPartner
	dash.GoalPercent = goalPercent(share, s.GoalPerPartner)
	dash.RatePerHour = rate.Round(2)
	dash.ProjectedGross = projectedGross.Round(2)
	dash.ProjectedExpense = projectedExpense.Round(2)
	dash.ProjectedPerPartnerNet = projectedShare.Round(2)

	dash.Labels = Labels{
		Gross:                  money.Format(dash.Gross),
		CashBalance:            money.Format(dash.CashBalance),
		PerPartnerShare:        money.Format(dash.PerPartnerShare),
		ProjectedPerPartnerNet: money.Format(dash.ProjectedPerPartnerNet),
	}
	return dash
}

// goalPercent is share/goal as a percentage bounded to [0, 100]. A
// non-positive goal reads as 0.
func goalPercent(share, goal decimal.Decimal) float64 {
	if !goal.IsPositive() {
		return 0
	}
	pct := money.Clamp(share.Div(goal).Mul(decimal.NewFromInt(100)), decimal.Zero, decimal.NewFromInt(100))
	f, _ := pct.Round(2).Float64()
	return f
}
