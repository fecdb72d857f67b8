// Package money holds the decimal helpers shared by pricing and projections.
package money

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Format renders an amount the way the booth displays it: R$ 1.234,50.
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return "R$ " + humanize.FormatFloat("#.###,##", f)
}

// Sum adds up amounts; the zero value for an empty slice.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Clamp bounds d to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}
