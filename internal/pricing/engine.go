// Package pricing turns a product quantity into a price using the product's
// bundle schedule.
//
// Bundles are packed greedily: the promotion with the largest trigger
// quantity is applied as many times as it fits, then the next largest, and
// whatever is left is charged at the product's suggested unit price. Greedy
// packing is not always the cheapest combination for the buyer; it is the
// contract every recorded SaleRecord.TotalPrice was produced under, so any
// recorded price can be reproduced from the same schedule.
package pricing

import (
	"fmt"
	"sort"

	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/internal/money"
	"github.com/shopspring/decimal"
)

// Engine is immutable once built and safe for concurrent use.
type Engine struct {
	products  map[int64]model.Product
	schedules map[int64][]model.Promotion // descending trigger quantity
}

// AppliedBundle is one promotion used Times times in a quote.
type AppliedBundle struct {
	PromotionID     int64           `json:"promotion_id"`
	TriggerQuantity int             `json:"trigger_quantity"`
	BundlePrice     decimal.Decimal `json:"bundle_price"`
	Times           int             `json:"times"`
}

type Quote struct {
	ProductID     int64           `json:"product_id"`
	Quantity      int             `json:"quantity"`
	Bundles       []AppliedBundle `json:"bundles"`
	LeftoverUnits int             `json:"leftover_units"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
}

func NewEngine(products []model.Product, promotions []model.Promotion) *Engine {
	e := &Engine{
		products:  make(map[int64]model.Product, len(products)),
		schedules: make(map[int64][]model.Promotion),
	}
	for _, p := range products {
		e.products[p.ID] = p
	}
	for _, promo := range promotions {
		if promo.TriggerQuantity <= 0 {
			continue
		}
		e.schedules[promo.ProductID] = append(e.schedules[promo.ProductID], promo)
	}
	for id := range e.schedules {
		schedule := e.schedules[id]
		sort.SliceStable(schedule, func(i, j int) bool {
			if schedule[i].TriggerQuantity != schedule[j].TriggerQuantity {
				return schedule[i].TriggerQuantity > schedule[j].TriggerQuantity
			}
			return schedule[i].ID < schedule[j].ID
		})
	}
	return e
}

// Price returns the total for quantity units of productID. Unknown products
// and non-positive quantities price at zero.
func (e *Engine) Price(productID int64, quantity int) decimal.Decimal {
	return e.Breakdown(productID, quantity).Total
}

// Breakdown is Price with the bundles that produced it.
func (e *Engine) Breakdown(productID int64, quantity int) Quote {
	q := Quote{ProductID: productID, Quantity: quantity, Total: decimal.Zero}

	product, ok := e.products[productID]
	if !ok || quantity <= 0 {
		return q
	}
	q.UnitPrice = product.SuggestedUnitPrice

	remaining := quantity
	for _, promo := range e.schedules[productID] {
		times := remaining / promo.TriggerQuantity
		if times == 0 {
			continue
		}
		remaining -= times * promo.TriggerQuantity
		q.Total = q.Total.Add(promo.BundlePrice.Mul(decimal.NewFromInt(int64(times))))
		q.Bundles = append(q.Bundles, AppliedBundle{
			PromotionID:     promo.ID,
			TriggerQuantity: promo.TriggerQuantity,
			BundlePrice:     promo.BundlePrice,
			Times:           times,
		})
	}

	q.LeftoverUnits = remaining
	if remaining > 0 {
		q.Total = q.Total.Add(product.SuggestedUnitPrice.Mul(decimal.NewFromInt(int64(remaining))))
	}
	return q
}

func (e *Engine) HasPromotion(productID int64) bool {
	return len(e.schedules[productID]) > 0
}

// BestPromotionLabel describes the entry bundle of a product, the one with
// the smallest trigger quantity, e.g. "3un R$ 18,00".
func (e *Engine) BestPromotionLabel(productID int64) (string, bool) {
	schedule := e.schedules[productID]
	if len(schedule) == 0 {
		return "", false
	}
	entry := schedule[len(schedule)-1]
	for _, promo := range schedule {
		if promo.TriggerQuantity == entry.TriggerQuantity && promo.ID < entry.ID {
			entry = promo
		}
	}
	return fmt.Sprintf("%dun %s", entry.TriggerQuantity, money.Format(entry.BundlePrice)), true
}

func (e *Engine) Product(productID int64) (model.Product, bool) {
	p, ok := e.products[productID]
	return p, ok
}
