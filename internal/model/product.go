package model

import "github.com/shopspring/decimal"

type Product struct {
	ID                 int64           `db:"id" json:"id"`
	Name               string          `db:"name" json:"name"`
	Category           string          `db:"category" json:"category"`
	UnitCost           decimal.Decimal `db:"unit_cost" json:"unit_cost"`
	SuggestedUnitPrice decimal.Decimal `db:"suggested_unit_price" json:"suggested_unit_price"`
	UnitsPerPack       int             `db:"units_per_pack" json:"units_per_pack"`
}

// Promotion prices TriggerQuantity units of a product at BundlePrice.
type Promotion struct {
	ID              int64           `db:"id" json:"id"`
	ProductID       int64           `db:"product_id" json:"product_id"`
	TriggerQuantity int             `db:"trigger_quantity" json:"trigger_quantity"`
	BundlePrice     decimal.Decimal `db:"bundle_price" json:"bundle_price"`
}
