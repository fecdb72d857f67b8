package dto

import "github.com/shopspring/decimal"

type CatalogFilters struct {
	Category    string
	InStockOnly bool
}

// CatalogItem is one tile on the sales screen.
type CatalogItem struct {
	ProductID       int64           `json:"product_id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	UnitPriceLabel  string          `json:"unit_price_label"`
	HasPromotion    bool            `json:"has_promotion"`
	PromotionLabel  string          `json:"promotion_label,omitempty"`
	CurrentQuantity int             `json:"current_quantity"`
	InStock         bool            `json:"in_stock"`
}
