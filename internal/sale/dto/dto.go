package dto

import "github.com/shopspring/decimal"

type CartLineView struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	LinePrice decimal.Decimal `json:"line_price"`
}

// CartView is a session's cart priced against the current snapshot.
type CartView struct {
	SessionID  string          `json:"session_id"`
	Lines      []CartLineView  `json:"lines"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	TotalLabel string          `json:"total_label"`
	Committing bool            `json:"committing"`
	// Changed is false when an add or remove was a no-op.
	Changed bool `json:"changed"`
}

type LineResult struct {
	SaleID     string          `json:"sale_id"`
	ProductID  int64           `json:"product_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type CheckoutResult struct {
	Source     string          `json:"source"`
	Lines      []LineResult    `json:"lines"`
	ItemCount  int             `json:"item_count"`
	Total      decimal.Decimal `json:"total"`
	TotalLabel string          `json:"total_label"`
}
