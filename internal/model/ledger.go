package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is append-only. TotalPrice is the pricing engine's output for
// QuantitySold, not a unit price product.
type SaleRecord struct {
	ID           string          `db:"id" json:"id"`
	ProductID    int64           `db:"product_id" json:"product_id"`
	QuantitySold int             `db:"quantity_sold" json:"quantity_sold"`
	TotalPrice   decimal.Decimal `db:"total_price" json:"total_price"`
	SoldAt       time.Time       `db:"sold_at" json:"sold_at"`
}

// ExpenseRecord is append-only. A nil ProductID marks a non-product cost
// such as ice or cups.
type ExpenseRecord struct {
	ID         string          `db:"id" json:"id"`
	ProductID  *int64          `db:"product_id" json:"product_id"`
	Label      string          `db:"label" json:"label"`
	Quantity   int             `db:"quantity" json:"quantity"`
	TotalCost  decimal.Decimal `db:"total_cost" json:"total_cost"`
	RecordedAt time.Time       `db:"recorded_at" json:"recorded_at"`
}

// CartLine is an uncommitted selection held by a terminal session.
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
