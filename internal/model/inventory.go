package model

import "time"

type InventoryRecord struct {
	ProductID            int64 `db:"product_id" json:"product_id"`
	InitialTotalQuantity int   `db:"initial_total_quantity" json:"initial_total_quantity"`
	CurrentQuantity      int   `db:"current_quantity" json:"current_quantity"`
}

const (
	MovementSale       = "sale"
	MovementRestock    = "restock"
	MovementCorrection = "correction"
)

// InventoryMovement is the audit row written next to every stock mutation.
type InventoryMovement struct {
	ID             int64     `db:"id" json:"id"`
	ProductID      int64     `db:"product_id" json:"product_id"`
	MovementType   string    `db:"movement_type" json:"movement_type"`
	QuantityChange int       `db:"quantity_change" json:"quantity_change"`
	QuantityAfter  int       `db:"quantity_after" json:"quantity_after"`
	ReferenceID    *string   `db:"reference_id" json:"reference_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
