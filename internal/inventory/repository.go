package inventory

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-booth-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-booth-service/internal/model"
)

var (
	ErrNotFound          = errors.New("inventory record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository is the inventory ledger. Every mutation also writes an
// inventory movement row in the same statement.
type Repository interface {
	ListInventory(ctx context.Context) ([]model.InventoryRecord, error)
	GetByProduct(ctx context.Context, productID int64) (*model.InventoryRecord, error)

	// Decrement lowers current_quantity by `by`, failing with
	// ErrInsufficientStock rather than going below zero.
	Decrement(ctx context.Context, productID int64, by int, referenceID string) error
	// Increment raises both current and initial quantities; replenishment
	// moves the baseline. A missing record is created.
	Increment(ctx context.Context, productID int64, by int, referenceID string) error
	// Correct overwrites both counts with operator values.
	Correct(ctx context.Context, productID int64, current, initial int) (*model.InventoryRecord, error)

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
