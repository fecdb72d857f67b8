package sale

import (
	"context"

	"github.com/fekuna/omnipos-booth-service/internal/model"
)

// Repository is the append-only sales ledger.
type Repository interface {
	InsertSale(ctx context.Context, sale *model.SaleRecord) error
	// ListSales returns every sale, newest first.
	ListSales(ctx context.Context) ([]model.SaleRecord, error)
	ListRecent(ctx context.Context, limit int) ([]model.SaleRecord, error)
}

// StockWriter lowers on-hand stock as lines are sold.
type StockWriter interface {
	Decrement(ctx context.Context, productID int64, by int, referenceID string) error
}

// Transactor runs fn in one storage transaction; repositories pick it up
// from ctx.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
