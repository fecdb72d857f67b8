package expense

import (
	"context"

	"github.com/fekuna/omnipos-booth-service/internal/model"
)

// Repository is the append-only expense ledger.
type Repository interface {
	InsertExpense(ctx context.Context, e *model.ExpenseRecord) error
	// ListExpenses returns every expense, newest first.
	ListExpenses(ctx context.Context) ([]model.ExpenseRecord, error)
}

// StockWriter raises stock when a restock is recorded.
type StockWriter interface {
	Increment(ctx context.Context, productID int64, by int, referenceID string) error
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
