package expense

import (
	"context"

	"github.com/fekuna/omnipos-booth-service/internal/expense/dto"
	"github.com/fekuna/omnipos-booth-service/internal/model"
)

type UseCase interface {
	// RecordRestock appends a product purchase and raises its stock, both
	// or neither.
	RecordRestock(ctx context.Context, input *dto.RestockInput) (*model.ExpenseRecord, error)
	RecordMisc(ctx context.Context, input *dto.MiscInput) (*model.ExpenseRecord, error)
	ListExpenses(ctx context.Context) (*dto.ExpenseList, error)
}
