package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-booth-service/internal/command"
	"github.com/fekuna/omnipos-booth-service/internal/events"
	"github.com/fekuna/omnipos-booth-service/internal/expense"
	"github.com/fekuna/omnipos-booth-service/internal/expense/dto"
	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/internal/money"
	"github.com/fekuna/omnipos-booth-service/internal/state"
	"github.com/fekuna/omnipos-booth-service/pkg/errx"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type expenseUseCase struct {
	repo      expense.Repository
	stock     expense.StockWriter
	tx        expense.Transactor
	store     state.Provider
	publisher events.Publisher
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewExpenseUseCase(
	repo expense.Repository,
	stock expense.StockWriter,
	tx expense.Transactor,
	store state.Provider,
	publisher events.Publisher,
	log logger.ZapLogger,
) expense.UseCase {
	return &expenseUseCase{
		repo:      repo,
		stock:     stock,
		tx:        tx,
		store:     store,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *expenseUseCase) RecordRestock(ctx context.Context, input *dto.RestockInput) (*model.ExpenseRecord, error) {
	v, err := command.Validate(command.Command{
		Kind: command.KindRestock,
		Fields: map[string]string{
			command.FieldProductID: string(input.ProductID),
			command.FieldQuantity:  string(input.Quantity),
			command.FieldTotalCost: string(input.TotalCost),
			command.FieldLabel:     string(input.Label),
		},
	})
	if err != nil {
		return nil, errx.Validation(err)
	}

	p, ok := uc.store.Current().Product(*v.ProductID)
	if !ok {
		return nil, errx.NotFound(fmt.Errorf("product %d not in catalog", *v.ProductID), "product not found")
	}
	label := v.Label
	if label == "" {
		label = p.Name
	}

	rec := &model.ExpenseRecord{
		ID:         uuid.New().String(),
		ProductID:  v.ProductID,
		Label:      label,
		Quantity:   v.Quantity,
		TotalCost:  v.TotalCost,
		RecordedAt: uc.now(),
	}
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.repo.InsertExpense(ctx, rec); err != nil {
			return fmt.Errorf("insert expense: %w", err)
		}
		return uc.stock.Increment(ctx, *rec.ProductID, rec.Quantity, rec.ID)
	})
	if err != nil {
		uc.logger.Error("failed to record restock", zap.Int64("product_id", *rec.ProductID), zap.Error(err))
		return nil, errx.Persistence(err)
	}

	uc.logger.Info("restock recorded",
		zap.Int64("product_id", *rec.ProductID),
		zap.Int("quantity", rec.Quantity),
		zap.String("total_cost", rec.TotalCost.StringFixed(2)),
	)
	uc.afterWrite(ctx, rec)
	return rec, nil
}

func (uc *expenseUseCase) RecordMisc(ctx context.Context, input *dto.MiscInput) (*model.ExpenseRecord, error) {
	v, err := command.Validate(command.Command{
		Kind: command.KindMisc,
		Fields: map[string]string{
			command.FieldLabel:     string(input.Label),
			command.FieldTotalCost: string(input.TotalCost),
		},
	})
	if err != nil {
		return nil, errx.Validation(err)
	}

	rec := &model.ExpenseRecord{
		ID:         uuid.New().String(),
		Label:      v.Label,
		Quantity:   v.Quantity,
		TotalCost:  v.TotalCost,
		RecordedAt: uc.now(),
	}
	if err := uc.repo.InsertExpense(ctx, rec); err != nil {
		uc.logger.Error("failed to record expense", zap.String("label", rec.Label), zap.Error(err))
		return nil, errx.Persistence(err)
	}

	uc.logger.Info("expense recorded", zap.String("label", rec.Label), zap.String("total_cost", rec.TotalCost.StringFixed(2)))
	uc.afterWrite(ctx, rec)
	return rec, nil
}

func (uc *expenseUseCase) ListExpenses(ctx context.Context) (*dto.ExpenseList, error) {
	items := uc.store.Current().Expenses
	out := &dto.ExpenseList{Items: make([]model.ExpenseRecord, 0, len(items))}
	costs := make([]decimal.Decimal, 0, len(items))
	for _, e := range items {
		out.Items = append(out.Items, e)
		costs = append(costs, e.TotalCost)
	}
	out.Total = money.Sum(costs...)
	out.TotalLabel = money.Format(out.Total)
	return out, nil
}

func (uc *expenseUseCase) afterWrite(ctx context.Context, rec *model.ExpenseRecord) {
	if _, err := uc.store.Refresh(ctx); err != nil {
		uc.logger.Warn("state refresh after expense failed", zap.Error(err))
	}
	if err := uc.publisher.Publish(ctx, events.TypeExpenseRecorded, rec.ID, rec); err != nil {
		uc.logger.Warn("expense event not published", zap.Error(err))
	}
}
