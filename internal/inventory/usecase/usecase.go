package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/fekuna/omnipos-booth-service/internal/command"
	"github.com/fekuna/omnipos-booth-service/internal/events"
	"github.com/fekuna/omnipos-booth-service/internal/inventory"
	"github.com/fekuna/omnipos-booth-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/internal/state"
	"github.com/fekuna/omnipos-booth-service/pkg/errx"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"go.uber.org/zap"
)

const defaultMovementPageSize = 50

type inventoryUseCase struct {
	repo      inventory.Repository
	store     state.Provider
	publisher events.Publisher
	logger    logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, store state.Provider, publisher events.Publisher, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:      repo,
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *inventoryUseCase) ListInventory(ctx context.Context) (*dto.StockOverview, error) {
	return inventory.Overview(uc.store.Current()), nil
}

func (uc *inventoryUseCase) CorrectStock(ctx context.Context, input *dto.CorrectStockInput) (*model.InventoryRecord, error) {
	v, err := command.Validate(command.Command{
		Kind: command.KindCorrection,
		Fields: map[string]string{
			command.FieldProductID: string(input.ProductID),
			command.FieldCurrent:   string(input.CurrentQuantity),
			command.FieldInitial:   string(input.InitialQuantity),
		},
	})
	if err != nil {
		return nil, errx.Validation(err)
	}

	prev, err := uc.repo.GetByProduct(ctx, *v.ProductID)
	if err != nil {
		uc.logger.Error("failed to load inventory record", zap.Int64("product_id", *v.ProductID), zap.Error(err))
		return nil, errx.Persistence(err)
	}
	if prev == nil {
		return nil, errx.NotFound(inventory.ErrNotFound, "product has no inventory record")
	}

	inv, err := uc.repo.Correct(ctx, *v.ProductID, v.NewCurrent, v.NewInitial)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, errx.NotFound(err, "product has no inventory record")
		}
		uc.logger.Error("failed to correct stock", zap.Int64("product_id", *v.ProductID), zap.Error(err))
		return nil, errx.Persistence(err)
	}

	uc.logger.Info("stock corrected",
		zap.Int64("product_id", inv.ProductID),
		zap.Int("previous_quantity", prev.CurrentQuantity),
		zap.Int("current_quantity", inv.CurrentQuantity),
		zap.Int("initial_total_quantity", inv.InitialTotalQuantity),
	)
	uc.refresh(ctx)
	if err := uc.publisher.Publish(ctx, events.TypeStockCorrected, strconv.FormatInt(inv.ProductID, 10), inv); err != nil {
		uc.logger.Warn("stock correction event not published", zap.Error(err))
	}
	return inv, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	if filters.PageSize <= 0 {
		filters.PageSize = defaultMovementPageSize
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	switch filters.MovementType {
	case "", model.MovementSale, model.MovementRestock, model.MovementCorrection:
	default:
		return nil, 0, errx.Validation(&command.ValidationError{
			Field:   "movement_type",
			Message: "unknown movement type " + strconv.Quote(filters.MovementType),
		})
	}
	return uc.repo.ListMovements(ctx, filters)
}

// refresh reloads the snapshot after a write. A failed refresh is not the
// caller's failure; the next poll picks the change up.
func (uc *inventoryUseCase) refresh(ctx context.Context) {
	if _, err := uc.store.Refresh(ctx); err != nil {
		uc.logger.Warn("state refresh after stock correction failed", zap.Error(err))
	}
}
