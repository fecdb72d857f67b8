package inventory

import (
	"context"

	"github.com/fekuna/omnipos-booth-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-booth-service/internal/model"
)

type UseCase interface {
	ListInventory(ctx context.Context) (*dto.StockOverview, error)
	CorrectStock(ctx context.Context, input *dto.CorrectStockInput) (*model.InventoryRecord, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
