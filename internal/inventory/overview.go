package inventory

import (
	"github.com/fekuna/omnipos-booth-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-booth-service/internal/state"
)

// LowStockPercent is the fill level at or below which a product is flagged.
const LowStockPercent = 25.0

// Overview summarises stock levels per catalog product.
func Overview(snap *state.Snapshot) *dto.StockOverview {
	out := &dto.StockOverview{Items: make([]dto.StockLevel, 0, len(snap.Products))}

	for _, inv := range snap.Inventory {
		out.TotalCurrent += inv.CurrentQuantity
		out.TotalInitial += inv.InitialTotalQuantity
	}

	for _, p := range snap.Products {
		inv, _ := snap.InventoryFor(p.ID)
		level := dto.StockLevel{
			ProductID:            p.ID,
			Name:                 p.Name,
			CurrentQuantity:      inv.CurrentQuantity,
			InitialTotalQuantity: inv.InitialTotalQuantity,
		}
		switch {
		case inv.InitialTotalQuantity > 0:
			level.FillPercent = float64(inv.CurrentQuantity) / float64(inv.InitialTotalQuantity) * 100
		case inv.CurrentQuantity > 0:
			level.FillPercent = 100
		}
		level.OutOfStock = inv.CurrentQuantity <= 0
		level.Low = !level.OutOfStock && level.FillPercent <= LowStockPercent
		out.Items = append(out.Items, level)
	}
	return out
}
