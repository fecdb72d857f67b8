package usecase

import (
	"context"

	"github.com/fekuna/omnipos-booth-service/internal/catalog"
	"github.com/fekuna/omnipos-booth-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-booth-service/internal/money"
	"github.com/fekuna/omnipos-booth-service/internal/pricing"
	"github.com/fekuna/omnipos-booth-service/internal/state"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
)

type catalogUseCase struct {
	store  state.Provider
	logger logger.ZapLogger
}

func NewCatalogUseCase(store state.Provider, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		store:  store,
		logger: log,
	}
}

func (uc *catalogUseCase) ListCatalog(ctx context.Context, filters *dto.CatalogFilters) ([]dto.CatalogItem, error) {
	snap := uc.store.Current()
	engine := snap.Pricing()

	items := make([]dto.CatalogItem, 0, len(snap.Products))
	for _, p := range snap.Products {
		if filters != nil && filters.Category != "" && p.Category != filters.Category {
			continue
		}
		current, _ := snap.Current(p.ID)
		if filters != nil && filters.InStockOnly && current <= 0 {
			continue
		}

		item := dto.CatalogItem{
			ProductID:       p.ID,
			Name:            p.Name,
			Category:        p.Category,
			UnitPrice:       p.SuggestedUnitPrice,
			UnitPriceLabel:  money.Format(p.SuggestedUnitPrice),
			HasPromotion:    engine.HasPromotion(p.ID),
			CurrentQuantity: current,
			InStock:         current > 0,
		}
		if label, ok := engine.BestPromotionLabel(p.ID); ok {
			item.PromotionLabel = label
		}
		items = append(items, item)
	}
	return items, nil
}

// Quote prices quantity units of productID. Unknown products and
// non-positive quantities quote at zero, the same as the engine prices them.
func (uc *catalogUseCase) Quote(ctx context.Context, productID int64, quantity int) (*pricing.Quote, error) {
	q := uc.store.Current().Pricing().Breakdown(productID, quantity)
	return &q, nil
}
