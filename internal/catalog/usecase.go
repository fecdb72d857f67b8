package catalog

import (
	"context"

	"github.com/fekuna/omnipos-booth-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/internal/pricing"
)

type UseCase interface {
	ListCatalog(ctx context.Context, filters *dto.CatalogFilters) ([]dto.CatalogItem, error)
	Quote(ctx context.Context, productID int64, quantity int) (*pricing.Quote, error)
}

// Source is the catalog as the state store loads it, possibly cached.
type Source interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListPromotions(ctx context.Context) ([]model.Promotion, error)
	Invalidate(ctx context.Context) error
}
