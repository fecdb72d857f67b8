package catalog

import (
	"context"

	"github.com/fekuna/omnipos-booth-service/internal/model"
)

// Repository reads the fixed event catalog. The service never writes it.
type Repository interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListPromotions(ctx context.Context) ([]model.Promotion, error)
}
