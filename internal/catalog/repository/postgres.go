package repository

import (
	"context"

	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	query := `
        SELECT id, name, category, unit_cost, suggested_unit_price, units_per_pack
        FROM products
        ORDER BY category, name, id
    `
	if err := r.DB.SelectContext(ctx, &products, query); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) ListPromotions(ctx context.Context) ([]model.Promotion, error) {
	var promotions []model.Promotion
	query := `SELECT id, product_id, trigger_quantity, bundle_price FROM promotions ORDER BY product_id, trigger_quantity DESC, id`
	if err := r.DB.SelectContext(ctx, &promotions, query); err != nil {
		return nil, err
	}
	return promotions, nil
}
