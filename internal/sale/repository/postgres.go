package repository

import (
	"context"

	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) InsertSale(ctx context.Context, s *model.SaleRecord) error {
	query := `
        INSERT INTO sales (id, product_id, quantity_sold, total_price, sold_at)
        VALUES (:id, :product_id, :quantity_sold, :total_price, :sold_at)
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, s)
	return err
}

func (r *PGRepository) ListSales(ctx context.Context) ([]model.SaleRecord, error) {
	var sales []model.SaleRecord
	query := `SELECT id, product_id, quantity_sold, total_price, sold_at FROM sales ORDER BY sold_at DESC, id`
	if err := r.DB.SelectContext(ctx, &sales, query); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *PGRepository) ListRecent(ctx context.Context, limit int) ([]model.SaleRecord, error) {
	var sales []model.SaleRecord
	query := `SELECT id, product_id, quantity_sold, total_price, sold_at FROM sales ORDER BY sold_at DESC, id LIMIT $1`
	if err := r.DB.SelectContext(ctx, &sales, query, limit); err != nil {
		return nil, err
	}
	return sales, nil
}
