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

func (r *PGRepository) InsertExpense(ctx context.Context, e *model.ExpenseRecord) error {
	query := `
        INSERT INTO expenses (id, product_id, label, quantity, total_cost, recorded_at)
        VALUES (:id, :product_id, :label, :quantity, :total_cost, :recorded_at)
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, e)
	return err
}

func (r *PGRepository) ListExpenses(ctx context.Context) ([]model.ExpenseRecord, error) {
	var items []model.ExpenseRecord
	query := `SELECT id, product_id, label, quantity, total_cost, recorded_at FROM expenses ORDER BY recorded_at DESC, id`
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}
