package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-booth-service/internal/inventory"
	"github.com/fekuna/omnipos-booth-service/internal/inventory/dto"
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

func (r *PGRepository) ListInventory(ctx context.Context) ([]model.InventoryRecord, error) {
	var items []model.InventoryRecord
	query := `SELECT product_id, initial_total_quantity, current_quantity FROM inventory ORDER BY product_id`
	if err := sqlx.SelectContext(ctx, postgres.Executor(ctx, r.DB), &items, query); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) GetByProduct(ctx context.Context, productID int64) (*model.InventoryRecord, error) {
	var inv model.InventoryRecord
	query := `SELECT product_id, initial_total_quantity, current_quantity FROM inventory WHERE product_id = $1`
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &inv, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // caller decides whether absence matters
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) Decrement(ctx context.Context, productID int64, by int, referenceID string) error {
	// The floor check makes this a conditional decrement: two terminals
	// racing for the last unit cannot both succeed.
	query := `
        WITH upd AS (
            UPDATE inventory
            SET current_quantity = current_quantity - $2, updated_at = now()
            WHERE product_id = $1 AND current_quantity >= $2
            RETURNING product_id, current_quantity
        )
        INSERT INTO inventory_movements (product_id, movement_type, quantity_change, quantity_after, reference_id, created_at)
        SELECT product_id, 'sale', -$2::integer, current_quantity, $3, now() FROM upd
    `
	res, err := postgres.Executor(ctx, r.DB).ExecContext(ctx, query, productID, by, nullable(referenceID))
	if err != nil {
		return fmt.Errorf("decrement stock of product %d: %w", productID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("product %d: %w", productID, inventory.ErrInsufficientStock)
	}
	return nil
}

func (r *PGRepository) Increment(ctx context.Context, productID int64, by int, referenceID string) error {
	query := `
        WITH upd AS (
            INSERT INTO inventory (product_id, initial_total_quantity, current_quantity, updated_at)
            VALUES ($1, $2, $2, now())
            ON CONFLICT (product_id)
            DO UPDATE SET
                current_quantity = inventory.current_quantity + EXCLUDED.current_quantity,
                initial_total_quantity = inventory.initial_total_quantity + EXCLUDED.initial_total_quantity,
                updated_at = now()
            RETURNING product_id, current_quantity
        )
        INSERT INTO inventory_movements (product_id, movement_type, quantity_change, quantity_after, reference_id, created_at)
        SELECT product_id, 'restock', $2, current_quantity, $3, now() FROM upd
    `
	_, err := postgres.Executor(ctx, r.DB).ExecContext(ctx, query, productID, by, nullable(referenceID))
	if err != nil {
		return fmt.Errorf("increment stock of product %d: %w", productID, err)
	}
	return nil
}

func (r *PGRepository) Correct(ctx context.Context, productID int64, current, initial int) (*model.InventoryRecord, error) {
	query := `
        WITH prev AS (
            SELECT product_id, current_quantity FROM inventory WHERE product_id = $1 FOR UPDATE
        ), upd AS (
            UPDATE inventory i
            SET current_quantity = $2, initial_total_quantity = $3, updated_at = now()
            FROM prev
            WHERE i.product_id = prev.product_id
            RETURNING i.product_id, i.initial_total_quantity, i.current_quantity, i.current_quantity - prev.current_quantity AS change
        ), mv AS (
            INSERT INTO inventory_movements (product_id, movement_type, quantity_change, quantity_after, created_at)
            SELECT product_id, 'correction', change, current_quantity, now() FROM upd
        )
        SELECT product_id, initial_total_quantity, current_quantity FROM upd
    `
	var inv model.InventoryRecord
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &inv, query, productID, current, initial)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", productID, inventory.ErrNotFound)
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	var items []model.InventoryMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ProductID != 0 {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			rows.Close()
			return nil, 0, err
		}
	}
	rows.Close()

	query := "SELECT id, product_id, movement_type, quantity_change, quantity_after, reference_id, created_at FROM inventory_movements" +
		whereClause + " ORDER BY created_at DESC, id DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
