package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProductsAndPromotions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPGRepository(sqlx.NewDb(db, "pgx"))

	mock.ExpectQuery(regexp.QuoteMeta("FROM products")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "unit_cost", "suggested_unit_price", "units_per_pack"}).
			AddRow(1, "Skol", "Cerveja", "3.20", "7.00", 12))
	mock.ExpectQuery(regexp.QuoteMeta("FROM promotions")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "trigger_quantity", "bundle_price"}).
			AddRow(1, 1, 3, "18.00"))

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].SuggestedUnitPrice.Equal(decimal.RequireFromString("7")))
	assert.Equal(t, 12, products[0].UnitsPerPack)

	promotions, err := repo.ListPromotions(context.Background())
	require.NoError(t, err)
	require.Len(t, promotions, 1)
	assert.Equal(t, 3, promotions[0].TriggerQuantity)

	assert.NoError(t, mock.ExpectationsWereMet())
}
