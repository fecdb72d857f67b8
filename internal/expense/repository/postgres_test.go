package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestInsertExpense_MiscHasNullProduct(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO expenses")).
		WithArgs("e-1", nil, "Gelo/Diversos", int64(1), "20", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.InsertExpense(context.Background(), &model.ExpenseRecord{
		ID: "e-1", Label: "Gelo/Diversos", Quantity: 1, TotalCost: decimal.NewFromInt(20), RecordedAt: time.Now(),
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertExpense_RolledBackWithTransaction(t *testing.T) {
	repo, mock := newMock(t)
	productID := int64(1)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO expenses")).
		WithArgs("e-2", productID, "Skol", int64(10), "50", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := postgres.NewTxManager(repo.DB).WithinTransaction(context.Background(), func(ctx context.Context) error {
		if err := repo.InsertExpense(ctx, &model.ExpenseRecord{
			ID: "e-2", ProductID: &productID, Label: "Skol", Quantity: 10, TotalCost: decimal.NewFromInt(50), RecordedAt: time.Now(),
		}); err != nil {
			return err
		}
		return errors.New("stock update failed")
	})

	assert.EqualError(t, err, "stock update failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListExpenses(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM expenses ORDER BY recorded_at DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "label", "quantity", "total_cost", "recorded_at"}).
			AddRow("e-2", nil, "Gelo", 1, "15.50", time.Now()).
			AddRow("e-1", 1, "Skol", 10, "50.00", time.Now()))

	items, err := repo.ListExpenses(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].ProductID)
	require.NotNil(t, items[1].ProductID)
	assert.Equal(t, int64(1), *items[1].ProductID)
}
