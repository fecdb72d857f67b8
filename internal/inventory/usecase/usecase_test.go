package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/fekuna/omnipos-booth-service/internal/events"
	"github.com/fekuna/omnipos-booth-service/internal/inventory"
	"github.com/fekuna/omnipos-booth-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/internal/state"
	"github.com/fekuna/omnipos-booth-service/internal/state/statetest"
	"github.com/fekuna/omnipos-booth-service/pkg/errx"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeRepo struct {
	inventory.Repository
	correctCalls int
	correctErr   error
	missing      bool
	getErr       error
	lastFilters  *dto.MovementFilters
}

func (f *fakeRepo) GetByProduct(_ context.Context, productID int64) (*model.InventoryRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.missing {
		return nil, nil
	}
	return &model.InventoryRecord{ProductID: productID, InitialTotalQuantity: 10, CurrentQuantity: 2}, nil
}

func (f *fakeRepo) Correct(_ context.Context, productID int64, current, initial int) (*model.InventoryRecord, error) {
	f.correctCalls++
	if f.correctErr != nil {
		return nil, f.correctErr
	}
	return &model.InventoryRecord{ProductID: productID, CurrentQuantity: current, InitialTotalQuantity: initial}, nil
}

func (f *fakeRepo) ListMovements(_ context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	f.lastFilters = filters
	return []model.InventoryMovement{{ID: 1, ProductID: 1, MovementType: model.MovementSale}}, 1, nil
}

func newUseCase(t *testing.T, repo *fakeRepo) (inventory.UseCase, *statetest.Provider) {
	store := statetest.New(state.NewSnapshot(1, time.Now(),
		[]model.Product{{ID: 1, Name: "Skol"}},
		[]model.InventoryRecord{{ProductID: 1, InitialTotalQuantity: 10, CurrentQuantity: 2}},
		nil, nil, nil,
	))
	return NewInventoryUseCase(repo, store, events.NewNoop(), logger.Wrap(zaptest.NewLogger(t))), store
}

func TestCorrectStock(t *testing.T) {
	repo := &fakeRepo{}
	uc, store := newUseCase(t, repo)

	inv, err := uc.CorrectStock(context.Background(), &dto.CorrectStockInput{
		ProductID:       "1",
		CurrentQuantity: "8",
		InitialQuantity: "12",
	})

	require.NoError(t, err)
	assert.Equal(t, 8, inv.CurrentQuantity)
	assert.Equal(t, 12, inv.InitialTotalQuantity)
	assert.Equal(t, 1, store.Refreshes())
}

func TestCorrectStock_RejectsBeforeWriting(t *testing.T) {
	tests := []struct {
		name  string
		input dto.CorrectStockInput
	}{
		{"negative current", dto.CorrectStockInput{ProductID: "1", CurrentQuantity: "-1", InitialQuantity: "5"}},
		{"negative initial", dto.CorrectStockInput{ProductID: "1", CurrentQuantity: "1", InitialQuantity: "-5"}},
		{"not a number", dto.CorrectStockInput{ProductID: "1", CurrentQuantity: "abc", InitialQuantity: "5"}},
		{"missing product", dto.CorrectStockInput{CurrentQuantity: "1", InitialQuantity: "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			uc, store := newUseCase(t, repo)

			_, err := uc.CorrectStock(context.Background(), &tt.input)

			require.Error(t, err)
			status, _ := errx.StatusAndMessage(err)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Zero(t, repo.correctCalls)
			assert.Zero(t, store.Refreshes())
		})
	}
}

func TestCorrectStock_StorageFailure(t *testing.T) {
	repo := &fakeRepo{correctErr: errors.New("connection refused")}
	uc, store := newUseCase(t, repo)

	_, err := uc.CorrectStock(context.Background(), &dto.CorrectStockInput{
		ProductID: "1", CurrentQuantity: "1", InitialQuantity: "1",
	})

	assert.True(t, errx.IsPersistence(err))
	assert.Zero(t, store.Refreshes())
}

func TestCorrectStock_UnknownRecord(t *testing.T) {
	repo := &fakeRepo{correctErr: inventory.ErrNotFound}
	uc, _ := newUseCase(t, repo)

	_, err := uc.CorrectStock(context.Background(), &dto.CorrectStockInput{
		ProductID: "9", CurrentQuantity: "1", InitialQuantity: "1",
	})

	status, _ := errx.StatusAndMessage(err)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCorrectStock_MissingRecordSkipsWrite(t *testing.T) {
	repo := &fakeRepo{missing: true}
	uc, store := newUseCase(t, repo)

	_, err := uc.CorrectStock(context.Background(), &dto.CorrectStockInput{
		ProductID: "9", CurrentQuantity: "1", InitialQuantity: "1",
	})

	status, _ := errx.StatusAndMessage(err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.ErrorIs(t, err, inventory.ErrNotFound)
	assert.Zero(t, repo.correctCalls)
	assert.Zero(t, store.Refreshes())
}

func TestCorrectStock_LookupFailure(t *testing.T) {
	repo := &fakeRepo{getErr: errors.New("connection refused")}
	uc, _ := newUseCase(t, repo)

	_, err := uc.CorrectStock(context.Background(), &dto.CorrectStockInput{
		ProductID: "1", CurrentQuantity: "1", InitialQuantity: "1",
	})

	assert.True(t, errx.IsPersistence(err))
	assert.Zero(t, repo.correctCalls)
}

func TestCorrectStock_RefreshFailureStillSucceeds(t *testing.T) {
	repo := &fakeRepo{}
	uc, store := newUseCase(t, repo)
	store.FailRefresh(errors.New("timeout"))

	_, err := uc.CorrectStock(context.Background(), &dto.CorrectStockInput{
		ProductID: "1", CurrentQuantity: "1", InitialQuantity: "1",
	})
	assert.NoError(t, err)
}

func TestListInventory(t *testing.T) {
	uc, _ := newUseCase(t, &fakeRepo{})

	overview, err := uc.ListInventory(context.Background())

	require.NoError(t, err)
	require.Len(t, overview.Items, 1)
	assert.True(t, overview.Items[0].Low)
}

func TestListMovements_DefaultsAndValidation(t *testing.T) {
	repo := &fakeRepo{}
	uc, _ := newUseCase(t, repo)

	_, total, err := uc.ListMovements(context.Background(), &dto.MovementFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, repo.lastFilters.Page)
	assert.Equal(t, defaultMovementPageSize, repo.lastFilters.PageSize)

	_, _, err = uc.ListMovements(context.Background(), &dto.MovementFilters{MovementType: "theft"})
	status, _ := errx.StatusAndMessage(err)
	assert.Equal(t, http.StatusBadRequest, status)
}
