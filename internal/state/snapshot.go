// Package state owns the in-memory view of the booth's ledgers. A Snapshot
// is read-only once published; Store.Refresh replaces it wholesale.
package state

import (
	"time"

	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/internal/pricing"
)

type Snapshot struct {
	Version    uint64
	FetchedAt  time.Time
	Products   []model.Product
	Inventory  []model.InventoryRecord
	Sales      []model.SaleRecord // newest first
	Promotions []model.Promotion
	Expenses   []model.ExpenseRecord

	products  map[int64]model.Product
	inventory map[int64]model.InventoryRecord
	engine    *pricing.Engine
}

// NewSnapshot indexes the given collections. Callers must not mutate the
// slices afterwards.
func NewSnapshot(version uint64, fetchedAt time.Time, products []model.Product, inventory []model.InventoryRecord,
	sales []model.SaleRecord, promotions []model.Promotion, expenses []model.ExpenseRecord) *Snapshot {
	s := &Snapshot{
		Version:    version,
		FetchedAt:  fetchedAt,
		Products:   products,
		Inventory:  inventory,
		Sales:      sales,
		Promotions: promotions,
		Expenses:   expenses,
		products:   make(map[int64]model.Product, len(products)),
		inventory:  make(map[int64]model.InventoryRecord, len(inventory)),
		engine:     pricing.NewEngine(products, promotions),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	for _, inv := range inventory {
		s.inventory[inv.ProductID] = inv
	}
	return s
}

// Empty is the snapshot served before the first successful refresh.
func Empty() *Snapshot {
	return NewSnapshot(0, time.Time{}, nil, nil, nil, nil, nil)
}

func (s *Snapshot) Product(id int64) (model.Product, bool) {
	p, ok := s.products[id]
	return p, ok
}

func (s *Snapshot) InventoryFor(id int64) (model.InventoryRecord, bool) {
	inv, ok := s.inventory[id]
	return inv, ok
}

// Current implements cart.StockReader.
func (s *Snapshot) Current(id int64) (int, bool) {
	inv, ok := s.inventory[id]
	return inv.CurrentQuantity, ok
}

func (s *Snapshot) Pricing() *pricing.Engine {
	return s.engine
}
