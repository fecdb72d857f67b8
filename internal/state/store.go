package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type CatalogSource interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListPromotions(ctx context.Context) ([]model.Promotion, error)
}

type InventorySource interface {
	ListInventory(ctx context.Context) ([]model.InventoryRecord, error)
}

type SaleSource interface {
	// ListSales returns every sale, newest first.
	ListSales(ctx context.Context) ([]model.SaleRecord, error)
}

type ExpenseSource interface {
	ListExpenses(ctx context.Context) ([]model.ExpenseRecord, error)
}

type Sources struct {
	Catalog   CatalogSource
	Inventory InventorySource
	Sales     SaleSource
	Expenses  ExpenseSource
}

// Provider is the part of Store the use cases depend on.
type Provider interface {
	Current() *Snapshot
	Refresh(ctx context.Context) (*Snapshot, error)
}

// Store holds the current snapshot. Readers get a stable pointer and never
// observe a half-applied refresh.
type Store struct {
	sources Sources
	logger  logger.ZapLogger
	now     func() time.Time

	mu      sync.RWMutex
	current *Snapshot
	// refreshMu keeps version numbers in fetch order.
	refreshMu sync.Mutex
}

func NewStore(sources Sources, log logger.ZapLogger) *Store {
	return &Store{
		sources: sources,
		logger:  log,
		now:     time.Now,
		current: Empty(),
	}
}

func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Refresh reloads all collections and swaps the snapshot. On error the
// previous snapshot stays in place.
func (s *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	var (
		products   []model.Product
		inventory  []model.InventoryRecord
		sales      []model.SaleRecord
		promotions []model.Promotion
		expenses   []model.ExpenseRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.sources.Catalog.ListProducts(gctx)
		return wrap("products", err)
	})
	g.Go(func() (err error) {
		promotions, err = s.sources.Catalog.ListPromotions(gctx)
		return wrap("promotions", err)
	})
	g.Go(func() (err error) {
		inventory, err = s.sources.Inventory.ListInventory(gctx)
		return wrap("inventory", err)
	})
	g.Go(func() (err error) {
		sales, err = s.sources.Sales.ListSales(gctx)
		return wrap("sales", err)
	})
	g.Go(func() (err error) {
		expenses, err = s.sources.Expenses.ListExpenses(gctx)
		return wrap("expenses", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	next := NewSnapshot(s.Current().Version+1, s.now(), products, inventory, sales, promotions, expenses)

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	s.logger.Debug("state refreshed",
		zap.Uint64("version", next.Version),
		zap.Int("products", len(products)),
		zap.Int("sales", len(sales)),
		zap.Int("expenses", len(expenses)),
	)
	return next, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("load %s: %w", what, err)
	}
	return nil
}
