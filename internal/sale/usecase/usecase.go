package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-booth-service/internal/events"
	"github.com/fekuna/omnipos-booth-service/internal/inventory"
	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/internal/money"
	"github.com/fekuna/omnipos-booth-service/internal/sale"
	"github.com/fekuna/omnipos-booth-service/internal/sale/dto"
	"github.com/fekuna/omnipos-booth-service/internal/session"
	"github.com/fekuna/omnipos-booth-service/internal/state"
	"github.com/fekuna/omnipos-booth-service/pkg/errx"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultRecentSales = 15
	maxRecentSales     = 500
)

type saleUseCase struct {
	repo      sale.Repository
	stock     sale.StockWriter
	tx        sale.Transactor
	store     state.Provider
	sessions  *session.Registry
	publisher events.Publisher
	policy    sale.Policy
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewSaleUseCase(
	repo sale.Repository,
	stock sale.StockWriter,
	tx sale.Transactor,
	store state.Provider,
	sessions *session.Registry,
	publisher events.Publisher,
	policy sale.Policy,
	log logger.ZapLogger,
) sale.UseCase {
	return &saleUseCase{
		repo:      repo,
		stock:     stock,
		tx:        tx,
		store:     store,
		sessions:  sessions,
		publisher: publisher,
		policy:    policy,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *saleUseCase) Cart(ctx context.Context, sessionID string) *dto.CartView {
	return uc.view(uc.sessions.Get(sessionID), false)
}

func (uc *saleUseCase) AddItem(ctx context.Context, sessionID string, productID int64) *dto.CartView {
	s := uc.sessions.Get(sessionID)
	snap := uc.store.Current()
	if _, ok := snap.Product(productID); !ok {
		return uc.view(s, false)
	}
	changed := s.Cart.Increment(productID, snap)
	return uc.view(s, changed)
}

func (uc *saleUseCase) RemoveItem(ctx context.Context, sessionID string, productID int64) *dto.CartView {
	s := uc.sessions.Get(sessionID)
	changed := s.Cart.Decrement(productID)
	return uc.view(s, changed)
}

func (uc *saleUseCase) ClearCart(ctx context.Context, sessionID string) *dto.CartView {
	s := uc.sessions.Get(sessionID)
	changed := !s.Cart.IsEmpty()
	s.Cart.Clear()
	return uc.view(s, changed)
}

func (uc *saleUseCase) view(s *session.Session, changed bool) *dto.CartView {
	snap := uc.store.Current()
	engine := snap.Pricing()

	v := &dto.CartView{
		SessionID:  s.ID,
		Lines:      []dto.CartLineView{},
		Count:      s.Cart.Count(),
		Total:      decimal.Zero,
		Committing: s.Committing(),
		Changed:    changed,
	}
	for _, l := range s.Cart.Lines() {
		price := engine.Price(l.ProductID, l.Quantity)
		p, _ := snap.Product(l.ProductID)
		v.Lines = append(v.Lines, dto.CartLineView{
			ProductID: l.ProductID,
			Name:      p.Name,
			Quantity:  l.Quantity,
			LinePrice: price,
		})
		v.Total = v.Total.Add(price)
	}
	v.TotalLabel = money.Format(v.Total)
	return v
}

func (uc *saleUseCase) Checkout(ctx context.Context, sessionID string) (*dto.CheckoutResult, error) {
	s := uc.sessions.Get(sessionID)
	if !s.TryBeginCommit() {
		return nil, errx.Conflict(sale.ErrCommitInProgress, sale.ErrCommitInProgress.Error())
	}
	defer s.EndCommit()

	lines := s.Cart.Lines()
	if len(lines) == 0 {
		return nil, errx.BadRequest(sale.ErrEmptyCart, sale.ErrEmptyCart.Error())
	}

	result, err := uc.CommitLines(ctx, lines, "session:"+sessionID)
	if err != nil {
		return nil, err
	}
	s.Cart.Clear()
	return result, nil
}

func (uc *saleUseCase) CommitLines(ctx context.Context, lines []model.CartLine, source string) (*dto.CheckoutResult, error) {
	if len(lines) == 0 {
		return nil, errx.BadRequest(sale.ErrEmptyCart, sale.ErrEmptyCart.Error())
	}

	snap := uc.store.Current()
	engine := snap.Pricing()
	soldAt := uc.now()

	result := &dto.CheckoutResult{Source: source, Lines: []dto.LineResult{}, Total: decimal.Zero}
	commit := func(ctx context.Context) error {
		for _, l := range lines {
			p, ok := snap.Product(l.ProductID)
			if !ok || l.Quantity <= 0 {
				uc.logger.Warn("skipping line for unknown product",
					zap.String("source", source),
					zap.Int64("product_id", l.ProductID),
					zap.Int("quantity", l.Quantity),
				)
				continue
			}

			rec := &model.SaleRecord{
				ID:           uuid.New().String(),
				ProductID:    l.ProductID,
				QuantitySold: l.Quantity,
				TotalPrice:   engine.Price(l.ProductID, l.Quantity),
				SoldAt:       soldAt,
			}
			if err := uc.repo.InsertSale(ctx, rec); err != nil {
				return fmt.Errorf("insert sale of product %d: %w", l.ProductID, err)
			}
			// Products without an inventory record are sold untracked.
			if _, tracked := snap.InventoryFor(l.ProductID); tracked {
				if err := uc.stock.Decrement(ctx, l.ProductID, l.Quantity, rec.ID); err != nil {
					return err
				}
			}

			result.Lines = append(result.Lines, dto.LineResult{
				SaleID:     rec.ID,
				ProductID:  rec.ProductID,
				Name:       p.Name,
				Quantity:   rec.QuantitySold,
				TotalPrice: rec.TotalPrice,
			})
			result.ItemCount += rec.QuantitySold
			result.Total = result.Total.Add(rec.TotalPrice)
		}
		return nil
	}

	var err error
	if uc.policy == sale.PolicySequential {
		err = commit(ctx)
	} else {
		err = uc.tx.WithinTransaction(ctx, commit)
	}
	if err == nil && len(result.Lines) == 0 {
		uc.logger.Warn("nothing to commit, no line references a known product", zap.String("source", source))
		return nil, errx.BadRequest(sale.ErrEmptyCart, sale.ErrEmptyCart.Error())
	}
	if err != nil {
		uc.logger.Error("sale commit failed",
			zap.String("source", source),
			zap.String("policy", string(uc.policy)),
			zap.Int("lines_committed", committedLines(uc.policy, result)),
			zap.Error(err),
		)
		if len(result.Lines) > 0 && uc.policy == sale.PolicySequential {
			uc.refresh(ctx)
		}
		if errors.Is(err, inventory.ErrInsufficientStock) {
			return nil, errx.Conflict(err, "not enough stock to complete the sale")
		}
		return nil, errx.Persistence(err)
	}
	result.TotalLabel = money.Format(result.Total)

	uc.logger.Info("sale committed",
		zap.String("source", source),
		zap.Int("lines", len(result.Lines)),
		zap.Int("items", result.ItemCount),
		zap.String("total", result.Total.StringFixed(2)),
	)
	uc.refresh(ctx)
	if err := uc.publisher.Publish(ctx, events.TypeSaleCommitted, source, result); err != nil {
		uc.logger.Warn("sale event not published", zap.Error(err))
	}
	return result, nil
}

func committedLines(policy sale.Policy, result *dto.CheckoutResult) int {
	if policy == sale.PolicySequential {
		return len(result.Lines)
	}
	return 0
}

func (uc *saleUseCase) ListSales(ctx context.Context, limit int) ([]model.SaleRecord, error) {
	if limit <= 0 {
		limit = defaultRecentSales
	}
	if limit > maxRecentSales {
		limit = maxRecentSales
	}
	sales, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		uc.logger.Error("failed to list sales", zap.Int("limit", limit), zap.Error(err))
		return nil, errx.Persistence(err)
	}
	return sales, nil
}

func (uc *saleUseCase) refresh(ctx context.Context) {
	if _, err := uc.store.Refresh(ctx); err != nil {
		uc.logger.Warn("state refresh after sale failed", zap.Error(err))
	}
}
