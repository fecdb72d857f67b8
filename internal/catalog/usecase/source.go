package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-booth-service/internal/catalog"
	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/pkg/cache"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"go.uber.org/zap"
)

const (
	productsCacheKey   = "catalog:products"
	promotionsCacheKey = "catalog:promotions"
)

// cachedSource fronts the catalog tables with Redis. The catalog is fixed
// for the event, so every refresh poll after the first is a cache hit. A nil
// cache reads straight from the repository.
type cachedSource struct {
	repo   catalog.Repository
	cache  *cache.RedisClient
	ttl    time.Duration
	logger logger.ZapLogger
}

func NewCachedSource(repo catalog.Repository, cache *cache.RedisClient, ttl time.Duration, log logger.ZapLogger) catalog.Source {
	return &cachedSource{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

func (s *cachedSource) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if s.fromCache(ctx, productsCacheKey, &products) {
		return products, nil
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, productsCacheKey, products)
	return products, nil
}

func (s *cachedSource) ListPromotions(ctx context.Context) ([]model.Promotion, error) {
	var promotions []model.Promotion
	if s.fromCache(ctx, promotionsCacheKey, &promotions) {
		return promotions, nil
	}

	promotions, err := s.repo.ListPromotions(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, promotionsCacheKey, promotions)
	return promotions, nil
}

// Invalidate drops the cached catalog so the next load hits Postgres.
func (s *cachedSource) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Client.Del(ctx, productsCacheKey, promotionsCacheKey).Err()
}

func (s *cachedSource) fromCache(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	val, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		s.logger.Warn("discarding unreadable catalog cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *cachedSource) toCache(ctx context.Context, key string, v interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to cache catalog", zap.String("key", key), zap.Error(err))
	}
}
