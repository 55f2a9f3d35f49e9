package pricingservice

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storyforge/storyforge/internal/domain"
	"github.com/storyforge/storyforge/pkg/cache"
)

//go:generate mockgen -source=pricingservice.go -destination=pricingservice_mock.go -package=pricingservice

const (
	OperationStory             = "story_generation"
	OperationPageWithImages    = "page_with_images"
	OperationPageWithoutImages = "page_without_images"
)

const (
	pricingCacheKey = "pricing:active"
	pricingCacheTTL = time.Minute
)

type PricingRepo interface {
	GetActive(ctx context.Context) ([]domain.PricingEntry, error)
}

// Service resolves operation costs from the catalog. The redis cache is
// optional and fail-open: any cache error falls back to storage.
type Service struct {
	pricingRepo PricingRepo
	cache       cache.Cache
}

func New(pricingRepo PricingRepo, c cache.Cache) *Service {
	return &Service{
		pricingRepo: pricingRepo,
		cache:       c,
	}
}

func (s *Service) GetEntries(ctx context.Context) ([]domain.PricingEntry, error) {
	entries, err := s.pricingRepo.GetActive(ctx)
	if err != nil {
		zap.L().Error("failed to fetch pricing entries", zap.Error(err))
		return nil, err
	}
	return entries, nil
}

// GetPricing returns the active operation -> cost map.
func (s *Service) GetPricing(ctx context.Context) (map[string]decimal.Decimal, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	entries, err := s.pricingRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	pricing := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		pricing[e.Operation] = e.Cost
	}

	s.toCache(ctx, pricing)
	return pricing, nil
}

// StoryCost is the flat cost of one story generation. A missing catalog
// entry resolves to zero; that is a data-configuration concern, not a
// ledger failure.
func (s *Service) StoryCost(ctx context.Context) (decimal.Decimal, error) {
	pricing, err := s.GetPricing(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing[OperationStory], nil
}

// BookCost is pages times the per-page price. The page price resolves to
// the image model's own entry when one exists, then the generic
// illustrated-page price, then the plain-page price.
func (s *Service) BookCost(ctx context.Context, pages int, withImages bool, imageModel string) (decimal.Decimal, error) {
	pricing, err := s.GetPricing(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	key := OperationPageWithoutImages
	if withImages {
		key = OperationPageWithImages
		if imageModel != "" {
			if _, ok := pricing[imageModel]; ok {
				key = imageModel
			}
		}
	}
	return decimal.NewFromInt(int64(pages)).Mul(pricing[key]), nil
}

func (s *Service) fromCache(ctx context.Context) (map[string]decimal.Decimal, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, pricingCacheKey)
	if err != nil {
		if err != cache.ErrKeyNotFound {
			zap.L().Warn("pricing cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var stored map[string]string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		zap.L().Warn("pricing cache entry malformed", zap.Error(err))
		return nil, false
	}

	pricing := make(map[string]decimal.Decimal, len(stored))
	for op, cost := range stored {
		d, err := decimal.NewFromString(cost)
		if err != nil {
			return nil, false
		}
		pricing[op] = d
	}
	return pricing, true
}

func (s *Service) toCache(ctx context.Context, pricing map[string]decimal.Decimal) {
	if s.cache == nil {
		return
	}
	stored := make(map[string]string, len(pricing))
	for op, cost := range pricing {
		stored[op] = cost.String()
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, pricingCacheKey, string(raw), pricingCacheTTL); err != nil {
		zap.L().Warn("pricing cache write failed", zap.Error(err))
	}
}
