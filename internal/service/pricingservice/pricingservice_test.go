package pricingservice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/storyforge/storyforge/internal/domain"
	"github.com/storyforge/storyforge/pkg/cache"
)

func NewMock(t *testing.T, c cache.Cache) (*Service, *MockPricingRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	pricingRepo := NewMockPricingRepo(ctrl)
	return New(pricingRepo, c), pricingRepo
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func catalog() []domain.PricingEntry {
	return []domain.PricingEntry{
		{Operation: OperationStory, Cost: dec("1.00")},
		{Operation: OperationPageWithImages, Cost: dec("2.00")},
		{Operation: OperationPageWithoutImages, Cost: dec("1.00")},
		{Operation: "flux-pro", Cost: dec("3.50")},
	}
}

// fakeCache is an in-memory cache.Cache used to observe read-through
// behavior without a redis server.
type fakeCache struct {
	data   map[string]string
	getErr error
	setErr error
	gets   int
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.gets++
	if f.getErr != nil {
		return "", f.getErr
	}
	val, ok := f.data[key]
	if !ok {
		return "", cache.ErrKeyNotFound
	}
	return val, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value.(string)
	return nil
}

func (f *fakeCache) Del(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Close() error { return nil }

func TestGetPricing(t *testing.T) {
	ctx := context.Background()

	t.Run("loads from storage and fills cache", func(t *testing.T) {
		c := newFakeCache()
		service, pricingRepo := NewMock(t, c)
		pricingRepo.EXPECT().GetActive(ctx).Return(catalog(), nil)

		pricing, err := service.GetPricing(ctx)
		require.NoError(t, err)
		assert.True(t, pricing[OperationStory].Equal(dec("1.00")))
		assert.True(t, pricing["flux-pro"].Equal(dec("3.50")))
		assert.Equal(t, 1, c.sets)
	})

	t.Run("serves from cache without storage", func(t *testing.T) {
		c := newFakeCache()
		raw, err := json.Marshal(map[string]string{OperationStory: "1.00"})
		require.NoError(t, err)
		c.data[pricingCacheKey] = string(raw)

		service, _ := NewMock(t, c)

		pricing, err := service.GetPricing(ctx)
		require.NoError(t, err)
		assert.True(t, pricing[OperationStory].Equal(dec("1.00")))
	})

	t.Run("cache failure falls back to storage", func(t *testing.T) {
		c := newFakeCache()
		c.getErr = errors.New("connection refused")
		service, pricingRepo := NewMock(t, c)
		pricingRepo.EXPECT().GetActive(ctx).Return(catalog(), nil)

		pricing, err := service.GetPricing(ctx)
		require.NoError(t, err)
		assert.Len(t, pricing, 4)
	})

	t.Run("malformed cache entry falls back to storage", func(t *testing.T) {
		c := newFakeCache()
		c.data[pricingCacheKey] = "{not json"
		service, pricingRepo := NewMock(t, c)
		pricingRepo.EXPECT().GetActive(ctx).Return(catalog(), nil)

		pricing, err := service.GetPricing(ctx)
		require.NoError(t, err)
		assert.Len(t, pricing, 4)
	})

	t.Run("nil cache goes straight to storage", func(t *testing.T) {
		service, pricingRepo := NewMock(t, nil)
		pricingRepo.EXPECT().GetActive(ctx).Return(catalog(), nil)

		pricing, err := service.GetPricing(ctx)
		require.NoError(t, err)
		assert.Len(t, pricing, 4)
	})

	t.Run("storage error", func(t *testing.T) {
		service, pricingRepo := NewMock(t, nil)
		pricingRepo.EXPECT().GetActive(ctx).Return(nil, errors.New("db error"))

		_, err := service.GetPricing(ctx)
		assert.Error(t, err)
	})
}

func TestStoryCost(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the catalog price", func(t *testing.T) {
		service, pricingRepo := NewMock(t, nil)
		pricingRepo.EXPECT().GetActive(ctx).Return(catalog(), nil)

		cost, err := service.StoryCost(ctx)
		require.NoError(t, err)
		assert.True(t, cost.Equal(dec("1.00")))
	})

	t.Run("missing entry resolves to zero", func(t *testing.T) {
		service, pricingRepo := NewMock(t, nil)
		pricingRepo.EXPECT().GetActive(ctx).Return(nil, nil)

		cost, err := service.StoryCost(ctx)
		require.NoError(t, err)
		assert.True(t, cost.IsZero())
	})
}

func TestBookCost(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		pages      int
		withImages bool
		imageModel string
		want       string
	}{
		{
			name:       "plain pages",
			pages:      5,
			withImages: false,
			want:       "5.00",
		},
		{
			name:       "illustrated pages",
			pages:      5,
			withImages: true,
			want:       "10.00",
		},
		{
			name:       "image model with its own price",
			pages:      4,
			withImages: true,
			imageModel: "flux-pro",
			want:       "14.00",
		},
		{
			name:       "unknown image model falls back to illustrated price",
			pages:      4,
			withImages: true,
			imageModel: "unknown-model",
			want:       "8.00",
		},
		{
			name:       "image model ignored for plain books",
			pages:      3,
			withImages: false,
			imageModel: "flux-pro",
			want:       "3.00",
		},
		{
			name:  "zero pages",
			pages: 0,
			want:  "0.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, pricingRepo := NewMock(t, nil)
			pricingRepo.EXPECT().GetActive(ctx).Return(catalog(), nil)

			cost, err := service.BookCost(ctx, tt.pages, tt.withImages, tt.imageModel)
			require.NoError(t, err)
			assert.True(t, cost.Equal(dec(tt.want)), "got %s want %s", cost, tt.want)
		})
	}
}
