package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/provider-discovery/internal/config"
	"github.com/provider-discovery/internal/domain"
	"github.com/provider-discovery/internal/pkg/errors"
	"github.com/provider-discovery/internal/usecase"
	"github.com/provider-discovery/internal/usecase/dto"
)

// MockProviderRepository is a mock of ProviderRepository
type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) GetNearby(ctx context.Context, lat, lon, radiusKm float64, match domain.CategoryMatch, limit int) ([]*domain.Provider, error) {
	args := m.Called(ctx, lat, lon, radiusKm, match, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) GetNearbyGrouped(ctx context.Context, lat, lon, radiusKm float64, match domain.CategoryMatch, precision int) ([]*domain.Provider, error) {
	args := m.Called(ctx, lat, lon, radiusKm, match, precision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) GetAll(ctx context.Context, match domain.CategoryMatch) ([]*domain.Provider, error) {
	args := m.Called(ctx, match)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Provider), args.Error(1)
}

// MockTariffRepository is a mock of TariffRepository
type MockTariffRepository struct {
	mock.Mock
}

func (m *MockTariffRepository) GetByMainType(ctx context.Context, mainType domain.MainType) (*domain.Tariff, error) {
	args := m.Called(ctx, mainType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tariff), args.Error(1)
}

func (m *MockTariffRepository) GetAll(ctx context.Context) (map[domain.MainType]domain.Tariff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.MainType]domain.Tariff), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	args := m.Called(ctx, prefix)
	return args.Int(0), args.Error(1)
}

func newTestUseCase(providerRepo *MockProviderRepository, tariffRepo *MockTariffRepository) *usecase.DiscoveryUseCase {
	return usecase.NewDiscoveryUseCase(
		providerRepo, tariffRepo, nil,
		config.DefaultDiscovery(), zap.NewNop(), time.Minute,
	)
}

func TestDiscoveryUseCase_Discover(t *testing.T) {
	ctx := context.Background()
	tariffs := map[domain.MainType]domain.Tariff{
		domain.MainTypeRescue: {OpeningFee: 350, PricePerKm: 40},
	}

	t.Run("high detail map mode returns both providers, nearest first", func(t *testing.T) {
		providerRepo := &MockProviderRepository{}
		tariffRepo := &MockTariffRepository{}
		uc := newTestUseCase(providerRepo, tariffRepo)

		providers := []*domain.Provider{
			{ID: "far", MainType: domain.MainTypeRescue, Lat: 39.998, Lon: 32.999},
			{ID: "near", MainType: domain.MainTypeRescue, Lat: 39.901, Lon: 32.851},
		}
		providerRepo.On("GetNearby", ctx, 39.90, 32.85, float64(500), domain.CategoryMatch{}, 200).
			Return(providers, nil)
		tariffRepo.On("GetAll", ctx).Return(tariffs, nil)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Lat: 39.90, Lon: 32.85, DetailLevel: 15,
		})
		require.NoError(t, err)

		require.Len(t, resp.Items, 2)
		assert.Equal(t, "near", resp.Items[0].ID)
		assert.Equal(t, "far", resp.Items[1].ID)
		assert.Less(t, resp.Items[0].Distance, resp.Items[1].Distance)
		assert.Equal(t, string(domain.StrategyRadius), resp.Strategy)

		// Both carry a priced estimate above the opening fee
		assert.Greater(t, resp.Items[0].EstimatedPrice, float64(350))
		assert.Greater(t, resp.Items[1].EstimatedPrice, resp.Items[0].EstimatedPrice)

		providerRepo.AssertExpectations(t)
	})

	t.Run("coarse detail goes through the grouped grid query", func(t *testing.T) {
		providerRepo := &MockProviderRepository{}
		tariffRepo := &MockTariffRepository{}
		uc := newTestUseCase(providerRepo, tariffRepo)

		providers := []*domain.Provider{
			{ID: "a", MainType: domain.MainTypeRescue, Lat: 39.91, Lon: 32.92},
			{ID: "b", MainType: domain.MainTypeRescue, Lat: 39.93, Lon: 32.89}, // same 1-decimal cell
		}
		providerRepo.On("GetNearbyGrouped", ctx, 39.90, 32.85, float64(20000), domain.CategoryMatch{}, 1).
			Return(providers, nil)
		tariffRepo.On("GetAll", ctx).Return(tariffs, nil)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Lat: 39.90, Lon: 32.85, DetailLevel: 5,
		})
		require.NoError(t, err)

		// Grid invariant: one representative per (category, cell)
		assert.Len(t, resp.Items, 1)
		assert.Equal(t, string(domain.StrategyGrid), resp.Strategy)

		providerRepo.AssertExpectations(t)
	})

	t.Run("list mode at high detail balances per-category quotas", func(t *testing.T) {
		providerRepo := &MockProviderRepository{}
		tariffRepo := &MockTariffRepository{}
		uc := newTestUseCase(providerRepo, tariffRepo)

		var providers []*domain.Provider
		for i := 0; i < 8; i++ {
			providers = append(providers, &domain.Provider{
				ID:       string(rune('a' + i)),
				MainType: domain.MainTypeRescue,
				Lat:      39.90 + float64(i)*0.001,
				Lon:      32.85,
			})
		}
		providers = append(providers, &domain.Provider{
			ID: "freight", MainType: domain.MainTypeFreight, Lat: 39.95, Lon: 32.85,
		})

		providerRepo.On("GetNearby", ctx, 39.90, 32.85, float64(500), domain.CategoryMatch{}, 200).
			Return(providers, nil)
		tariffRepo.On("GetAll", ctx).Return(tariffs, nil)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Lat: 39.90, Lon: 32.85, DetailLevel: 15, Mode: "list",
		})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StrategyFeed), resp.Strategy)
		assert.Len(t, resp.Items, 6) // 5 rescue + 1 freight

		counts := map[string]int{}
		for _, item := range resp.Items {
			counts[item.MainType]++
		}
		assert.Equal(t, 5, counts[string(domain.MainTypeRescue)])
		assert.Equal(t, 1, counts[string(domain.MainTypeFreight)])
	})

	t.Run("empty result is a valid empty list, not an error", func(t *testing.T) {
		providerRepo := &MockProviderRepository{}
		tariffRepo := &MockTariffRepository{}
		uc := newTestUseCase(providerRepo, tariffRepo)

		providerRepo.On("GetNearby", ctx, 39.90, 32.85, float64(500), domain.CategoryMatch{}, 200).
			Return([]*domain.Provider{}, nil)
		tariffRepo.On("GetAll", ctx).Return(tariffs, nil)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Lat: 39.90, Lon: 32.85, DetailLevel: 15,
		})
		require.NoError(t, err)

		assert.NotNil(t, resp.Items)
		assert.Empty(t, resp.Items)
		assert.Equal(t, 0, resp.Total)
	})

	t.Run("store failure surfaces without retries", func(t *testing.T) {
		providerRepo := &MockProviderRepository{}
		tariffRepo := &MockTariffRepository{}
		uc := newTestUseCase(providerRepo, tariffRepo)

		providerRepo.On("GetNearby", ctx, 39.90, 32.85, float64(500), domain.CategoryMatch{}, 200).
			Return(nil, errors.ErrStoreUnavailable)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Lat: 39.90, Lon: 32.85, DetailLevel: 15,
		})

		assert.Nil(t, resp)
		assert.Equal(t, errors.ErrStoreUnavailable, err)
		providerRepo.AssertNumberOfCalls(t, "GetNearby", 1)
	})

	t.Run("invalid origin is rejected before touching the store", func(t *testing.T) {
		providerRepo := &MockProviderRepository{}
		tariffRepo := &MockTariffRepository{}
		uc := newTestUseCase(providerRepo, tariffRepo)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Lat: 95, Lon: 32.85, DetailLevel: 15,
		})

		assert.Nil(t, resp)
		assert.Equal(t, errors.ErrInvalidLocation, err)
		providerRepo.AssertNotCalled(t, "GetNearby")
	})

	t.Run("tariff lookup failure degrades to platform defaults", func(t *testing.T) {
		providerRepo := &MockProviderRepository{}
		tariffRepo := &MockTariffRepository{}
		uc := newTestUseCase(providerRepo, tariffRepo)

		providers := []*domain.Provider{
			{ID: "a", MainType: domain.MainTypeRescue, Lat: 39.901, Lon: 32.851},
		}
		providerRepo.On("GetNearby", ctx, 39.90, 32.85, float64(500), domain.CategoryMatch{}, 200).
			Return(providers, nil)
		tariffRepo.On("GetAll", ctx).Return(nil, errors.ErrStoreUnavailable)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Lat: 39.90, Lon: 32.85, DetailLevel: 15,
		})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Greater(t, resp.Items[0].EstimatedPrice, domain.DefaultTariff.OpeningFee)
	})

	t.Run("seq is echoed back unchanged", func(t *testing.T) {
		providerRepo := &MockProviderRepository{}
		tariffRepo := &MockTariffRepository{}
		uc := newTestUseCase(providerRepo, tariffRepo)

		providerRepo.On("GetNearby", ctx, 39.90, 32.85, float64(500), domain.CategoryMatch{}, 200).
			Return([]*domain.Provider{}, nil)
		tariffRepo.On("GetAll", ctx).Return(tariffs, nil)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Lat: 39.90, Lon: 32.85, DetailLevel: 15, Seq: 42,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(42), resp.Seq)
	})
}

func TestDiscoveryUseCase_Discover_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the store and re-stamps seq", func(t *testing.T) {
		providerRepo := &MockProviderRepository{}
		tariffRepo := &MockTariffRepository{}
		cacheRepo := &MockCacheRepository{}

		uc := usecase.NewDiscoveryUseCase(
			providerRepo, tariffRepo, cacheRepo,
			config.DefaultDiscovery(), zap.NewNop(), time.Minute,
		)

		cached := []byte(`{"items":[{"id":"cached","main_type":"RESCUE"}],"total":1,"strategy":"radius","mode":"map","seq":1}`)
		cacheRepo.On("Get", ctx, mock.Anything).Return(cached, nil)

		resp, err := uc.Discover(ctx, dto.DiscoverRequest{
			Lat: 39.90, Lon: 32.85, DetailLevel: 15, Seq: 7,
		})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, "cached", resp.Items[0].ID)
		assert.Equal(t, int64(7), resp.Seq) // cached seq never leaks

		providerRepo.AssertNotCalled(t, "GetNearby")
	})

	t.Run("cache miss populates the cache after the store query", func(t *testing.T) {
		providerRepo := &MockProviderRepository{}
		tariffRepo := &MockTariffRepository{}
		cacheRepo := &MockCacheRepository{}

		uc := usecase.NewDiscoveryUseCase(
			providerRepo, tariffRepo, cacheRepo,
			config.DefaultDiscovery(), zap.NewNop(), time.Minute,
		)

		cacheRepo.On("Get", ctx, mock.Anything).Return(nil, nil)
		cacheRepo.On("Set", ctx, mock.Anything, mock.Anything, time.Minute).Return(nil)
		providerRepo.On("GetNearby", ctx, 39.90, 32.85, float64(500), domain.CategoryMatch{}, 200).
			Return([]*domain.Provider{}, nil)
		tariffRepo.On("GetAll", ctx).Return(map[domain.MainType]domain.Tariff{}, nil)

		_, err := uc.Discover(ctx, dto.DiscoverRequest{
			Lat: 39.90, Lon: 32.85, DetailLevel: 15,
		})
		require.NoError(t, err)

		cacheRepo.AssertCalled(t, "Set", ctx, mock.Anything, mock.Anything, time.Minute)
	})
}

func TestDiscoveryUseCase_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("quote for a known provider", func(t *testing.T) {
		providerRepo := &MockProviderRepository{}
		tariffRepo := &MockTariffRepository{}
		uc := newTestUseCase(providerRepo, tariffRepo)

		provider := &domain.Provider{
			ID: "p1", Name: "Rescue One", MainType: domain.MainTypeRescue,
			Lat: 39.95, Lon: 32.90,
		}
		providerRepo.On("GetByID", ctx, "p1").Return(provider, nil)
		tariffRepo.On("GetAll", ctx).Return(map[domain.MainType]domain.Tariff{
			domain.MainTypeRescue: {OpeningFee: 350, PricePerKm: 40},
		}, nil)

		resp, err := uc.Quote(ctx, dto.QuoteRequest{ProviderID: "p1", Lat: 39.90, Lon: 32.85})
		require.NoError(t, err)

		assert.Equal(t, "p1", resp.ProviderID)
		assert.Greater(t, resp.Distance, float64(0))
		assert.Greater(t, resp.EstimatedPrice, float64(350))
	})

	t.Run("unknown provider", func(t *testing.T) {
		providerRepo := &MockProviderRepository{}
		tariffRepo := &MockTariffRepository{}
		uc := newTestUseCase(providerRepo, tariffRepo)

		providerRepo.On("GetByID", ctx, "missing").Return(nil, errors.ErrProviderNotFound)

		resp, err := uc.Quote(ctx, dto.QuoteRequest{ProviderID: "missing", Lat: 39.90, Lon: 32.85})

		assert.Nil(t, resp)
		assert.Equal(t, errors.ErrProviderNotFound, err)
	})

	t.Run("invalid observer point", func(t *testing.T) {
		providerRepo := &MockProviderRepository{}
		tariffRepo := &MockTariffRepository{}
		uc := newTestUseCase(providerRepo, tariffRepo)

		resp, err := uc.Quote(ctx, dto.QuoteRequest{ProviderID: "p1", Lat: 200, Lon: 32.85})

		assert.Nil(t, resp)
		assert.Equal(t, errors.ErrInvalidLocation, err)
		providerRepo.AssertNotCalled(t, "GetByID")
	})
}

func TestDiscoveryUseCase_Categories(t *testing.T) {
	uc := newTestUseCase(&MockProviderRepository{}, &MockTariffRepository{})

	resp := uc.Categories(context.Background())

	assert.Equal(t, domain.CategoryTableVersion, resp.Version)
	assert.Len(t, resp.Categories, len(domain.MainTypes))

	for _, cat := range resp.Categories {
		assert.True(t, domain.IsValidMainType(cat.MainType))
		// Synonym lists come out sorted for stable payloads
		for i := 1; i < len(cat.Synonyms); i++ {
			assert.LessOrEqual(t, cat.Synonyms[i-1], cat.Synonyms[i])
		}
	}
}
