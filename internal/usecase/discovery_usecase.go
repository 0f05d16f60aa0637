package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/provider-discovery/internal/config"
	"github.com/provider-discovery/internal/domain"
	"github.com/provider-discovery/internal/domain/repository"
	"github.com/provider-discovery/internal/pkg/errors"
	"github.com/provider-discovery/internal/pkg/utils"
	"github.com/provider-discovery/internal/usecase/dto"
)

// DiscoveryUseCase - use case поиска провайдеров: планирование запроса,
// обращение к хранилищу, оценка стоимости и сортировка.
// Состояния между запросами нет - каждый вызов читает хранилище заново,
// конкурентные запросы не мешают друг другу.
type DiscoveryUseCase struct {
	providerRepo repository.ProviderRepository
	tariffRepo   repository.TariffRepository
	cacheRepo    repository.CacheRepository
	planner      *QueryPlanner
	grid         GridAggregator
	feed         FeedBalancer
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewDiscoveryUseCase - создание нового DiscoveryUseCase
func NewDiscoveryUseCase(
	providerRepo repository.ProviderRepository,
	tariffRepo repository.TariffRepository,
	cacheRepo repository.CacheRepository,
	cfg config.DiscoveryConfig,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *DiscoveryUseCase {
	return &DiscoveryUseCase{
		providerRepo: providerRepo,
		tariffRepo:   tariffRepo,
		cacheRepo:    cacheRepo,
		planner:      NewQueryPlanner(cfg),
		grid:         GridAggregator{},
		feed:         NewFeedBalancer(cfg.LimitPerCategory),
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// Discover выполняет поиск провайдеров вокруг точки наблюдателя.
// Пустая выдача - не ошибка: валидный запрос без совпадений возвращает
// пустой список. Отказ хранилища всплывает как есть, без повторов:
// результаты близости чувствительны ко времени, и поздний повтор хуже
// быстрого отказа.
func (uc *DiscoveryUseCase) Discover(ctx context.Context, req dto.DiscoverRequest) (*dto.DiscoverResponse, error) {
	origin := domain.Point{Lat: req.Lat, Lon: req.Lon}

	mode := domain.Mode(req.Mode)
	if mode == "" {
		mode = domain.ModeMap
	}
	sortBy := domain.SortMode(req.SortBy)
	if sortBy == "" {
		sortBy = domain.SortByDistance
	}

	plan, err := uc.planner.Plan(origin, req.DetailLevel, req.Category, mode)
	if err != nil {
		return nil, err
	}

	// Try cache first
	cacheKey := uc.cacheKey(req, mode, sortBy)
	if cached := uc.getCached(ctx, cacheKey); cached != nil {
		cached.Seq = req.Seq
		return cached, nil
	}

	items, err := uc.executePlan(ctx, origin, plan, mode)
	if err != nil {
		return nil, err
	}

	// Price estimation needs category tariffs; a failed lookup degrades to
	// platform defaults instead of failing the whole search
	tariffs, err := uc.tariffRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Warn("Failed to load tariffs, using platform defaults", zap.Error(err))
		tariffs = nil
	}
	for i := range items {
		items[i].EstimatedPrice = EstimatePrice(items[i].Provider, items[i].Distance, tariffs)
	}

	if plan.Strategy == domain.StrategyFeed {
		items = uc.feed.Balance(items)
	}
	SortItems(items, sortBy)

	resp := &dto.DiscoverResponse{
		Items:    make([]dto.DiscoveryItem, 0, len(items)),
		Strategy: string(plan.Strategy),
		Mode:     string(mode),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.DiscoveryItem{
			ID:             item.Provider.ID,
			Name:           item.Provider.Name,
			MainType:       string(item.Provider.MainType),
			SubType:        item.Provider.SubType,
			Lat:            item.Provider.Lat,
			Lon:            item.Provider.Lon,
			Rating:         item.Provider.Rating,
			Distance:       item.Distance,
			EstimatedPrice: item.EstimatedPrice,
		})
	}
	resp.Total = len(resp.Items)

	uc.setCached(ctx, cacheKey, resp)

	// Seq is echoed, never cached: last-request-wins on the caller side
	resp.Seq = req.Seq
	return resp, nil
}

// executePlan выполняет выбранную стратегию против хранилища провайдеров
func (uc *DiscoveryUseCase) executePlan(
	ctx context.Context,
	origin domain.Point,
	plan *QueryPlan,
	mode domain.Mode,
) ([]domain.ResultItem, error) {
	var providers []*domain.Provider
	var err error

	switch plan.Strategy {
	case domain.StrategyGrid:
		providers, err = uc.providerRepo.GetNearbyGrouped(
			ctx, origin.Lat, origin.Lon, plan.RadiusKm, plan.Match, plan.GridPrecision,
		)
	case domain.StrategyFeed:
		// Глобальная полоса покрывает весь каталог - берём неограниченный скан,
		// иначе обычный радиусный запрос
		if uc.planner.IsGlobalRadius(plan.RadiusKm) {
			providers, err = uc.providerRepo.GetAll(ctx, plan.Match)
		} else {
			providers, err = uc.providerRepo.GetNearby(
				ctx, origin.Lat, origin.Lon, plan.RadiusKm, plan.Match, plan.Cap,
			)
		}
	default:
		providers, err = uc.providerRepo.GetNearby(
			ctx, origin.Lat, origin.Lon, plan.RadiusKm, plan.Match, plan.Cap,
		)
	}
	if err != nil {
		uc.logger.Error("Provider store query failed",
			zap.String("strategy", string(plan.Strategy)),
			zap.Error(err))
		return nil, err
	}

	items := uc.toResultItems(origin, providers)

	// Хранилище уже группирует по ячейкам, но инвариант "одна запись на
	// (категория, ячейка)" гарантирует локальный проход, а не контракт БД
	if plan.Strategy == domain.StrategyGrid {
		items = uc.grid.Aggregate(items, plan.GridPrecision)
	}

	if len(items) > plan.Cap {
		items = items[:plan.Cap]
	}
	return items, nil
}

// Quote оценивает стоимость вызова конкретного провайдера из заданной точки
func (uc *DiscoveryUseCase) Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidLocation
	}

	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}

	tariffs, err := uc.tariffRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Warn("Failed to load tariffs, using platform defaults", zap.Error(err))
		tariffs = nil
	}

	distance := utils.HaversineDistance(req.Lat, req.Lon, provider.Lat, provider.Lon) * 1000 // to meters

	return &dto.QuoteResponse{
		ProviderID:     provider.ID,
		Name:           provider.Name,
		Distance:       distance,
		EstimatedPrice: EstimatePrice(*provider, distance, tariffs),
	}, nil
}

// Categories возвращает версионированную таблицу нормализации категорий
func (uc *DiscoveryUseCase) Categories(ctx context.Context) *dto.CategoriesResponse {
	synonyms := domain.MainTypeSynonyms()

	byMain := make(map[domain.MainType][]string)
	for token, mt := range synonyms {
		byMain[mt] = append(byMain[mt], token)
	}

	resp := &dto.CategoriesResponse{
		Version:    domain.CategoryTableVersion,
		Categories: make([]dto.CategoryDTO, 0, len(domain.MainTypes)),
	}
	for _, mt := range domain.MainTypes {
		tokens := byMain[mt]
		sort.Strings(tokens)
		resp.Categories = append(resp.Categories, dto.CategoryDTO{
			MainType: string(mt),
			Synonyms: tokens,
		})
	}
	return resp
}

func (uc *DiscoveryUseCase) toResultItems(origin domain.Point, providers []*domain.Provider) []domain.ResultItem {
	items := make([]domain.ResultItem, 0, len(providers))
	for _, p := range providers {
		distance := utils.HaversineDistance(origin.Lat, origin.Lon, p.Lat, p.Lon) * 1000 // to meters
		items = append(items, domain.ResultItem{
			Provider: *p,
			Distance: distance,
		})
	}
	return items
}

// cacheKey строит ключ кеша выдачи. Точка наблюдателя округляется до ячейки
// в 1 знак, чтобы соседние запросы при панорамировании попадали в один ключ,
// а воркер инвалидации мог сбрасывать кеш по префиксу ячейки.
func (uc *DiscoveryUseCase) cacheKey(req dto.DiscoverRequest, mode domain.Mode, sortBy domain.SortMode) string {
	return fmt.Sprintf("discovery:cell:%.1f:%.1f:d%d:%s:%s:%s",
		utils.RoundCoord(req.Lat, 1),
		utils.RoundCoord(req.Lon, 1),
		req.DetailLevel,
		req.Category,
		mode,
		sortBy,
	)
}

func (uc *DiscoveryUseCase) getCached(ctx context.Context, key string) *dto.DiscoverResponse {
	if uc.cacheRepo == nil {
		return nil
	}
	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}
	var resp dto.DiscoverResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		uc.logger.Warn("Failed to unmarshal cached discovery response", zap.Error(err))
		return nil
	}
	return &resp
}

func (uc *DiscoveryUseCase) setCached(ctx context.Context, key string, resp *dto.DiscoverResponse) {
	if uc.cacheRepo == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache discovery response", zap.Error(err))
	}
}
