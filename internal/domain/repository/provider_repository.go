package repository

import (
	"context"

	"github.com/provider-discovery/internal/domain"
)

// ProviderRepository - доступ к хранилищу провайдеров (только чтение)
type ProviderRepository interface {
	// GetByID возвращает провайдера по идентификатору
	GetByID(ctx context.Context, id string) (*domain.Provider, error)

	// GetNearby возвращает провайдеров в радиусе от точки,
	// отсортированных по расстоянию (тай-брейк по id), не более limit
	GetNearby(ctx context.Context, lat, lon, radiusKm float64, match domain.CategoryMatch, limit int) ([]*domain.Provider, error)

	// GetNearbyGrouped возвращает по одному ближайшему провайдеру на пару
	// (основная категория, ячейка сетки с заданной точностью округления)
	GetNearbyGrouped(ctx context.Context, lat, lon, radiusKm float64, match domain.CategoryMatch, precision int) ([]*domain.Provider, error)

	// GetAll возвращает всех провайдеров под фильтром (неограниченный скан,
	// используется только пре-фильтром ленточной выдачи)
	GetAll(ctx context.Context, match domain.CategoryMatch) ([]*domain.Provider, error)
}
