package repository

import (
	"context"

	"github.com/provider-discovery/internal/domain"
)

// TariffRepository - доступ к тарифам категорий
type TariffRepository interface {
	// GetByMainType возвращает тариф категории или nil, если тариф не задан
	GetByMainType(ctx context.Context, mainType domain.MainType) (*domain.Tariff, error)

	// GetAll возвращает тарифы всех категорий одной выборкой
	GetAll(ctx context.Context) (map[domain.MainType]domain.Tariff, error)
}
