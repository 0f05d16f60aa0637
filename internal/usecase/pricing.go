package usecase

import (
	"math"
	"sort"

	"github.com/provider-discovery/internal/domain"
)

// EstimatePrice выводит оценку стоимости: плата за подачу плюс цена за км,
// умноженная на расстояние. Нижняя граница max(1, км) гарантирует минимальный
// тариф одной единицы - нулевая котировка на почти нулевом расстоянии
// выглядит для пользователя как битые данные.
//
// Источник цены по каждому полю: собственный прайс провайдера ->
// тариф категории -> платформенный тариф по умолчанию.
func EstimatePrice(
	p domain.Provider,
	distanceMeters float64,
	tariffs map[domain.MainType]domain.Tariff,
) float64 {
	openingFee := domain.DefaultTariff.OpeningFee
	pricePerKm := domain.DefaultTariff.PricePerKm

	if t, ok := tariffs[p.MainType]; ok {
		openingFee = t.OpeningFee
		pricePerKm = t.PricePerKm
	}
	if p.OpeningFee != nil {
		openingFee = *p.OpeningFee
	}
	if p.PricePerKm != nil {
		pricePerKm = *p.PricePerKm
	}

	units := math.Max(1, distanceMeters/1000)
	return openingFee + units*pricePerKm
}

// SortItems упорядочивает выдачу по выбранному режиму. Порядок тотальный:
// вторичный ключ - расстояние, финальный тай-брейк - id, чтобы результат
// был воспроизводим между запусками.
func SortItems(items []domain.ResultItem, mode domain.SortMode) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]

		switch mode {
		case domain.SortByRating:
			// Unrated providers carry rating 0
			if a.Provider.Rating != b.Provider.Rating {
				return a.Provider.Rating > b.Provider.Rating
			}
		case domain.SortByPriceAsc:
			if a.EstimatedPrice != b.EstimatedPrice {
				return a.EstimatedPrice < b.EstimatedPrice
			}
		case domain.SortByPriceDesc:
			if a.EstimatedPrice != b.EstimatedPrice {
				return a.EstimatedPrice > b.EstimatedPrice
			}
		}

		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		return a.Provider.ID < b.Provider.ID
	})
}
