package usecase

import (
	"sort"

	"github.com/provider-discovery/internal/domain"
)

// FeedBalancer собирает ленточную выдачу, которая не выглядит монотонной,
// даже когда одна категория доминирует в сырых кандидатах: квоты на группу
// ограничивают доминирование, финальная сортировка возвращает близость.
type FeedBalancer struct {
	LimitPerCategory int
}

// NewFeedBalancer - создание нового FeedBalancer
func NewFeedBalancer(limitPerCategory int) FeedBalancer {
	if limitPerCategory <= 0 {
		limitPerCategory = 5
	}
	return FeedBalancer{LimitPerCategory: limitPerCategory}
}

// Balance оставляет не более LimitPerCategory ближайших позиций на основную
// категорию и пересортировывает результат по расстоянию (тай-брейк по id).
// Пустых заглушек балансировщик никогда не добавляет: если в категории
// кандидатов меньше квоты, остаются все.
func (b FeedBalancer) Balance(items []domain.ResultItem) []domain.ResultItem {
	limit := b.LimitPerCategory
	if limit <= 0 {
		limit = 5
	}

	// Квота выбирает ближайших, поэтому сначала упорядочиваем по расстоянию
	sorted := make([]domain.ResultItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Distance != sorted[j].Distance {
			return sorted[i].Distance < sorted[j].Distance
		}
		return sorted[i].Provider.ID < sorted[j].Provider.ID
	})

	taken := make(map[domain.MainType]int)
	out := make([]domain.ResultItem, 0, len(sorted))
	for _, item := range sorted {
		if taken[item.Provider.MainType] >= limit {
			continue
		}
		taken[item.Provider.MainType]++
		out = append(out, item)
	}

	return out
}
