package usecase

import (
	"sort"

	"github.com/provider-discovery/internal/domain"
	"github.com/provider-discovery/internal/pkg/utils"
)

// gridKey - ячейка сетки: основная категория плюс округлённые координаты
type gridKey struct {
	mainType domain.MainType
	lat      float64
	lon      float64
}

// GridAggregator ограничивает число точек на общем плане карты: по одному
// представителю на пару (категория, ячейка сетки). Остальные члены группы
// не удаляются - они лишь исключаются из данной выдачи.
type GridAggregator struct{}

// Aggregate группирует уже отфильтрованных по радиусу кандидатов по ячейкам
// и оставляет в каждой группе ближайшего к точке наблюдателя (тай-брейк по id).
// Результат отсортирован по расстоянию по возрастанию.
func (GridAggregator) Aggregate(items []domain.ResultItem, precision int) []domain.ResultItem {
	best := make(map[gridKey]domain.ResultItem)

	for _, item := range items {
		key := gridKey{
			mainType: item.Provider.MainType,
			lat:      utils.RoundCoord(item.Provider.Lat, precision),
			lon:      utils.RoundCoord(item.Provider.Lon, precision),
		}

		cur, ok := best[key]
		if !ok {
			best[key] = item
			continue
		}
		if item.Distance < cur.Distance ||
			(item.Distance == cur.Distance && item.Provider.ID < cur.Provider.ID) {
			best[key] = item
		}
	}

	out := make([]domain.ResultItem, 0, len(best))
	for _, item := range best {
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Provider.ID < out[j].Provider.ID
	})

	return out
}
