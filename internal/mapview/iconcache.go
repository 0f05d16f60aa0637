package mapview

import (
	"fmt"
	"sync"

	"github.com/provider-discovery/internal/domain"
)

// Icon - визуальный актив маркера. Сборка актива дороже его переиспользования,
// содержимое полностью определяется ключом.
type Icon struct {
	Glyph  string
	Label  string
	Size   int
	Active bool
}

type markerKey struct {
	subType string
	active  bool
}

type badgeKey struct {
	mainType domain.MainType
	count    int
}

// IconCache - кеш визуальных активов. Чисто ускоряющий механизм: промах
// кеша не меняет корректность, только стоимость перерисовки. Кеш живёт
// время процесса, заполняется лениво и никогда не вычищается - пространство
// ключей ограничено числом подкатегорий.
//
// Записи идемпотентны (один ключ всегда даёт один и тот же актив), поэтому
// гонка заполнения одного ключа безопасна; мьютекс защищает сами map.
type IconCache struct {
	mu      sync.RWMutex
	markers map[markerKey]*Icon
	badges  map[badgeKey]*Icon
}

// NewIconCache - создание нового пустого кеша иконок.
// Кеш явный и инжектируемый, не скрытый синглтон: тесты собирают свежий
// кеш на каждый кейс.
func NewIconCache() *IconCache {
	return &IconCache{
		markers: make(map[markerKey]*Icon),
		badges:  make(map[badgeKey]*Icon),
	}
}

// Marker возвращает иконку одиночного маркера для (подкатегория, активность)
func (c *IconCache) Marker(subType string, active bool) *Icon {
	key := markerKey{subType: subType, active: active}

	c.mu.RLock()
	icon, ok := c.markers[key]
	c.mu.RUnlock()
	if ok {
		return icon
	}

	icon = buildMarkerIcon(subType, active)

	c.mu.Lock()
	// Повторная проверка: конкурентная отрисовка могла успеть первой,
	// возвращаем уже сохранённый актив
	if existing, ok := c.markers[key]; ok {
		c.mu.Unlock()
		return existing
	}
	c.markers[key] = icon
	c.mu.Unlock()
	return icon
}

// Badge возвращает бейдж кластера для (категория, количество)
func (c *IconCache) Badge(mainType domain.MainType, count int) *Icon {
	key := badgeKey{mainType: mainType, count: count}

	c.mu.RLock()
	icon, ok := c.badges[key]
	c.mu.RUnlock()
	if ok {
		return icon
	}

	icon = buildBadgeIcon(mainType, count)

	c.mu.Lock()
	if existing, ok := c.badges[key]; ok {
		c.mu.Unlock()
		return existing
	}
	c.badges[key] = icon
	c.mu.Unlock()
	return icon
}

// Len возвращает число записей в кеше (для тестов и метрик)
func (c *IconCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.markers) + len(c.badges)
}

func buildMarkerIcon(subType string, active bool) *Icon {
	size := 32
	if active {
		size = 44
	}
	return &Icon{
		Glyph:  fmt.Sprintf("marker:%s", subType),
		Label:  subType,
		Size:   size,
		Active: active,
	}
}

func buildBadgeIcon(mainType domain.MainType, count int) *Icon {
	return &Icon{
		Glyph: fmt.Sprintf("badge:%s", mainType),
		Label: fmt.Sprintf("%d", count),
		Size:  40,
	}
}
