// Package mapview - клиентский движок отрисовки карты: кластеризация
// маркеров одной подкатегории и кеш иконок. Пакет не делает I/O и не
// знает о транспорте - он работает над готовой выдачей поиска.
package mapview

import (
	"math"

	"github.com/provider-discovery/internal/domain"
)

// Config - настройки движка. Значения должны браться из той же таблицы
// плотности, что и серверные радиусы/лимиты (config.DiscoveryConfig),
// иначе слои разъедутся при подстройке.
type Config struct {
	// BaseUnit - базовая единица порога кластеризации в градусах
	BaseUnit float64

	// ExpandedDetail - уровень детализации, начиная с которого каждая
	// позиция рендерится отдельно
	ExpandedDetail int

	// ExpansionStep - прибавка к уровню детализации при раскрытии кластера
	ExpansionStep int

	// MaxDetail - верхняя граница уровня детализации
	MaxDetail int
}

// DefaultConfig - настройки движка по умолчанию, зеркало config.DefaultDiscovery
func DefaultConfig() Config {
	return Config{
		BaseUnit:       10.0,
		ExpandedDetail: 14,
		ExpansionStep:  3,
		MaxDetail:      18,
	}
}

// ClusterNode - синтетический узел: две и более позиций одной подкатегории
// в пределах порога. Узел не владеет провайдерами - это представление над
// подмножеством выдачи, пересобираемое на каждую отрисовку.
type ClusterNode struct {
	// Anchor - точка первого члена группы
	Anchor   domain.Point
	MainType domain.MainType
	SubType  string
	Count    int

	// ExpansionDetailLevel - уровень детализации, на который прыгает карта
	// при выборе кластера; к этому уровню порог гарантированно распустит группу
	ExpansionDetailLevel int

	MemberIDs []string
}

// RenderSet - результат одного прохода кластеризации: разбиение входа
// на одиночные маркеры и кластеры без дублей и потерь
type RenderSet struct {
	Singles  []domain.ResultItem
	Clusters []ClusterNode
}

// Engine - движок кластеризации. Сам по себе без состояния: единственное
// разделяемое изменяемое состояние клиентского пути - кеш иконок.
type Engine struct {
	cfg   Config
	icons *IconCache
}

// NewEngine - создание нового Engine. Кеш иконок инжектируется снаружи,
// чтобы тесты могли собирать свежий кеш на каждый кейс.
func NewEngine(cfg Config, icons *IconCache) *Engine {
	if icons == nil {
		icons = NewIconCache()
	}
	return &Engine{cfg: cfg, icons: icons}
}

// Icons возвращает кеш иконок движка
func (e *Engine) Icons() *IconCache {
	return e.icons
}

// Threshold возвращает порог кластеризации в градусах для уровня детализации:
// base / 2^detail. Порог половинится с каждым шагом приближения, поэтому
// кластеры распускаются плавно, а не скачком.
func (e *Engine) Threshold(detailLevel int) float64 {
	return e.cfg.BaseUnit / math.Pow(2, float64(detailLevel))
}

// Expanded проверяет, что на данном уровне детализации кластеризация выключена
func (e *Engine) Expanded(detailLevel int) bool {
	return detailLevel >= e.cfg.ExpandedDetail
}

// Build выполняет один проход кластеризации. Жадный одиночный проход:
// для каждой непоглощённой позиции собираются все непоглощённые позиции
// той же подкатегории в пределах порога по обеим осям; группа из двух и
// более членов становится кластером, иначе позиция рендерится одиночно.
//
// Активная позиция (activeID) всегда исключается из кластеризации -
// выбранный пользователем маркер не должен исчезать в кластере.
//
// Проход детерминирован и идемпотентен: одинаковый вход (та же выдача,
// тот же уровень, тот же activeID) даёт одинаковое разбиение.
func (e *Engine) Build(items []domain.ResultItem, detailLevel int, activeID string) RenderSet {
	out := RenderSet{
		Singles:  make([]domain.ResultItem, 0, len(items)),
		Clusters: nil,
	}
	if len(items) == 0 {
		return out
	}

	if e.Expanded(detailLevel) {
		out.Singles = append(out.Singles, items...)
		return out
	}

	threshold := e.Threshold(detailLevel)
	consumed := make([]bool, len(items))

	for i, item := range items {
		if consumed[i] {
			continue
		}
		if item.Provider.ID == activeID {
			consumed[i] = true
			out.Singles = append(out.Singles, item)
			continue
		}

		group := []int{i}
		for j := i + 1; j < len(items); j++ {
			if consumed[j] {
				continue
			}
			other := items[j]
			if other.Provider.ID == activeID {
				continue
			}
			if other.Provider.SubType != item.Provider.SubType {
				continue
			}
			if math.Abs(other.Provider.Lat-item.Provider.Lat) <= threshold &&
				math.Abs(other.Provider.Lon-item.Provider.Lon) <= threshold {
				group = append(group, j)
			}
		}

		if len(group) < 2 {
			consumed[i] = true
			out.Singles = append(out.Singles, item)
			continue
		}

		node := ClusterNode{
			Anchor:               item.Provider.Location(),
			MainType:             item.Provider.MainType,
			SubType:              item.Provider.SubType,
			Count:                len(group),
			ExpansionDetailLevel: e.expansionLevel(detailLevel),
			MemberIDs:            make([]string, 0, len(group)),
		}
		for _, idx := range group {
			consumed[idx] = true
			node.MemberIDs = append(node.MemberIDs, items[idx].Provider.ID)
		}
		out.Clusters = append(out.Clusters, node)
	}

	return out
}

func (e *Engine) expansionLevel(detailLevel int) int {
	level := detailLevel + e.cfg.ExpansionStep
	if level > e.cfg.MaxDetail {
		level = e.cfg.MaxDetail
	}
	return level
}

// MarkerIcon возвращает иконку одиночного маркера через кеш
func (e *Engine) MarkerIcon(item domain.ResultItem, active bool) *Icon {
	return e.icons.Marker(item.Provider.SubType, active)
}

// ClusterIcon возвращает бейдж кластера через кеш
func (e *Engine) ClusterIcon(node ClusterNode) *Icon {
	return e.icons.Badge(node.MainType, node.Count)
}
