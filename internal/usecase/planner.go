package usecase

import (
	"github.com/provider-discovery/internal/config"
	"github.com/provider-discovery/internal/domain"
	"github.com/provider-discovery/internal/pkg/errors"
	"github.com/provider-discovery/internal/pkg/utils"
)

// QueryPlan - результат планирования: радиус, лимит и стратегия запроса
// к хранилищу провайдеров
type QueryPlan struct {
	RadiusKm      float64
	Cap           int
	Strategy      domain.Strategy
	Match         domain.CategoryMatch
	GridPrecision int
}

// QueryPlanner переводит (точка, уровень детализации, фильтр категории)
// в стратегию запроса. Один фиксированный радиус либо морит голодом
// разреженные регионы на общем плане, либо заливает плотные на крупном,
// поэтому полосы детализации задают пары радиус/лимит.
type QueryPlanner struct {
	cfg config.DiscoveryConfig
}

// NewQueryPlanner - создание нового QueryPlanner
func NewQueryPlanner(cfg config.DiscoveryConfig) *QueryPlanner {
	return &QueryPlanner{cfg: cfg}
}

// Plan строит план запроса. Невалидные координаты отклоняются до обращения
// к хранилищу; повторов планировщик не делает - вызывающая сторона обязана
// прислать валидную точку заново.
func (p *QueryPlanner) Plan(
	origin domain.Point,
	detailLevel int,
	categoryFilter string,
	mode domain.Mode,
) (*QueryPlan, error) {
	if !utils.ValidateCoordinates(origin.Lat, origin.Lon) {
		return nil, errors.ErrInvalidLocation
	}
	if !utils.ValidateDetailLevel(detailLevel) {
		return nil, errors.ErrInvalidDetailLevel
	}

	band := p.band(detailLevel)

	plan := &QueryPlan{
		RadiusKm:      band.RadiusKm,
		Cap:           band.Cap,
		Match:         domain.NormalizeCategory(categoryFilter),
		GridPrecision: p.GridPrecision(detailLevel),
	}

	switch {
	case detailLevel < p.cfg.GridDetailThreshold:
		plan.Strategy = domain.StrategyGrid
	case mode == domain.ModeList:
		plan.Strategy = domain.StrategyFeed
	default:
		plan.Strategy = domain.StrategyRadius
	}

	return plan, nil
}

// GridPrecision возвращает число знаков округления координат ячейки сетки:
// более общий план - более грубая сетка
func (p *QueryPlanner) GridPrecision(detailLevel int) int {
	if detailLevel < p.cfg.GridFineDetail {
		return 1
	}
	return 2
}

// IsGlobalRadius проверяет, покрывает ли радиус полосы весь каталог
func (p *QueryPlanner) IsGlobalRadius(radiusKm float64) bool {
	return radiusKm >= p.cfg.Bands[len(p.cfg.Bands)-1].RadiusKm
}

func (p *QueryPlanner) band(detailLevel int) config.DetailBand {
	// Bands отсортированы по MinDetail по убыванию, первая подошедшая выигрывает
	for _, b := range p.cfg.Bands {
		if detailLevel >= b.MinDetail {
			return b
		}
	}
	return p.cfg.Bands[len(p.cfg.Bands)-1]
}
