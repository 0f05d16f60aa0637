package domain

// Mode - режим потребления выдачи
type Mode string

const (
	ModeMap  Mode = "map"
	ModeList Mode = "list"
)

// SortMode - режим сортировки выдачи
type SortMode string

const (
	SortByDistance  SortMode = "distance"
	SortByRating    SortMode = "rating"
	SortByPriceAsc  SortMode = "price_asc"
	SortByPriceDesc SortMode = "price_desc"
)

// Strategy - стратегия запроса к хранилищу провайдеров
type Strategy string

const (
	StrategyRadius Strategy = "radius"
	StrategyGrid   Strategy = "grid"
	StrategyFeed   Strategy = "feed"
)

// SearchRequest - одноразовый запрос поиска: точка наблюдателя, уровень
// детализации (меньше - более общий план), фильтр категории и режим
type SearchRequest struct {
	Origin         Point
	DetailLevel    int
	CategoryFilter string
	Mode           Mode
	SortBy         SortMode
}

// ResultItem - провайдер с производными полями запроса. Distance и
// EstimatedPrice вычисляются на каждый запрос и нигде не сохраняются.
type ResultItem struct {
	Provider       Provider
	Distance       float64 // meters from origin
	EstimatedPrice float64
}
