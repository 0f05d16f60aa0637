package dto

// DiscoverRequest - запрос на поиск провайдеров вокруг точки наблюдателя
// Диапазоны координат и уровня детализации проверяет планировщик - оттуда
// приходят коды INVALID_LOCATION / INVALID_DETAIL_LEVEL вместо общего
// INVALID_REQUEST
type DiscoverRequest struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DetailLevel int     `json:"detail_level"`
	Category    string  `json:"category,omitempty"`
	Mode        string  `json:"mode,omitempty" validate:"omitempty,oneof=map list"`
	SortBy      string  `json:"sort_by,omitempty" validate:"omitempty,oneof=distance rating price_asc price_desc"`

	// Seq - порядковый номер запроса, возвращается в ответе как есть.
	// Отмены запросов нет: клиент отбрасывает ответы с устаревшим Seq
	// (last-request-wins)
	Seq int64 `json:"seq,omitempty"`
}

// QuoteRequest - запрос оценки стоимости для конкретного провайдера
type QuoteRequest struct {
	ProviderID string  `json:"provider_id" validate:"required"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

// RenderItemInput - позиция выдачи для отладочной кластеризации
type RenderItemInput struct {
	ID       string  `json:"id" validate:"required"`
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	Lon      float64 `json:"lon" validate:"min=-180,max=180"`
	MainType string  `json:"main_type"`
	SubType  string  `json:"sub_type"`
}

// RenderRequest - запрос отладочного рендера: позиции плюс состояние карты
type RenderRequest struct {
	Items       []RenderItemInput `json:"items" validate:"required,dive"`
	DetailLevel int               `json:"detail_level" validate:"min=0,max=18"`
	ActiveID    string            `json:"active_id,omitempty"`
}
