package domain

import "github.com/google/uuid"

// Stream names (должны совпадать с сервисом управления провайдерами)
const (
	StreamProviderLocation = "stream:provider:location"
)

// ProviderLocationEvent - событие смены координат провайдера.
// Ядро поиска не изменяет провайдеров само, но сбрасывает кеш выдачи
// для затронутых ячеек.
type ProviderLocationEvent struct {
	ProviderID uuid.UUID `json:"provider_id"`
	MainType   MainType  `json:"main_type"`
	OldLat     *float64  `json:"old_lat,omitempty"`
	OldLon     *float64  `json:"old_lon,omitempty"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
