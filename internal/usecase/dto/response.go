package dto

// DiscoveryItem - одна позиция выдачи с производными полями запроса
type DiscoveryItem struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	MainType       string  `json:"main_type"`
	SubType        string  `json:"sub_type"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Rating         float64 `json:"rating"`
	Distance       float64 `json:"distance"` // meters
	EstimatedPrice float64 `json:"estimated_price"`

	// Кластерные поля заполняются только клиентским движком рендера
	IsCluster            bool `json:"is_cluster"`
	Count                int  `json:"count,omitempty"`
	ExpansionDetailLevel int  `json:"expansion_detail_level,omitempty"`
}

// DiscoverResponse - ответ на поиск провайдеров
type DiscoverResponse struct {
	Items    []DiscoveryItem `json:"items"`
	Total    int             `json:"total"`
	Strategy string          `json:"strategy"`
	Mode     string          `json:"mode"`
	Seq      int64           `json:"seq,omitempty"`
}

// QuoteResponse - оценка стоимости для конкретного провайдера
type QuoteResponse struct {
	ProviderID     string  `json:"provider_id"`
	Name           string  `json:"name"`
	Distance       float64 `json:"distance"` // meters
	EstimatedPrice float64 `json:"estimated_price"`
}

// CategoryDTO - каноническая категория с её синонимами
type CategoryDTO struct {
	MainType string   `json:"main_type"`
	Synonyms []string `json:"synonyms"`
}

// CategoriesResponse - таблица нормализации категорий
type CategoriesResponse struct {
	Version    string        `json:"version"`
	Categories []CategoryDTO `json:"categories"`
}

// RenderMarker - одиночный маркер в отладочном рендере
type RenderMarker struct {
	ID       string  `json:"id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	MainType string  `json:"main_type"`
	SubType  string  `json:"sub_type"`
	IsActive bool    `json:"is_active"`
	Glyph    string  `json:"glyph"`
}

// RenderCluster - кластерный узел в отладочном рендере
type RenderCluster struct {
	Lat                  float64  `json:"lat"`
	Lon                  float64  `json:"lon"`
	MainType             string   `json:"main_type"`
	SubType              string   `json:"sub_type"`
	Count                int      `json:"count"`
	ExpansionDetailLevel int      `json:"expansion_detail_level"`
	MemberIDs            []string `json:"member_ids"`
	Glyph                string   `json:"glyph"`
}

// RenderResponse - результат кластеризации одной отрисовки
type RenderResponse struct {
	Markers   []RenderMarker  `json:"markers"`
	Clusters  []RenderCluster `json:"clusters"`
	Threshold float64         `json:"threshold"` // degrees
	Expanded  bool            `json:"expanded"`
}
