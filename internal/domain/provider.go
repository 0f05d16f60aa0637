package domain

import "time"

// MainType - закрытое перечисление основных категорий услуг
type MainType string

const (
	MainTypeRescue    MainType = "RESCUE"
	MainTypeFreight   MainType = "FREIGHT"
	MainTypeCharge    MainType = "CHARGE"
	MainTypePassenger MainType = "PASSENGER"
)

// MainTypes - все основные категории в стабильном порядке
var MainTypes = []MainType{
	MainTypeRescue,
	MainTypeFreight,
	MainTypeCharge,
	MainTypePassenger,
}

// IsValidMainType проверяет, что токен является основной категорией
func IsValidMainType(s string) bool {
	switch MainType(s) {
	case MainTypeRescue, MainTypeFreight, MainTypeCharge, MainTypePassenger:
		return true
	}
	return false
}

// Provider представляет исполнителя услуги. Ядро поиска никогда не изменяет
// запись провайдера - создание и обновление живут в отдельном сервисе.
type Provider struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	MainType    MainType `json:"main_type" db:"main_type"`
	SubType     string   `json:"sub_type" db:"sub_type"`
	Tags        []string `json:"tags,omitempty" db:"tags"`
	Lat         float64  `json:"lat" db:"lat"`
	Lon         float64  `json:"lon" db:"lon"`
	OpeningFee  *float64 `json:"opening_fee,omitempty" db:"opening_fee"`
	PricePerKm  *float64 `json:"price_per_km,omitempty" db:"price_per_km"`
	Rating      float64  `json:"rating" db:"rating"`
	RatingCount int      `json:"rating_count" db:"rating_count"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Location возвращает координаты провайдера
func (p *Provider) Location() Point {
	return Point{Lat: p.Lat, Lon: p.Lon}
}

// Tariff - пара (плата за подачу, цена за км) для оценки стоимости
type Tariff struct {
	MainType   MainType `json:"main_type" db:"main_type"`
	OpeningFee float64  `json:"opening_fee" db:"opening_fee"`
	PricePerKm float64  `json:"price_per_km" db:"price_per_km"`
}

// DefaultTariff - платформенный тариф по умолчанию, применяется когда
// ни у провайдера, ни у категории нет собственной цены
var DefaultTariff = Tariff{
	OpeningFee: 250,
	PricePerKm: 25,
}
