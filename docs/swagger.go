// Package docs Provider Discovery API.
//
// Сервис поиска ближайших исполнителей услуг по живой геолокации:
// эвакуация, грузоперевозки, мобильная зарядка, пассажирские перевозки.
//
// Основные возможности:
// - Поиск провайдеров вокруг точки с учётом уровня детализации карты
// - Grid-агрегация выдачи на общих планах ("умная карта")
// - Сбалансированная ленточная выдача с квотами на категорию
// - Оценка стоимости по тарифам категорий
// - Отладочная кластеризация маркеров
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
