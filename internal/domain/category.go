package domain

import "strings"

// CategoryTableVersion - версия таблицы нормализации категорий.
// Таблица - конфигурационный артефакт: синонимы перечислены явно,
// а не выводятся из данных.
const CategoryTableVersion = "2025-08-01"

// mainTypeSynonyms - канонизация свободного текста в основную категорию
var mainTypeSynonyms = map[string]MainType{
	"rescue":    MainTypeRescue,
	"tow":       MainTypeRescue,
	"towing":    MainTypeRescue,
	"cekici":    MainTypeRescue,
	"crane":     MainTypeRescue,
	"vinc":      MainTypeRescue,
	"recovery":  MainTypeRescue,
	"kurtarma":  MainTypeRescue,
	"kurtarici": MainTypeRescue,

	"freight": MainTypeFreight,
	"cargo":   MainTypeFreight,
	"nakliye": MainTypeFreight,
	"truck":   MainTypeFreight,
	"kamyon":  MainTypeFreight,

	"charge":        MainTypeCharge,
	"charging":      MainTypeCharge,
	"sarj":          MainTypeCharge,
	"mobile-charge": MainTypeCharge,
	"battery":       MainTypeCharge,
	"aku":           MainTypeCharge,

	"passenger": MainTypePassenger,
	"taxi":      MainTypePassenger,
	"transfer":  MainTypePassenger,
	"shuttle":   MainTypePassenger,
	"vip":       MainTypePassenger,
}

// knownSubTypes - подкатегории, для которых действует точное совпадение.
// Все прочие токены сравниваются с sub_type подстрокой без учёта регистра.
var knownSubTypes = map[string]struct{}{
	"frigorifik":     {},
	"6-axle":         {},
	"8-axle":         {},
	"flatbed":        {},
	"lowbed":         {},
	"mobile-unit":    {},
	"motorcycle-tow": {},
	"heavy-tow":      {},
	"minibus":        {},
	"panelvan":       {},
}

// CategoryMatch - результат нормализации фильтра категории.
// Заполнено ровно одно из трёх полей; пустая структура означает отсутствие фильтра.
type CategoryMatch struct {
	// MainType - точное совпадение по основной категории
	MainType MainType

	// SubType - точное совпадение по подкатегории
	SubType string

	// Substring - фолбэк: подстрока sub_type без учёта регистра
	Substring string
}

// IsZero проверяет, что фильтр не задан
func (m CategoryMatch) IsZero() bool {
	return m.MainType == "" && m.SubType == "" && m.Substring == ""
}

// NormalizeCategory приводит свободный токен фильтра к условию сопоставления.
// Порядок: основная категория как есть -> синоним основной категории ->
// известная подкатегория -> подстрочный фолбэк.
func NormalizeCategory(token string) CategoryMatch {
	token = strings.TrimSpace(token)
	if token == "" {
		return CategoryMatch{}
	}

	if IsValidMainType(strings.ToUpper(token)) {
		return CategoryMatch{MainType: MainType(strings.ToUpper(token))}
	}

	lower := strings.ToLower(token)
	if mt, ok := mainTypeSynonyms[lower]; ok {
		return CategoryMatch{MainType: mt}
	}

	if _, ok := knownSubTypes[lower]; ok {
		return CategoryMatch{SubType: lower}
	}

	return CategoryMatch{Substring: lower}
}

// MainTypeSynonyms возвращает копию таблицы синонимов для выдачи наружу
func MainTypeSynonyms() map[string]MainType {
	out := make(map[string]MainType, len(mainTypeSynonyms))
	for k, v := range mainTypeSynonyms {
		out[k] = v
	}
	return out
}
