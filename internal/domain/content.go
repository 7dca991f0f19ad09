package domain

import "strings"

// HexContent - что лежит в гексе (открывается при исследовании)
type HexContent uint8

const (
	ContentClear HexContent = iota
	ContentHomeworld
	ContentPlanetStandard
	ContentPlanetBarren
	ContentMinerals
	ContentSupernova
	ContentHorror
)

// Маппинг для конвертации снапшот -> Domain
var contentStringToValue = map[string]HexContent{
	"CLEAR":           ContentClear,
	"HOMEWORLD":       ContentHomeworld,
	"PLANET_STANDARD": ContentPlanetStandard,
	"PLANET_BARREN":   ContentPlanetBarren,
	"MINERALS":        ContentMinerals,
	"SUPERNOVA":       ContentSupernova,
	"HORROR":          ContentHorror,
}

// Маппинг для логов Domain -> String
var contentValueToString = map[HexContent]string{
	ContentClear:          "CLEAR",
	ContentHomeworld:      "HOMEWORLD",
	ContentPlanetStandard: "PLANET_STANDARD",
	ContentPlanetBarren:   "PLANET_BARREN",
	ContentMinerals:       "MINERALS",
	ContentSupernova:      "SUPERNOVA",
	ContentHorror:         "HORROR",
}

// ParseHexContent конвертирует строку в HexContent.
// Второе значение false, если строка не распознана.
func ParseHexContent(s string) (HexContent, bool) {
	val, ok := contentStringToValue[strings.ToUpper(strings.TrimSpace(s))]
	return val, ok
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (c HexContent) String() string {
	if val, ok := contentValueToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsPlanet - можно ли тут в принципе основать колонию
func (c HexContent) IsPlanet() bool {
	return c == ContentPlanetStandard || c == ContentPlanetBarren
}

// IsHazard - опасный гекс (сверхновая или ужас)
func (c HexContent) IsHazard() bool {
	return c == ContentSupernova || c == ContentHorror
}
