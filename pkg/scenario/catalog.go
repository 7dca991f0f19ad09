package scenario

import (
	"async4x-server/internal/domain"
	"sort"
	"strings"
)

// Базовые типы кораблей. Значения общие для всех партий:
// снапшот хранит копию типа в каждой группе, так что правка каталога не меняет старые партии.
var (
	Battleship = &domain.UnitType{
		Name:          "Battleship",
		MaxGroups:     6,
		Movement:      1,
		Combatant:     true,
		Initiative:    "A",
		Attack:        5,
		Defense:       2,
		Hull:          3,
		UpkeepPerHull: 1,
	}

	Raider = &domain.UnitType{
		Name:          "Raider",
		MaxGroups:     6,
		Movement:      1,
		Combatant:     true,
		Initiative:    "D",
		Attack:        4,
		Defense:       0,
		Hull:          2,
		BuiltinCloak:  1,
		UpkeepPerHull: 1,
	}

	Decoy = &domain.UnitType{
		Name:       "Decoy",
		MaxGroups:  6,
		Movement:   1,
		Initiative: "E",
		Hull:       1,
	}

	ColonyShip = &domain.UnitType{
		Name:        "Colony Ship",
		MaxGroups:   6,
		Movement:    1,
		Initiative:  "E",
		Hull:        1,
		CanColonize: true,
	}

	MiningShip = &domain.UnitType{
		Name:       "Mining Ship",
		MaxGroups:  6,
		Movement:   1,
		Initiative: "E",
		Hull:       1,
		CanMine:    true,
	}
)

var catalog = map[string]*domain.UnitType{
	"battleship":  Battleship,
	"raider":      Raider,
	"decoy":       Decoy,
	"colony ship": ColonyShip,
	"mining ship": MiningShip,
}

// Lookup ищет тип по имени без учета регистра
func Lookup(name string) (*domain.UnitType, bool) {
	t, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// TypeNames - имена всех типов каталога, по алфавиту
func TypeNames() []string {
	out := make([]string, 0, len(catalog))
	for _, t := range catalog {
		out = append(out, t.Name)
	}
	sort.Strings(out)
	return out
}
