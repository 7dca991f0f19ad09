package domain

// Экономика колоний
const (
	MaxColonyLevel      = 3
	HomeworldProduction = 30
)

// ColonyProduction - доход по уровню колонии (0..3)
var ColonyProduction = [MaxColonyLevel + 1]int{0, 1, 3, 5}

// Инициатива: A стреляет первой. Неизвестные буквы - в самом конце.
var initiativeRank = map[string]int{
	"A": 0,
	"B": 1,
	"C": 2,
	"D": 3,
	"E": 4,
}

const unknownInitiativeRank = 99

// InitiativeRank возвращает порядковый номер буквы инициативы (меньше - раньше).
func InitiativeRank(letter string) int {
	if rank, ok := initiativeRank[letter]; ok {
		return rank
	}
	return unknownInitiativeRank
}

// Типы записей игрового лога
const (
	LogTypeInfo    = "INFO"
	LogTypePhase   = "PHASE"
	LogTypeCombat  = "COMBAT"
	LogTypeExplore = "EXPLORE"
	LogTypeError   = "ERROR"
)
