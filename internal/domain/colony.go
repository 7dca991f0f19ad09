package domain

// Colony - колония игрока на планете.
type Colony struct {
	Owner     PlayerID `json:"owner"`
	Level     int      `json:"level"` // 0..MaxColonyLevel
	Homeworld bool     `json:"homeworld"`

	// MineralsDelivered - минералы, привезённые с прошлой экономической фазы
	MineralsDelivered int `json:"minerals_delivered"`
}

// NewColony создает колонию, уровень обрезается до допустимого диапазона.
func NewColony(owner PlayerID, level int, homeworld bool) *Colony {
	return &Colony{
		Owner:     owner,
		Level:     clampLevel(level),
		Homeworld: homeworld,
	}
}

// Production - доход за экономическую фазу.
// Родной мир всегда производит максимум, независимо от уровня.
func (c *Colony) Production() int {
	if c.Homeworld {
		return HomeworldProduction
	}
	return ColonyProduction[clampLevel(c.Level)]
}

// AdvanceEcon поднимает экономический уровень на 1 (не выше максимума).
func (c *Colony) AdvanceEcon() {
	if c.Homeworld {
		return
	}
	c.Level = clampLevel(c.Level + 1)
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxColonyLevel {
		return MaxColonyLevel
	}
	return level
}
