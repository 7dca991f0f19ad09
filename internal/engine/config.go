package engine

import "async4x-server/internal/systems"

// Config хранит параметры правил движка
type Config struct {
	// MaxCombatRounds - аварийный предел раундов одного боя
	MaxCombatRounds int
	// EconomicInterval - экономическая фаза раз в N раундов
	EconomicInterval int
	// MineralValue - кредиты за один доставленный груз минералов
	MineralValue int
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{
		MaxCombatRounds:  systems.DefaultMaxCombatRounds,
		EconomicInterval: 3,
		MineralValue:     5,
	}
}

// normalized подставляет значения по умолчанию вместо нулевых
func (c Config) normalized() Config {
	def := NewConfig()
	if c.MaxCombatRounds <= 0 {
		c.MaxCombatRounds = def.MaxCombatRounds
	}
	if c.EconomicInterval <= 0 {
		c.EconomicInterval = def.EconomicInterval
	}
	if c.MineralValue < 0 {
		c.MineralValue = 0
	}
	return c
}
