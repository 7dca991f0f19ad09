package engine

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/systems"
)

// Hooks - точки расширения правил конца хода.
// Встраивайте DefaultHooks и переопределяйте только нужное.
type Hooks interface {
	// ShouldAutoColonize - колонизировать ли автоматически в конце хода
	ShouldAutoColonize(g *domain.UnitGroup, h domain.Hex, content domain.HexContent) bool
	// ShouldAutoMine - собирать ли минералы автоматически в конце хода
	ShouldAutoMine(g *domain.UnitGroup, h domain.Hex, content domain.HexContent) bool
	// HasTerraforming - может ли игрок колонизировать бесплодные планеты
	HasTerraforming(player domain.PlayerID) bool
}

// DefaultHooks: автоколонизация и автодобыча включены, терраформинга нет.
type DefaultHooks struct{}

func (DefaultHooks) ShouldAutoColonize(*domain.UnitGroup, domain.Hex, domain.HexContent) bool {
	return true
}

func (DefaultHooks) ShouldAutoMine(*domain.UnitGroup, domain.Hex, domain.HexContent) bool {
	return true
}

func (DefaultHooks) HasTerraforming(domain.PlayerID) bool {
	return false
}

// Option настраивает Game при создании или загрузке
type Option func(*Game)

// WithHooks подменяет правила конца хода
func WithHooks(h Hooks) Option {
	return func(g *Game) {
		if h != nil {
			g.hooks = h
		}
	}
}

// WithTargeting подменяет политику выбора целей в бою
func WithTargeting(p systems.TargetingPolicy) Option {
	return func(g *Game) {
		if p != nil {
			g.targeting = p
		}
	}
}

// WithGameID задаёт ID партии для логов
func WithGameID(id string) Option {
	return func(g *Game) {
		g.ID = id
	}
}
