package systems

import (
	"async4x-server/internal/domain"
)

// TargetingPolicy выбирает цель для стреляющей группы среди живых врагов.
// nil - группа не стреляет.
type TargetingPolicy interface {
	ChooseTarget(attacker *domain.UnitGroup, enemies []*domain.UnitGroup) *domain.UnitGroup
}

// TargetingFunc позволяет использовать обычную функцию как TargetingPolicy.
type TargetingFunc func(attacker *domain.UnitGroup, enemies []*domain.UnitGroup) *domain.UnitGroup

func (f TargetingFunc) ChooseTarget(attacker *domain.UnitGroup, enemies []*domain.UnitGroup) *domain.UnitGroup {
	return f(attacker, enemies)
}

// FocusFire - добиваем самого слабого:
// меньше всего осталось корпуса, затем меньшая защита, затем большая атака, затем ID.
type FocusFire struct{}

func (FocusFire) ChooseTarget(_ *domain.UnitGroup, enemies []*domain.UnitGroup) *domain.UnitGroup {
	var best *domain.UnitGroup
	for _, e := range enemies {
		if best == nil || focusLess(e, best) {
			best = e
		}
	}
	return best
}

func focusLess(a, b *domain.UnitGroup) bool {
	if a.RemainingHull() != b.RemainingHull() {
		return a.RemainingHull() < b.RemainingHull()
	}
	if a.Defense() != b.Defense() {
		return a.Defense() < b.Defense()
	}
	if a.Attack() != b.Attack() {
		return a.Attack() > b.Attack()
	}
	return a.ID < b.ID
}

// ToHit - порог попадания на d10: max(1, атака - защита)
func ToHit(attacker, target *domain.UnitGroup) int {
	return max(1, attacker.Attack()-target.Defense())
}
