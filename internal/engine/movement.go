package engine

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/systems"
	"fmt"
)

// Interception - что происходит с движущейся группой при встрече с врагом
type Interception uint8

const (
	// InterceptHalt - остановиться и отметить гекс как место боя
	InterceptHalt Interception = iota
	// InterceptPass - пройти незамеченным (маскировка сильнее сенсоров)
	InterceptPass
	// InterceptDestroy - уничтожить небоевые группы и продолжить движение
	InterceptDestroy
)

func (i Interception) String() string {
	switch i {
	case InterceptPass:
		return "PASS_THROUGH"
	case InterceptDestroy:
		return "DESTROY_NONCOMBAT"
	default:
		return "HALT"
	}
}

// InterceptionPolicy решает исход встречи в порядке:
// все враги небоевые -> уничтожить; маскировка выше лучших сенсоров -> пройти; иначе стоп.
func InterceptionPolicy(mover *domain.UnitGroup, enemies []*domain.UnitGroup) Interception {
	allNonCombat := true
	maxSensors := 0
	for i, e := range enemies {
		if e.IsCombatant() {
			allNonCombat = false
		}
		if i == 0 || e.SensorLevel() > maxSensors {
			maxSensors = e.SensorLevel()
		}
	}
	if allNonCombat {
		return InterceptDestroy
	}
	if mover.CloakLevel() > maxSensors {
		return InterceptPass
	}
	return InterceptHalt
}

// moveOutcome - итог одного приказа на перемещение в фазе движения
type moveOutcome struct {
	OK         bool
	Halted     bool
	Message    string
	Final      domain.Hex
	CombatSite *domain.Hex
	Notes      []string
}

// applyMove исполняет приказ: полная проверка, поиск пути, пошаговое движение с перехватом.
// Бой здесь не проводится, только отмечается место.
func (g *Game) applyMove(o domain.MoveOrder) moveOutcome {
	grp, msg := g.checkOwnership(o.GroupID)
	if msg != "" {
		return moveOutcome{Message: msg, Final: o.Dest}
	}

	start := grp.Location
	if start == o.Dest {
		return moveOutcome{Message: fmt.Sprintf("%s is already at %s.", grp.ID, o.Dest), Final: start}
	}

	allowance := grp.Movement()
	if dist := domain.Distance(start, o.Dest); dist > allowance {
		return moveOutcome{
			Message: fmt.Sprintf("Out of range (distance %d, movement %d).", dist, allowance),
			Final:   start,
		}
	}

	path, ok := systems.FindPath(g.Map, start, o.Dest)
	if !ok {
		return moveOutcome{Message: fmt.Sprintf("No path to %s (blocked or out of bounds).", o.Dest), Final: start}
	}
	if len(path) > allowance {
		return moveOutcome{
			Message: fmt.Sprintf("Out of range via path (steps %d, movement %d).", len(path), allowance),
			Final:   start,
		}
	}

	out := moveOutcome{OK: true}
	for _, step := range path {
		g.lastStep[grp.ID] = grp.Location
		grp.Location = step

		var enemies []*domain.UnitGroup
		for _, other := range g.GroupsAt(step) {
			if other.Owner != grp.Owner {
				enemies = append(enemies, other)
			}
		}
		if len(enemies) == 0 {
			continue
		}

		switch InterceptionPolicy(grp, enemies) {
		case InterceptPass:
			continue
		case InterceptDestroy:
			for _, e := range enemies {
				note := fmt.Sprintf("%s destroyed during interception at %s.", e.ID, step)
				out.Notes = append(out.Notes, note)
				g.RemoveGroup(e.ID)
			}
			continue
		case InterceptHalt:
			site := step
			out.Halted = true
			out.Final = step
			out.CombatSite = &site
			out.Message = fmt.Sprintf("%s halted by enemy contact at %s (combat pending).", grp.ID, step)
			return out
		}
	}

	out.Final = o.Dest
	out.Message = fmt.Sprintf("Moved %s to %s.", grp.ID, o.Dest)
	return out
}
