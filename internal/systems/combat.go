package systems

import (
	"async4x-server/internal/domain"
	"async4x-server/pkg/logger"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
)

// DefaultMaxCombatRounds - аварийный предел раундов одного боя
const DefaultMaxCombatRounds = 50

// Battlefield - то, что резолверу нужно от состояния игры (чтобы не зависеть от engine напрямую)
type Battlefield interface {
	// GroupsAt возвращает группы в гексе в стабильном порядке (по ID)
	GroupsAt(h domain.Hex) []*domain.UnitGroup
	// RemoveGroup убирает уничтоженную группу из реестра
	RemoveGroup(id domain.GroupID)
	// RevealHexToPlayers раскрывает все группы гекса наблюдателям и возвращает строки лога
	RevealHexToPlayers(h domain.Hex, viewers []domain.PlayerID) []string
}

// CombatOptions - настройки резолвера
type CombatOptions struct {
	MaxRounds int             // 0 - DefaultMaxCombatRounds
	Targeting TargetingPolicy // nil - FocusFire
}

// Battle - спорный гекс, где у двух и более владельцев есть боевые группы
type Battle struct {
	Hex    domain.Hex
	Owners []domain.PlayerID // владельцы с боевыми группами, отсортированы
}

// CombatReport - итог одного боя
type CombatReport struct {
	Hex       domain.Hex
	Rounds    int
	Aborted   bool // сработал аварийный предел
	Destroyed []domain.GroupID
	Events    []string
}

// CollectBattles отбирает из кандидатов гексы, где реально будет бой.
// Результат отсортирован по (q, r). Небоевые группы не делают гекс боем.
func CollectBattles(bf Battlefield, sites []domain.Hex) []Battle {
	sorted := make([]domain.Hex, len(sites))
	copy(sorted, sites)
	domain.SortHexes(sorted)

	var battles []Battle
	var prev *domain.Hex
	for i := range sorted {
		h := sorted[i]
		if prev != nil && *prev == h {
			continue
		}
		prev = &sorted[i]

		owners := combatantOwners(bf.GroupsAt(h))
		if len(owners) < 2 {
			continue
		}
		battles = append(battles, Battle{Hex: h, Owners: owners})
	}
	return battles
}

func combatantOwners(groups []*domain.UnitGroup) []domain.PlayerID {
	set := make(map[domain.PlayerID]struct{})
	for _, g := range groups {
		if g.IsAlive() && g.IsCombatant() {
			set[g.Owner] = struct{}{}
		}
	}
	return sortedOwners(set)
}

func ownersOf(groups []*domain.UnitGroup) []domain.PlayerID {
	set := make(map[domain.PlayerID]struct{})
	for _, g := range groups {
		if g.IsAlive() {
			set[g.Owner] = struct{}{}
		}
	}
	return sortedOwners(set)
}

func sortedOwners(set map[domain.PlayerID]struct{}) []domain.PlayerID {
	out := make([]domain.PlayerID, 0, len(set))
	for o := range set {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CombatSeed выводит зерно боя из (ход, гекс, инициатор). Одинаковые входы - одинаковый бой.
func CombatSeed(turn int, h domain.Hex, trigger domain.PlayerID) int64 {
	hasher := fnv.New64a()
	fmt.Fprintf(hasher, "%d|%d,%d|%s", turn, h.Q, h.R, trigger)
	return int64(hasher.Sum64())
}

// ResolveCombat проводит многораундовый бой в гексе.
// Раунды идут, пока в гексе не останется меньше двух владельцев,
// или пока у сторон есть кому стрелять, но не дольше MaxRounds.
func ResolveCombat(bf Battlefield, h domain.Hex, turn int, trigger domain.PlayerID, opts CombatOptions) CombatReport {
	maxRounds := opts.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxCombatRounds
	}
	policy := opts.Targeting
	if policy == nil {
		policy = FocusFire{}
	}

	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"hex":       h.String(),
		"turn":      turn,
		"trigger":   trigger,
	})

	report := CombatReport{Hex: h}
	emit := func(format string, args ...interface{}) {
		report.Events = append(report.Events, fmt.Sprintf(format, args...))
	}

	alive := func() []*domain.UnitGroup {
		var out []*domain.UnitGroup
		for _, g := range bf.GroupsAt(h) {
			if g.IsAlive() {
				out = append(out, g)
			}
		}
		return out
	}

	owners := ownersOf(alive())
	if len(owners) < 2 {
		emit("Combat at %s had no opposing sides.", h)
		return report
	}

	// Туман снимается один раз, до первого выстрела
	report.Events = append(report.Events, bf.RevealHexToPlayers(h, owners)...)

	rng := rand.New(rand.NewSource(CombatSeed(turn, h, trigger)))

	for {
		groups := alive()
		if !canContinue(groups) {
			break
		}
		if report.Rounds >= maxRounds {
			report.Aborted = true
			emit("Combat at %s aborted after %d rounds (safety stop).", h, maxRounds)
			combatLogger.WithField("rounds", maxRounds).Warn("Combat hit the round cap, forcing termination.")
			break
		}
		report.Rounds++
		emit("Round %d begins.", report.Rounds)

		var shooters []*domain.UnitGroup
		for _, g := range groups {
			if g.IsCombatant() {
				shooters = append(shooters, g)
			}
		}
		queue := NewFiringQueue(shooters)

		for volleyNum := 1; ; volleyNum++ {
			if len(ownersOf(alive())) < 2 {
				break
			}
			volley := queue.NextVolley()
			if len(volley) == 0 {
				break
			}
			emit("  Volley %d: Initiative %s, Tactics %d (%d group(s))",
				volleyNum, volley[0].Initiative(), volley[0].Tactics, len(volley))

			destroyed := fireVolley(bf, volley, alive(), policy, rng, emit)
			report.Destroyed = append(report.Destroyed, destroyed...)
		}

		emit("Round %d ends.", report.Rounds)
	}

	emit("Combat at %s ends.", h)

	combatLogger.WithFields(logrus.Fields{
		"rounds":    report.Rounds,
		"destroyed": len(report.Destroyed),
		"aborted":   report.Aborted,
	}).Info("Combat resolved.")

	return report
}

// canContinue: минимум два владельца живы и хоть кто-то может стрелять по врагу
func canContinue(groups []*domain.UnitGroup) bool {
	if len(ownersOf(groups)) < 2 {
		return false
	}
	for _, g := range groups {
		if !g.IsCombatant() {
			continue
		}
		for _, e := range groups {
			if e.Owner != g.Owner {
				return true
			}
		}
	}
	return false
}

// fireVolley - все группы залпа выбирают цели по снимку живых на начало залпа,
// попадания копятся по целям и применяются после стрельбы.
func fireVolley(
	bf Battlefield,
	volley []*domain.UnitGroup,
	snapshot []*domain.UnitGroup,
	policy TargetingPolicy,
	rng *rand.Rand,
	emit func(string, ...interface{}),
) []domain.GroupID {
	hits := make(map[domain.GroupID]int)
	targets := make(map[domain.GroupID]*domain.UnitGroup)
	var order []domain.GroupID

	for _, attacker := range volley {
		var enemies []*domain.UnitGroup
		for _, g := range snapshot {
			if g.Owner != attacker.Owner && g.IsAlive() {
				enemies = append(enemies, g)
			}
		}
		if len(enemies) == 0 {
			continue
		}
		target := policy.ChooseTarget(attacker, enemies)
		if target == nil {
			continue
		}

		toHit := ToHit(attacker, target)
		n := 0
		for i := 0; i < attacker.Count; i++ {
			if rng.Intn(10)+1 >= toHit {
				n++
			}
		}
		emit("    %s -> %s: %d shot(s), to-hit %d on d10, hits=%d", attacker.ID, target.ID, attacker.Count, toHit, n)

		if _, seen := targets[target.ID]; !seen {
			order = append(order, target.ID)
			targets[target.ID] = target
		}
		hits[target.ID] += n
	}

	var destroyed []domain.GroupID
	for _, id := range order {
		target := targets[id]
		if !target.IsAlive() {
			continue
		}
		beforeCount, beforeDamage := target.Count, target.Damage
		target.ApplyHits(hits[id])
		emit("    %s takes %d hit(s): ships %d->%d, damage %d->%d",
			id, hits[id], beforeCount, target.Count, beforeDamage, target.Damage)

		if !target.IsAlive() {
			emit("    %s destroyed.", id)
			bf.RemoveGroup(id)
			destroyed = append(destroyed, id)
		}
	}
	return destroyed
}
