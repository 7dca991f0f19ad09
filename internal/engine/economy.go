package engine

import (
	"async4x-server/internal/domain"
	"fmt"
)

// EconomyLine - итог экономической фазы для одного игрока
type EconomyLine struct {
	Player   domain.PlayerID
	Income   int
	Upkeep   int
	Minerals int
	Balance  int
}

// Upkeep - содержание флота игрока: корабли x корпус x ставка за корпус
func (g *Game) Upkeep(p domain.PlayerID) int {
	total := 0
	for _, grp := range g.groups {
		if grp.Owner != p {
			continue
		}
		total += grp.Count * grp.Hull() * grp.Type.UpkeepPerHull
	}
	return total
}

// Income - доход колоний игрока за одну фазу
func (g *Game) Income(p domain.PlayerID) int {
	total := 0
	for _, col := range g.colonies {
		if col.Owner == p {
			total += col.Production()
		}
	}
	return total
}

// isEconomicRound - экономика срабатывает в начале каждого N-го раунда
func (g *Game) isEconomicRound() bool {
	return g.RoundNumber%g.cfg.EconomicInterval == 0
}

// economicPhase начисляет доход, списывает содержание, переводит минералы в кредиты
// и поднимает уровень обычных колоний.
func (g *Game) economicPhase() ([]string, []EconomyLine) {
	var events []string
	var lines []EconomyLine

	for _, p := range g.Players {
		line := EconomyLine{
			Player: p,
			Income: g.Income(p),
			Upkeep: g.Upkeep(p),
		}
		for _, h := range g.ColonyHexes() {
			col := g.colonies[h]
			if col.Owner != p {
				continue
			}
			line.Minerals += col.MineralsDelivered
			col.MineralsDelivered = 0
		}

		g.Credits[p] += line.Income - line.Upkeep + line.Minerals*g.cfg.MineralValue
		line.Balance = g.Credits[p]
		lines = append(lines, line)

		events = append(events, fmt.Sprintf("  %s: income +%d, upkeep -%d, minerals +%d => credits %d",
			p, line.Income, line.Upkeep, line.Minerals*g.cfg.MineralValue, line.Balance))
	}

	for _, h := range g.ColonyHexes() {
		g.colonies[h].AdvanceEcon()
	}
	return events, lines
}
