package engine

import (
	"async4x-server/internal/domain"
	"fmt"
)

// Служебные операции для инструментов и администрирования.
// Обходят очередь приказов и побочные эффекты исследования.

// DebugRevealHex помечает гекс исследованным без эффектов местности
func (g *Game) DebugRevealHex(h domain.Hex) []string {
	if !g.Map.InBounds(h) {
		return g.record([]string{fmt.Sprintf("%s is out of bounds.", h)})
	}
	if g.Map.IsExplored(h) {
		return g.record([]string{fmt.Sprintf("%s already explored: %s", h, g.Map.Content(h))})
	}
	g.Map.SetExplored(h)
	return g.record([]string{fmt.Sprintf("Revealed %s: %s", h, g.Map.Content(h))})
}

// DebugRevealAll помечает исследованными все гексы карты
func (g *Game) DebugRevealAll() []string {
	count := 0
	for _, h := range g.Map.Hexes() {
		if !g.Map.IsExplored(h) {
			g.Map.SetExplored(h)
			count++
		}
	}
	return g.record([]string{fmt.Sprintf("Revealed all hexes (%d newly explored).", count)})
}

// ManualColonize - колонизация вне очереди
func (g *Game) ManualColonize(id domain.GroupID) []string {
	return g.record(g.colonizeWith(id))
}

// ManualMine - добыча вне очереди
func (g *Game) ManualMine(id domain.GroupID) []string {
	return g.record(g.mineWith(id))
}

// ManualDeliver - сдать груз в дружественную колонию вне очереди
func (g *Game) ManualDeliver(id domain.GroupID) []string {
	grp, msg := g.checkOwnership(id)
	if msg != "" {
		return g.record([]string{msg})
	}
	events := g.tryDeliverMinerals(grp, grp.Location)
	if len(events) == 0 {
		events = []string{"Nothing to deliver here."}
	}
	return g.record(events)
}

func (g *Game) record(events []string) []string {
	for _, e := range events {
		g.addLog(e, domain.LogTypeInfo)
	}
	return events
}
