package engine

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/systems"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

// TurnReport - всё, что произошло за одну отправку приказов
type TurnReport struct {
	Player     domain.PlayerID
	Events     []string
	Moves      []OrderResult
	Actions    []OrderResult
	Battles    []systems.CombatReport
	Explored   []domain.Hex
	Economy    []EconomyLine
	NextActive domain.PlayerID
}

var _ systems.Battlefield = (*Game)(nil)

type pendingAction struct {
	index int
	order domain.Order
}

// Submit исполняет очередь активного игрока по фазам:
// движение, сходимость боёв, бои, исследование, действия, смена хода (и экономика в начале раунда).
// Ошибки отдельных приказов попадают в события и не прерывают отправку.
func (g *Game) Submit() TurnReport {
	player := g.Active
	q := g.queue(player)
	orders := q.Orders()

	report := TurnReport{Player: player}
	emit := func(format string, args ...interface{}) {
		report.Events = append(report.Events, fmt.Sprintf(format, args...))
	}
	clear(g.lastStep)

	emit("SUBMIT: %s (%d order(s))", player, len(orders))

	// 1. Движение
	emit("PHASE: Movement")
	var sites []domain.Hex
	var actions []pendingAction
	for i, o := range orders {
		switch o := o.(type) {
		case domain.MoveOrder:
			out := g.applyMove(o)
			if out.CombatSite != nil {
				sites = append(sites, *out.CombatSite)
			}
			report.Moves = append(report.Moves, OrderResult{OK: out.OK, Message: out.Message})
			emit("  %d. %s -> %s", i+1, o, out.Message)
			for _, note := range out.Notes {
				emit("     %s", note)
			}
		case domain.ColonizeOrder, domain.MineOrder:
			actions = append(actions, pendingAction{index: i + 1, order: o})
		}
	}
	// Очередь очищается после движения при любом исходе
	q.Clear()

	// 2. Сходимость: любой гекс с двумя владельцами - кандидат в бой
	sites = append(sites, g.ContestedHexes()...)

	// 3. Бои
	emit("PHASE: Combat")
	battles := systems.CollectBattles(g, sites)
	if len(battles) == 0 {
		emit("  (no battles)")
	}
	for _, b := range battles {
		emit("  Combat at %s", b.Hex)
		res := systems.ResolveCombat(g, b.Hex, g.TurnNumber, player, systems.CombatOptions{
			MaxRounds: g.cfg.MaxCombatRounds,
			Targeting: g.targeting,
		})
		for _, e := range res.Events {
			emit("    %s", e)
		}
		report.Battles = append(report.Battles, res)
	}

	// 4. Исследование
	emit("PHASE: Exploration")
	exploreEvents, explored := g.explorationPhase()
	for _, e := range exploreEvents {
		emit("  %s", e)
	}
	for _, h := range explored {
		emit("  Explored %s", h)
	}
	report.Explored = explored

	// 5. Действия: сначала отложенные приказы, затем автоматические действия
	emit("PHASE: Actions")
	for _, a := range actions {
		msgs := g.queuedAction(a.order)
		emit("  %d. %s", a.index, a.order)
		for _, m := range msgs {
			emit("     %s", m)
		}
		report.Actions = append(report.Actions, actionResult(msgs))
	}
	for _, e := range g.endOfTurnActions() {
		emit("  %s", e)
	}

	// 6. Смена хода
	if g.advanceTurn() && g.isEconomicRound() {
		emit("PHASE: Economic")
		econEvents, lines := g.economicPhase()
		report.Events = append(report.Events, econEvents...)
		report.Economy = lines
	}
	report.NextActive = g.Active
	emit("Now active: %s", g.Active)

	for _, e := range report.Events {
		g.addLog(e, domain.LogTypePhase)
	}

	g.logEntry().WithFields(logrus.Fields{
		"player":   player,
		"orders":   len(orders),
		"battles":  len(report.Battles),
		"explored": len(report.Explored),
		"next":     g.Active,
	}).Info("Orders submitted.")

	return report
}

// Pass сбрасывает очередь и передаёт ход
func (g *Game) Pass() TurnReport {
	g.queue(g.Active).Clear()
	return g.Submit()
}

// advanceTurn передаёт ход следующему игроку. true - начался новый раунд.
func (g *Game) advanceTurn() bool {
	idx := slices.Index(g.Players, g.Active)
	next := (idx + 1) % len(g.Players)
	g.Active = g.Players[next]
	g.TurnNumber++
	if next == 0 {
		g.RoundNumber++
		return true
	}
	return false
}

// actionResult: успех, если действие дало хоть одно событие кроме отказа
func actionResult(msgs []string) OrderResult {
	res := OrderResult{OK: true}
	if len(msgs) > 0 {
		res.Message = msgs[0]
	}
	if len(msgs) == 1 && isRefusal(msgs[0]) {
		res.OK = false
	}
	return res
}

var refusals = []string{
	msgNoSuchGroup,
	msgNotYours,
	"Cannot colonize an unexplored hex.",
	"Cannot mine an unexplored hex.",
	"No colonization possible here.",
	"No mining possible here.",
}

func isRefusal(msg string) bool {
	return slices.Contains(refusals, msg)
}
