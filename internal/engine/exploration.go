package engine

import (
	"async4x-server/internal/domain"
	"fmt"
)

// explorationPhase: каждая группа на неисследованном гексе открывает его
// и получает эффекты местности. Возвращает события и список открытых гексов.
func (g *Game) explorationPhase() ([]string, []domain.Hex) {
	var events []string
	var explored []domain.Hex

	for _, grp := range g.Groups() {
		if g.GetGroup(grp.ID) == nil {
			continue // погибла от ужаса раньше в этой фазе
		}
		h := grp.Location
		if g.Map.IsExplored(h) {
			continue
		}
		events = append(events, g.exploreHex(h)...)
		g.Map.SetExplored(h)
		explored = append(explored, h)
	}
	return events, explored
}

// exploreHex применяет эффект содержимого гекса. Сверхновая и ужас действуют на все группы гекса.
func (g *Game) exploreHex(h domain.Hex) []string {
	content := g.Map.Content(h)
	events := []string{fmt.Sprintf("Exploration at %s: %s", h, content)}

	switch content {
	case domain.ContentHomeworld:
		// Родные миры расставляются при создании партии
	case domain.ContentPlanetStandard:
		events = append(events, "  Discovered habitable planet.")
	case domain.ContentPlanetBarren:
		events = append(events, "  Discovered barren planet.")
	case domain.ContentMinerals:
		events = append(events, "  Mineral deposit discovered.")
	case domain.ContentSupernova:
		events = append(events, "  Supernova! Ship forced to retreat.")
		// Отступают все группы гекса, каждая на свой предыдущий гекс, до блокировки
		for _, grp := range g.GroupsAt(h) {
			grp.Location = g.retreatHex(grp, h)
			events = append(events, fmt.Sprintf("  %s retreats to %s.", grp.ID, grp.Location))
		}
		g.Map.Block(h)
		g.logEntry().WithField("hex", h.String()).Info("Supernova blocked a hex.")
	case domain.ContentHorror:
		events = append(events, "  HORROR! All units destroyed.")
		for _, victim := range g.GroupsAt(h) {
			g.RemoveGroup(victim.ID)
		}
		g.Map.SetContent(h, domain.ContentClear)
		g.logEntry().WithField("hex", h.String()).Info("Horror destroyed every group on a hex.")
	default:
		events = append(events, "  Empty space.")
	}
	return events
}

// retreatHex - предыдущий гекс пути, иначе первый проходимый сосед в каноническом порядке
func (g *Game) retreatHex(grp *domain.UnitGroup, from domain.Hex) domain.Hex {
	if prev, ok := g.lastStep[grp.ID]; ok && prev != from && g.Map.IsPassable(prev) {
		return prev
	}
	if ns := g.Map.PassableNeighbors(from); len(ns) > 0 {
		return ns[0]
	}
	return from
}

// --- Действия ---

// queuedAction исполняет отложенный приказ колонизации или добычи
func (g *Game) queuedAction(o domain.Order) []string {
	switch o := o.(type) {
	case domain.ColonizeOrder:
		return g.colonizeWith(o.GroupID)
	case domain.MineOrder:
		return g.mineWith(o.GroupID)
	default:
		return []string{fmt.Sprintf("Order %s has no action step.", o)}
	}
}

// endOfTurnActions - автоматические действия на исследованных гексах
// (колонизация, добыча, доставка минералов), по группам в порядке ID.
func (g *Game) endOfTurnActions() []string {
	var events []string
	for _, grp := range g.Groups() {
		if g.GetGroup(grp.ID) == nil {
			continue
		}
		h := grp.Location
		if !g.Map.IsExplored(h) {
			continue
		}
		content := g.Map.Content(h)

		if g.hooks.ShouldAutoColonize(grp, h, content) {
			events = append(events, g.tryColonize(grp, h, content)...)
		}
		if g.GetGroup(grp.ID) == nil {
			continue
		}
		if g.hooks.ShouldAutoMine(grp, h, g.Map.Content(h)) {
			events = append(events, g.tryPickupMinerals(grp, h, g.Map.Content(h))...)
		}
		events = append(events, g.tryDeliverMinerals(grp, h)...)
	}
	return events
}

// colonizeWith - ручная или отложенная колонизация с проверками
func (g *Game) colonizeWith(id domain.GroupID) []string {
	grp, msg := g.checkOwnership(id)
	if msg != "" {
		return []string{msg}
	}
	h := grp.Location
	if !g.Map.IsExplored(h) {
		return []string{"Cannot colonize an unexplored hex."}
	}
	events := g.tryColonize(grp, h, g.Map.Content(h))
	if len(events) == 0 {
		return []string{"No colonization possible here."}
	}
	return events
}

// mineWith - ручная или отложенная добыча с проверками
func (g *Game) mineWith(id domain.GroupID) []string {
	grp, msg := g.checkOwnership(id)
	if msg != "" {
		return []string{msg}
	}
	h := grp.Location
	if !g.Map.IsExplored(h) {
		return []string{"Cannot mine an unexplored hex."}
	}
	events := g.tryPickupMinerals(grp, h, g.Map.Content(h))
	if len(events) == 0 {
		return []string{"No mining possible here."}
	}
	return events
}

// tryColonize: планета без колонии, бесплодная - только с терраформингом.
// Расходует один корабль; пустая группа удаляется.
func (g *Game) tryColonize(grp *domain.UnitGroup, h domain.Hex, content domain.HexContent) []string {
	if !grp.Type.CanColonize || !content.IsPlanet() {
		return nil
	}
	if g.ColonyAt(h) != nil {
		return nil
	}
	if content == domain.ContentPlanetBarren && !g.hooks.HasTerraforming(grp.Owner) {
		return nil
	}

	g.colonies[h] = domain.NewColony(grp.Owner, 0, false)
	grp.Count--
	events := []string{fmt.Sprintf("%s colonized %s: colony established (Level 0), 1 ship consumed.", grp.ID, h)}

	if grp.Count <= 0 {
		g.RemoveGroup(grp.ID)
		events = append(events, fmt.Sprintf("%s removed (no ships remain).", grp.ID))
	}
	return events
}

// tryPickupMinerals: один груз на корабль, месторождение исчезает после погрузки
func (g *Game) tryPickupMinerals(grp *domain.UnitGroup, h domain.Hex, content domain.HexContent) []string {
	if !grp.Type.CanMine || content != domain.ContentMinerals {
		return nil
	}
	capacity := grp.CargoCapacity()
	if grp.CargoMinerals >= capacity {
		return nil
	}

	grp.CargoMinerals++
	g.Map.SetContent(h, domain.ContentClear)
	return []string{fmt.Sprintf("%s picked up minerals at %s (cargo %d/%d).", grp.ID, h, grp.CargoMinerals, capacity)}
}

// tryDeliverMinerals: весь груз сдаётся в дружественную колонию в этом гексе
func (g *Game) tryDeliverMinerals(grp *domain.UnitGroup, h domain.Hex) []string {
	cargo := grp.CargoMinerals
	if cargo <= 0 {
		return nil
	}
	col := g.ColonyAt(h)
	if col == nil || col.Owner != grp.Owner {
		return nil
	}
	col.MineralsDelivered += cargo
	grp.CargoMinerals = 0
	return []string{fmt.Sprintf("%s delivered %d mineral load(s) to colony at %s.", grp.ID, cargo, h)}
}
