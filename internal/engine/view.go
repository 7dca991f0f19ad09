package engine

import (
	"async4x-server/internal/domain"
)

// Occupant - группа в гексе глазами наблюдателя.
// Скрытый враг виден только под маркером.
type Occupant struct {
	Token    string          `json:"token"`
	Owner    domain.PlayerID `json:"owner,omitempty"`
	Own      bool            `json:"own"`
	Revealed bool            `json:"revealed"`
	TypeName string          `json:"type,omitempty"`
	Count    int             `json:"count,omitempty"`
}

// ColonyView - колония в исследованном гексе
type ColonyView struct {
	Owner     domain.PlayerID `json:"owner"`
	Level     int             `json:"level"`
	Homeworld bool            `json:"homeworld"`
}

// HexView - ответ на запрос отрисовки одного гекса
type HexView struct {
	Hex       domain.Hex  `json:"hex"`
	InBounds  bool        `json:"inBounds"`
	Blocked   bool        `json:"blocked"`
	Explored  bool        `json:"explored"`
	Content   string      `json:"content,omitempty"` // только для исследованных
	Colony    *ColonyView `json:"colony,omitempty"`
	Occupants []Occupant  `json:"occupants,omitempty"`
}

// HexView отвечает, что наблюдатель видит в гексе. Состояние партии не меняется.
func (g *Game) HexView(viewer domain.PlayerID, h domain.Hex) HexView {
	v := HexView{
		Hex:      h,
		InBounds: g.Map.InBounds(h),
	}
	if !v.InBounds {
		return v
	}
	v.Blocked = g.Map.IsBlocked(h)
	v.Explored = g.Map.IsExplored(h)
	if v.Explored {
		v.Content = g.Map.Content(h).String()
		if col := g.ColonyAt(h); col != nil {
			v.Colony = &ColonyView{Owner: col.Owner, Level: col.Level, Homeworld: col.Homeworld}
		}
	}

	for _, grp := range g.GroupsAt(h) {
		v.Occupants = append(v.Occupants, g.occupant(viewer, grp))
	}
	return v
}

func (g *Game) occupant(viewer domain.PlayerID, grp *domain.UnitGroup) Occupant {
	if grp.Owner == viewer {
		return Occupant{
			Token:    string(grp.ID),
			Owner:    grp.Owner,
			Own:      true,
			Revealed: true,
			TypeName: grp.Type.Name,
			Count:    grp.Count,
		}
	}
	if g.Fog.IsRevealed(viewer, grp.ID) {
		return Occupant{
			Token:    string(grp.ID),
			Owner:    grp.Owner,
			Revealed: true,
			TypeName: grp.Type.Name,
			Count:    grp.Count,
		}
	}
	marker, ok := g.Fog.Marker(viewer, grp.ID)
	if !ok {
		g.logEntry().WithField("group", grp.ID).WithField("viewer", viewer).Warn("Hidden group has no marker.")
		marker = "?"
	}
	return Occupant{Token: marker}
}

// BoardView - все гексы карты глазами наблюдателя, ряд за рядом
func (g *Game) BoardView(viewer domain.PlayerID) []HexView {
	hexes := g.Map.Hexes()
	out := make([]HexView, 0, len(hexes))
	for _, h := range hexes {
		out = append(out, g.HexView(viewer, h))
	}
	return out
}
