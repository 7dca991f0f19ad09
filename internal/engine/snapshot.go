package engine

import (
	"async4x-server/internal/domain"
	"fmt"
	"sort"
	"strings"
)

// SchemaVersion - единственная поддерживаемая версия снапшота
const SchemaVersion = 1

// Snapshot - полное сериализуемое состояние партии
type Snapshot struct {
	SchemaVersion int                     `json:"schema_version"`
	GameID        string                  `json:"game_id,omitempty"`
	Players       []domain.PlayerID       `json:"players"`
	ActivePlayer  domain.PlayerID         `json:"active_player"`
	TurnNumber    int                     `json:"turn_number"`
	RoundNumber   int                     `json:"round_number"`
	Credits       map[domain.PlayerID]int `json:"credits"`
	Map           MapSnapshot             `json:"map"`
	Groups        []GroupSnapshot         `json:"groups"`
	Colonies      []ColonySnapshot        `json:"colonies"`

	RevealedTo           map[domain.PlayerID][]domain.GroupID          `json:"revealed_to"`
	MarkerForViewer      map[domain.PlayerID]map[domain.GroupID]string `json:"marker_for_viewer"`
	GroupForViewerMarker map[domain.PlayerID]map[string]domain.GroupID `json:"group_for_viewer_marker"`
	NextMarkerIndex      map[domain.PlayerID]int                       `json:"next_marker_index"`

	PendingOrders map[domain.PlayerID][]OrderSnapshot `json:"pending_orders"`
	Log           []string                            `json:"log"`
	NextGroupID   map[domain.PlayerID]int             `json:"next_group_id"`
}

// MapSnapshot - границы, блокировки, исследованные гексы и содержимое ("q,r" -> тег)
type MapSnapshot struct {
	Bounds      Bounds            `json:"bounds"`
	Blocked     []string          `json:"blocked"`
	Explored    []string          `json:"explored"`
	HexContents map[string]string `json:"hex_contents"`
}

type Bounds struct {
	QMin int `json:"q_min"`
	QMax int `json:"q_max"`
	RMin int `json:"r_min"`
	RMax int `json:"r_max"`
}

// GroupSnapshot - группа вместе с копией своего типа
type GroupSnapshot struct {
	GroupID       domain.GroupID  `json:"group_id"`
	Owner         domain.PlayerID `json:"owner"`
	UnitType      domain.UnitType `json:"unit_type"`
	Count         int             `json:"count"`
	Location      string          `json:"location"`
	Damage        int             `json:"damage"`
	Tactics       int             `json:"tactics"`
	CloakBonus    int             `json:"cloak_bonus"`
	SensorsBonus  int             `json:"sensors_bonus"`
	AttackBonus   int             `json:"attack_bonus"`
	DefenseBonus  int             `json:"defense_bonus"`
	CargoMinerals int             `json:"cargo_minerals"`
}

type ColonySnapshot struct {
	Hex               string          `json:"hex"`
	Owner             domain.PlayerID `json:"owner"`
	Level             int             `json:"level"`
	Homeworld         bool            `json:"homeworld"`
	MineralsDelivered int             `json:"minerals_delivered"`
}

// OrderSnapshot - приказ с тегом вида. Dest только у move.
type OrderSnapshot struct {
	Type    string         `json:"type"`
	GroupID domain.GroupID `json:"group_id"`
	Dest    string         `json:"dest,omitempty"`
}

func hexKeys(hexes []domain.Hex) []string {
	out := make([]string, len(hexes))
	for i, h := range hexes {
		out[i] = h.Key()
	}
	return out
}

// Snapshot снимает полное состояние партии
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		SchemaVersion: SchemaVersion,
		GameID:        g.ID,
		Players:       append([]domain.PlayerID(nil), g.Players...),
		ActivePlayer:  g.Active,
		TurnNumber:    g.TurnNumber,
		RoundNumber:   g.RoundNumber,
		Credits:       make(map[domain.PlayerID]int, len(g.Credits)),
		Map: MapSnapshot{
			Bounds:      Bounds{QMin: g.Map.QMin, QMax: g.Map.QMax, RMin: g.Map.RMin, RMax: g.Map.RMax},
			Blocked:     hexKeys(g.Map.BlockedHexes()),
			Explored:    hexKeys(g.Map.ExploredHexes()),
			HexContents: make(map[string]string),
		},
		RevealedTo:           make(map[domain.PlayerID][]domain.GroupID),
		MarkerForViewer:      make(map[domain.PlayerID]map[domain.GroupID]string),
		GroupForViewerMarker: make(map[domain.PlayerID]map[string]domain.GroupID),
		NextMarkerIndex:      make(map[domain.PlayerID]int),
		PendingOrders:        make(map[domain.PlayerID][]OrderSnapshot),
		Log:                  g.Log(),
		NextGroupID:          make(map[domain.PlayerID]int, len(g.nextGroupID)),
	}

	for p, c := range g.Credits {
		s.Credits[p] = c
	}
	for h, c := range g.Map.Contents() {
		s.Map.HexContents[h.Key()] = c.String()
	}

	for _, grp := range g.Groups() {
		s.Groups = append(s.Groups, GroupSnapshot{
			GroupID:       grp.ID,
			Owner:         grp.Owner,
			UnitType:      *grp.Type,
			Count:         grp.Count,
			Location:      grp.Location.Key(),
			Damage:        grp.Damage,
			Tactics:       grp.Tactics,
			CloakBonus:    grp.CloakBonus,
			SensorsBonus:  grp.SensorsBonus,
			AttackBonus:   grp.AttackBonus,
			DefenseBonus:  grp.DefenseBonus,
			CargoMinerals: grp.CargoMinerals,
		})
	}

	for _, h := range g.ColonyHexes() {
		col := g.colonies[h]
		s.Colonies = append(s.Colonies, ColonySnapshot{
			Hex:               h.Key(),
			Owner:             col.Owner,
			Level:             col.Level,
			Homeworld:         col.Homeworld,
			MineralsDelivered: col.MineralsDelivered,
		})
	}

	for v, state := range g.Fog.Export() {
		s.RevealedTo[v] = state.Revealed
		s.MarkerForViewer[v] = state.Markers
		reverse := make(map[string]domain.GroupID, len(state.Markers))
		for grp, m := range state.Markers {
			reverse[strings.ToUpper(m)] = grp
		}
		s.GroupForViewerMarker[v] = reverse
		s.NextMarkerIndex[v] = state.NextMarker
	}

	for p, q := range g.orders {
		if q.Len() == 0 {
			continue
		}
		for _, o := range q.Orders() {
			s.PendingOrders[p] = append(s.PendingOrders[p], orderSnapshot(o))
		}
	}

	for p, n := range g.nextGroupID {
		s.NextGroupID[p] = n
	}
	return s
}

func orderSnapshot(o domain.Order) OrderSnapshot {
	rec := OrderSnapshot{Type: o.Kind().String(), GroupID: o.Group()}
	if mv, ok := o.(domain.MoveOrder); ok {
		rec.Dest = mv.Dest.Key()
	}
	return rec
}

// FromSnapshot восстанавливает партию. Неизвестная версия схемы и
// противоречивые таблицы тумана - фатальная ошибка загрузки.
func FromSnapshot(s *Snapshot, cfg Config, opts ...Option) (*Game, error) {
	if s == nil {
		return nil, fmt.Errorf("nil snapshot: %w", ErrCorruptSnapshot)
	}
	if s.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("schema %d (want %d): %w", s.SchemaVersion, SchemaVersion, ErrUnsupportedSchema)
	}

	b := s.Map.Bounds
	m := domain.NewGameMap(b.QMin, b.QMax, b.RMin, b.RMax)

	g, err := NewGame(s.Players, m, cfg, opts...)
	if err != nil {
		return nil, err
	}
	if s.GameID != "" && g.ID == "" {
		g.ID = s.GameID
	}

	if !g.IsPlayer(s.ActivePlayer) {
		return nil, fmt.Errorf("active player %q: %w", s.ActivePlayer, ErrUnknownPlayer)
	}
	g.Active = s.ActivePlayer
	g.TurnNumber = max(1, s.TurnNumber)
	g.RoundNumber = max(1, s.RoundNumber)

	for p, c := range s.Credits {
		if !g.IsPlayer(p) {
			return nil, fmt.Errorf("credits for %q: %w", p, ErrUnknownPlayer)
		}
		g.Credits[p] = c
	}

	if err := restoreMap(m, s.Map); err != nil {
		return nil, err
	}

	// Одинаковые типы снова разделяют один указатель
	types := make(map[domain.UnitType]*domain.UnitType)
	for _, gs := range s.Groups {
		loc, err := domain.ParseHexKey(gs.Location)
		if err != nil {
			return nil, fmt.Errorf("group %s location: %v: %w", gs.GroupID, err, ErrCorruptSnapshot)
		}
		t, ok := types[gs.UnitType]
		if !ok {
			tc := gs.UnitType
			t = &tc
			types[gs.UnitType] = t
		}
		grp := domain.NewUnitGroup(gs.GroupID, gs.Owner, t, gs.Count, loc)
		grp.Damage = gs.Damage
		grp.Tactics = gs.Tactics
		grp.CloakBonus = gs.CloakBonus
		grp.SensorsBonus = gs.SensorsBonus
		grp.AttackBonus = gs.AttackBonus
		grp.DefenseBonus = gs.DefenseBonus
		grp.CargoMinerals = gs.CargoMinerals
		if err := g.AddGroup(grp); err != nil {
			return nil, err
		}
	}

	for _, cs := range s.Colonies {
		h, err := domain.ParseHexKey(cs.Hex)
		if err != nil {
			return nil, fmt.Errorf("colony hex: %v: %w", err, ErrCorruptSnapshot)
		}
		col := domain.NewColony(cs.Owner, cs.Level, cs.Homeworld)
		col.MineralsDelivered = cs.MineralsDelivered
		if err := g.AddColony(h, col); err != nil {
			return nil, err
		}
	}

	fog, err := restoreFog(s)
	if err != nil {
		return nil, err
	}
	g.Fog = fog
	// Снапшоты без маркеров у части групп дополняются детерминированно, по порядку ID
	for _, grp := range g.Groups() {
		g.assignMarkers(grp)
	}

	for p, list := range s.PendingOrders {
		if !g.IsPlayer(p) {
			return nil, fmt.Errorf("orders for %q: %w", p, ErrUnknownPlayer)
		}
		for _, rec := range list {
			o, err := parseOrder(rec)
			if err != nil {
				return nil, err
			}
			g.queue(p).Push(o)
		}
	}

	g.log = append([]string(nil), s.Log...)
	for p, n := range s.NextGroupID {
		g.nextGroupID[p] = n
	}

	g.logEntry().WithField("groups", len(g.groups)).Debug("Game restored from snapshot.")
	return g, nil
}

func restoreMap(m *domain.GameMap, ms MapSnapshot) error {
	for _, k := range ms.Blocked {
		h, err := domain.ParseHexKey(k)
		if err != nil {
			return fmt.Errorf("blocked hex: %v: %w", err, ErrCorruptSnapshot)
		}
		m.Block(h)
	}
	for _, k := range ms.Explored {
		h, err := domain.ParseHexKey(k)
		if err != nil {
			return fmt.Errorf("explored hex: %v: %w", err, ErrCorruptSnapshot)
		}
		m.SetExplored(h)
	}
	for k, v := range ms.HexContents {
		h, err := domain.ParseHexKey(k)
		if err != nil {
			return fmt.Errorf("content hex: %v: %w", err, ErrCorruptSnapshot)
		}
		c, ok := domain.ParseHexContent(v)
		if !ok {
			return fmt.Errorf("content %q at %s: %w", v, k, ErrCorruptSnapshot)
		}
		m.SetContent(h, c)
	}
	return nil
}

// restoreFog сводит четыре таблицы в реестр и проверяет, что обратная таблица
// маркеров совпадает с прямой
func restoreFog(s *Snapshot) (*domain.FogRegistry, error) {
	viewers := make(map[domain.PlayerID]struct{})
	for v := range s.RevealedTo {
		viewers[v] = struct{}{}
	}
	for v := range s.MarkerForViewer {
		viewers[v] = struct{}{}
	}
	for v := range s.GroupForViewerMarker {
		viewers[v] = struct{}{}
	}
	for v := range s.NextMarkerIndex {
		viewers[v] = struct{}{}
	}

	states := make(map[domain.PlayerID]domain.ViewerFogState, len(viewers))
	for v := range viewers {
		forward := s.MarkerForViewer[v]
		reverse := s.GroupForViewerMarker[v]
		if len(forward) != len(reverse) {
			return nil, fmt.Errorf("viewer %s: %d markers vs %d reverse entries: %w",
				v, len(forward), len(reverse), ErrCorruptFog)
		}
		for grp, marker := range forward {
			if reverse[strings.ToUpper(marker)] != grp {
				return nil, fmt.Errorf("viewer %s: marker %s reverse mismatch: %w", v, marker, ErrCorruptFog)
			}
		}
		revealed := append([]domain.GroupID(nil), s.RevealedTo[v]...)
		sort.Slice(revealed, func(i, j int) bool { return revealed[i] < revealed[j] })
		states[v] = domain.ViewerFogState{
			Revealed:   revealed,
			Markers:    forward,
			NextMarker: s.NextMarkerIndex[v],
		}
	}
	return domain.ImportFog(states)
}

func parseOrder(rec OrderSnapshot) (domain.Order, error) {
	switch domain.ParseOrderKind(rec.Type) {
	case domain.OrderMove:
		dest, err := domain.ParseHexKey(rec.Dest)
		if err != nil {
			return nil, fmt.Errorf("move order for %s: %v: %w", rec.GroupID, err, ErrCorruptSnapshot)
		}
		return domain.MoveOrder{GroupID: rec.GroupID, Dest: dest}, nil
	case domain.OrderColonize:
		return domain.ColonizeOrder{GroupID: rec.GroupID}, nil
	case domain.OrderMine:
		return domain.MineOrder{GroupID: rec.GroupID}, nil
	default:
		return nil, fmt.Errorf("order type %q: %w", rec.Type, ErrCorruptSnapshot)
	}
}
