package engine

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/systems"
	"async4x-server/pkg/logger"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Game - авторитетное состояние одной партии. Единственная единица сохранения.
// Не потокобезопасен: вызывающая сторона сериализует доступ к одной партии.
type Game struct {
	ID string

	Players     []domain.PlayerID
	Active      domain.PlayerID
	TurnNumber  int // растёт с каждой отправкой приказов
	RoundNumber int // растёт, когда ход возвращается к первому игроку

	Credits map[domain.PlayerID]int
	Map     *domain.GameMap
	Fog     *domain.FogRegistry

	groups      map[domain.GroupID]*domain.UnitGroup
	colonies    map[domain.Hex]*domain.Colony
	orders      map[domain.PlayerID]*domain.OrderQueue
	nextGroupID map[domain.PlayerID]int
	log         []string

	// lastStep - откуда группа сделала последний шаг в этой отправке (для отступления)
	lastStep map[domain.GroupID]domain.Hex

	cfg       Config
	hooks     Hooks
	targeting systems.TargetingPolicy
}

// NewGame создает пустую партию на карте m. Первый игрок ходит первым.
func NewGame(players []domain.PlayerID, m *domain.GameMap, cfg Config, opts ...Option) (*Game, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	seen := make(map[domain.PlayerID]struct{}, len(players))
	for _, p := range players {
		if _, dup := seen[p]; dup || p == "" {
			return nil, fmt.Errorf("invalid player list %v: %w", players, ErrUnknownPlayer)
		}
		seen[p] = struct{}{}
	}

	g := &Game{
		Players:     slices.Clone(players),
		Active:      players[0],
		TurnNumber:  1,
		RoundNumber: 1,
		Credits:     make(map[domain.PlayerID]int, len(players)),
		Map:         m,
		Fog:         domain.NewFogRegistry(),
		groups:      make(map[domain.GroupID]*domain.UnitGroup),
		colonies:    make(map[domain.Hex]*domain.Colony),
		orders:      make(map[domain.PlayerID]*domain.OrderQueue),
		nextGroupID: make(map[domain.PlayerID]int),
		lastStep:    make(map[domain.GroupID]domain.Hex),
		cfg:         cfg.normalized(),
		hooks:       DefaultHooks{},
		targeting:   systems.FocusFire{},
	}
	for _, p := range players {
		g.Credits[p] = 0
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Config возвращает действующие параметры правил
func (g *Game) Config() Config {
	return g.cfg
}

func (g *Game) logEntry() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"game_id":   g.ID,
		"turn":      g.TurnNumber,
		"round":     g.RoundNumber,
	})
}

// IsPlayer - участвует ли игрок в партии
func (g *Game) IsPlayer(p domain.PlayerID) bool {
	return slices.Contains(g.Players, p)
}

// --- Реестр групп ---

// AddGroup регистрирует группу. ID должен быть уникальным, владелец - участником партии.
func (g *Game) AddGroup(group *domain.UnitGroup) error {
	if _, exists := g.groups[group.ID]; exists {
		return fmt.Errorf("add group %s: %w", group.ID, ErrDuplicateGroup)
	}
	if !g.IsPlayer(group.Owner) {
		return fmt.Errorf("add group %s owned by %q: %w", group.ID, group.Owner, ErrUnknownPlayer)
	}
	g.groups[group.ID] = group
	g.assignMarkers(group)
	return nil
}

// SpawnGroup создает группу с новым ID вида <владелец><n>
func (g *Game) SpawnGroup(owner domain.PlayerID, t *domain.UnitType, count int, at domain.Hex) (*domain.UnitGroup, error) {
	if !g.IsPlayer(owner) {
		return nil, fmt.Errorf("spawn for %q: %w", owner, ErrUnknownPlayer)
	}
	id := g.AllocateGroupID(owner)
	for g.HasGroup(id) {
		id = g.AllocateGroupID(owner)
	}
	group := domain.NewUnitGroup(id, owner, t, count, at)
	g.groups[id] = group
	g.assignMarkers(group)
	return group, nil
}

// assignMarkers выдаёт маркер группы каждому сопернику, которому она ещё не раскрыта.
// Маркеры выдаются только здесь: отрисовка их лишь читает.
func (g *Game) assignMarkers(grp *domain.UnitGroup) {
	for _, p := range g.Players {
		if p == grp.Owner || g.Fog.IsRevealed(p, grp.ID) {
			continue
		}
		g.Fog.MarkerFor(p, grp.ID)
	}
}

// AllocateGroupID выдаёт следующий ID для владельца
func (g *Game) AllocateGroupID(owner domain.PlayerID) domain.GroupID {
	n := g.nextGroupID[owner]
	if n < 1 {
		n = 1
	}
	g.nextGroupID[owner] = n + 1
	return domain.GroupID(fmt.Sprintf("%s%d", owner, n))
}

// RemoveGroup убирает группу из реестра и выводит её маркеры из оборота
func (g *Game) RemoveGroup(id domain.GroupID) {
	if _, ok := g.groups[id]; !ok {
		return
	}
	delete(g.groups, id)
	delete(g.lastStep, id)
	g.Fog.Forget(id)
}

// GetGroup возвращает группу или nil
func (g *Game) GetGroup(id domain.GroupID) *domain.UnitGroup {
	return g.groups[id]
}

// HasGroup - есть ли группа в реестре
func (g *Game) HasGroup(id domain.GroupID) bool {
	_, ok := g.groups[id]
	return ok
}

// GroupsAt возвращает группы в гексе, отсортированные по ID
func (g *Game) GroupsAt(h domain.Hex) []*domain.UnitGroup {
	var out []*domain.UnitGroup
	for _, grp := range g.groups {
		if grp.Location == h {
			out = append(out, grp)
		}
	}
	sortGroups(out)
	return out
}

// Groups возвращает все группы, отсортированные по ID
func (g *Game) Groups() []*domain.UnitGroup {
	out := make([]*domain.UnitGroup, 0, len(g.groups))
	for _, grp := range g.groups {
		out = append(out, grp)
	}
	sortGroups(out)
	return out
}

func sortGroups(groups []*domain.UnitGroup) {
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
}

// ContestedHexes - гексы, где стоят группы двух и более владельцев
func (g *Game) ContestedHexes() []domain.Hex {
	owners := make(map[domain.Hex]map[domain.PlayerID]struct{})
	for _, grp := range g.groups {
		set, ok := owners[grp.Location]
		if !ok {
			set = make(map[domain.PlayerID]struct{})
			owners[grp.Location] = set
		}
		set[grp.Owner] = struct{}{}
	}
	var out []domain.Hex
	for h, set := range owners {
		if len(set) >= 2 {
			out = append(out, h)
		}
	}
	domain.SortHexes(out)
	return out
}

// --- Колонии ---

// ColonyAt возвращает колонию в гексе или nil
func (g *Game) ColonyAt(h domain.Hex) *domain.Colony {
	return g.colonies[h]
}

// AddColony ставит колонию (заменяя существующую)
func (g *Game) AddColony(h domain.Hex, c *domain.Colony) error {
	if !g.IsPlayer(c.Owner) {
		return fmt.Errorf("colony at %s owned by %q: %w", h, c.Owner, ErrUnknownPlayer)
	}
	g.colonies[h] = c
	return nil
}

// ColonyHexes возвращает гексы колоний в порядке (q, r)
func (g *Game) ColonyHexes() []domain.Hex {
	out := make([]domain.Hex, 0, len(g.colonies))
	for h := range g.colonies {
		out = append(out, h)
	}
	domain.SortHexes(out)
	return out
}

// --- Туман войны ---

// RevealHexToPlayers раскрывает все группы гекса каждому наблюдателю.
// Возвращает по строке на наблюдателя: REVEAL to A at (q,r): A1:Battleshipx3, ...
func (g *Game) RevealHexToPlayers(h domain.Hex, viewers []domain.PlayerID) []string {
	groups := g.GroupsAt(h)
	if len(groups) == 0 {
		return nil
	}

	parts := make([]string, len(groups))
	for i, grp := range groups {
		parts[i] = grp.Summary()
	}
	summary := strings.Join(parts, ", ")

	events := make([]string, 0, len(viewers))
	for _, v := range viewers {
		for _, grp := range groups {
			g.Fog.Reveal(v, grp.ID)
		}
		events = append(events, fmt.Sprintf("REVEAL to %s at %s: %s", v, h, summary))
	}
	return events
}

// ResolveToken переводит ввод игрока (ID своей группы или маркер) в ID группы.
// Чужой ID не распознаётся, иначе по ответу можно узнать о скрытой группе.
func (g *Game) ResolveToken(viewer domain.PlayerID, token string) (domain.GroupID, bool) {
	return g.Fog.ResolveToken(viewer, token, func(id domain.GroupID) bool {
		grp := g.groups[id]
		return grp != nil && grp.Owner == viewer
	})
}

// --- Лог ---

// addLog дописывает строку в журнал партии и дублирует её в logrus
func (g *Game) addLog(text, logType string) {
	g.log = append(g.log, text)
	logger.Log.WithFields(logrus.Fields{
		"game_id":   g.ID,
		"component": "game_log",
		"log_type":  logType,
	}).Debug(text)
}

// Log возвращает копию журнала
func (g *Game) Log() []string {
	return slices.Clone(g.log)
}

// LogTail возвращает последние n строк журнала
func (g *Game) LogTail(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(g.log) {
		n = len(g.log)
	}
	return slices.Clone(g.log[len(g.log)-n:])
}

// TruncateLog оставляет последние keep строк. Вызывается на границе сохранения.
func (g *Game) TruncateLog(keep int) {
	if keep < 0 {
		keep = 0
	}
	if len(g.log) > keep {
		g.log = slices.Clone(g.log[len(g.log)-keep:])
	}
}
