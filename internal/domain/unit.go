package domain

import "fmt"

// PlayerID - имя игрока ("A", "B", ...)
type PlayerID string

// GroupID - стабильный идентификатор группы кораблей ("A1", "B3")
type GroupID string

// UnitType - неизменяемый шаблон корабля. Разделяется многими группами.
// После создания не мутируется.
type UnitType struct {
	Name       string `json:"name"`
	MaxGroups  int    `json:"max_groups"`
	Movement   int    `json:"movement"`
	Combatant  bool   `json:"is_combatant"`
	Initiative string `json:"initiative"` // Буква A..E, A стреляет первой
	Attack     int    `json:"attack"`
	Defense    int    `json:"defense"`
	Hull       int    `json:"hull"`

	BuiltinCloak   int `json:"builtin_cloak"`
	BuiltinSensors int `json:"builtin_sensors"`

	CanColonize bool `json:"can_colonize"`
	CanMine     bool `json:"can_mine"`

	// UpkeepPerHull - содержание за единицу корпуса в экономическую фазу
	UpkeepPerHull int `json:"upkeep_per_hull"`
}

// UnitGroup - изменяемый экземпляр: N одинаковых кораблей одного владельца в одном гексе.
type UnitGroup struct {
	ID       GroupID   `json:"group_id"`
	Owner    PlayerID  `json:"owner"`
	Type     *UnitType `json:"unit_type"`
	Count    int       `json:"count"`
	Location Hex       `json:"location"`

	// Damage - накопленный урон по текущему кораблю (0..hull-1), сбрасывается при его гибели
	Damage int `json:"damage"`

	// Модификаторы группы
	Tactics      int `json:"tactics"`
	CloakBonus   int `json:"cloak_bonus"`
	SensorsBonus int `json:"sensors_bonus"`
	AttackBonus  int `json:"attack_bonus"`
	DefenseBonus int `json:"defense_bonus"`

	// CargoMinerals - загруженные минералы (не больше одного на корабль)
	CargoMinerals int `json:"cargo_minerals"`
}

// NewUnitGroup создает группу без модификаторов.
func NewUnitGroup(id GroupID, owner PlayerID, t *UnitType, count int, loc Hex) *UnitGroup {
	return &UnitGroup{
		ID:       id,
		Owner:    owner,
		Type:     t,
		Count:    count,
		Location: loc,
	}
}

// --- Производные характеристики (только чтение) ---

func (g *UnitGroup) Attack() int {
	return g.Type.Attack + g.AttackBonus
}

func (g *UnitGroup) Defense() int {
	return g.Type.Defense + g.DefenseBonus
}

// Hull - прочность одного корабля, минимум 1
func (g *UnitGroup) Hull() int {
	return max(1, g.Type.Hull)
}

func (g *UnitGroup) CloakLevel() int {
	return g.Type.BuiltinCloak + g.CloakBonus
}

func (g *UnitGroup) SensorLevel() int {
	return g.Type.BuiltinSensors + g.SensorsBonus
}

func (g *UnitGroup) Movement() int {
	return g.Type.Movement
}

func (g *UnitGroup) Initiative() string {
	return g.Type.Initiative
}

func (g *UnitGroup) IsCombatant() bool {
	return g.Type.Combatant
}

// RemainingHull - сколько попаданий нужно, чтобы добить текущий корабль
func (g *UnitGroup) RemainingHull() int {
	return max(0, g.Hull()-g.Damage)
}

// IsAlive - в группе остались корабли
func (g *UnitGroup) IsAlive() bool {
	return g.Count > 0
}

// CargoCapacity - один груз минералов на корабль
func (g *UnitGroup) CargoCapacity() int {
	return max(0, g.Count)
}

// ApplyHits применяет попадания последовательно.
// Каждое попадание двигает счётчик урона; при достижении Hull корабль гибнет, счётчик обнуляется.
// Возвращает число уничтоженных кораблей и неиспользованные попадания.
func (g *UnitGroup) ApplyHits(hits int) (destroyed, unused int) {
	hull := g.Hull()
	for hits > 0 && g.Count > 0 {
		g.Damage++
		hits--
		if g.Damage >= hull {
			g.Count--
			destroyed++
			g.Damage = 0
		}
	}
	return destroyed, hits
}

// Summary - краткая строка для логов: A1:Battleshipx3
func (g *UnitGroup) Summary() string {
	return fmt.Sprintf("%s:%sx%d", g.ID, g.Type.Name, g.Count)
}

func (g *UnitGroup) String() string {
	return fmt.Sprintf("%s(%s) at %s", g.ID, g.Owner, g.Location)
}
