package domain

import "sort"

// GameMap - прямоугольная область гексов с препятствиями, исследованием и содержимым.
// Исследование глобальное (не по игрокам).
type GameMap struct {
	QMin int
	QMax int
	RMin int
	RMax int

	blocked  map[Hex]struct{}
	explored map[Hex]struct{}
	contents map[Hex]HexContent
}

// NewGameMap создает пустую карту в заданных границах (включительно).
func NewGameMap(qMin, qMax, rMin, rMax int) *GameMap {
	return &GameMap{
		QMin:     qMin,
		QMax:     qMax,
		RMin:     rMin,
		RMax:     rMax,
		blocked:  make(map[Hex]struct{}),
		explored: make(map[Hex]struct{}),
		contents: make(map[Hex]HexContent),
	}
}

func (m *GameMap) InBounds(h Hex) bool {
	return m.QMin <= h.Q && h.Q <= m.QMax && m.RMin <= h.R && h.R <= m.RMax
}

func (m *GameMap) IsBlocked(h Hex) bool {
	_, ok := m.blocked[h]
	return ok
}

// IsPassable - в границах и не заблокирован
func (m *GameMap) IsPassable(h Hex) bool {
	return m.InBounds(h) && !m.IsBlocked(h)
}

// Block блокирует гекс. Вне границ - ничего не делает.
func (m *GameMap) Block(h Hex) {
	if m.InBounds(h) {
		m.blocked[h] = struct{}{}
	}
}

func (m *GameMap) Unblock(h Hex) {
	delete(m.blocked, h)
}

func (m *GameMap) IsExplored(h Hex) bool {
	_, ok := m.explored[h]
	return ok
}

// SetExplored помечает гекс исследованным. Вне границ - ничего не делает.
func (m *GameMap) SetExplored(h Hex) {
	if m.InBounds(h) {
		m.explored[h] = struct{}{}
	}
}

// Content возвращает содержимое гекса (по умолчанию CLEAR).
func (m *GameMap) Content(h Hex) HexContent {
	if c, ok := m.contents[h]; ok {
		return c
	}
	return ContentClear
}

// SetContent записывает содержимое. CLEAR хранится как отсутствие записи.
func (m *GameMap) SetContent(h Hex, c HexContent) {
	if !m.InBounds(h) {
		return
	}
	if c == ContentClear {
		delete(m.contents, h)
		return
	}
	m.contents[h] = c
}

// PassableNeighbors возвращает проходимых соседей в каноническом порядке.
func (m *GameMap) PassableNeighbors(h Hex) []Hex {
	out := make([]Hex, 0, 6)
	for _, n := range h.Neighbors() {
		if m.IsPassable(n) {
			out = append(out, n)
		}
	}
	return out
}

// Hexes возвращает все гексы в границах, построчно (r, затем q).
func (m *GameMap) Hexes() []Hex {
	out := make([]Hex, 0, (m.QMax-m.QMin+1)*(m.RMax-m.RMin+1))
	for r := m.RMin; r <= m.RMax; r++ {
		for q := m.QMin; q <= m.QMax; q++ {
			out = append(out, Hex{Q: q, R: r})
		}
	}
	return out
}

// --- Снимки для сериализации (отсортированы, чтобы вывод был стабильным) ---

func (m *GameMap) BlockedHexes() []Hex {
	return sortedHexes(m.blocked)
}

func (m *GameMap) ExploredHexes() []Hex {
	return sortedHexes(m.explored)
}

// Contents возвращает копию мапы содержимого (без CLEAR).
func (m *GameMap) Contents() map[Hex]HexContent {
	out := make(map[Hex]HexContent, len(m.contents))
	for h, c := range m.contents {
		out[h] = c
	}
	return out
}

func sortedHexes(set map[Hex]struct{}) []Hex {
	out := make([]Hex, 0, len(set))
	for h := range set {
		out = append(out, h)
	}
	SortHexes(out)
	return out
}

// SortHexes сортирует по (q, r) - единый порядок обхода для детерминизма.
func SortHexes(hexes []Hex) {
	sort.Slice(hexes, func(i, j int) bool {
		if hexes[i].Q != hexes[j].Q {
			return hexes[i].Q < hexes[j].Q
		}
		return hexes[i].R < hexes[j].R
	})
}
