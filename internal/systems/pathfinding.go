package systems

import (
	"async4x-server/internal/domain"
)

// FindPath ищет кратчайший путь поиском в ширину.
// Соседи раскрываются строго в порядке domain.Directions: среди путей одной длины
// побеждает тот, что раньше встретился при обходе. Координаты не сравниваются.
//
// Путь не включает start и включает goal. start == goal даёт пустой путь.
// false, если goal недостижим или одна из точек непроходима.
func FindPath(m *domain.GameMap, start, goal domain.Hex) ([]domain.Hex, bool) {
	if !m.IsPassable(start) || !m.IsPassable(goal) {
		return nil, false
	}
	if start == goal {
		return []domain.Hex{}, true
	}

	cameFrom := map[domain.Hex]domain.Hex{start: start}
	frontier := []domain.Hex{start}

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]

		for _, next := range cur.Neighbors() {
			if _, seen := cameFrom[next]; seen {
				continue
			}
			if !m.IsPassable(next) {
				continue
			}
			cameFrom[next] = cur
			if next == goal {
				return unwindPath(cameFrom, start, goal), true
			}
			frontier = append(frontier, next)
		}
	}
	return nil, false
}

func unwindPath(cameFrom map[domain.Hex]domain.Hex, start, goal domain.Hex) []domain.Hex {
	var path []domain.Hex
	for cur := goal; cur != start; cur = cameFrom[cur] {
		path = append(path, cur)
	}
	// Разворачиваем: собирали от цели к старту
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Reachable возвращает все проходимые гексы не дальше steps шагов от start (без самого start).
// Порядок - порядок обхода в ширину.
func Reachable(m *domain.GameMap, start domain.Hex, steps int) []domain.Hex {
	if !m.IsPassable(start) || steps <= 0 {
		return nil
	}
	depth := map[domain.Hex]int{start: 0}
	frontier := []domain.Hex{start}
	var out []domain.Hex

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		if depth[cur] == steps {
			continue
		}
		for _, next := range m.PassableNeighbors(cur) {
			if _, seen := depth[next]; seen {
				continue
			}
			depth[next] = depth[cur] + 1
			out = append(out, next)
			frontier = append(frontier, next)
		}
	}
	return out
}
