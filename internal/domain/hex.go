package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Hex - точка гекса в осевых координатах (q, r).
// Сравнивается по значению, поэтому годится как ключ мапы.
type Hex struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Directions - шесть смещений соседей в каноническом порядке.
// Этот порядок является тай-брейком поиска пути. Менять нельзя: от него зависят реплеи.
var Directions = [6]Hex{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// S возвращает третью кубическую координату.
func (h Hex) S() int {
	return -h.Q - h.R
}

// Add возвращает новый гекс со смещением (текущий не меняется).
func (h Hex) Add(d Hex) Hex {
	return Hex{Q: h.Q + d.Q, R: h.R + d.R}
}

// Neighbors возвращает соседей строго в порядке Directions.
func (h Hex) Neighbors() [6]Hex {
	var out [6]Hex
	for i, d := range Directions {
		out[i] = h.Add(d)
	}
	return out
}

// IsAdjacent возвращает true, если гексы соседние.
func (h Hex) IsAdjacent(other Hex) bool {
	return Distance(h, other) == 1
}

// Distance - гексовая метрика: максимум из трёх кубических разниц.
func Distance(a, b Hex) int {
	dq := absInt(a.Q - b.Q)
	dr := absInt(a.R - b.R)
	ds := absInt(a.S() - b.S())
	return max(dq, dr, ds)
}

// String для логов: (q,r)
func (h Hex) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

// Key - компактная форма "q,r" для снапшотов.
func (h Hex) Key() string {
	return strconv.Itoa(h.Q) + "," + strconv.Itoa(h.R)
}

// ParseHexKey разбирает форму "q,r" (пробелы и скобки допускаются).
func ParseHexKey(s string) (Hex, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")

	qs, rs, ok := strings.Cut(s, ",")
	if !ok {
		return Hex{}, fmt.Errorf("invalid hex key %q", s)
	}
	q, err := strconv.Atoi(strings.TrimSpace(qs))
	if err != nil {
		return Hex{}, fmt.Errorf("invalid hex q in %q: %w", s, err)
	}
	r, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return Hex{}, fmt.Errorf("invalid hex r in %q: %w", s, err)
	}
	return Hex{Q: q, R: r}, nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
