package systems

import (
	"async4x-server/internal/domain"
	"reflect"
	"testing"
)

func TestFindPath_OpenMapMatchesDistance(t *testing.T) {
	m := domain.NewGameMap(-3, 3, -3, 3)
	hexes := m.Hexes()

	for _, start := range hexes {
		for _, goal := range hexes {
			path, ok := FindPath(m, start, goal)
			if !ok {
				t.Fatalf("no path %v -> %v on open map", start, goal)
			}
			if len(path) != domain.Distance(start, goal) {
				t.Fatalf("path %v -> %v has length %d, want %d", start, goal, len(path), domain.Distance(start, goal))
			}
			again, _ := FindPath(m, start, goal)
			if !reflect.DeepEqual(path, again) {
				t.Fatalf("path %v -> %v not deterministic: %v vs %v", start, goal, path, again)
			}
		}
	}
}

func TestFindPath_TieBreakFollowsDirectionOrder(t *testing.T) {
	m := domain.NewGameMap(-3, 3, -3, 3)

	path, ok := FindPath(m, domain.Hex{Q: 0, R: 0}, domain.Hex{Q: 2, R: -1})
	if !ok {
		t.Fatal("expected a path")
	}
	want := []domain.Hex{{Q: 1, R: 0}, {Q: 2, R: -1}}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}
}

func TestFindPath_RoutesAroundBlock(t *testing.T) {
	m := domain.NewGameMap(-3, 3, -3, 3)
	blocked := domain.Hex{Q: 1, R: 0}
	m.Block(blocked)

	path, ok := FindPath(m, domain.Hex{Q: 0, R: 0}, domain.Hex{Q: 2, R: 0})
	if !ok {
		t.Fatal("expected a detour")
	}
	for _, h := range path {
		if h == blocked {
			t.Fatalf("path %v goes through blocked hex", path)
		}
	}
	want := []domain.Hex{{Q: 1, R: -1}, {Q: 2, R: -1}, {Q: 2, R: 0}}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("path = %v, want %v", path, want)
	}
}

func TestFindPath_EdgeCases(t *testing.T) {
	m := domain.NewGameMap(-2, 2, -2, 2)
	m.Block(domain.Hex{Q: 2, R: 2})

	tests := []struct {
		name       string
		start      domain.Hex
		goal       domain.Hex
		wantOK     bool
		wantLength int
	}{
		{"same hex", domain.Hex{}, domain.Hex{}, true, 0},
		{"blocked goal", domain.Hex{}, domain.Hex{Q: 2, R: 2}, false, 0},
		{"blocked start", domain.Hex{Q: 2, R: 2}, domain.Hex{}, false, 0},
		{"out of bounds goal", domain.Hex{}, domain.Hex{Q: 5, R: 0}, false, 0},
		{"neighbor", domain.Hex{}, domain.Hex{Q: 0, R: 1}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := FindPath(m, tt.start, tt.goal)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && len(path) != tt.wantLength {
				t.Errorf("len(path) = %d, want %d", len(path), tt.wantLength)
			}
			if !ok && path != nil {
				t.Errorf("failed search should return nil path, got %v", path)
			}
		})
	}
}

func TestFindPath_Unreachable(t *testing.T) {
	m := domain.NewGameMap(-2, 2, -2, 2)
	center := domain.Hex{}
	for _, n := range center.Neighbors() {
		m.Block(n)
	}
	if _, ok := FindPath(m, domain.Hex{Q: 2, R: -2}, center); ok {
		t.Error("walled-off goal must be unreachable")
	}
}

func TestReachable(t *testing.T) {
	m := domain.NewGameMap(-3, 3, -3, 3)
	got := Reachable(m, domain.Hex{}, 1)
	if len(got) != 6 {
		t.Fatalf("Reachable(1) = %d hexes, want 6", len(got))
	}
	if got[0] != (domain.Hex{Q: 1, R: 0}) {
		t.Errorf("first reachable = %v, want (1,0)", got[0])
	}
	if n := len(Reachable(m, domain.Hex{}, 2)); n != 18 {
		t.Errorf("Reachable(2) = %d hexes, want 18", n)
	}
}
