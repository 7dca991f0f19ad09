package systems

import (
	"async4x-server/internal/domain"
	"testing"
)

func TestFiringQueue_Volleys(t *testing.T) {
	mk := func(id domain.GroupID, initiative string, tactics int) *domain.UnitGroup {
		g := domain.NewUnitGroup(id, "A", shipType("Ship", initiative, 1, 0, 1, true), 1, site)
		g.Tactics = tactics
		return g
	}
	groups := []*domain.UnitGroup{
		mk("G5", "C", 0),
		mk("G2", "A", 0),
		mk("G4", "A", 1),
		mk("G1", "A", 1),
		mk("G3", "E", 4),
	}
	dead := mk("G0", "A", 9)
	dead.Count = 0
	groups = append(groups, dead)

	q := NewFiringQueue(groups)

	want := [][]domain.GroupID{
		{"G1", "G4"},
		{"G2"},
		{"G5"},
		{"G3"},
	}
	for i, w := range want {
		volley := q.NextVolley()
		if len(volley) != len(w) {
			t.Fatalf("volley %d = %v, want %v", i, volley, w)
		}
		for j := range w {
			if volley[j].ID != w[j] {
				t.Errorf("volley %d[%d] = %s, want %s", i, j, volley[j].ID, w[j])
			}
		}
	}
	if v := q.NextVolley(); v != nil {
		t.Errorf("queue should be drained, got %v", v)
	}
}
