package systems

import (
	"async4x-server/internal/domain"
	"testing"
)

func TestFocusFire(t *testing.T) {
	attacker := domain.NewUnitGroup("A1", "A", shipType("Battleship", "A", 5, 2, 3, true), 1, site)

	wounded := domain.NewUnitGroup("B1", "B", shipType("Battleship", "A", 5, 2, 3, true), 3, site)
	wounded.Damage = 2
	raider := domain.NewUnitGroup("B2", "B", shipType("Raider", "D", 4, 0, 2, true), 1, site)
	bruiser := domain.NewUnitGroup("B3", "B", shipType("Raider", "D", 6, 0, 2, true), 1, site)
	twin := domain.NewUnitGroup("B0", "B", shipType("Raider", "D", 6, 0, 2, true), 1, site)

	tests := []struct {
		name    string
		enemies []*domain.UnitGroup
		want    domain.GroupID
	}{
		{"least remaining hull", []*domain.UnitGroup{raider, wounded}, "B1"},
		{"highest attack on tie", []*domain.UnitGroup{raider, bruiser}, "B3"},
		{"id on full tie", []*domain.UnitGroup{bruiser, twin}, "B0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FocusFire{}.ChooseTarget(attacker, tt.enemies)
			if got == nil || got.ID != tt.want {
				t.Errorf("target = %v, want %s", got, tt.want)
			}
		})
	}

	if (FocusFire{}).ChooseTarget(attacker, nil) != nil {
		t.Error("no enemies, no target")
	}
}

func TestFocusFire_PrefersLowDefense(t *testing.T) {
	attacker := domain.NewUnitGroup("A1", "A", shipType("Battleship", "A", 5, 2, 3, true), 1, site)
	armored := domain.NewUnitGroup("B1", "B", shipType("Raider", "D", 4, 3, 2, true), 1, site)
	soft := domain.NewUnitGroup("B2", "B", shipType("Raider", "D", 4, 0, 2, true), 1, site)

	if got := (FocusFire{}).ChooseTarget(attacker, []*domain.UnitGroup{armored, soft}); got.ID != "B2" {
		t.Errorf("target = %s, want B2", got.ID)
	}
}

func TestToHit(t *testing.T) {
	a := domain.NewUnitGroup("A1", "A", shipType("Battleship", "A", 5, 2, 3, true), 1, site)
	b := domain.NewUnitGroup("B1", "B", shipType("Raider", "D", 4, 0, 2, true), 1, site)
	if ToHit(a, b) != 5 {
		t.Errorf("ToHit = %d, want 5", ToHit(a, b))
	}
	if ToHit(b, a) != 2 {
		t.Errorf("ToHit = %d, want 2", ToHit(b, a))
	}
	weak := domain.NewUnitGroup("A2", "A", shipType("Probe", "E", 0, 0, 1, true), 1, site)
	if ToHit(weak, a) != 1 {
		t.Errorf("ToHit floor = %d, want 1", ToHit(weak, a))
	}
}

func TestTargetingFunc(t *testing.T) {
	first := TargetingFunc(func(_ *domain.UnitGroup, enemies []*domain.UnitGroup) *domain.UnitGroup {
		return enemies[0]
	})
	a := domain.NewUnitGroup("A1", "A", shipType("Battleship", "A", 5, 2, 3, true), 1, site)
	b := domain.NewUnitGroup("B9", "B", shipType("Battleship", "A", 5, 2, 3, true), 1, site)
	var policy TargetingPolicy = first
	if policy.ChooseTarget(a, []*domain.UnitGroup{b}) != b {
		t.Error("TargetingFunc should delegate")
	}
}
