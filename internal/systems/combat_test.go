package systems

import (
	"async4x-server/internal/domain"
	"reflect"
	"strings"
	"testing"
)

var site = domain.Hex{Q: 1, R: 0}

func TestResolveCombat_ThreeHitsKillOneHull3Ship(t *testing.T) {
	// Атака 1 против защиты 0: порог 1, каждый бросок попадает
	gunner := domain.NewUnitGroup("A1", "A", shipType("Gunboat", "A", 1, 0, 1, true), 1, site)
	// Атака 20: порог 20 на d10, цель никогда не отвечает попаданием
	target := domain.NewUnitGroup("B1", "B", shipType("Hulk", "B", 20, 0, 3, true), 2, site)
	field := newFakeField(gunner, target)

	report := ResolveCombat(field, site, 1, "A", CombatOptions{})

	var damageLines []string
	for _, e := range report.Events {
		if strings.Contains(e, "B1 takes") {
			damageLines = append(damageLines, strings.TrimSpace(e))
		}
	}
	want := []string{
		"B1 takes 1 hit(s): ships 2->2, damage 0->1",
		"B1 takes 1 hit(s): ships 2->2, damage 1->2",
		"B1 takes 1 hit(s): ships 2->1, damage 2->0",
		"B1 takes 1 hit(s): ships 1->1, damage 0->1",
		"B1 takes 1 hit(s): ships 1->1, damage 1->2",
		"B1 takes 1 hit(s): ships 1->0, damage 2->0",
	}
	if !reflect.DeepEqual(damageLines, want) {
		t.Fatalf("damage lines:\n%v\nwant:\n%v", damageLines, want)
	}
	if report.Rounds != 6 {
		t.Errorf("rounds = %d, want 6", report.Rounds)
	}
	if _, ok := field.groups["B1"]; ok {
		t.Error("destroyed group must leave the registry")
	}
	if !reflect.DeepEqual(report.Destroyed, []domain.GroupID{"B1"}) {
		t.Errorf("destroyed = %v", report.Destroyed)
	}
	if last := report.Events[len(report.Events)-1]; last != "Combat at (1,0) ends." {
		t.Errorf("last event = %q", last)
	}
}

func TestResolveCombat_RevealsBeforeFirstShot(t *testing.T) {
	a := domain.NewUnitGroup("A1", "A", shipType("Battleship", "A", 5, 2, 3, true), 3, site)
	b := domain.NewUnitGroup("B1", "B", shipType("Battleship", "A", 5, 2, 3, true), 5, site)
	field := newFakeField(a, b)

	report := ResolveCombat(field, site, 3, "A", CombatOptions{})

	if len(field.reveals) != 1 || !reflect.DeepEqual(field.reveals[0], []domain.PlayerID{"A", "B"}) {
		t.Fatalf("reveals = %v", field.reveals)
	}
	if !strings.HasPrefix(report.Events[0], "REVEAL") {
		t.Errorf("first event = %q, want reveal", report.Events[0])
	}
	if report.Events[1] != "Round 1 begins." {
		t.Errorf("second event = %q", report.Events[1])
	}
	if !strings.HasPrefix(report.Events[2], "  Volley 1: Initiative A, Tactics 0 (2 group(s))") {
		t.Errorf("volley header = %q", report.Events[2])
	}
	if len(field.groups) > 1 {
		t.Errorf("battle must end with at most one side, got %d groups", len(field.groups))
	}
}

func TestResolveCombat_Deterministic(t *testing.T) {
	build := func() *fakeField {
		return newFakeField(
			domain.NewUnitGroup("A1", "A", shipType("Battleship", "A", 5, 2, 3, true), 3, site),
			domain.NewUnitGroup("A2", "A", shipType("Raider", "D", 4, 0, 2, true), 2, site),
			domain.NewUnitGroup("B1", "B", shipType("Battleship", "A", 5, 2, 3, true), 4, site),
		)
	}

	first := ResolveCombat(build(), site, 7, "B", CombatOptions{})
	second := ResolveCombat(build(), site, 7, "B", CombatOptions{})
	if !reflect.DeepEqual(first.Events, second.Events) {
		t.Fatal("same inputs produced different battles")
	}

	if CombatSeed(7, site, "B") == CombatSeed(8, site, "B") {
		t.Error("seed must depend on turn")
	}
	if CombatSeed(7, site, "A") == CombatSeed(7, site, "B") {
		t.Error("seed must depend on the triggering owner")
	}
}

func TestResolveCombat_VolleyOrder(t *testing.T) {
	slow := domain.NewUnitGroup("A1", "A", shipType("Raider", "D", 20, 0, 9, true), 1, site)
	fast := domain.NewUnitGroup("B1", "B", shipType("Cruiser", "B", 20, 0, 9, true), 1, site)
	sharp := domain.NewUnitGroup("B2", "B", shipType("Cruiser", "B", 20, 0, 9, true), 1, site)
	sharp.Tactics = 2
	field := newFakeField(slow, fast, sharp)

	report := ResolveCombat(field, site, 1, "A", CombatOptions{MaxRounds: 1})

	var headers []string
	for _, e := range report.Events {
		if strings.HasPrefix(e, "  Volley") {
			headers = append(headers, e)
		}
	}
	want := []string{
		"  Volley 1: Initiative B, Tactics 2 (1 group(s))",
		"  Volley 2: Initiative B, Tactics 0 (1 group(s))",
		"  Volley 3: Initiative D, Tactics 0 (1 group(s))",
	}
	if !reflect.DeepEqual(headers, want) {
		t.Errorf("volleys = %v, want %v", headers, want)
	}
}

func TestResolveCombat_SafetyStop(t *testing.T) {
	// Оба промахиваются всегда: порог 20
	a := domain.NewUnitGroup("A1", "A", shipType("Hulk", "A", 20, 0, 3, true), 1, site)
	b := domain.NewUnitGroup("B1", "B", shipType("Hulk", "A", 20, 0, 3, true), 1, site)
	field := newFakeField(a, b)

	report := ResolveCombat(field, site, 1, "A", CombatOptions{MaxRounds: 4})

	if !report.Aborted || report.Rounds != 4 {
		t.Fatalf("aborted=%v rounds=%d, want true/4", report.Aborted, report.Rounds)
	}
	found := false
	for _, e := range report.Events {
		if e == "Combat at (1,0) aborted after 4 rounds (safety stop)." {
			found = true
		}
	}
	if !found {
		t.Error("missing safety stop line")
	}
}

func TestResolveCombat_NoOpposingSides(t *testing.T) {
	field := newFakeField(domain.NewUnitGroup("A1", "A", shipType("Battleship", "A", 5, 2, 3, true), 1, site))
	report := ResolveCombat(field, site, 1, "A", CombatOptions{})
	if len(report.Events) != 1 || report.Events[0] != "Combat at (1,0) had no opposing sides." {
		t.Errorf("events = %v", report.Events)
	}
	if len(field.reveals) != 0 {
		t.Error("nothing to reveal without opposing sides")
	}
}

func TestResolveCombat_NonCombatantsNeverFire(t *testing.T) {
	decoyA := domain.NewUnitGroup("A1", "A", shipType("Decoy", "E", 0, 0, 1, false), 1, site)
	decoyB := domain.NewUnitGroup("B1", "B", shipType("Decoy", "E", 0, 0, 1, false), 1, site)
	field := newFakeField(decoyA, decoyB)

	report := ResolveCombat(field, site, 1, "A", CombatOptions{})
	if report.Rounds != 0 {
		t.Errorf("rounds = %d, want 0", report.Rounds)
	}
	if len(field.groups) != 2 {
		t.Error("decoys must survive a battle nobody can fight")
	}
}

func TestCollectBattles(t *testing.T) {
	other := domain.Hex{Q: -1, R: 0}
	decoyHex := domain.Hex{Q: 0, R: 2}
	field := newFakeField(
		domain.NewUnitGroup("A1", "A", shipType("Battleship", "A", 5, 2, 3, true), 1, site),
		domain.NewUnitGroup("B1", "B", shipType("Battleship", "A", 5, 2, 3, true), 1, site),
		domain.NewUnitGroup("A2", "A", shipType("Battleship", "A", 5, 2, 3, true), 1, other),
		domain.NewUnitGroup("B2", "B", shipType("Battleship", "A", 5, 2, 3, true), 1, other),
		domain.NewUnitGroup("A3", "A", shipType("Battleship", "A", 5, 2, 3, true), 1, decoyHex),
		domain.NewUnitGroup("B3", "B", shipType("Decoy", "E", 0, 0, 1, false), 1, decoyHex),
	)

	battles := CollectBattles(field, []domain.Hex{site, decoyHex, other, site})
	if len(battles) != 2 {
		t.Fatalf("battles = %v, want 2", battles)
	}
	if battles[0].Hex != other || battles[1].Hex != site {
		t.Errorf("battles not sorted by (q,r): %v", battles)
	}
	if !reflect.DeepEqual(battles[0].Owners, []domain.PlayerID{"A", "B"}) {
		t.Errorf("owners = %v", battles[0].Owners)
	}
}
