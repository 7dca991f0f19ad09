package engine

import (
	"async4x-server/internal/domain"
	"reflect"
	"testing"
)

func TestExploration_Supernova(t *testing.T) {
	g := newTestGame(t)
	addGroup(t, g, "A1", "A", battleship, 1, hx(0, 0))
	g.Map.SetContent(hx(1, 0), domain.ContentSupernova)

	g.QueueMove("A1", hx(1, 0))
	report := g.Submit()

	if got := g.GetGroup("A1").Location; got != hx(0, 0) {
		t.Errorf("explorer at %v, want pushed back to (0,0)", got)
	}
	if !g.Map.IsBlocked(hx(1, 0)) || !g.Map.IsExplored(hx(1, 0)) {
		t.Error("supernova hex must be explored and blocked")
	}
	if !contains(report.Events, "Supernova! Ship forced to retreat.") {
		t.Errorf("events = %v", report.Events)
	}
}

func TestExploration_SupernovaPushesBackEveryGroup(t *testing.T) {
	g := newTestGame(t)
	addGroup(t, g, "A1", "A", battleship, 1, hx(0, 0))
	addGroup(t, g, "A2", "A", decoy, 1, hx(0, 1))
	g.Map.SetContent(hx(1, 0), domain.ContentSupernova)

	g.QueueMove("A1", hx(1, 0))
	g.QueueMove("A2", hx(1, 0))
	report := g.Submit()

	if got := g.GetGroup("A1").Location; got != hx(0, 0) {
		t.Errorf("A1 at %v, want (0,0)", got)
	}
	if got := g.GetGroup("A2").Location; got != hx(0, 1) {
		t.Errorf("A2 at %v, want its own previous hex (0,1)", got)
	}
	if len(g.GroupsAt(hx(1, 0))) != 0 {
		t.Error("nobody may stay on a blocked hex")
	}
	if !contains(report.Events, "A2 retreats to (0,1).") {
		t.Errorf("events = %v", report.Events)
	}

	// Обе группы могут ходить дальше
	g.Pass()
	if res := g.QueueMove("A2", hx(0, 0)); !res.OK {
		t.Fatalf("QueueMove = %+v", res)
	}
	moves := g.Submit().Moves
	if len(moves) != 1 || !moves[0].OK || g.GetGroup("A2").Location != hx(0, 0) {
		t.Errorf("A2 stuck after retreat: %+v at %v", moves, g.GetGroup("A2").Location)
	}
}

func TestExploration_Horror(t *testing.T) {
	g := newTestGame(t)
	addGroup(t, g, "A1", "A", battleship, 2, hx(0, 0))
	addGroup(t, g, "A2", "A", decoy, 1, hx(0, 0))
	g.Map.SetContent(hx(0, 1), domain.ContentHorror)

	g.QueueMove("A1", hx(0, 1))
	g.QueueMove("A2", hx(0, 1))
	report := g.Submit()

	if g.GetGroup("A1") != nil || g.GetGroup("A2") != nil {
		t.Error("horror must destroy every group on the hex")
	}
	if g.Map.Content(hx(0, 1)) != domain.ContentClear {
		t.Error("horror must be cleared")
	}
	if !contains(report.Events, "HORROR! All units destroyed.") {
		t.Errorf("events = %v", report.Events)
	}
}

func TestExploration_InformationalContent(t *testing.T) {
	tests := []struct {
		content domain.HexContent
		line    string
	}{
		{domain.ContentPlanetStandard, "Discovered habitable planet."},
		{domain.ContentPlanetBarren, "Discovered barren planet."},
		{domain.ContentMinerals, "Mineral deposit discovered."},
		{domain.ContentClear, "Empty space."},
	}
	for _, tt := range tests {
		t.Run(tt.content.String(), func(t *testing.T) {
			g := newTestGame(t)
			addGroup(t, g, "A1", "A", battleship, 1, hx(0, 0))
			g.Map.SetExplored(hx(0, 0))
			g.Map.SetContent(hx(1, 0), tt.content)

			g.QueueMove("A1", hx(1, 0))
			report := g.Submit()
			if !contains(report.Events, "Exploration at (1,0): "+tt.content.String()) || !contains(report.Events, tt.line) {
				t.Errorf("events = %v", report.Events)
			}
		})
	}
}

func TestActions_QueuedColonize(t *testing.T) {
	g := newTestGame(t)
	planet := hx(1, 0)
	g.Map.SetContent(planet, domain.ContentPlanetStandard)
	g.Map.SetExplored(planet)
	addGroup(t, g, "A1", "A", colonyShip, 1, planet)

	if res := g.QueueColonize("A1"); !res.OK {
		t.Fatal(res.Message)
	}
	report := g.Submit()

	col := g.ColonyAt(planet)
	if col == nil || col.Owner != "A" || col.Level != 0 {
		t.Fatalf("colony = %+v", col)
	}
	if g.GetGroup("A1") != nil {
		t.Error("last ship consumed, group must be removed")
	}
	if !contains(report.Events, "PHASE: Actions") || !contains(report.Events, "A1 removed (no ships remain).") {
		t.Errorf("events = %v", report.Events)
	}
	if len(report.Actions) != 1 || !report.Actions[0].OK {
		t.Errorf("actions = %+v", report.Actions)
	}
}

func TestActions_QueuedMineClearsHex(t *testing.T) {
	g := newTestGame(t)
	field := hx(2, 0)
	g.Map.SetContent(field, domain.ContentMinerals)
	g.Map.SetExplored(field)
	addGroup(t, g, "A1", "A", miningShip, 2, field)

	g.QueueMine("A1")
	g.Submit()

	if got := g.GetGroup("A1").CargoMinerals; got != 1 {
		t.Errorf("cargo = %d, want 1", got)
	}
	if g.Map.Content(field) != domain.ContentClear {
		t.Error("minerals must be removed after pickup")
	}
}

func TestActions_FailedQueuedActionReported(t *testing.T) {
	g := newTestGame(t)
	// Гекс откроется в фазе исследования, но планеты на нём нет
	addGroup(t, g, "A1", "A", colonyShip, 1, hx(0, 0))

	g.QueueColonize("A1")
	report := g.Submit()
	if len(report.Actions) != 1 || report.Actions[0].OK || report.Actions[0].Message != "No colonization possible here." {
		t.Errorf("actions = %+v", report.Actions)
	}
}

func TestActions_AutoColonizeAndDeliver(t *testing.T) {
	g := newTestGame(t)
	planet := hx(1, 1)
	home := hx(-1, 0)
	g.Map.SetContent(planet, domain.ContentPlanetStandard)
	g.Map.SetExplored(planet)
	g.Map.SetExplored(home)
	if err := g.AddColony(home, domain.NewColony("A", 1, false)); err != nil {
		t.Fatal(err)
	}

	addGroup(t, g, "A1", "A", colonyShip, 2, planet)
	hauler := addGroup(t, g, "A2", "A", miningShip, 3, home)
	hauler.CargoMinerals = 3

	report := g.Submit()

	if g.ColonyAt(planet) == nil || g.GetGroup("A1").Count != 1 {
		t.Error("auto colonize should consume exactly one ship")
	}
	if g.ColonyAt(home).MineralsDelivered != 3 || hauler.CargoMinerals != 0 {
		t.Error("cargo should be delivered to the friendly colony")
	}
	if !contains(report.Events, "A2 delivered 3 mineral load(s) to colony at (-1,0).") {
		t.Errorf("events = %v", report.Events)
	}
}

type terraformHooks struct {
	DefaultHooks
}

func (terraformHooks) HasTerraforming(domain.PlayerID) bool { return true }

func TestActions_BarrenPlanetNeedsTerraforming(t *testing.T) {
	setup := func(opts ...Option) *Game {
		g := newTestGame(t, opts...)
		g.Map.SetContent(hx(0, 0), domain.ContentPlanetBarren)
		g.Map.SetExplored(hx(0, 0))
		addGroup(t, g, "A1", "A", colonyShip, 1, hx(0, 0))
		return g
	}

	plain := setup()
	plain.Submit()
	if plain.ColonyAt(hx(0, 0)) != nil {
		t.Error("barren planet colonized without terraforming")
	}

	tech := setup(WithHooks(terraformHooks{}))
	tech.Submit()
	if tech.ColonyAt(hx(0, 0)) == nil {
		t.Error("terraforming should allow barren colonies")
	}
}

func TestManualActions(t *testing.T) {
	g := newTestGame(t)
	planet := hx(0, 0)
	g.Map.SetContent(planet, domain.ContentPlanetStandard)
	g.Map.SetExplored(planet)
	addGroup(t, g, "A1", "A", colonyShip, 2, planet)
	addGroup(t, g, "A2", "A", miningShip, 2, hx(1, 0))
	addGroup(t, g, "B1", "B", colonyShip, 1, planet)

	events := g.ManualColonize("A1")
	if !reflect.DeepEqual(events, []string{"A1 colonized (0,0): colony established (Level 0), 1 ship consumed."}) {
		t.Errorf("colonize = %v", events)
	}
	if g.GetGroup("A1").Count != 1 {
		t.Error("exactly one ship consumed")
	}

	tests := []struct {
		name string
		got  []string
		want string
	}{
		{"colony already there", g.ManualColonize("A1"), "No colonization possible here."},
		{"unexplored mine", g.ManualMine("A2"), "Cannot mine an unexplored hex."},
		{"foreign group", g.ManualColonize("B1"), "You don't control that group."},
		{"missing group", g.ManualMine("A9"), "No such group."},
		{"empty hold", g.ManualDeliver("A2"), "Nothing to deliver here."},
	}
	for _, tt := range tests {
		if len(tt.got) != 1 || tt.got[0] != tt.want {
			t.Errorf("%s: got %v, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestManualMine_RespectsCapacity(t *testing.T) {
	g := newTestGame(t)
	h := hx(0, 0)
	g.Map.SetContent(h, domain.ContentMinerals)
	g.Map.SetExplored(h)
	miner := addGroup(t, g, "A1", "A", miningShip, 2, h)
	miner.CargoMinerals = 2

	if events := g.ManualMine("A1"); !reflect.DeepEqual(events, []string{"No mining possible here."}) {
		t.Errorf("events = %v", events)
	}
	if miner.CargoMinerals != 2 || g.Map.Content(h) != domain.ContentMinerals {
		t.Error("full hold must not pick up")
	}

	miner.CargoMinerals = 1
	if events := g.ManualMine("A1"); !reflect.DeepEqual(events, []string{"A1 picked up minerals at (0,0) (cargo 2/2)."}) {
		t.Errorf("events = %v", events)
	}
}

func TestDebugReveal(t *testing.T) {
	g := newTestGame(t)
	g.Map.SetContent(hx(2, 2), domain.ContentPlanetStandard)

	if got := g.DebugRevealHex(hx(2, 2)); got[0] != "Revealed (2,2): PLANET_STANDARD" {
		t.Errorf("reveal = %v", got)
	}
	if got := g.DebugRevealHex(hx(2, 2)); got[0] != "(2,2) already explored: PLANET_STANDARD" {
		t.Errorf("second reveal = %v", got)
	}
	if got := g.DebugRevealHex(hx(7, 0)); got[0] != "(7,0) is out of bounds." {
		t.Errorf("out of bounds = %v", got)
	}
	if got := g.DebugRevealAll(); got[0] != "Revealed all hexes (80 newly explored)." {
		t.Errorf("reveal all = %v", got)
	}
}

func TestEconomicPhase(t *testing.T) {
	g := newTestGame(t)
	home := hx(-4, -4)
	outpost := hx(0, 0)
	if err := g.AddColony(home, domain.NewColony("A", 3, true)); err != nil {
		t.Fatal(err)
	}
	out := domain.NewColony("A", 0, false)
	out.MineralsDelivered = 2
	if err := g.AddColony(outpost, out); err != nil {
		t.Fatal(err)
	}
	g.Map.SetExplored(home)
	addGroup(t, g, "A1", "A", battleship, 3, home)
	addGroup(t, g, "A2", "A", decoy, 4, home)

	sawEconomy := 0
	for i := 0; i < 4; i++ {
		report := g.Submit()
		if contains(report.Events, "PHASE: Economic") {
			sawEconomy = i + 1
		}
	}
	if sawEconomy != 4 || g.RoundNumber != 3 {
		t.Fatalf("economic phase on submit %d (round %d), want submit 4 in round 3", sawEconomy, g.RoundNumber)
	}

	// 30 (родной мир) + 0 (уровень 0) - 3*3*1 (линкоры) + 2*5 (минералы)
	if g.Credits["A"] != 31 {
		t.Errorf("credits A = %d, want 31", g.Credits["A"])
	}
	if g.Credits["B"] != 0 {
		t.Errorf("credits B = %d, want 0", g.Credits["B"])
	}
	if out.Level != 1 || out.MineralsDelivered != 0 {
		t.Errorf("outpost level=%d minerals=%d", out.Level, out.MineralsDelivered)
	}
}

func TestUpkeep(t *testing.T) {
	g := newTestGame(t)
	fighter := &domain.UnitType{Name: "Fighter", Combatant: true, Hull: 2, Attack: 1, Initiative: "C", UpkeepPerHull: 1}
	addGroup(t, g, "A1", "A", fighter, 3, hx(0, 0))
	addGroup(t, g, "A2", "A", decoy, 5, hx(0, 0))

	if got := g.Upkeep("A"); got != 3*2*1 {
		t.Errorf("Upkeep = %d, want 6", got)
	}
	if g.Upkeep("B") != 0 {
		t.Error("B has no fleet")
	}
}
