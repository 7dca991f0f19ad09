package engine

import (
	"async4x-server/internal/domain"
	"async4x-server/pkg/logger"
	"os"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init("warn", "text")

	os.Exit(m.Run())
}

var (
	battleship = &domain.UnitType{
		Name: "Battleship", MaxGroups: 6, Movement: 1, Combatant: true,
		Initiative: "A", Attack: 5, Defense: 2, Hull: 3, UpkeepPerHull: 1,
	}
	fastBattleship = &domain.UnitType{
		Name: "Battleship", MaxGroups: 5, Movement: 3, Combatant: true,
		Initiative: "B", Attack: 4, Defense: 3, Hull: 3, UpkeepPerHull: 1,
	}
	raider = &domain.UnitType{
		Name: "Raider", MaxGroups: 6, Movement: 2, Combatant: true,
		Initiative: "D", Attack: 4, Defense: 0, Hull: 2, BuiltinCloak: 1, UpkeepPerHull: 1,
	}
	decoy = &domain.UnitType{
		Name: "Decoy", MaxGroups: 6, Movement: 1, Initiative: "E", Hull: 1,
	}
	colonyShip = &domain.UnitType{
		Name: "Colony Ship", MaxGroups: 6, Movement: 1, Initiative: "E", Hull: 1, CanColonize: true,
	}
	miningShip = &domain.UnitType{
		Name: "Mining Ship", MaxGroups: 6, Movement: 1, Initiative: "E", Hull: 1, CanMine: true,
	}
)

func hx(q, r int) domain.Hex {
	return domain.Hex{Q: q, R: r}
}

// newTestGame - два игрока A и B на карте 9x9
func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g, err := NewGame([]domain.PlayerID{"A", "B"}, domain.NewGameMap(-4, 4, -4, 4), NewConfig(), opts...)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func addGroup(t *testing.T, g *Game, id domain.GroupID, owner domain.PlayerID, typ *domain.UnitType, count int, at domain.Hex) *domain.UnitGroup {
	t.Helper()
	grp := domain.NewUnitGroup(id, owner, typ, count, at)
	if err := g.AddGroup(grp); err != nil {
		t.Fatalf("AddGroup(%s): %v", id, err)
	}
	return grp
}

func contains(events []string, substr string) bool {
	for _, e := range events {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
