package scenario

import (
	"async4x-server/internal/domain"
	"async4x-server/internal/engine"
	"async4x-server/internal/systems"
	"async4x-server/pkg/logger"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// DefaultRadius - карта 9x9, как в базовом сценарии
const DefaultRadius = 4

// Вероятности местности в процентах (накопительно)
const (
	chanceAsteroids = 8
	chancePlanet    = 20
	chanceBarren    = 26
	chanceMinerals  = 34
	chanceSupernova = 37
	chanceHorror    = 39
)

// Fleet - стартовый состав флота игрока
type Fleet struct {
	Type  *domain.UnitType
	Count int
}

var startingFleet = []Fleet{
	{Battleship, 3},
	{Raider, 2},
	{Decoy, 2},
	{ColonyShip, 1},
	{MiningShip, 1},
}

// Default - маленький сценарий для проверок: два линкорных флота стоят рядом в центре карты.
func Default(cfg engine.Config, opts ...engine.Option) (*engine.Game, error) {
	m := domain.NewGameMap(-DefaultRadius, DefaultRadius, -DefaultRadius, DefaultRadius)
	g, err := engine.NewGame([]domain.PlayerID{"A", "B"}, m, cfg, opts...)
	if err != nil {
		return nil, err
	}

	if _, err := g.SpawnGroup("A", Battleship, 3, domain.Hex{Q: 0, R: 0}); err != nil {
		return nil, err
	}
	if _, err := g.SpawnGroup("B", Battleship, 5, domain.Hex{Q: 1, R: 0}); err != nil {
		return nil, err
	}
	if err := placeHomeworld(g, "A", domain.Hex{Q: -DefaultRadius, R: -DefaultRadius}); err != nil {
		return nil, err
	}
	if err := placeHomeworld(g, "B", domain.Hex{Q: DefaultRadius, R: DefaultRadius}); err != nil {
		return nil, err
	}
	return g, nil
}

// Build создает партию на двоих со случайной местностью.
// Один и тот же seed дает одну и ту же карту.
func Build(seed int64, radius int, cfg engine.Config, opts ...engine.Option) (*engine.Game, error) {
	if radius < 2 {
		return nil, fmt.Errorf("radius %d too small (min 2)", radius)
	}
	rng := rand.New(rand.NewSource(seed))

	m := domain.NewGameMap(-radius, radius, -radius, radius)
	g, err := engine.NewGame([]domain.PlayerID{"A", "B"}, m, cfg, opts...)
	if err != nil {
		return nil, err
	}

	homes := map[domain.PlayerID]domain.Hex{
		"A": {Q: -radius, R: -radius},
		"B": {Q: radius, R: radius},
	}
	reserved := make(map[domain.Hex]bool)
	for _, h := range homes {
		reserved[h] = true
		for _, n := range h.Neighbors() {
			reserved[n] = true
		}
	}

	placed := 0
	for _, h := range m.Hexes() {
		if reserved[h] {
			continue
		}
		roll := rng.Intn(100)
		switch {
		case roll < chanceAsteroids:
			m.Block(h)
			// Астероиды не должны разрезать карту между родными мирами
			if _, ok := systems.FindPath(m, homes["A"], homes["B"]); !ok {
				m.Unblock(h)
				continue
			}
		case roll < chancePlanet:
			m.SetContent(h, domain.ContentPlanetStandard)
		case roll < chanceBarren:
			m.SetContent(h, domain.ContentPlanetBarren)
		case roll < chanceMinerals:
			m.SetContent(h, domain.ContentMinerals)
		case roll < chanceSupernova:
			m.SetContent(h, domain.ContentSupernova)
		case roll < chanceHorror:
			m.SetContent(h, domain.ContentHorror)
		default:
			continue
		}
		placed++
	}

	for _, p := range g.Players {
		home := homes[p]
		if err := placeHomeworld(g, p, home); err != nil {
			return nil, err
		}
		for _, f := range startingFleet {
			if _, err := g.SpawnGroup(p, f.Type, f.Count, home); err != nil {
				return nil, err
			}
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "scenario",
		"seed":      seed,
		"radius":    radius,
		"features":  placed,
	}).Info("Scenario generated.")
	return g, nil
}

// placeHomeworld: родной мир исследован с самого начала и производит максимум
func placeHomeworld(g *engine.Game, p domain.PlayerID, h domain.Hex) error {
	g.Map.SetContent(h, domain.ContentHomeworld)
	g.Map.SetExplored(h)
	return g.AddColony(h, domain.NewColony(p, domain.MaxColonyLevel, true))
}
