package domain

import "testing"

func TestGameMap_Bounds(t *testing.T) {
	m := NewGameMap(-2, 2, -2, 2)

	tests := []struct {
		h    Hex
		want bool
	}{
		{Hex{0, 0}, true},
		{Hex{-2, -2}, true},
		{Hex{2, 2}, true},
		{Hex{3, 0}, false},
		{Hex{0, -3}, false},
	}
	for _, tt := range tests {
		if got := m.InBounds(tt.h); got != tt.want {
			t.Errorf("InBounds(%v) = %v, want %v", tt.h, got, tt.want)
		}
	}
}

func TestGameMap_BlockAndExploreOutsideBounds(t *testing.T) {
	m := NewGameMap(0, 1, 0, 1)
	outside := Hex{5, 5}

	m.Block(outside)
	m.SetExplored(outside)
	m.SetContent(outside, ContentMinerals)

	if m.IsBlocked(outside) || m.IsExplored(outside) {
		t.Error("out-of-bounds hex must not be recorded")
	}
	if len(m.BlockedHexes()) != 0 || len(m.ExploredHexes()) != 0 || len(m.Contents()) != 0 {
		t.Error("sets should stay empty")
	}
	if m.IsPassable(outside) {
		t.Error("out-of-bounds hex is never passable")
	}
}

func TestGameMap_Passability(t *testing.T) {
	m := NewGameMap(-1, 1, -1, 1)
	h := Hex{1, 0}

	if !m.IsPassable(h) {
		t.Fatal("open hex should be passable")
	}
	m.Block(h)
	if m.IsPassable(h) || !m.IsBlocked(h) {
		t.Error("blocked hex should not be passable")
	}
	for _, n := range m.PassableNeighbors(Hex{0, 0}) {
		if n == h {
			t.Error("PassableNeighbors returned blocked hex")
		}
	}
	m.Unblock(h)
	if !m.IsPassable(h) {
		t.Error("unblocked hex should be passable again")
	}
}

func TestGameMap_Content(t *testing.T) {
	m := NewGameMap(-1, 1, -1, 1)
	h := Hex{0, 1}

	if m.Content(h) != ContentClear {
		t.Errorf("default content = %v, want CLEAR", m.Content(h))
	}
	m.SetContent(h, ContentPlanetBarren)
	if m.Content(h) != ContentPlanetBarren {
		t.Errorf("content = %v", m.Content(h))
	}
	m.SetContent(h, ContentClear)
	if _, ok := m.Contents()[h]; ok {
		t.Error("setting CLEAR should drop the entry")
	}
}

func TestParseHexContent(t *testing.T) {
	tests := []struct {
		input string
		want  HexContent
		ok    bool
	}{
		{"MINERALS", ContentMinerals, true},
		{"planet_standard", ContentPlanetStandard, true},
		{"Supernova", ContentSupernova, true},
		{"BLACK_HOLE", ContentClear, false},
	}
	for _, tt := range tests {
		got, ok := ParseHexContent(tt.input)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseHexContent(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
	if !ContentPlanetBarren.IsPlanet() || ContentMinerals.IsPlanet() {
		t.Error("IsPlanet classification is wrong")
	}
	if !ContentHorror.IsHazard() || ContentHomeworld.IsHazard() {
		t.Error("IsHazard classification is wrong")
	}
}
