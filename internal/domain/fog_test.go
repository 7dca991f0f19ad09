package domain

import (
	"errors"
	"testing"
)

func TestFogRegistry_MarkersAreMonotonic(t *testing.T) {
	f := NewFogRegistry()

	if m := f.MarkerFor("A", "B1"); m != "M1" {
		t.Fatalf("first marker = %q, want M1", m)
	}
	if m := f.MarkerFor("A", "B2"); m != "M2" {
		t.Fatalf("second marker = %q, want M2", m)
	}
	if m := f.MarkerFor("A", "B1"); m != "M1" {
		t.Errorf("repeat lookup = %q, want M1", m)
	}
	// Счётчики независимы по наблюдателям
	if m := f.MarkerFor("B", "A1"); m != "M1" {
		t.Errorf("other viewer marker = %q, want M1", m)
	}

	f.Reveal("A", "B1")
	if !f.IsRevealed("A", "B1") {
		t.Error("B1 should be revealed to A")
	}
	if _, ok := f.ResolveToken("A", "M1", nil); ok {
		t.Error("retired marker must not resolve")
	}

	// M1 не переиспользуется
	if m := f.MarkerFor("A", "B3"); m != "M3" {
		t.Errorf("marker after reveal = %q, want M3", m)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestFogRegistry_RevealIdempotent(t *testing.T) {
	f := NewFogRegistry()
	f.Reveal("A", "B1")
	f.Reveal("A", "B1")
	if !f.IsRevealed("A", "B1") || f.IsRevealed("B", "B1") {
		t.Error("reveal must be per viewer")
	}
}

func TestFogRegistry_ResolveToken(t *testing.T) {
	f := NewFogRegistry()
	f.MarkerFor("A", "B7")
	// Литерально принимаются только свои группы наблюдателя
	own := func(id GroupID) bool { return id == "A1" }

	tests := []struct {
		token  string
		want   GroupID
		wantOK bool
	}{
		{"A1", "A1", true},
		{"M1", "B7", true},
		{"m1", "B7", true},
		{"M2", "", false},
		{"B7", "", false},
		{" a1 ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := f.ResolveToken("A", tt.token, own)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ResolveToken(%q) = %q, %v; want %q, %v", tt.token, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFogRegistry_MarkerIsReadOnly(t *testing.T) {
	f := NewFogRegistry()
	if _, ok := f.Marker("A", "B1"); ok {
		t.Fatal("no marker before allocation")
	}
	f.MarkerFor("A", "B1")
	if m, ok := f.Marker("A", "B1"); !ok || m != "M1" {
		t.Errorf("Marker = %q, %v", m, ok)
	}
	if _, ok := f.Marker("A", "B2"); ok {
		t.Error("lookup must not allocate")
	}
	if m := f.MarkerFor("A", "B2"); m != "M2" {
		t.Errorf("counter moved by lookup: %q", m)
	}
}

func TestFogRegistry_ExportImport(t *testing.T) {
	f := NewFogRegistry()
	f.MarkerFor("A", "B1")
	f.MarkerFor("A", "B2")
	f.Reveal("A", "B1")

	restored, err := ImportFog(f.Export())
	if err != nil {
		t.Fatalf("ImportFog: %v", err)
	}
	if !restored.IsRevealed("A", "B1") {
		t.Error("revealed set lost")
	}
	if got, ok := restored.ResolveToken("A", "M2", nil); !ok || got != "B2" {
		t.Errorf("marker M2 resolves to %q, %v", got, ok)
	}
	if m := restored.MarkerFor("A", "B9"); m != "M3" {
		t.Errorf("counter lost: next marker %q", m)
	}
}

func TestImportFog_RejectsCorruptTables(t *testing.T) {
	tests := []struct {
		name  string
		state ViewerFogState
	}{
		{"marker above counter", ViewerFogState{Markers: map[GroupID]string{"B1": "M5"}, NextMarker: 2}},
		{"revealed keeps marker", ViewerFogState{Revealed: []GroupID{"B1"}, Markers: map[GroupID]string{"B1": "M1"}, NextMarker: 2}},
		{"duplicate marker", ViewerFogState{Markers: map[GroupID]string{"B1": "M1", "B2": "m1"}, NextMarker: 3}},
		{"garbage marker", ViewerFogState{Markers: map[GroupID]string{"B1": "X1"}, NextMarker: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportFog(map[PlayerID]ViewerFogState{"A": tt.state})
			if !errors.Is(err, ErrCorruptFog) {
				t.Errorf("err = %v, want ErrCorruptFog", err)
			}
		})
	}
}
