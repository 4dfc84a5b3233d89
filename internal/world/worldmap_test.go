package world

import (
	"context"
	"errors"
	"testing"

	"github.com/samdwyer/starblade/internal/gamedata"
)

func loadMap(t *testing.T) *Map {
	t.Helper()
	def, err := gamedata.LoadWorld()
	if err != nil {
		t.Fatalf("Failed to load world: %v", err)
	}
	m, err := NewMap(context.Background(), def)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	return m
}

func TestNewMap(t *testing.T) {
	m := loadMap(t)

	if m.Width != 10 || m.Height != 10 {
		t.Fatalf("Expected 10x10 map, got %dx%d", m.Width, m.Height)
	}
	if m.StartX != 9 || m.StartY != 4 {
		t.Errorf("Expected start (9,4), got (%d,%d)", m.StartX, m.StartY)
	}
	if len(m.Points) != 2 {
		t.Errorf("Expected 2 points of interest, got %d", len(m.Points))
	}
}

func TestGetTile(t *testing.T) {
	m := loadMap(t)

	tests := []struct {
		x, y    int
		ok      bool
		terrain string
		glyph   rune
	}{
		{0, 0, true, "mountain", '^'},
		{4, 3, true, "town", '#'},
		{3, 2, true, "road", '='},
		{8, 5, true, "ruin", '%'},
		{-1, 0, false, "", 0},
		{0, 10, false, "", 0},
	}
	for _, tt := range tests {
		tile, ok := m.GetTile(tt.x, tt.y)
		if ok != tt.ok {
			t.Errorf("GetTile(%d,%d) ok = %v, want %v", tt.x, tt.y, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if tile.TerrainID() != tt.terrain {
			t.Errorf("GetTile(%d,%d) terrain = %q, want %q", tt.x, tt.y, tile.TerrainID(), tt.terrain)
		}
		if tile.Rune() != tt.glyph {
			t.Errorf("GetTile(%d,%d) glyph = %q, want %q", tt.x, tt.y, tile.Rune(), tt.glyph)
		}
	}
}

func TestIsPassable(t *testing.T) {
	m := loadMap(t)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.IsPassable(x, y) {
				t.Errorf("Tile (%d,%d) should be passable", x, y)
			}
		}
	}
	for _, p := range [][2]int{{-1, 0}, {10, 0}, {0, -1}, {0, 10}} {
		if m.IsPassable(p[0], p[1]) {
			t.Errorf("Position %v outside the map should not be passable", p)
		}
	}
}

func TestPointAt(t *testing.T) {
	m := loadMap(t)

	town := m.PointAt(4, 3)
	if town == nil || town.ID != "town" {
		t.Fatalf("Expected town at (4,3), got %+v", town)
	}
	if !town.At(4, 3) || town.At(3, 4) {
		t.Error("town.At reports the wrong position")
	}
	if len(town.Completes) != 1 || town.Completes[0] != "kvirasim-intro" {
		t.Errorf("Unexpected completes: %v", town.Completes)
	}
	if m.PointAt(0, 0) != nil || m.PointAt(-5, 2) != nil {
		t.Error("Expected no point of interest")
	}
}

func TestNewMapRejectsBadLayouts(t *testing.T) {
	terrain := []gamedata.TerrainDef{{ID: "plain", Glyph: "."}}

	tests := []struct {
		name string
		def  gamedata.WorldDef
	}{
		{"ragged rows", gamedata.WorldDef{Terrain: terrain, Layout: [][]string{{"plain", "plain"}, {"plain"}}}},
		{"unknown terrain", gamedata.WorldDef{Terrain: terrain, Layout: [][]string{{"lava"}}}},
		{"start off map", gamedata.WorldDef{Terrain: terrain, Layout: [][]string{{"plain"}}, Start: gamedata.PointDef{X: 3}}},
		{"point off map", gamedata.WorldDef{Terrain: terrain, Layout: [][]string{{"plain"}},
			PointsOfInterest: []gamedata.PointOfInterestDef{{ID: "far", X: 5, Y: 5}}}},
	}
	for _, tt := range tests {
		def := tt.def
		if _, err := NewMap(context.Background(), &def); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}

	_, err := NewMap(context.Background(), &gamedata.WorldDef{})
	if !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("Expected ErrEmptyLayout, got %v", err)
	}
}

func TestTerrainLookup(t *testing.T) {
	m := loadMap(t)

	road := m.Terrain("road")
	if road == nil || road.EncounterChance != 0.08 {
		t.Fatalf("Unexpected road terrain: %+v", road)
	}
	if m.Terrain("lava") != nil {
		t.Error("Expected nil for unknown terrain")
	}
}
