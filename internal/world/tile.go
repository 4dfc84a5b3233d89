// Package world provides the terrain map the party explores.
package world

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/starblade/internal/gamedata"
)

// Tile is a single map cell.
type Tile struct {
	X, Y    int
	Terrain *gamedata.TerrainDef
	Point   *PointOfInterest // nil unless a point of interest sits here
}

// TerrainID returns the terrain identifier used for encounter lookup.
func (t Tile) TerrainID() string {
	return t.Terrain.ID
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return t.Terrain.GlyphRune()
}

// Color returns the tile's display color.
func (t Tile) Color() tcell.Color {
	return gamedata.ColorOr(t.Terrain.Color, tcell.ColorGray)
}
