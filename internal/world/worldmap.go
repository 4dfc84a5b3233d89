package world

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/starblade/internal/gamedata"
	"github.com/samdwyer/starblade/internal/telemetry"
)

// ErrEmptyLayout is returned for a world without any rows.
var ErrEmptyLayout = errors.New("world layout is empty")

// Map represents the world the party travels.
type Map struct {
	Name    string
	Width   int
	Height  int
	StartX  int
	StartY  int
	Points  []*PointOfInterest
	tiles   [][]Tile
	terrain map[string]*gamedata.TerrainDef
}

// NewMap builds a map from its definition. Every row must have the same
// width and every cell must name a defined terrain.
func NewMap(ctx context.Context, def *gamedata.WorldDef) (*Map, error) {
	_, span := telemetry.Tracer("world").Start(ctx, "world.load")
	defer span.End()

	if len(def.Layout) == 0 {
		return nil, ErrEmptyLayout
	}

	terrain := make(map[string]*gamedata.TerrainDef, len(def.Terrain))
	for i := range def.Terrain {
		terrain[def.Terrain[i].ID] = &def.Terrain[i]
	}

	m := &Map{
		Name:    def.Name,
		Width:   len(def.Layout[0]),
		Height:  len(def.Layout),
		StartX:  def.Start.X,
		StartY:  def.Start.Y,
		tiles:   make([][]Tile, len(def.Layout)),
		terrain: terrain,
	}
	for y, row := range def.Layout {
		if len(row) != m.Width {
			return nil, fmt.Errorf("world row %d has %d cells, want %d", y, len(row), m.Width)
		}
		m.tiles[y] = make([]Tile, m.Width)
		for x, id := range row {
			t, ok := terrain[id]
			if !ok {
				return nil, fmt.Errorf("world cell (%d,%d): unknown terrain %q", x, y, id)
			}
			m.tiles[y][x] = Tile{X: x, Y: y, Terrain: t}
		}
	}

	for _, p := range def.PointsOfInterest {
		if !m.InBounds(p.X, p.Y) {
			return nil, fmt.Errorf("point of interest %q at (%d,%d) is off the map", p.ID, p.X, p.Y)
		}
		point := &PointOfInterest{
			ID:          p.ID,
			Title:       p.Title,
			X:           p.X,
			Y:           p.Y,
			Description: p.Description,
			Completes:   p.Completes,
			Activates:   p.Activates,
			Message:     p.Message,
		}
		m.Points = append(m.Points, point)
		m.tiles[p.Y][p.X].Point = point
	}

	if !m.InBounds(m.StartX, m.StartY) {
		return nil, fmt.Errorf("start (%d,%d) is off the map", m.StartX, m.StartY)
	}

	span.SetAttributes(
		attribute.String("world.name", m.Name),
		attribute.Int("world.width", m.Width),
		attribute.Int("world.height", m.Height),
		attribute.Int("world.points", len(m.Points)),
	)
	return m, nil
}

// InBounds returns true if the position lies on the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// IsPassable returns true if the given position can be walked on.
// All terrain is walkable; only the map edge blocks.
func (m *Map) IsPassable(x, y int) bool {
	return m.InBounds(x, y)
}

// GetTile returns the tile at the given position.
func (m *Map) GetTile(x, y int) (Tile, bool) {
	if !m.InBounds(x, y) {
		return Tile{}, false
	}
	return m.tiles[y][x], true
}

// Terrain returns the terrain definition with the given id, or nil.
func (m *Map) Terrain(id string) *gamedata.TerrainDef {
	return m.terrain[id]
}

// PointAt returns the point of interest at the position, or nil.
func (m *Map) PointAt(x, y int) *PointOfInterest {
	if !m.InBounds(x, y) {
		return nil
	}
	return m.tiles[y][x].Point
}
