package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/starblade/internal/world"
)

// Layout offsets.
const (
	mapLeft  = 1
	mapTop   = 2
	tileCols = 2 // Each tile is drawn as glyph plus a space
	panelGap = 3
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one frame: status line, map and party, side panels and the
// journal below the map.
func (r *Renderer) Render(v View) {
	r.screen.Clear()
	width, height := r.screen.Size()

	r.RenderMessage(StatusLine(v), 0)
	r.drawText(0, 1, width, v.Help, styleDim)

	mapBottom := mapTop
	panelLeft := mapLeft
	if v.World != nil {
		r.renderMap(v)
		mapBottom = mapTop + v.World.Height
		panelLeft = mapLeft + v.World.Width*tileCols + panelGap
	}

	y := mapTop
	y = r.renderLines(panelLeft, y, width, PartyLines(v.Party)) + 1
	if v.Combat != nil {
		y = r.renderLines(panelLeft, y, width, CombatLines(v.Combat, v.Party)) + 1
	} else {
		y = r.renderLines(panelLeft, y, width, QuestLines(v.Quests)) + 1
	}

	journalTop := max(mapBottom, y) + 1
	for i, entry := range v.Journal {
		row := journalTop + i
		if row >= height {
			break
		}
		style := styleText
		if i > 0 {
			style = styleDim
		}
		r.drawText(mapLeft, row, width, entry.String(), style)
	}

	r.screen.Show()
}

func (r *Renderer) renderMap(v View) {
	m := v.World
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile, ok := m.GetTile(x, y)
			if !ok {
				continue
			}
			glyph := tile.Rune()
			if tile.Point != nil {
				glyph = '!'
			}
			r.screen.SetContent(mapLeft+x*tileCols, mapTop+y, glyph, r.getTileStyle(tile))
		}
	}

	if v.Party != nil {
		partyStyle := tcell.StyleDefault.
			Foreground(tcell.ColorYellow).
			Bold(true)
		r.screen.SetContent(mapLeft+v.Party.X*tileCols, mapTop+v.Party.Y, v.Party.Symbol, partyStyle)
	}
}

// getTileStyle returns the style for a tile's terrain.
func (r *Renderer) getTileStyle(tile world.Tile) tcell.Style {
	if tile.Point != nil {
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	}
	return tcell.StyleDefault.Foreground(tile.Color())
}

// renderLines draws lines from row y and returns the row after the last one.
func (r *Renderer) renderLines(x, y, width int, lines []Line) int {
	for _, l := range lines {
		r.drawText(x, y, width, l.Text, l.Style)
		y++
	}
	return y
}

func (r *Renderer) drawText(x, y, width int, text string, style tcell.Style) {
	for _, ch := range text {
		if x >= width {
			return
		}
		r.screen.SetContent(x, y, ch, style)
		x++
	}
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	width, _ := r.screen.Size()
	r.drawText(0, y, width, msg, styleText)
}
