package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/starblade/internal/combat"
	"github.com/samdwyer/starblade/internal/entity"
	"github.com/samdwyer/starblade/internal/expedition"
	"github.com/samdwyer/starblade/internal/gamedata"
	"github.com/samdwyer/starblade/internal/world"
)

// View is everything the renderer draws in one frame.
type View struct {
	World   *world.Map
	Party   *entity.Party
	Hour    float64
	Fatigue float64
	Mode    string
	Help    string             // Key hints for the current mode
	Journal []expedition.Entry // Newest first
	Quests  []expedition.Quest
	Combat  *CombatView // nil outside combat
}

// CombatView is the combat panel's input.
type CombatView struct {
	Update  combat.Update
	Target  string // Selected enemy id
	Actions []gamedata.ActionDef
}

// Line is a single row of panel text.
type Line struct {
	Text  string
	Style tcell.Style
}

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleActive = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleDown   = tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
)

// StatusLine returns the header with world name, clock, fatigue and mode.
func StatusLine(v View) string {
	name := ""
	if v.World != nil {
		name = v.World.Name
	}
	return fmt.Sprintf("%s  %s  Fatigue %.1f  [%s]", name, expedition.FormatHour(v.Hour), v.Fatigue, v.Mode)
}

// PartyLines lists each hero with health, astral energy and adventure points.
func PartyLines(party *entity.Party) []Line {
	if party == nil {
		return nil
	}
	lines := []Line{{Text: "Party", Style: styleTitle}}
	for _, h := range party.Members {
		style := styleText
		if !h.IsAlive() {
			style = styleDown
		}
		text := fmt.Sprintf("%c %s (%s)", h.Symbol, h.Name, h.Profession)
		lines = append(lines, Line{Text: text, Style: style})

		stats := fmt.Sprintf("  LE %d/%d  AE %d/%d  AP %d",
			h.Combat.Health, h.Combat.MaxHealth, h.Combat.Astral, h.Combat.MaxAstral, h.Experience)
		if h.Combat.TempDefense > 0 {
			stats += fmt.Sprintf("  +%d DEF", h.Combat.TempDefense)
		}
		lines = append(lines, Line{Text: stats, Style: styleDim})
	}
	return lines
}

// QuestLines lists quests that are not merely open.
func QuestLines(quests []expedition.Quest) []Line {
	lines := []Line{{Text: "Quests", Style: styleTitle}}
	for _, q := range quests {
		switch q.Status {
		case expedition.QuestActive:
			lines = append(lines, Line{Text: "- " + q.Title, Style: styleText})
		case expedition.QuestCompleted:
			lines = append(lines, Line{Text: "+ " + q.Title, Style: styleDim})
		}
	}
	return lines
}

// CombatLines renders the round, turn order, enemies and action hotkeys.
func CombatLines(cv *CombatView, party *entity.Party) []Line {
	if cv == nil {
		return nil
	}
	u := cv.Update
	lines := []Line{{Text: fmt.Sprintf("Round %d  %s", u.Round, u.Phase), Style: styleTitle}}

	lines = append(lines, Line{Text: "Turn order", Style: styleDim})
	for i, entry := range u.TurnOrder {
		marker := " "
		style := styleText
		if i == u.ActiveIndex && !u.Finished {
			marker = ">"
			style = styleActive
		}
		name, alive := entryName(entry, u.Encounter, party)
		if !alive {
			style = styleDown
		}
		lines = append(lines, Line{Text: fmt.Sprintf("%s %-18s %2d", marker, name, entry.Initiative), Style: style})
	}

	if u.Encounter != nil {
		lines = append(lines, Line{Text: "Enemies", Style: styleDim})
		for _, e := range u.Encounter.Members {
			marker := " "
			if e.ID == cv.Target {
				marker = "*"
			}
			style := tcell.StyleDefault.Foreground(e.Color())
			if !e.IsAlive() {
				style = styleDown
			}
			lines = append(lines, Line{
				Text:  fmt.Sprintf("%s %c %s  LE %d/%d", marker, e.Glyph(), e.ID, e.Health, e.MaxHealth),
				Style: style,
			})
		}
	}

	switch {
	case u.Finished:
		lines = append(lines, Line{Text: "The fight is over.", Style: styleTitle})
	case u.WaitingForInput && u.Active != nil:
		lines = append(lines, Line{Text: u.Active.Name + " acts:", Style: styleActive})
		lines = append(lines, Line{Text: ActionMenu(cv.Actions) + "  [Tab] target", Style: styleText})
	default:
		lines = append(lines, Line{Text: "The enemy moves...", Style: styleDim})
	}
	return lines
}

// ActionMenu formats the hotkey bar, e.g. "[1] Attack  [2] Cast Spell (4 AE)".
func ActionMenu(actions []gamedata.ActionDef) string {
	parts := make([]string, 0, len(actions))
	for i := range actions {
		a := &actions[i]
		part := fmt.Sprintf("[%s] %s", a.HotkeyLabel(), a.Name)
		if a.AstralCost > 0 {
			part += fmt.Sprintf(" (%d AE)", a.AstralCost)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "  ")
}

func entryName(entry combat.TurnEntry, enc *entity.Encounter, party *entity.Party) (string, bool) {
	if entry.Side == combat.SideEnemy && enc != nil {
		if e := enc.EnemyByID(entry.ID); e != nil {
			return e.ID, e.IsAlive()
		}
	}
	if entry.Side == combat.SideHero && party != nil {
		if h := party.HeroByID(entry.ID); h != nil {
			return h.Name, h.IsAlive()
		}
	}
	return entry.ID, false
}
