package entity

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/starblade/internal/gamedata"
)

// DefaultMorale is the morale every spawned enemy starts with.
const DefaultMorale = 10

// Enemy is a hostile combatant spawned for a single encounter.
type Enemy struct {
	Def        *gamedata.EnemyDef // Template this enemy was spawned from (nil in tests)
	ID         string             // Unique within the encounter
	Name       string
	Threat     int
	Health     int
	MaxHealth  int
	Attack     int
	Defense    int
	Initiative int
	Morale     int
}

// EnemyID returns the id of the index-th copy of a template in an encounter.
func EnemyID(name string, index int) string {
	return fmt.Sprintf("%s-%d", name, index)
}

// NewEnemyFromDef spawns an enemy at full health from a template.
func NewEnemyFromDef(def *gamedata.EnemyDef, index int) *Enemy {
	return &Enemy{
		Def:        def,
		ID:         EnemyID(def.Name, index),
		Name:       def.Name,
		Threat:     def.Threat,
		Health:     def.HP,
		MaxHealth:  def.HP,
		Attack:     def.Attack,
		Defense:    def.Defense,
		Initiative: def.Initiative,
		Morale:     DefaultMorale,
	}
}

// IsAlive returns true if the enemy has life energy remaining.
func (e *Enemy) IsAlive() bool { return e.Health > 0 }

// TakeDamage reduces health, floored at zero, and returns the damage taken.
func (e *Enemy) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, e.Health)
	e.Health -= actual
	return actual
}

// Glyph returns the display symbol.
func (e *Enemy) Glyph() rune {
	if e.Def != nil {
		return e.Def.GlyphRune()
	}
	return '?'
}

// Color returns the tcell color for this enemy.
func (e *Enemy) Color() tcell.Color {
	if e.Def != nil {
		return e.Def.TCellColor()
	}
	return tcell.ColorPurple
}

// GetName returns the enemy's display name.
func (e *Enemy) GetName() string { return e.Name }

// AttackValue returns the base value for attack rolls.
func (e *Enemy) AttackValue() int { return e.Attack }

// DefenseValue returns the base value for defense rolls.
func (e *Enemy) DefenseValue() int { return e.Defense }
