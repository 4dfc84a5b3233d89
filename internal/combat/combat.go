// Package combat provides the turn-based combat engine: turn order, opposed
// rolls, damage, and victory or defeat detection for a single encounter.
package combat

import (
	"errors"
	"fmt"
	"time"
)

// Tuning constants for the combat rules.
const (
	SpellCost             = 4                      // Astral energy per spell
	DefendBonus           = 2                      // TempDefense gained per defend
	MinPhysicalDamage     = 4                      // Floor for hero weapon damage
	MinMagicDamage        = 6                      // Floor for hero spell damage
	MinEnemyDamage        = 3                      // Floor for enemy damage
	RewardBase            = 15                     // Minimum victory reward
	RewardSpread          = 10                     // Reward is RewardBase + round(uniform*RewardSpread)
	VictoryHealFraction   = 0.25                   // Share of max health restored after victory
	DefaultEnemyTurnDelay = 500 * time.Millisecond // Pause before an enemy acts
)

// Side identifies which team a combatant fights for.
type Side int

const (
	SideHero Side = iota
	SideEnemy
)

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SideHero:
		return "hero"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// ActionKind is one of the actions a hero can take on their turn.
type ActionKind string

const (
	ActionAttack ActionKind = "attack"
	ActionCast   ActionKind = "cast"
	ActionDefend ActionKind = "defend"
)

// ErrUnknownAction is returned when parsing an unrecognised action id.
var ErrUnknownAction = errors.New("unknown combat action")

// ParseActionKind converts an action id such as "cast" to an ActionKind.
func ParseActionKind(id string) (ActionKind, error) {
	switch kind := ActionKind(id); kind {
	case ActionAttack, ActionCast, ActionDefend:
		return kind, nil
	default:
		return "", fmt.Errorf("%q: %w", id, ErrUnknownAction)
	}
}

// NeedsTarget reports whether the action requires an enemy target.
func (k ActionKind) NeedsTarget() bool {
	return k == ActionAttack || k == ActionCast
}

// Outcome is the result of a finished encounter.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Phase represents the current state of a combat session.
type Phase int

const (
	// PhaseIdle - no encounter bound yet
	PhaseIdle Phase = iota
	// PhaseTurnStart - a combatant's turn is beginning
	PhaseTurnStart
	// PhaseAwaitingHeroInput - waiting for PerformHeroAction
	PhaseAwaitingHeroInput
	// PhaseEnemyAutoResolve - an enemy turn is scheduled
	PhaseEnemyAutoResolve
	// PhaseActionResolved - the active combatant has acted
	PhaseActionResolved
	// PhaseCleanup - removing fallen enemies and checking for an end
	PhaseCleanup
	// PhaseRoundAdvance - turn order exhausted, rebuilding for the next round
	PhaseRoundAdvance
	// PhaseVictory - all enemies defeated
	PhaseVictory
	// PhaseDefeat - all heroes incapacitated
	PhaseDefeat
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTurnStart:
		return "turn_start"
	case PhaseAwaitingHeroInput:
		return "awaiting_hero_input"
	case PhaseEnemyAutoResolve:
		return "enemy_auto_resolve"
	case PhaseActionResolved:
		return "action_resolved"
	case PhaseCleanup:
		return "cleanup"
	case PhaseRoundAdvance:
		return "round_advance"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}
