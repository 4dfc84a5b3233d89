// Package game provides the terminal host: the event loop that ties input,
// the expedition, combat sessions and rendering together.
package game

// State represents the current input mode.
type State int

const (
	// StateExplore is the default exploration mode where the party moves as one unit.
	StateExplore State = iota
	// StateCombat is the turn-based combat mode where heroes act individually.
	StateCombat
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateCombat:
		return "combat"
	default:
		return "unknown"
	}
}

// Help returns the key hints shown for the state.
func (s State) Help() string {
	switch s {
	case StateExplore:
		return "arrows move  r rest  c camp  q quit"
	case StateCombat:
		return "1-3 act  Tab next target  q quit"
	default:
		return "q quit"
	}
}
