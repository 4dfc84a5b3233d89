package combat

import "github.com/samdwyer/starblade/internal/entity"

// CombatantSummary describes the combatant whose turn it is.
type CombatantSummary struct {
	Side       Side
	ID         string
	Name       string
	Health     int
	MaxHealth  int
	Initiative int
}

// Update is a snapshot of session state delivered to listeners.
// Encounter is nil once the session has finished.
type Update struct {
	Round           int
	TurnOrder       []TurnEntry
	ActiveIndex     int
	WaitingForInput bool
	Phase           Phase
	Encounter       *entity.Encounter
	Active          *CombatantSummary
	Finished        bool
	Outcome         Outcome
}

// Listener receives state updates. It is called on the goroutine driving the
// session and may call back into it.
type Listener interface {
	OnUpdate(u Update)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(u Update)

// OnUpdate calls f(u).
func (f ListenerFunc) OnUpdate(u Update) { f(u) }

// Listeners fans an update out to several listeners in order.
type Listeners []Listener

// OnUpdate forwards u to every listener.
func (ls Listeners) OnUpdate(u Update) {
	for _, l := range ls {
		l.OnUpdate(u)
	}
}

// Narrator receives human-readable combat narration.
type Narrator interface {
	Log(message string)
}

// NarratorFunc adapts a function to a Narrator.
type NarratorFunc func(message string)

// Log calls f(message).
func (f NarratorFunc) Log(message string) { f(message) }

// OutcomeHandler is notified once when an encounter ends.
type OutcomeHandler interface {
	EncounterEnded(outcome Outcome)
}

// OutcomeHandlerFunc adapts a function to an OutcomeHandler.
type OutcomeHandlerFunc func(outcome Outcome)

// EncounterEnded calls f(outcome).
func (f OutcomeHandlerFunc) EncounterEnded(outcome Outcome) { f(outcome) }

type nopListener struct{}

func (nopListener) OnUpdate(Update) {}

type nopNarrator struct{}

func (nopNarrator) Log(string) {}

type nopOutcomeHandler struct{}

func (nopOutcomeHandler) EncounterEnded(Outcome) {}
