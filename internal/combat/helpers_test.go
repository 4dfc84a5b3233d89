package combat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samdwyer/starblade/internal/dice"
	"github.com/samdwyer/starblade/internal/entity"
	"github.com/samdwyer/starblade/internal/telemetry"
)

// recorder captures updates, narration and outcomes from a session.
type recorder struct {
	updates  []Update
	lines    []string
	outcomes []Outcome
}

func (r *recorder) OnUpdate(u Update)              { r.updates = append(r.updates, u) }
func (r *recorder) Log(message string)             { r.lines = append(r.lines, message) }
func (r *recorder) EncounterEnded(outcome Outcome) { r.outcomes = append(r.outcomes, outcome) }

func (r *recorder) terminal() []Update {
	var out []Update
	for _, u := range r.updates {
		if u.Finished {
			out = append(out, u)
		}
	}
	return out
}

func (r *recorder) last() Update {
	return r.updates[len(r.updates)-1]
}

// pendingTurn is a scheduled callback held by queueScheduler.
type pendingTurn struct {
	delay     time.Duration
	fn        func()
	cancelled bool
}

// queueScheduler holds scheduled enemy turns until the test flushes them.
type queueScheduler struct {
	pending []*pendingTurn
}

func (q *queueScheduler) Schedule(delay time.Duration, fn func()) func() {
	p := &pendingTurn{delay: delay, fn: fn}
	q.pending = append(q.pending, p)
	return func() { p.cancelled = true }
}

// flush runs the oldest live pending callback and reports whether one ran.
func (q *queueScheduler) flush() bool {
	for len(q.pending) > 0 {
		p := q.pending[0]
		q.pending = q.pending[1:]
		if !p.cancelled {
			p.fn()
			return true
		}
	}
	return false
}

func testHero(id string, initiative int) *entity.Hero {
	return &entity.Hero{
		ID:         id,
		Name:       id,
		Attributes: entity.Attributes{Courage: 10, Intellect: 12, Intuition: 12, Agility: 10, Constitution: 10, Strength: 10},
		Combat: entity.HeroCombat{
			Health:     30,
			MaxHealth:  30,
			Astral:     10,
			MaxAstral:  10,
			Attack:     12,
			Defense:    10,
			Initiative: initiative,
			Weapon:     "Sword",
		},
	}
}

func testEnemy(name string, index, initiative int) *entity.Enemy {
	return &entity.Enemy{
		ID:         entity.EnemyID(name, index),
		Name:       name,
		Threat:     1,
		Health:     20,
		MaxHealth:  20,
		Attack:     10,
		Defense:    8,
		Initiative: initiative,
		Morale:     entity.DefaultMorale,
	}
}

func testEncounter(enemies ...*entity.Enemy) *entity.Encounter {
	return &entity.Encounter{Name: "Test Encounter", Terrain: "plain", Members: enemies}
}

func newTestSession(t *testing.T, heroes []*entity.Hero, src dice.Source, sched Scheduler) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s, err := NewSession(Config{
		Party:          entity.NewParty(heroes, 0, 0),
		Source:         src,
		Scheduler:      sched,
		EnemyTurnDelay: DefaultEnemyTurnDelay,
		Listener:       rec,
		Narrator:       rec,
		OutcomeHandler: rec,
		Tracer:         telemetry.NoopTracer(),
	})
	require.NoError(t, err)
	return s, rec
}
