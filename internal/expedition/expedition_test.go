package expedition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/samdwyer/starblade/internal/combat"
	"github.com/samdwyer/starblade/internal/dice/dicetest"
	"github.com/samdwyer/starblade/internal/entity"
	"github.com/samdwyer/starblade/internal/gamedata"
	"github.com/samdwyer/starblade/internal/telemetry"
	"github.com/samdwyer/starblade/internal/world"
)

func newTestExpedition(t *testing.T, script *dicetest.Script) *Expedition {
	t.Helper()
	content, err := gamedata.LoadContent()
	require.NoError(t, err)
	m, err := world.NewMap(context.Background(), content.World)
	require.NoError(t, err)
	party, err := entity.NewDefaultParty(content.Classes, content.Party, 0, 0)
	require.NoError(t, err)

	e, err := New(Config{
		Map:        m,
		Party:      party,
		Encounters: content.Encounters,
		Quests:     content.Quests,
		Source:     script,
		Tracer:     telemetry.NoopTracer(),
	})
	require.NoError(t, err)
	return e
}

func latest(e *Expedition) string {
	return e.Journal().Entries()[0].Text
}

func TestNew(t *testing.T) {
	e := newTestExpedition(t, dicetest.New())

	x, y := e.Party().Position()
	assert.Equal(t, 9, x)
	assert.Equal(t, 4, y)
	assert.Equal(t, ModeExploration, e.Mode())
	assert.Equal(t, DefaultStartHour, e.TimeOfDay())
	assert.Zero(t, e.Fatigue())
	assert.Equal(t, "forest", e.CurrentTile().TerrainID())

	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrMissingCollaborator)
}

func TestMoveBlockedAtEdge(t *testing.T) {
	e := newTestExpedition(t, dicetest.New())

	result := e.Move(context.Background(), 1, 0)
	assert.False(t, result.Moved)
	assert.Equal(t, 9, e.Party().X)
	assert.Zero(t, e.Fatigue())
	assert.Contains(t, latest(e), "invisible barrier")
}

func TestMoveWithoutEncounter(t *testing.T) {
	e := newTestExpedition(t, dicetest.New().Floats(0.99))

	result := e.Move(context.Background(), -1, 0)
	require.True(t, result.Moved)
	assert.Nil(t, result.Encounter)
	assert.Equal(t, "plain", result.Tile.TerrainID())
	assert.Equal(t, 8, e.Party().X)
	assert.InDelta(t, 1.0, e.Fatigue(), 1e-9)
	assert.InDelta(t, 10.7, e.TimeOfDay(), 1e-9)
	assert.Equal(t, "You travel through the wide meadows near Kvirasim.", latest(e))
	assert.Equal(t, "[10:42] You travel through the wide meadows near Kvirasim.", e.Journal().Entries()[0].String())
}

func TestMoveTriggersEncounter(t *testing.T) {
	// Chance roll 0 always triggers; pick the second plains template; 0.7 rounds to two enemies.
	e := newTestExpedition(t, dicetest.New().Floats(0, 0.7).Ints(1))

	result := e.Move(context.Background(), -1, 0)
	require.True(t, result.Moved)
	require.NotNil(t, result.Encounter)
	assert.Equal(t, "Wild Dog", result.Encounter.Name)
	require.Len(t, result.Encounter.Members, 2)
	assert.Equal(t, "Wild Dog-0", result.Encounter.Members[0].ID)
	assert.Equal(t, "Wild Dog-1", result.Encounter.Members[1].ID)
	assert.Equal(t, 16, result.Encounter.Members[1].Health)
	assert.Equal(t, entity.DefaultMorale, result.Encounter.Members[0].Morale)

	assert.Equal(t, ModeCombat, e.Mode())
	assert.Same(t, result.Encounter, e.Encounter())
	assert.Equal(t, "A fight begins! 2x Wild Dog stand against you.", latest(e))

	assert.False(t, e.Move(context.Background(), -1, 0).Moved, "no travel during combat")
	assert.False(t, e.Rest())
	assert.False(t, e.Camp())
	assert.False(t, e.ShouldTriggerEncounter("plain"))
}

func TestEncounterChance(t *testing.T) {
	e := newTestExpedition(t, dicetest.New())

	tests := []struct {
		terrain string
		fatigue float64
		want    float64
	}{
		{"plain", 0, 0.18},
		{"road", 0, 0.08},
		{"town", 5, 0},
		{"lava", 5, 0},
		{"forest", 1, 0.28},
		{"mountain", 9, 0.43},
	}
	for _, tt := range tests {
		e.fatigue = tt.fatigue
		assert.InDelta(t, tt.want, e.EncounterChance(tt.terrain), 1e-9, "%s at fatigue %v", tt.terrain, tt.fatigue)
	}
}

func TestNoEncountersInTown(t *testing.T) {
	e := newTestExpedition(t, dicetest.New().Floats(0, 0, 0))
	assert.False(t, e.ShouldTriggerEncounter("town"))
	assert.False(t, e.ShouldTriggerEncounter("water"))
	assert.True(t, e.ShouldTriggerEncounter("road"))
}

func TestGenerateEncounter(t *testing.T) {
	e := newTestExpedition(t, dicetest.New().Floats(0.2).Ints(0))

	enc := e.GenerateEncounter("lava")
	assert.Equal(t, "Wild Boar", enc.Name)
	assert.Equal(t, "lava", enc.Terrain)
	require.Len(t, enc.Members, 1)
	assert.Equal(t, "Wild Boar-0", enc.Members[0].ID)
}

func TestGenerateEncounterSize(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		u := rapid.Float64Range(0, 0.9999).Draw(rt, "uniform")
		e := newTestExpedition(t, dicetest.New().Floats(u))
		enc := e.GenerateEncounter("forest")
		if n := len(enc.Members); n < 1 || n > 2 {
			rt.Fatalf("encounter size %d", n)
		}
		for _, m := range enc.Members {
			if m.Health != m.MaxHealth {
				rt.Fatalf("%s spawned hurt", m.ID)
			}
		}
	})
}

func TestEncounterEnded(t *testing.T) {
	e := newTestExpedition(t, dicetest.New())
	e.StartEncounter(context.Background(), e.GenerateEncounter("plain"))
	e.fatigue = 3

	e.EncounterEnded(combat.OutcomeVictory)
	assert.Equal(t, ModeExploration, e.Mode())
	assert.Nil(t, e.Encounter())
	assert.InDelta(t, 1.0, e.Fatigue(), 1e-9)

	e.StartEncounter(context.Background(), e.GenerateEncounter("plain"))
	e.EncounterEnded(combat.OutcomeDefeat)
	assert.Zero(t, e.Fatigue())
	assert.Equal(t, "The party withdraws, marked by the fight.", latest(e))
}

func TestRest(t *testing.T) {
	e := newTestExpedition(t, dicetest.New())
	e.fatigue = 3
	warrior, mage := e.Party().Members[0], e.Party().Members[1]
	warrior.TakeDamage(10)
	mage.TakeDamage(2)
	mage.SpendAstral(10)
	wounded, drained := warrior.Combat.Health, mage.Combat.Astral

	require.True(t, e.Rest())
	assert.Equal(t, wounded+RestHealth, warrior.Combat.Health)
	assert.Equal(t, mage.Combat.MaxHealth, mage.Combat.Health)
	assert.Equal(t, drained+RestAstral, mage.Combat.Astral)
	assert.Zero(t, e.Fatigue())
	assert.InDelta(t, 12.0, e.TimeOfDay(), 1e-9)
}

func TestCampWrapsTime(t *testing.T) {
	e := newTestExpedition(t, dicetest.New())
	e.hour = 20
	e.fatigue = 10
	for _, h := range e.Party().Members {
		h.TakeDamage(h.Combat.MaxHealth)
		h.SpendAstral(h.Combat.Astral)
	}

	require.True(t, e.Camp())
	for _, h := range e.Party().Members {
		assert.Equal(t, h.Combat.MaxHealth, h.Combat.Health)
		assert.Equal(t, h.Combat.MaxAstral, h.Combat.Astral)
	}
	assert.InDelta(t, 4.0, e.TimeOfDay(), 1e-9)
	assert.InDelta(t, 4.0, e.Fatigue(), 1e-9)
}

func TestQuestProgress(t *testing.T) {
	// Only the ruin rolls for an encounter; 0.99 avoids it.
	e := newTestExpedition(t, dicetest.New().Floats(0.99))
	ctx := context.Background()

	e.Party().X, e.Party().Y = 5, 3
	result := e.Move(ctx, -1, 0)
	require.NotNil(t, result.Point)
	assert.Equal(t, "town", result.Point.ID)
	assert.Equal(t, QuestCompleted, e.Quests().Get("kvirasim-intro").Status)
	assert.Equal(t, QuestActive, e.Quests().Get("starblade").Status)
	assert.Contains(t, latest(e), "captain")

	e.Party().X, e.Party().Y = 7, 5
	result = e.Move(ctx, 1, 0)
	require.NotNil(t, result.Point)
	assert.Nil(t, result.Encounter)
	assert.Equal(t, QuestCompleted, e.Quests().Get("starblade").Status)
	assert.Contains(t, latest(e), "starblade")
}

func TestCombatSessionReportsToExpedition(t *testing.T) {
	ctx := context.Background()
	e := newTestExpedition(t, dicetest.New())
	enc := &entity.Encounter{Name: "Wild Boar", Terrain: "plain", Members: []*entity.Enemy{{ID: "Wild Boar-0", Name: "Wild Boar"}}}
	e.StartEncounter(ctx, enc)
	e.fatigue = 5

	s, err := combat.NewSession(combat.Config{
		Party:          e.Party(),
		Source:         dicetest.New(),
		Narrator:       e,
		OutcomeHandler: e,
		Tracer:         telemetry.NoopTracer(),
	})
	require.NoError(t, err)
	require.NoError(t, s.Start(ctx, enc))

	assert.Equal(t, combat.OutcomeVictory, s.Outcome())
	assert.Equal(t, ModeExploration, e.Mode())
	assert.InDelta(t, 3.0, e.Fatigue(), 1e-9)
	assert.Contains(t, latest(e), "Victory!")
}
