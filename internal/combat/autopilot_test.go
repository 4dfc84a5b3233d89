package combat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samdwyer/starblade/internal/entity"
)

func TestChooseAction(t *testing.T) {
	boar, wolf := testEnemy("Boar", 1, 5), testEnemy("Wolf", 1, 5)
	boar.Health, wolf.Health = 12, 7
	enemies := []*entity.Enemy{boar, wolf}

	tests := []struct {
		name       string
		mutate     func(h *entity.Hero)
		wantKind   ActionKind
		wantTarget string
	}{
		{
			name:       "clever hero casts at weakest",
			mutate:     func(h *entity.Hero) {},
			wantKind:   ActionCast,
			wantTarget: "Wolf-1",
		},
		{
			name:       "strong hero attacks",
			mutate:     func(h *entity.Hero) { h.Attributes.Strength = 14 },
			wantKind:   ActionAttack,
			wantTarget: "Wolf-1",
		},
		{
			name:       "drained caster attacks",
			mutate:     func(h *entity.Hero) { h.Combat.Astral = SpellCost - 1 },
			wantKind:   ActionAttack,
			wantTarget: "Wolf-1",
		},
		{
			name:     "wounded hero defends",
			mutate:   func(h *entity.Hero) { h.Combat.Health = 7 },
			wantKind: ActionDefend,
		},
		{
			name: "wounded hero with stance up fights",
			mutate: func(h *entity.Hero) {
				h.Combat.Health = 7
				h.Combat.TempDefense = 1
			},
			wantKind:   ActionCast,
			wantTarget: "Wolf-1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hero := testHero("hero", 10)
			tt.mutate(hero)
			kind, target := ChooseAction(hero, enemies)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantTarget, target)
		})
	}
}

func TestChooseActionTiesPickFirst(t *testing.T) {
	a, b := testEnemy("Boar", 1, 5), testEnemy("Boar", 2, 5)
	hero := testHero("hero", 10)
	hero.Attributes.Strength = 20

	_, target := ChooseAction(hero, []*entity.Enemy{a, b})
	assert.Equal(t, "Boar-1", target)

	a.Health = 0
	_, target = ChooseAction(hero, []*entity.Enemy{a, b})
	assert.Equal(t, "Boar-2", target)

	kind, _ := ChooseAction(hero, nil)
	assert.Equal(t, ActionDefend, kind)
}

func TestAutopilotIgnoresEnemyTurns(t *testing.T) {
	ap := NewAutopilot(context.Background())
	ap.OnUpdate(Update{WaitingForInput: true, Active: &CombatantSummary{Side: SideHero}})
	assert.Zero(t, ap.Actions(), "unattached autopilot must not act")

	s, _ := newTestSession(t, []*entity.Hero{testHero("hero", 1)}, nil, &queueScheduler{})
	ap.Attach(s)
	ap.OnUpdate(Update{Active: &CombatantSummary{Side: SideEnemy, ID: "Boar-1"}, Encounter: testEncounter()})
	assert.Zero(t, ap.Actions())
}
