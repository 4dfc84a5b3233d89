package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/samdwyer/starblade/internal/dice"
	"github.com/samdwyer/starblade/internal/dice/dicetest"
)

func newScriptedResolver(script *dicetest.Script) *EffectResolver {
	return NewEffectResolver(dice.NewRoller(script, nil))
}

func TestHeroPhysicalDamage(t *testing.T) {
	tests := []struct {
		strength int
		face     int
		want     int
	}{
		{strength: 0, face: 1, want: MinPhysicalDamage},
		{strength: 4, face: 2, want: MinPhysicalDamage},
		{strength: 10, face: 5, want: 8}, // 5 + 2.5 rounds up
		{strength: 13, face: 6, want: 10},
	}
	for _, tt := range tests {
		hero := testHero("hero", 1)
		hero.Attributes.Strength = tt.strength
		r := newScriptedResolver(dicetest.New().Faces(tt.face))
		assert.Equal(t, tt.want, r.HeroPhysicalDamage(hero), "strength %d face %d", tt.strength, tt.face)
	}
}

func TestHeroMagicDamage(t *testing.T) {
	tests := []struct {
		intuition int
		face      int
		want      int
	}{
		{intuition: 0, face: 1, want: MinMagicDamage},
		{intuition: 12, face: 2, want: 10},
		{intuition: 13, face: 1, want: 10}, // 8.67 + 1
	}
	for _, tt := range tests {
		hero := testHero("hero", 1)
		hero.Attributes.Intuition = tt.intuition
		r := newScriptedResolver(dicetest.New().Faces(tt.face))
		assert.Equal(t, tt.want, r.HeroMagicDamage(hero), "intuition %d face %d", tt.intuition, tt.face)
	}
}

func TestEnemyDamage(t *testing.T) {
	tests := []struct {
		threat  int
		uniform float64
		want    int
	}{
		{threat: 0, uniform: 0, want: MinEnemyDamage},
		{threat: 1, uniform: 0.1, want: 3},
		{threat: 2, uniform: 0.5, want: 8},
		{threat: 4, uniform: 0.99, want: 16},
	}
	for _, tt := range tests {
		enemy := testEnemy("Troll", 1, 1)
		enemy.Threat = tt.threat
		r := newScriptedResolver(dicetest.New().Floats(tt.uniform))
		assert.Equal(t, tt.want, r.EnemyDamage(enemy), "threat %d uniform %v", tt.threat, tt.uniform)
	}
}

func TestEnemyAttackUsesTempDefense(t *testing.T) {
	enemy := testEnemy("Troll", 1, 1)
	hero := testHero("hero", 1)

	// 10+4 beats 10+3 without a stance.
	result := newScriptedResolver(dicetest.New().Faces(4, 3).Floats(0)).EnemyAttack(enemy, hero)
	assert.True(t, result.Hit)
	assert.Equal(t, 14, result.AttackRoll)
	assert.Equal(t, 13, result.DefenseRoll)
	assert.Equal(t, MinEnemyDamage, result.Damage)

	// The same rolls miss once the hero holds +2.
	hero.Combat.TempDefense = 2
	health := hero.Combat.Health
	result = newScriptedResolver(dicetest.New().Faces(4, 3)).EnemyAttack(enemy, hero)
	assert.False(t, result.Hit)
	assert.Zero(t, result.Damage)
	assert.Equal(t, health, hero.Combat.Health)
}

func TestDamageNeverExceedsHealth(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		enemy := testEnemy("Troll", 1, 1)
		enemy.Threat = rapid.IntRange(0, 10).Draw(rt, "threat")
		hero := testHero("hero", 1)
		hero.Combat.Health = rapid.IntRange(1, hero.Combat.MaxHealth).Draw(rt, "health")
		script := dicetest.New().
			Faces(rapid.IntRange(1, 6).Draw(rt, "attack"), rapid.IntRange(1, 6).Draw(rt, "defense")).
			Floats(rapid.Float64Range(0, 0.999).Draw(rt, "spread"))

		before := hero.Combat.Health
		result := newScriptedResolver(script).EnemyAttack(enemy, hero)
		if hero.Combat.Health < 0 || hero.Combat.Health > hero.Combat.MaxHealth {
			rt.Fatalf("health %d out of bounds", hero.Combat.Health)
		}
		if before-hero.Combat.Health != result.Damage {
			rt.Fatalf("reported damage %d, health fell by %d", result.Damage, before-hero.Combat.Health)
		}
	})
}

func TestVictoryRewardBounds(t *testing.T) {
	assert.Equal(t, RewardBase, newScriptedResolver(dicetest.New().Floats(0)).VictoryReward())
	assert.Equal(t, RewardBase+RewardSpread, newScriptedResolver(dicetest.New().Floats(0.99)).VictoryReward())
}
