package combat

import (
	"github.com/samdwyer/starblade/internal/dice"
	"github.com/samdwyer/starblade/internal/entity"
)

// Combatant is the interface for any entity that can take part in an
// opposed roll. Both heroes and enemies implement this interface.
type Combatant interface {
	GetName() string
	IsAlive() bool
	AttackValue() int
	DefenseValue() int
	TakeDamage(amount int) int // Returns actual damage taken
}

var (
	_ Combatant = (*entity.Hero)(nil)
	_ Combatant = (*entity.Enemy)(nil)
)

// RollResult contains the outcome of one opposed roll and its damage.
type RollResult struct {
	Hit         bool
	AttackRoll  int // Attacker's total
	DefenseRoll int // Defender's total
	Damage      int // Damage actually taken, zero on a miss
}

// EffectResolver performs opposed rolls and damage calculation.
// Each resolution rolls the attacker's d6, then the defender's d6, then the
// damage die on a hit.
type EffectResolver struct {
	roller *dice.Roller
}

// NewEffectResolver creates a new effect resolver.
func NewEffectResolver(roller *dice.Roller) *EffectResolver {
	return &EffectResolver{roller: roller}
}

// HeroAttack resolves a weapon attack by a hero against an enemy.
func (r *EffectResolver) HeroAttack(hero *entity.Hero, target *entity.Enemy) RollResult {
	result := r.opposed(hero, target)
	if result.Hit {
		result.Damage = target.TakeDamage(r.HeroPhysicalDamage(hero))
	}
	return result
}

// HeroSpell resolves a spell by a hero against an enemy. The caller pays the
// astral cost. Ties favour the caster.
func (r *EffectResolver) HeroSpell(hero *entity.Hero, target *entity.Enemy) RollResult {
	power := hero.Attributes.Intellect + r.roller.D6("spell power")
	resistance := target.Defense + r.roller.D6("spell resistance")
	result := RollResult{
		Hit:         power >= resistance,
		AttackRoll:  power,
		DefenseRoll: resistance,
	}
	if result.Hit {
		result.Damage = target.TakeDamage(r.HeroMagicDamage(hero))
	}
	return result
}

// EnemyAttack resolves an enemy's attack against a hero.
func (r *EffectResolver) EnemyAttack(enemy *entity.Enemy, target *entity.Hero) RollResult {
	result := r.opposed(enemy, target)
	if result.Hit {
		result.Damage = target.TakeDamage(r.EnemyDamage(enemy))
	}
	return result
}

// opposed rolls attack against defense. The attacker must strictly exceed
// the defender.
func (r *EffectResolver) opposed(attacker, defender Combatant) RollResult {
	attack := attacker.AttackValue() + r.roller.D6("attack")
	defense := defender.DefenseValue() + r.roller.D6("defense")
	return RollResult{
		Hit:         attack > defense,
		AttackRoll:  attack,
		DefenseRoll: defense,
	}
}

// HeroPhysicalDamage rolls weapon damage: Strength/2 + d6/2, at least 4.
func (r *EffectResolver) HeroPhysicalDamage(hero *entity.Hero) int {
	roll := r.roller.D6("weapon damage")
	return max(MinPhysicalDamage, dice.Round(float64(hero.Attributes.Strength)/2+float64(roll)/2))
}

// HeroMagicDamage rolls spell damage: Intuition/1.5 + d6, at least 6.
func (r *EffectResolver) HeroMagicDamage(hero *entity.Hero) int {
	roll := r.roller.D6("spell damage")
	return max(MinMagicDamage, dice.Round(float64(hero.Attributes.Intuition)/1.5+float64(roll)))
}

// EnemyDamage rolls enemy damage: Threat*3 + uniform[0,4), at least 3.
func (r *EffectResolver) EnemyDamage(enemy *entity.Enemy) int {
	spread := r.roller.Uniform(4, "enemy damage")
	return max(MinEnemyDamage, dice.Round(float64(enemy.Threat*3)+spread))
}

// VictoryReward rolls the adventure points granted for a won encounter.
func (r *EffectResolver) VictoryReward() int {
	return RewardBase + dice.Round(r.roller.Uniform(1, "victory reward")*RewardSpread)
}
