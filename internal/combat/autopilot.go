package combat

import (
	"context"

	"github.com/samdwyer/starblade/internal/entity"
)

// lowHealthFraction is the share of max health below which autopilot defends.
const lowHealthFraction = 0.25

// Autopilot is a Listener that plays hero turns without player input.
// Attach it to a session before Start.
type Autopilot struct {
	ctx     context.Context
	session *Session
	actions int
}

// NewAutopilot creates an unattached autopilot.
func NewAutopilot(ctx context.Context) *Autopilot {
	return &Autopilot{ctx: ctx}
}

// Attach binds the autopilot to the session it plays for.
func (a *Autopilot) Attach(s *Session) {
	a.session = s
}

// Actions returns the number of hero actions the autopilot has taken.
func (a *Autopilot) Actions() int { return a.actions }

// OnUpdate acts when the session is waiting for a hero.
func (a *Autopilot) OnUpdate(u Update) {
	if a.session == nil || u.Finished || !u.WaitingForInput || u.Active == nil || u.Active.Side != SideHero || u.Encounter == nil {
		return
	}
	hero := a.session.Party().HeroByID(u.Active.ID)
	if hero == nil {
		return
	}
	kind, target := ChooseAction(hero, u.Encounter.Living())
	if a.session.PerformHeroAction(a.ctx, kind, hero.ID, target) {
		a.actions++
	}
}

// ChooseAction picks an action and target id for a hero. Heroes below a
// quarter of their health defend unless a stance is still up. Heroes with
// astral energy to spare and more intellect than strength cast, everyone
// else attacks. Offensive actions target the living enemy with the lowest
// health, first in member order on ties.
func ChooseAction(hero *entity.Hero, enemies []*entity.Enemy) (ActionKind, string) {
	var weakest *entity.Enemy
	for _, e := range enemies {
		if e.IsAlive() && (weakest == nil || e.Health < weakest.Health) {
			weakest = e
		}
	}
	if weakest == nil {
		return ActionDefend, ""
	}
	if hero.Combat.TempDefense == 0 && float64(hero.Combat.Health) < float64(hero.Combat.MaxHealth)*lowHealthFraction {
		return ActionDefend, ""
	}
	if hero.Combat.Astral >= SpellCost && hero.Attributes.Intellect > hero.Attributes.Strength {
		return ActionCast, weakest.ID
	}
	return ActionAttack, weakest.ID
}
