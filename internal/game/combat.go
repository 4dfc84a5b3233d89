package game

import (
	"context"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/starblade/internal/combat"
	"github.com/samdwyer/starblade/internal/entity"
	"github.com/samdwyer/starblade/internal/ui"
)

// startCombat runs a combat session for the encounter the expedition just
// entered. Enemy turns are posted back to the event loop as interrupts.
func (g *Game) startCombat(ctx context.Context, enc *entity.Encounter) error {
	stalled := &atomic.Bool{}
	scheduler := g.scheduler
	if scheduler == nil {
		post := g.post
		if post == nil {
			post = g.screen.Post
		}
		scheduler = combat.NewTimerScheduler(dispatcher(post, stalled, g.logger))
	}

	session, err := combat.NewSession(combat.Config{
		Party:          g.expedition.Party(),
		Source:         g.source,
		Scheduler:      scheduler,
		EnemyTurnDelay: g.cfg.EnemyTurnDelay,
		Listener:       combat.ListenerFunc(g.onCombatUpdate),
		Narrator:       g.expedition,
		OutcomeHandler: combat.OutcomeHandlerFunc(g.onCombatEnded),
		Logger:         g.logger,
	})
	if err != nil {
		return err
	}

	g.session = session
	g.stalled = stalled
	g.combat = &ui.CombatView{Actions: g.content.Actions.All()}
	g.state = StateCombat
	return session.Start(ctx, enc)
}

// dispatcher hands scheduled enemy turns to the event loop. The returned
// func runs on timer goroutines. A turn that cannot be posted marks the
// fight as stalled.
func dispatcher(post func(func()) error, stalled *atomic.Bool, logger *zap.Logger) func(fn func()) {
	return func(fn func()) {
		if err := post(fn); err != nil {
			logger.Error("scheduled combat turn not delivered", zap.Error(err))
			stalled.Store(true)
		}
	}
}

// recoverStalledCombat abandons a fight whose enemy turn was lost, so the
// party is not stuck waiting for a turn that never comes.
func (g *Game) recoverStalledCombat() bool {
	if g.session == nil || g.stalled == nil || !g.stalled.Load() {
		return false
	}
	g.session.Stop()
	g.expedition.Log("The fight breaks off in confusion.")
	g.expedition.EncounterEnded(combat.OutcomeNone)
	g.endCombat()
	return true
}

func (g *Game) onCombatUpdate(u combat.Update) {
	if g.combat == nil {
		return
	}
	g.combat.Update = u
	if u.Encounter == nil {
		return
	}
	if e := u.Encounter.EnemyByID(g.combat.Target); e == nil || !e.IsAlive() {
		g.combat.Target = firstLivingID(u.Encounter)
	}
}

func (g *Game) onCombatEnded(outcome combat.Outcome) {
	g.expedition.EncounterEnded(outcome)
	g.endCombat()
}

func (g *Game) endCombat() {
	g.session = nil
	g.stalled = nil
	g.combat = nil
	g.state = StateExplore
}

func (g *Game) handleCombatKey(ctx context.Context, key tcell.Key, r rune) {
	switch key {
	case tcell.KeyTab:
		g.cycleTarget()
	case tcell.KeyRune:
		g.performAction(ctx, r)
	}
}

// performAction plays the action bound to the hotkey for the active hero.
// Keys outside a hero's turn are ignored.
func (g *Game) performAction(ctx context.Context, key rune) bool {
	if g.session == nil || !g.session.WaitingForInput() {
		return false
	}
	def := g.content.Actions.ByKey(key)
	if def == nil {
		return false
	}
	kind, err := combat.ParseActionKind(def.ID)
	if err != nil {
		g.logger.Warn("unbound action", zap.String("action", def.ID), zap.Error(err))
		return false
	}
	active, ok := g.session.ActiveCombatant()
	if !ok || active.Side != combat.SideHero {
		return false
	}

	target := ""
	if kind.NeedsTarget() {
		target = g.combat.Target
	}
	return g.session.PerformHeroAction(ctx, kind, active.ID, target)
}

// cycleTarget selects the next living enemy, wrapping around.
func (g *Game) cycleTarget() {
	if g.session == nil || g.session.Encounter() == nil {
		return
	}
	living := g.session.Encounter().Living()
	if len(living) == 0 {
		return
	}
	next := 0
	for i, e := range living {
		if e.ID == g.combat.Target {
			next = (i + 1) % len(living)
			break
		}
	}
	g.combat.Target = living[next].ID
}

func firstLivingID(enc *entity.Encounter) string {
	if living := enc.Living(); len(living) > 0 {
		return living[0].ID
	}
	return ""
}
