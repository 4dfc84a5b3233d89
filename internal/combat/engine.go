package combat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/starblade/internal/dice"
	"github.com/samdwyer/starblade/internal/entity"
	"github.com/samdwyer/starblade/internal/telemetry"
)

var (
	// ErrNoParty is returned when a session is configured without a party.
	ErrNoParty = errors.New("combat session requires a party")
	// ErrNoEncounter is returned when Start is called without an encounter.
	ErrNoEncounter = errors.New("combat session requires an encounter")
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("combat session already started")
	// ErrStopped is returned when Start is called after Stop.
	ErrStopped = errors.New("combat session stopped")
)

// Config holds the collaborators of a combat session. Only Party is
// required; every other field defaults to a working implementation.
type Config struct {
	Party          *entity.Party
	Source         dice.Source    // Defaults to a time seeded source
	Scheduler      Scheduler      // Defaults to ImmediateScheduler
	EnemyTurnDelay time.Duration  // Passed to Scheduler before each enemy turn
	Listener       Listener       // State updates
	Narrator       Narrator       // Narrative lines
	OutcomeHandler OutcomeHandler // Notified once at the end
	Logger         *zap.Logger
	Tracer         trace.Tracer
}

// Validate checks the configuration.
func (c Config) Validate() error {
	var errs []string
	if c.Party == nil {
		errs = append(errs, ErrNoParty.Error())
	}
	if c.EnemyTurnDelay < 0 {
		errs = append(errs, fmt.Sprintf("enemy turn delay must be >= 0, got %s", c.EnemyTurnDelay))
	}
	if len(errs) > 0 {
		return fmt.Errorf("combat config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Session runs one encounter between the party and a group of enemies.
//
// A session is not safe for concurrent use. All calls, including scheduled
// enemy turns, must happen on the goroutine that owns it.
type Session struct {
	party     *entity.Party
	scheduler Scheduler
	delay     time.Duration
	listener  Listener
	narrator  Narrator
	outcomes  OutcomeHandler
	logger    *zap.Logger
	tracer    trace.Tracer
	roller    *dice.Roller
	resolver  *EffectResolver

	ctx       context.Context
	encounter *entity.Encounter
	round     int
	order     []TurnEntry
	index     int
	waiting   bool
	phase     Phase
	started   bool
	finished  bool
	stopped   bool
	outcome   Outcome
	turn      uint64 // Incremented per turn so stale scheduled turns can be detected
	decayed   bool   // Active hero is holding a stance that lost a point at turn start
	cancel    func()
	defending map[string]bool // Hero ids whose previous action was defend
}

// NewSession validates cfg and creates an idle session.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		party:     cfg.Party,
		scheduler: cfg.Scheduler,
		delay:     cfg.EnemyTurnDelay,
		listener:  cfg.Listener,
		narrator:  cfg.Narrator,
		outcomes:  cfg.OutcomeHandler,
		logger:    cfg.Logger,
		tracer:    cfg.Tracer,
		phase:     PhaseIdle,
		defending: make(map[string]bool),
	}
	if s.scheduler == nil {
		s.scheduler = ImmediateScheduler{}
	}
	if s.listener == nil {
		s.listener = nopListener{}
	}
	if s.narrator == nil {
		s.narrator = nopNarrator{}
	}
	if s.outcomes == nil {
		s.outcomes = nopOutcomeHandler{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.tracer == nil {
		s.tracer = telemetry.Tracer("combat")
	}
	src := cfg.Source
	if src == nil {
		src = dice.NewSeededSource(0)
	}
	s.roller = dice.NewRoller(src, s.logger)
	s.resolver = NewEffectResolver(s.roller)
	return s, nil
}

// Start binds the encounter and begins the first turn. An encounter with no
// living enemies ends immediately in victory.
func (s *Session) Start(ctx context.Context, encounter *entity.Encounter) error {
	switch {
	case encounter == nil:
		return ErrNoEncounter
	case s.stopped:
		return ErrStopped
	case s.started:
		return ErrAlreadyStarted
	}

	s.ctx = ctx
	s.started = true
	s.encounter = encounter
	s.round = 1
	s.index = 0

	_, span := s.tracer.Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("encounter", encounter.Name),
		attribute.String("terrain", encounter.Terrain),
		attribute.Int("party_size", s.party.AliveMemberCount()),
		attribute.Int("enemy_count", len(encounter.Living())),
	)
	span.End()

	s.logger = s.logger.With(zap.String("encounter", encounter.Name))
	s.logger.Info("combat started",
		zap.Int("heroes", s.party.AliveMemberCount()),
		zap.Int("enemies", len(encounter.Living())),
	)

	if s.cleanup() {
		return nil
	}
	s.order = BuildTurnOrder(s.party.Members, encounter.Members)
	s.beginTurn()
	return nil
}

// PerformHeroAction resolves an action for the hero whose turn it is.
// It returns false and changes nothing when the session is not waiting for
// that hero, or when the target is missing or incapacitated.
func (s *Session) PerformHeroAction(ctx context.Context, kind ActionKind, heroID, targetID string) bool {
	if s.stopped || s.finished || !s.waiting || s.encounter == nil {
		return false
	}
	entry, ok := s.current()
	if !ok || entry.Side != SideHero || entry.ID != heroID {
		return false
	}
	hero := s.party.HeroByID(heroID)
	if hero == nil || !hero.IsAlive() {
		return false
	}

	var target *entity.Enemy
	switch kind {
	case ActionAttack, ActionCast:
		target = s.encounter.EnemyByID(targetID)
		if target == nil || !target.IsAlive() {
			return false
		}
	case ActionDefend:
	default:
		return false
	}

	s.waiting = false
	s.defending[hero.ID] = kind == ActionDefend
	_, span := s.tracer.Start(ctx, "combat.turn")
	span.SetAttributes(
		attribute.Int("round", s.round),
		attribute.String("actor", hero.Name),
		attribute.String("action", string(kind)),
	)

	switch kind {
	case ActionAttack:
		s.heroAttack(span, hero, target)
	case ActionCast:
		if hero.Combat.Astral < SpellCost {
			s.narrator.Log(fmt.Sprintf("%s lacks the astral energy for a spell and strikes with %s instead.",
				hero.Name, weaponName(hero)))
			span.SetAttributes(attribute.Bool("spell_fallback", true))
			s.heroAttack(span, hero, target)
			break
		}
		hero.SpendAstral(SpellCost)
		result := s.resolver.HeroSpell(hero, target)
		s.recordResult(span, hero.Name, target.Name, result)
		if result.Hit {
			s.narrator.Log(fmt.Sprintf("%s's spell strikes %s for %d damage.", hero.Name, target.Name, result.Damage))
		} else {
			s.narrator.Log(fmt.Sprintf("%s resists %s's spell.", target.Name, hero.Name))
		}
	case ActionDefend:
		// Defending again restores the point the held stance lost this turn.
		bonus := DefendBonus
		if s.decayed {
			bonus++
		}
		hero.AddTempDefense(bonus)
		span.SetAttributes(attribute.Int("temp_defense", hero.Combat.TempDefense))
		s.narrator.Log(fmt.Sprintf("%s takes a defensive stance.", hero.Name))
		s.logger.Debug("hero defends",
			zap.String("hero", hero.Name),
			zap.Int("temp_defense", hero.Combat.TempDefense),
		)
	}
	span.End()

	s.phase = PhaseActionResolved
	s.advance()
	return true
}

// Stop abandons the session. Pending enemy turns become no-ops and later
// actions are ignored.
func (s *Session) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.waiting = false
	s.cancelPending()
}

// Round returns the current round number, starting at 1.
func (s *Session) Round() int { return s.round }

// TurnOrder returns a copy of the current round's turn order.
func (s *Session) TurnOrder() []TurnEntry { return append([]TurnEntry(nil), s.order...) }

// ActiveIndex returns the index of the acting entry in TurnOrder.
func (s *Session) ActiveIndex() int { return s.index }

// WaitingForInput reports whether the session is waiting for PerformHeroAction.
func (s *Session) WaitingForInput() bool { return s.waiting }

// Phase returns the current state machine phase.
func (s *Session) Phase() Phase { return s.phase }

// Encounter returns the bound encounter, or nil once finished.
func (s *Session) Encounter() *entity.Encounter { return s.encounter }

// Party returns the party fighting this encounter.
func (s *Session) Party() *entity.Party { return s.party }

// Finished reports whether the encounter has ended.
func (s *Session) Finished() bool { return s.finished }

// Outcome returns the result of a finished encounter.
func (s *Session) Outcome() Outcome { return s.outcome }

// ActiveCombatant describes the combatant whose turn it is.
func (s *Session) ActiveCombatant() (CombatantSummary, bool) {
	entry, ok := s.current()
	if !ok || s.finished {
		return CombatantSummary{}, false
	}
	summary := CombatantSummary{Side: entry.Side, ID: entry.ID, Initiative: entry.Initiative}
	switch entry.Side {
	case SideHero:
		h := s.party.HeroByID(entry.ID)
		if h == nil {
			return CombatantSummary{}, false
		}
		summary.Name, summary.Health, summary.MaxHealth = h.Name, h.Combat.Health, h.Combat.MaxHealth
	case SideEnemy:
		if s.encounter == nil {
			return CombatantSummary{}, false
		}
		e := s.encounter.EnemyByID(entry.ID)
		if e == nil {
			return CombatantSummary{}, false
		}
		summary.Name, summary.Health, summary.MaxHealth = e.Name, e.Health, e.MaxHealth
	}
	return summary, true
}

// =============================================================================
// Turn flow
// =============================================================================

func (s *Session) current() (TurnEntry, bool) {
	if s.index < 0 || s.index >= len(s.order) {
		return TurnEntry{}, false
	}
	return s.order[s.index], true
}

// beginTurn starts the turn at s.index, skipping entries for combatants that
// fell earlier in the round and rebuilding the order when it runs out.
func (s *Session) beginTurn() {
	for s.index < len(s.order) && !s.entryAlive(s.order[s.index]) {
		s.index++
	}
	if s.index >= len(s.order) {
		s.phase = PhaseRoundAdvance
		s.round++
		s.order = BuildTurnOrder(s.party.Members, s.encounter.Members)
		s.index = 0
		s.logger.Debug("round advanced", zap.Int("round", s.round))
		if len(s.order) == 0 {
			return
		}
	}

	s.turn++
	token := s.turn
	entry := s.order[s.index]
	s.phase = PhaseTurnStart

	if entry.Side == SideHero {
		hero := s.party.HeroByID(entry.ID)
		s.decayed = s.defending[hero.ID] && hero.Combat.TempDefense > 0
		hero.DecayTempDefense()
		s.waiting = true
		s.phase = PhaseAwaitingHeroInput
		s.emit()
		return
	}

	s.waiting = false
	s.phase = PhaseEnemyAutoResolve
	s.emit()
	if !s.live(token) {
		return
	}
	s.cancel = s.scheduler.Schedule(s.delay, func() { s.enemyTurn(token) })
}

func (s *Session) enemyTurn(token uint64) {
	if !s.live(token) {
		return
	}
	s.cancel = nil
	entry, _ := s.current()
	enemy := s.encounter.EnemyByID(entry.ID)
	living := s.party.Living()
	if enemy == nil || !enemy.IsAlive() || len(living) == 0 {
		s.advance()
		return
	}

	target := living[s.roller.Pick(len(living), "enemy target")]
	_, span := s.tracer.Start(s.ctx, "combat.turn")
	span.SetAttributes(
		attribute.Int("round", s.round),
		attribute.String("actor", enemy.Name),
		attribute.String("action", string(ActionAttack)),
	)
	result := s.resolver.EnemyAttack(enemy, target)
	s.recordResult(span, enemy.Name, target.Name, result)
	span.End()

	if result.Hit {
		s.narrator.Log(fmt.Sprintf("%s hits %s for %d damage.", enemy.Name, target.Name, result.Damage))
		if !target.IsAlive() {
			s.narrator.Log(fmt.Sprintf("%s collapses.", target.Name))
		}
	} else {
		s.narrator.Log(fmt.Sprintf("%s misses %s.", enemy.Name, target.Name))
	}

	s.phase = PhaseActionResolved
	s.advance()
}

// advance runs cleanup after an action and moves to the next turn.
func (s *Session) advance() {
	if s.cleanup() {
		return
	}
	token := s.turn
	s.emit()
	if !s.live(token) {
		return
	}
	s.index++
	s.beginTurn()
}

// cleanup removes fallen enemies and ends the session when a side is empty.
// Victory is checked first.
func (s *Session) cleanup() bool {
	s.phase = PhaseCleanup
	if removed := s.encounter.RemoveFallen(); removed > 0 {
		s.logger.Debug("enemies removed", zap.Int("count", removed))
	}
	switch {
	case s.encounter.IsDefeated():
		s.finish(OutcomeVictory)
		return true
	case s.party.IsDefeated():
		s.finish(OutcomeDefeat)
		return true
	}
	return false
}

func (s *Session) finish(outcome Outcome) {
	s.finished = true
	s.waiting = false
	s.outcome = outcome
	s.cancelPending()

	if outcome == OutcomeVictory {
		s.phase = PhaseVictory
		reward := s.resolver.VictoryReward()
		for _, h := range s.party.Living() {
			h.GainExperience(reward)
			h.Heal(dice.Round(float64(h.Combat.MaxHealth) * VictoryHealFraction))
		}
		s.narrator.Log(fmt.Sprintf("Victory! Each hero earns %d adventure points.", reward))
	} else {
		s.phase = PhaseDefeat
	}

	_, span := s.tracer.Start(s.ctx, "combat.end")
	span.SetAttributes(
		attribute.String("outcome", outcome.String()),
		attribute.Int("rounds", s.round),
		attribute.Int("party_health_remaining", s.party.TotalHealth()),
	)
	span.End()
	s.logger.Info("combat ended",
		zap.Stringer("outcome", outcome),
		zap.Int("rounds", s.round),
		zap.Int("party_health", s.party.TotalHealth()),
	)

	s.encounter = nil
	s.emit()
	s.outcomes.EncounterEnded(outcome)
}

func (s *Session) heroAttack(span trace.Span, hero *entity.Hero, target *entity.Enemy) {
	result := s.resolver.HeroAttack(hero, target)
	s.recordResult(span, hero.Name, target.Name, result)
	if result.Hit {
		s.narrator.Log(fmt.Sprintf("%s strikes %s with %s for %d damage.", hero.Name, target.Name, weaponName(hero), result.Damage))
		if !target.IsAlive() {
			s.narrator.Log(fmt.Sprintf("%s is defeated.", target.Name))
		}
	} else {
		s.narrator.Log(fmt.Sprintf("%s parries %s's attack.", target.Name, hero.Name))
	}
}

func (s *Session) recordResult(span trace.Span, actor, target string, result RollResult) {
	span.SetAttributes(
		attribute.String("target", target),
		attribute.Bool("hit", result.Hit),
		attribute.Int("damage", result.Damage),
	)
	s.logger.Debug("action resolved",
		zap.String("actor", actor),
		zap.String("target", target),
		zap.Int("attack_roll", result.AttackRoll),
		zap.Int("defense_roll", result.DefenseRoll),
		zap.Bool("hit", result.Hit),
		zap.Int("damage", result.Damage),
	)
}

// live reports whether the turn identified by token is still current.
func (s *Session) live(token uint64) bool {
	return !s.stopped && !s.finished && s.turn == token
}

func (s *Session) cancelPending() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) entryAlive(entry TurnEntry) bool {
	if entry.Side == SideHero {
		h := s.party.HeroByID(entry.ID)
		return h != nil && h.IsAlive()
	}
	e := s.encounter.EnemyByID(entry.ID)
	return e != nil && e.IsAlive()
}

func (s *Session) emit() {
	u := Update{
		Round:           s.round,
		TurnOrder:       s.TurnOrder(),
		ActiveIndex:     s.index,
		WaitingForInput: s.waiting,
		Phase:           s.phase,
		Encounter:       s.encounter,
		Finished:        s.finished,
		Outcome:         s.outcome,
	}
	if summary, ok := s.ActiveCombatant(); ok {
		u.Active = &summary
	}
	s.listener.OnUpdate(u)
}

func weaponName(h *entity.Hero) string {
	if h.Combat.Weapon == "" {
		return "bare hands"
	}
	return h.Combat.Weapon
}
