// Package expedition tracks the party's journey across the world: position,
// time of day, travel fatigue, random encounters, quests and the journal.
package expedition

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/starblade/internal/combat"
	"github.com/samdwyer/starblade/internal/dice"
	"github.com/samdwyer/starblade/internal/entity"
	"github.com/samdwyer/starblade/internal/gamedata"
	"github.com/samdwyer/starblade/internal/telemetry"
	"github.com/samdwyer/starblade/internal/world"
)

// Recovery and travel tuning.
const (
	DefaultStartHour     = 10.0
	HoursPerMoveCost     = 0.7  // In-game hours per point of movement cost
	MaxFatigueBonus      = 0.25 // Cap on the encounter chance added by fatigue
	FatiguePerChance     = 10.0 // Fatigue points per 1.0 of extra encounter chance
	EncounterFatigueDrop = 2
	RestFatigueDrop      = 4
	RestHealth           = 6
	RestAstral           = 4
	RestHours            = 2
	CampFatigueDrop      = 6
	CampHours            = 8
)

// ErrMissingCollaborator is returned when a required Config field is nil.
var ErrMissingCollaborator = errors.New("expedition collaborator missing")

// Mode is what the party is currently doing.
type Mode int

const (
	ModeExploration Mode = iota
	ModeCombat
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeExploration:
		return "exploration"
	case ModeCombat:
		return "combat"
	default:
		return "unknown"
	}
}

// Config holds the collaborators of an expedition.
type Config struct {
	Map        *world.Map
	Party      *entity.Party
	Encounters *gamedata.EncounterTable
	Quests     []gamedata.QuestDef
	Source     dice.Source // Defaults to a time seeded source
	StartHour  float64     // Defaults to DefaultStartHour
	Logger     *zap.Logger
	Tracer     trace.Tracer
}

// Expedition is the exploration state of a running game.
//
// Not safe for concurrent use; the host drives it from one goroutine.
type Expedition struct {
	world      *world.Map
	party      *entity.Party
	encounters *gamedata.EncounterTable
	quests     *QuestLog
	journal    *Journal
	roller     *dice.Roller
	logger     *zap.Logger
	tracer     trace.Tracer

	mode      Mode
	hour      float64
	fatigue   float64
	encounter *entity.Encounter
}

// New creates an expedition with the party placed at the map's start.
func New(cfg Config) (*Expedition, error) {
	switch {
	case cfg.Map == nil:
		return nil, fmt.Errorf("map: %w", ErrMissingCollaborator)
	case cfg.Party == nil:
		return nil, fmt.Errorf("party: %w", ErrMissingCollaborator)
	case cfg.Encounters == nil:
		return nil, fmt.Errorf("encounter table: %w", ErrMissingCollaborator)
	}

	e := &Expedition{
		world:      cfg.Map,
		party:      cfg.Party,
		encounters: cfg.Encounters,
		quests:     NewQuestLog(cfg.Quests),
		journal:    NewJournal(DefaultJournalSize),
		logger:     cfg.Logger,
		tracer:     cfg.Tracer,
		mode:       ModeExploration,
		hour:       cfg.StartHour,
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.tracer == nil {
		e.tracer = telemetry.Tracer("expedition")
	}
	if e.hour == 0 {
		e.hour = DefaultStartHour
	}
	src := cfg.Source
	if src == nil {
		src = dice.NewSeededSource(0)
	}
	e.roller = dice.NewRoller(src, e.logger)

	e.party.X, e.party.Y = cfg.Map.StartX, cfg.Map.StartY
	return e, nil
}

// MoveResult describes what happened on a move.
type MoveResult struct {
	Moved     bool
	Tile      world.Tile
	Point     *world.PointOfInterest // Reached this step, if any
	Encounter *entity.Encounter      // Started this step, if any
}

// Move walks the party one step. Moving off the map is narrated and refused;
// so is moving during combat.
func (e *Expedition) Move(ctx context.Context, dx, dy int) MoveResult {
	ctx, span := e.tracer.Start(ctx, "expedition.move")
	defer span.End()

	if e.mode != ModeExploration {
		return MoveResult{}
	}
	x, y := e.party.X+dx, e.party.Y+dy
	tile, ok := e.world.GetTile(x, y)
	if !ok {
		e.Log("The way ends here. An invisible barrier holds you back.")
		span.SetAttributes(attribute.Bool("blocked", true))
		return MoveResult{}
	}

	e.party.Move(dx, dy)
	e.fatigue += tile.Terrain.MovementCost
	e.advanceTime(tile.Terrain.MovementCost * HoursPerMoveCost)

	result := MoveResult{Moved: true, Tile: tile, Point: tile.Point}
	if tile.Point != nil {
		e.Log(fmt.Sprintf("You reach %s. %s", tile.Point.Title, tile.Point.Description))
		e.updateQuests(tile.Point)
	} else {
		e.Log(fmt.Sprintf("You travel through %s", tile.Terrain.Description))
	}

	if e.ShouldTriggerEncounter(tile.TerrainID()) {
		result.Encounter = e.GenerateEncounter(tile.TerrainID())
		e.StartEncounter(ctx, result.Encounter)
	}

	span.SetAttributes(
		attribute.Int("x", x),
		attribute.Int("y", y),
		attribute.String("terrain", tile.TerrainID()),
		attribute.Float64("fatigue", e.fatigue),
		attribute.Bool("encounter", result.Encounter != nil),
	)
	e.logger.Debug("party moved",
		zap.Int("x", x),
		zap.Int("y", y),
		zap.String("terrain", tile.TerrainID()),
		zap.Float64("fatigue", e.fatigue),
	)
	return result
}

// EncounterChance returns the chance of a fight on the given terrain:
// the terrain's base chance plus a fatigue bonus, or zero where nothing spawns.
func (e *Expedition) EncounterChance(terrain string) float64 {
	if !e.encounters.HasEnemies(terrain) {
		return 0
	}
	base := 0.0
	if t := e.world.Terrain(terrain); t != nil {
		base = t.EncounterChance
	}
	return base + min(e.fatigue/FatiguePerChance, MaxFatigueBonus)
}

// ShouldTriggerEncounter rolls whether a fight starts on the given terrain.
// Fights never start outside exploration mode.
func (e *Expedition) ShouldTriggerEncounter(terrain string) bool {
	if e.mode != ModeExploration || !e.encounters.HasEnemies(terrain) {
		return false
	}
	return e.roller.Chance(e.EncounterChance(terrain), "encounter")
}

// GenerateEncounter creates one or two copies of a random template for the
// terrain. Unknown terrain falls back to the plains table.
func (e *Expedition) GenerateEncounter(terrain string) *entity.Encounter {
	def := e.encounters.SpawnRandom(terrain, e.roller)
	if def == nil {
		return &entity.Encounter{Terrain: terrain}
	}
	size := 1 + dice.Round(e.roller.Uniform(1, "encounter size"))
	enc := &entity.Encounter{Name: def.Name, Terrain: terrain, Members: make([]*entity.Enemy, 0, size)}
	for i := 0; i < size; i++ {
		enc.Members = append(enc.Members, entity.NewEnemyFromDef(def, i))
	}
	return enc
}

// StartEncounter switches to combat mode with the given encounter.
func (e *Expedition) StartEncounter(ctx context.Context, enc *entity.Encounter) {
	_, span := e.tracer.Start(ctx, "expedition.encounter")
	span.SetAttributes(
		attribute.String("enemy", enc.Name),
		attribute.Int("enemy_count", len(enc.Members)),
		attribute.String("terrain", enc.Terrain),
	)
	span.End()

	e.mode = ModeCombat
	e.encounter = enc
	e.Log(fmt.Sprintf("A fight begins! %dx %s stand against you.", len(enc.Members), enc.Name))
	e.logger.Info("encounter started",
		zap.String("enemy", enc.Name),
		zap.Int("count", len(enc.Members)),
		zap.String("terrain", enc.Terrain),
	)
}

// EncounterEnded returns to exploration after a fight. The combat engine
// has already granted rewards on victory.
func (e *Expedition) EncounterEnded(outcome combat.Outcome) {
	if outcome == combat.OutcomeDefeat {
		e.Log("The party withdraws, marked by the fight.")
	}
	e.mode = ModeExploration
	e.encounter = nil
	e.fatigue = max(e.fatigue-EncounterFatigueDrop, 0)
	e.logger.Info("encounter ended", zap.Stringer("outcome", outcome))
}

// Rest recovers some health and astral energy over two hours.
// It returns false during combat.
func (e *Expedition) Rest() bool {
	if e.mode != ModeExploration {
		return false
	}
	e.fatigue = max(e.fatigue-RestFatigueDrop, 0)
	for _, h := range e.party.Members {
		h.Heal(RestHealth)
		h.RestoreAstral(RestAstral)
	}
	e.advanceTime(RestHours)
	e.Log("The party rests and regains strength.")
	return true
}

// Camp fully restores the party over eight hours.
// It returns false during combat.
func (e *Expedition) Camp() bool {
	if e.mode != ModeExploration {
		return false
	}
	e.fatigue = max(e.fatigue-CampFatigueDrop, 0)
	for _, h := range e.party.Members {
		h.Heal(h.Combat.MaxHealth)
		h.RestoreAstral(h.Combat.MaxAstral)
	}
	e.advanceTime(CampHours)
	e.Log("You pitch camp. After a restful night you are eager to set out again.")
	return true
}

// Log writes a journal entry stamped with the current time of day.
// Expedition is the combat.Narrator of its sessions.
func (e *Expedition) Log(message string) {
	e.journal.Add(e.hour, message)
}

// Mode returns what the party is currently doing.
func (e *Expedition) Mode() Mode { return e.mode }

// TimeOfDay returns the hour of day in [0, 24).
func (e *Expedition) TimeOfDay() float64 { return e.hour }

// Fatigue returns the accumulated travel fatigue.
func (e *Expedition) Fatigue() float64 { return e.fatigue }

// Party returns the travelling party.
func (e *Expedition) Party() *entity.Party { return e.party }

// World returns the map being explored.
func (e *Expedition) World() *world.Map { return e.world }

// Encounter returns the active encounter, or nil while exploring.
func (e *Expedition) Encounter() *entity.Encounter { return e.encounter }

// Journal returns the narrative log.
func (e *Expedition) Journal() *Journal { return e.journal }

// Quests returns the quest log.
func (e *Expedition) Quests() *QuestLog { return e.quests }

// CurrentTile returns the tile under the party.
func (e *Expedition) CurrentTile() world.Tile {
	tile, _ := e.world.GetTile(e.party.X, e.party.Y)
	return tile
}

func (e *Expedition) advanceTime(hours float64) {
	e.hour += hours
	if e.hour >= 24 {
		e.hour -= 24
	}
}

func (e *Expedition) updateQuests(p *world.PointOfInterest) {
	changed := false
	for _, id := range p.Completes {
		changed = e.quests.Complete(id) || changed
	}
	for _, id := range p.Activates {
		changed = e.quests.Activate(id) || changed
	}
	if changed && p.Message != "" {
		e.Log(p.Message)
	}
}
