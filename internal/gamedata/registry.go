package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/starblade/internal/dice"
)

// FallbackTerrain is used for encounters on terrain missing from the table.
const FallbackTerrain = "plain"

// =============================================================================
// EncounterTable
// =============================================================================

// EncounterTable holds enemy templates keyed by terrain and picks spawns
// weighted by SpawnWeight within a terrain.
type EncounterTable struct {
	byTerrain map[string][]EnemyDef
}

// NewEncounterTable creates a table from loaded templates.
func NewEncounterTable(byTerrain map[string][]EnemyDef) *EncounterTable {
	return &EncounterTable{byTerrain: byTerrain}
}

// LoadEncounterTable loads the table from the embedded enemies.yaml.
func LoadEncounterTable() (*EncounterTable, error) {
	byTerrain, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(byTerrain[FallbackTerrain]) == 0 {
		return nil, fmt.Errorf("enemies.yaml: fallback terrain %q has no enemies", FallbackTerrain)
	}
	return NewEncounterTable(byTerrain), nil
}

// MustLoadEncounterTable loads the table, panicking on error.
func MustLoadEncounterTable() *EncounterTable {
	table, err := LoadEncounterTable()
	if err != nil {
		panic(err)
	}
	return table
}

// Templates returns the templates for a terrain. Unknown terrain yields nil.
func (t *EncounterTable) Templates(terrain string) []EnemyDef {
	return t.byTerrain[terrain]
}

// HasEnemies reports whether the terrain can spawn encounters.
func (t *EncounterTable) HasEnemies(terrain string) bool {
	return len(t.byTerrain[terrain]) > 0
}

// SpawnRandom selects a template for the terrain using weighted probability.
// Terrain that is unknown or has no templates falls back to FallbackTerrain.
func (t *EncounterTable) SpawnRandom(terrain string, roller *dice.Roller) *EnemyDef {
	templates := t.byTerrain[terrain]
	if len(templates) == 0 {
		templates = t.byTerrain[FallbackTerrain]
	}
	if len(templates) == 0 {
		return nil
	}

	totalWeight := 0
	for _, e := range templates {
		totalWeight += max(e.SpawnWeight, 0)
	}
	if totalWeight <= 0 {
		return &templates[roller.Pick(len(templates), "encounter template")]
	}

	roll := roller.Pick(totalWeight, "encounter template")
	cumulative := 0
	for i := range templates {
		cumulative += max(templates[i].SpawnWeight, 0)
		if roll < cumulative {
			return &templates[i]
		}
	}
	return &templates[0]
}

// Terrains returns the number of terrain keys in the table.
func (t *EncounterTable) Terrains() int {
	return len(t.byTerrain)
}

// =============================================================================
// ClassRegistry
// =============================================================================

// ClassRegistry provides lookup over loaded class definitions.
type ClassRegistry struct {
	classes map[string]*ClassDef
	all     []ClassDef
}

// NewClassRegistry creates a registry from loaded class definitions.
func NewClassRegistry(classes []ClassDef) *ClassRegistry {
	registry := &ClassRegistry{
		classes: make(map[string]*ClassDef),
		all:     classes,
	}
	for i := range classes {
		registry.classes[classes[i].ID] = &classes[i]
	}
	return registry
}

// LoadClassRegistry loads and creates a registry from the embedded classes.yaml.
func LoadClassRegistry() (*ClassRegistry, error) {
	classes, err := LoadClasses()
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, errors.New("no classes loaded from classes.yaml")
	}
	return NewClassRegistry(classes), nil
}

// GetByID returns the class with the given ID, or nil if not found.
func (r *ClassRegistry) GetByID(id string) *ClassDef {
	return r.classes[id]
}

// All returns all class definitions.
func (r *ClassRegistry) All() []ClassDef {
	return r.all
}

// =============================================================================
// ActionRegistry
// =============================================================================

// ActionRegistry provides lookup over combat actions by ID and hotkey.
type ActionRegistry struct {
	byID  map[string]*ActionDef
	byKey map[string]*ActionDef
	all   []ActionDef
}

// NewActionRegistry creates a registry from loaded action definitions.
func NewActionRegistry(actions []ActionDef) *ActionRegistry {
	registry := &ActionRegistry{
		byID:  make(map[string]*ActionDef),
		byKey: make(map[string]*ActionDef),
		all:   actions,
	}
	for i := range actions {
		registry.byID[actions[i].ID] = &actions[i]
		for _, key := range actions[i].Keys {
			registry.byKey[key] = &actions[i]
		}
	}
	return registry
}

// LoadActionRegistry loads and creates a registry from the embedded actions.yaml.
func LoadActionRegistry() (*ActionRegistry, error) {
	actions, err := LoadActions()
	if err != nil {
		return nil, err
	}
	if len(actions) == 0 {
		return nil, errors.New("no actions loaded from actions.yaml")
	}
	return NewActionRegistry(actions), nil
}

// GetByID returns the action with the given ID, or nil if not found.
func (r *ActionRegistry) GetByID(id string) *ActionDef {
	return r.byID[id]
}

// ByKey returns the action bound to a hotkey, or nil.
func (r *ActionRegistry) ByKey(key rune) *ActionDef {
	return r.byKey[string(key)]
}

// All returns all action definitions in menu order.
func (r *ActionRegistry) All() []ActionDef {
	return r.all
}

// =============================================================================
// Content
// =============================================================================

// Content bundles every registry the game needs.
type Content struct {
	Classes    *ClassRegistry
	Party      []PartyMemberDef
	Encounters *EncounterTable
	World      *WorldDef
	Quests     []QuestDef
	Actions    *ActionRegistry
}

// LoadContent loads all embedded content files.
func LoadContent() (*Content, error) {
	classes, err := LoadClassRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading classes: %w", err)
	}
	party, err := LoadParty()
	if err != nil {
		return nil, fmt.Errorf("loading party: %w", err)
	}
	encounters, err := LoadEncounterTable()
	if err != nil {
		return nil, fmt.Errorf("loading encounters: %w", err)
	}
	world, err := LoadWorld()
	if err != nil {
		return nil, fmt.Errorf("loading world: %w", err)
	}
	quests, err := LoadQuests()
	if err != nil {
		return nil, fmt.Errorf("loading quests: %w", err)
	}
	actions, err := LoadActionRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading actions: %w", err)
	}
	return &Content{
		Classes:    classes,
		Party:      party,
		Encounters: encounters,
		World:      world,
		Quests:     quests,
		Actions:    actions,
	}, nil
}

// MustLoadContent loads all content, panicking on error.
func MustLoadContent() *Content {
	content, err := LoadContent()
	if err != nil {
		panic(err)
	}
	return content
}
