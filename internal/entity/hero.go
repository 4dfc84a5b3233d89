// Package entity provides the party roster, heroes, enemies and encounters.
package entity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/samdwyer/starblade/internal/dice"
	"github.com/samdwyer/starblade/internal/gamedata"
)

// ErrNegativeAttribute is returned when an attribute score is below zero.
var ErrNegativeAttribute = errors.New("attribute must not be negative")

// Attributes are a hero's eight ability scores.
type Attributes struct {
	Courage      int
	Intellect    int
	Intuition    int
	Charisma     int
	Dexterity    int
	Agility      int
	Constitution int
	Strength     int
}

// AttributesFromDef copies class attributes.
func AttributesFromDef(def gamedata.AttributesDef) Attributes {
	return Attributes{
		Courage:      def.Courage,
		Intellect:    def.Intellect,
		Intuition:    def.Intuition,
		Charisma:     def.Charisma,
		Dexterity:    def.Dexterity,
		Agility:      def.Agility,
		Constitution: def.Constitution,
		Strength:     def.Strength,
	}
}

// Validate checks that no score is negative.
func (a Attributes) Validate() error {
	scores := map[string]int{
		"courage":      a.Courage,
		"intellect":    a.Intellect,
		"intuition":    a.Intuition,
		"charisma":     a.Charisma,
		"dexterity":    a.Dexterity,
		"agility":      a.Agility,
		"constitution": a.Constitution,
		"strength":     a.Strength,
	}
	for name, v := range scores {
		if v < 0 {
			return fmt.Errorf("%s = %d: %w", name, v, ErrNegativeAttribute)
		}
	}
	return nil
}

// CombatStats are the stats derived from attributes.
type CombatStats struct {
	MaxHealth  int
	MaxAstral  int
	Attack     int
	Defense    int
	Initiative int
}

// DeriveCombatStats computes combat stats from attributes.
func DeriveCombatStats(a Attributes) CombatStats {
	return CombatStats{
		MaxHealth:  dice.Round(float64(a.Constitution+a.Strength) * 1.5),
		MaxAstral:  dice.Round(float64(a.Intuition+a.Intellect) * 1.2),
		Attack:     dice.Round(float64(a.Courage+a.Strength)/2 + 7),
		Defense:    dice.Round(float64(a.Agility+a.Intuition)/2 + 6),
		Initiative: dice.Round(float64(a.Intuition+a.Agility) / 2),
	}
}

// HeroCombat holds a hero's live combat values.
//
// Invariant: 0 <= Health <= MaxHealth, 0 <= Astral <= MaxAstral, TempDefense >= 0.
type HeroCombat struct {
	Health      int // Life energy
	MaxHealth   int
	Astral      int // Astral energy, spent on spells
	MaxAstral   int
	Attack      int
	Defense     int
	Initiative  int
	Armor       int
	Weapon      string
	TempDefense int // Bonus from defending, fades one point per own turn
}

// Hero is a member of the player's party.
type Hero struct {
	ID          string
	Name        string
	ClassID     string
	Profession  string
	Description string
	Symbol      rune
	Attributes  Attributes
	Combat      HeroCombat
	Skills      []string
	Inventory   []string
	Experience  int
}

// NewHeroID returns a unique hero id with the class as prefix.
func NewHeroID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// HeroOptions override class defaults when building a hero.
type HeroOptions struct {
	Name       string
	Attributes *Attributes
	Armor      *int
	Weapon     string
	Inventory  []string
	Experience int
}

var defaultInventory = []string{"Bread", "Water", "Healing Potion"}

const defaultArmor = 2

// NewHeroFromClass builds a hero at full health and astral energy.
func NewHeroFromClass(def *gamedata.ClassDef, opts HeroOptions) (*Hero, error) {
	if def == nil {
		return nil, errors.New("class definition is nil")
	}

	attrs := AttributesFromDef(def.Attributes)
	if opts.Attributes != nil {
		attrs = *opts.Attributes
	}
	if err := attrs.Validate(); err != nil {
		return nil, fmt.Errorf("hero of class %s: %w", def.ID, err)
	}
	stats := DeriveCombatStats(attrs)

	name := opts.Name
	if name == "" {
		name = def.DefaultName()
	}
	armor := defaultArmor
	if opts.Armor != nil {
		armor = *opts.Armor
	}
	weapon := opts.Weapon
	if weapon == "" {
		weapon = def.DefaultWeapon
	}
	inventory := opts.Inventory
	if len(inventory) == 0 {
		inventory = defaultInventory
	}

	return &Hero{
		ID:          NewHeroID(def.ID),
		Name:        name,
		ClassID:     def.ID,
		Profession:  def.Name,
		Description: def.Description,
		Symbol:      def.SymbolRune(),
		Attributes:  attrs,
		Combat: HeroCombat{
			Health:     stats.MaxHealth,
			MaxHealth:  stats.MaxHealth,
			Astral:     stats.MaxAstral,
			MaxAstral:  stats.MaxAstral,
			Attack:     stats.Attack,
			Defense:    stats.Defense,
			Initiative: stats.Initiative,
			Armor:      armor,
			Weapon:     weapon,
		},
		Skills:     append([]string(nil), def.Skills...),
		Inventory:  append([]string(nil), inventory...),
		Experience: opts.Experience,
	}, nil
}

// IsAlive returns true if the hero has life energy remaining.
func (h *Hero) IsAlive() bool { return h.Combat.Health > 0 }

// TakeDamage reduces health, floored at zero, and returns the damage taken.
func (h *Hero) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, h.Combat.Health)
	h.Combat.Health -= actual
	return actual
}

// Heal restores health up to the maximum and returns the amount healed.
func (h *Hero) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, h.Combat.MaxHealth-h.Combat.Health)
	h.Combat.Health += actual
	return actual
}

// SpendAstral reduces astral energy and returns false if insufficient.
func (h *Hero) SpendAstral(amount int) bool {
	if h.Combat.Astral < amount {
		return false
	}
	h.Combat.Astral -= amount
	return true
}

// RestoreAstral restores astral energy up to the maximum and returns the amount restored.
func (h *Hero) RestoreAstral(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, h.Combat.MaxAstral-h.Combat.Astral)
	h.Combat.Astral += actual
	return actual
}

// AddTempDefense raises the transient defense bonus.
func (h *Hero) AddTempDefense(amount int) {
	h.Combat.TempDefense += amount
}

// DecayTempDefense lowers the transient defense bonus by one, floored at zero.
func (h *Hero) DecayTempDefense() {
	if h.Combat.TempDefense > 0 {
		h.Combat.TempDefense--
	}
}

// GainExperience adds adventure points.
func (h *Hero) GainExperience(points int) {
	if points > 0 {
		h.Experience += points
	}
}

// GetName returns the hero's display name.
func (h *Hero) GetName() string { return h.Name }

// AttackValue returns the base value for attack rolls.
func (h *Hero) AttackValue() int { return h.Combat.Attack }

// DefenseValue returns the base value for defense rolls, including any
// transient bonus from defending.
func (h *Hero) DefenseValue() int { return h.Combat.Defense + h.Combat.TempDefense }
