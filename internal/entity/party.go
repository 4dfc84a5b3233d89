package entity

import (
	"fmt"

	"github.com/samdwyer/starblade/internal/gamedata"
)

// Party represents the player's group of heroes.
// In explore mode, the party is displayed as a single symbol.
type Party struct {
	Members []*Hero
	X, Y    int  // Current position on the world map
	Symbol  rune // Display symbol ('@' in explore mode)
}

// NewParty creates a party at the given position.
func NewParty(members []*Hero, x, y int) *Party {
	return &Party{
		Members: members,
		X:       x,
		Y:       y,
		Symbol:  '@',
	}
}

// NewDefaultParty builds the starting party from content definitions.
func NewDefaultParty(classes *gamedata.ClassRegistry, defs []gamedata.PartyMemberDef, x, y int) (*Party, error) {
	members := make([]*Hero, 0, len(defs))
	for _, def := range defs {
		class := classes.GetByID(def.Class)
		if class == nil {
			return nil, fmt.Errorf("party member %q: unknown class %q", def.Name, def.Class)
		}
		hero, err := NewHeroFromClass(class, HeroOptions{
			Name:      def.Name,
			Armor:     def.Armor,
			Weapon:    def.Weapon,
			Inventory: def.Inventory,
		})
		if err != nil {
			return nil, err
		}
		members = append(members, hero)
	}
	return NewParty(members, x, y), nil
}

// Move updates the party position by the given delta.
func (p *Party) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Position returns the current x, y coordinates.
func (p *Party) Position() (int, int) {
	return p.X, p.Y
}

// HeroByID returns the member with the given id, or nil.
func (p *Party) HeroByID(id string) *Hero {
	for _, h := range p.Members {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// Living returns the members with health remaining, in roster order.
func (p *Party) Living() []*Hero {
	living := make([]*Hero, 0, len(p.Members))
	for _, h := range p.Members {
		if h.IsAlive() {
			living = append(living, h)
		}
	}
	return living
}

// AliveMemberCount returns the number of members still standing.
func (p *Party) AliveMemberCount() int {
	return len(p.Living())
}

// IsDefeated reports whether every member is incapacitated.
func (p *Party) IsDefeated() bool {
	return p.AliveMemberCount() == 0
}

// TotalHealth returns the sum of all members' current health.
func (p *Party) TotalHealth() int {
	total := 0
	for _, h := range p.Members {
		total += h.Combat.Health
	}
	return total
}
