package combat

import (
	"sort"

	"github.com/samdwyer/starblade/internal/entity"
)

// TurnEntry is one slot in the round's turn order.
type TurnEntry struct {
	Side       Side
	ID         string
	Initiative int
}

// BuildTurnOrder lists living heroes then living enemies and sorts them by
// descending initiative. The sort is stable, so ties keep heroes before
// enemies and roster order within a side.
func BuildTurnOrder(heroes []*entity.Hero, enemies []*entity.Enemy) []TurnEntry {
	order := make([]TurnEntry, 0, len(heroes)+len(enemies))
	for _, h := range heroes {
		if h.IsAlive() {
			order = append(order, TurnEntry{Side: SideHero, ID: h.ID, Initiative: h.Combat.Initiative})
		}
	}
	for _, e := range enemies {
		if e.IsAlive() {
			order = append(order, TurnEntry{Side: SideEnemy, ID: e.ID, Initiative: e.Initiative})
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Initiative > order[j].Initiative
	})
	return order
}
