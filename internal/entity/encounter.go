package entity

// Encounter is a named group of enemies the party is fighting.
type Encounter struct {
	Name    string
	Terrain string
	Members []*Enemy
}

// EnemyByID returns the member with the given id, or nil.
func (e *Encounter) EnemyByID(id string) *Enemy {
	for _, m := range e.Members {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Living returns the members with health remaining, in member order.
func (e *Encounter) Living() []*Enemy {
	living := make([]*Enemy, 0, len(e.Members))
	for _, m := range e.Members {
		if m.IsAlive() {
			living = append(living, m)
		}
	}
	return living
}

// RemoveFallen drops incapacitated members and returns how many were removed.
func (e *Encounter) RemoveFallen() int {
	living := e.Living()
	removed := len(e.Members) - len(living)
	e.Members = living
	return removed
}

// IsDefeated reports whether no member is left standing.
func (e *Encounter) IsDefeated() bool {
	for _, m := range e.Members {
		if m.IsAlive() {
			return false
		}
	}
	return true
}
