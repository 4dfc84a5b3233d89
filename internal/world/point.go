package world

// PointOfInterest is a named location that advances quests when visited.
type PointOfInterest struct {
	ID          string
	Title       string
	X, Y        int
	Description string
	Completes   []string // Quest ids completed on arrival
	Activates   []string // Quest ids activated on arrival
	Message     string
}

// At returns true if the point sits at the given position.
func (p *PointOfInterest) At(x, y int) bool {
	return p.X == x && p.Y == y
}
