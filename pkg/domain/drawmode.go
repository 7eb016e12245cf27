package domain

// DrawMode decides what a paint stroke writes in the editor.
type DrawMode int

const (
	DrawWalls DrawMode = iota
	DrawAgent
	DrawDestination
)

var drawModeNames = [...]string{
	DrawWalls:       "Walls",
	DrawAgent:       "Agent",
	DrawDestination: "Destination",
}

// Next returns the following drawing mode, wrapping around.
func (d DrawMode) Next() DrawMode {
	if d < 0 || int(d) >= len(drawModeNames) {
		return DrawWalls
	}
	return (d + 1) % DrawMode(len(drawModeNames))
}

func (d DrawMode) String() string {
	if d < 0 || int(d) >= len(drawModeNames) {
		return "Unknown"
	}
	return drawModeNames[d]
}

// Apply performs the stroke at (x, y) on g.
func (d DrawMode) Apply(g *Grid, x, y int) bool {
	switch d {
	case DrawAgent:
		return g.SetStart(x, y)
	case DrawDestination:
		return g.SetDestination(x, y)
	default:
		return g.SetWall(x, y)
	}
}
