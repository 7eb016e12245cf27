package domain

// Edge links an explored cell to the cell it was reached from.
type Edge struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Result is the outcome of a search.
type Result struct {
	// Mode is the strategy that produced the result.
	Mode Mode

	// Moves lists every cell taken from the frontier, in visitation order.
	// Start and Destination never appear here.
	Moves []Point

	// Path lists the route from the cell next to Destination back to the
	// cell next to Start. It is empty when no route exists, and also when
	// Start touches Destination directly (see Found).
	Path []Point

	// Found reports whether Destination was reached.
	Found bool

	// Tree holds the parent link of every cell in Moves, in the same order.
	Tree []Edge
}

// Steps returns the number of moves along the route from Start to Destination,
// or 0 when no route was found.
func (r *Result) Steps() int {
	if r == nil || !r.Found {
		return 0
	}
	return len(r.Path) + 1
}

// Explored returns the number of cells taken from the frontier.
func (r *Result) Explored() int {
	if r == nil {
		return 0
	}
	return len(r.Moves)
}

// ApplyTo paints Moves as Explored and then Path as Path onto g.
func (r *Result) ApplyTo(g *Grid) {
	if r == nil {
		return
	}
	g.Paint(r.Moves, Explored)
	g.Paint(r.Path, Path)
}
