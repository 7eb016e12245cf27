package domain

import "fmt"

// Cell is the state of a single grid square.
// The numeric value doubles as the digit used by the text persistence format.
type Cell uint8

const (
	Empty       Cell = iota // Free space, traversable
	Wall                    // Obstacle
	Explored                // Visited by a search
	Path                    // Part of the reconstructed route
	Start                   // Agent position
	Destination             // Target position
)

var cellNames = [...]string{
	Empty:       "empty",
	Wall:        "wall",
	Explored:    "explored",
	Path:        "path",
	Start:       "start",
	Destination: "destination",
}

// Valid reports whether c is one of the six known states.
func (c Cell) Valid() bool {
	return c <= Destination
}

func (c Cell) String() string {
	if !c.Valid() {
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
	return cellNames[c]
}

// Digit returns the ASCII digit that represents c in the text format.
func (c Cell) Digit() byte {
	return '0' + byte(c)
}

// Traversable reports whether a search may step onto the cell.
// Explored and Path cells left over from a previous run block the search,
// so callers clear them first.
func (c Cell) Traversable() bool {
	return c == Empty || c == Destination
}

// ParseCell converts a text-format digit into a Cell.
func ParseCell(r rune) (Cell, bool) {
	if r < '0' || r > '0'+rune(Destination) {
		return Empty, false
	}
	return Cell(r - '0'), true
}
