package domain

import (
	"fmt"
	"strings"
)

// Mode selects the frontier discipline of a search.
type Mode int

const (
	BFS       Mode = iota // Uninformed, FIFO; shortest path
	DFS                   // Uninformed, LIFO
	GreedyBFS             // Informed by distance to destination only
	AStar                 // Informed by distance plus walked path
)

// modeOrder is the fixed order adapters present and cycle through.
var modeOrder = [...]Mode{BFS, DFS, GreedyBFS, AStar}

var modeNames = [...]string{
	BFS:       "BFS",
	DFS:       "DFS",
	GreedyBFS: "Greedy BFS",
	AStar:     "A*",
}

var modeAliases = map[string]Mode{
	"1":          BFS,
	"2":          DFS,
	"3":          GreedyBFS,
	"4":          AStar,
	"bfs":        BFS,
	"dfs":        DFS,
	"greedy bfs": GreedyBFS,
	"greedy-bfs": GreedyBFS,
	"greedy_bfs": GreedyBFS,
	"greedy":     GreedyBFS,
	"a*":         AStar,
	"astar":      AStar,
	"a-star":     AStar,
}

// Modes returns every mode in presentation order.
func Modes() []Mode {
	out := make([]Mode, len(modeOrder))
	copy(out, modeOrder[:])
	return out
}

// ModeNames returns the external spelling of every mode in presentation order.
func ModeNames() []string {
	names := make([]string, len(modeOrder))
	for i, m := range modeOrder {
		names[i] = m.String()
	}
	return names
}

// ParseMode resolves an external mode name (case-insensitive, common aliases
// and the menu numbers 1 to 4 accepted).
func ParseMode(name string) (Mode, error) {
	if m, ok := modeAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}
	return BFS, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= BFS && m <= AStar
}

// Next returns the successor of m in presentation order, wrapping around.
func (m Mode) Next() Mode {
	if !m.Valid() {
		return BFS
	}
	return modeOrder[(int(m)+1)%len(modeOrder)]
}

// Informed reports whether the mode ranks its frontier with a heuristic.
func (m Mode) Informed() bool {
	return m == GreedyBFS || m == AStar
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// MarshalText implements encoding.TextMarshaler using the external spelling.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
