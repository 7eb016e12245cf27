package search

import "github.com/aretw0/wayfinder/pkg/domain"

// rate assigns the heuristic rating of an informed mode.
//
// Greedy BFS uses the Manhattan distance to the destination. A* adds the walked
// length, counted as one plus the nodes in the chain back to start.
func rate(mode domain.Mode, n *node, dest domain.Point) int {
	h := n.pos.Manhattan(dest)
	if mode == domain.AStar {
		return h + 1 + n.depth
	}
	return h
}
