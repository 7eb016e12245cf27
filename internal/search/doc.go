// Package search implements the grid pathfinding engine.
//
// All four strategies share one frontier-search loop. They differ only in how the
// frontier orders its candidates: FIFO (BFS), LIFO (DFS), or by an ascending
// rating with insertion order as the tie-break (Greedy BFS, A*).
package search
