package search

import "github.com/aretw0/wayfinder/pkg/domain"

const noParent int32 = -1

// node is one visited or frontier position. Parents are arena indices.
type node struct {
	pos    domain.Point
	parent int32
	depth  int // nodes in the chain back to start, inclusive
	rating int
}

type arena struct {
	nodes []node
}

func (a *arena) add(pos domain.Point, parent int32) int32 {
	depth := 1
	if parent != noParent {
		depth = a.nodes[parent].depth + 1
	}
	a.nodes = append(a.nodes, node{pos: pos, parent: parent, depth: depth})
	return int32(len(a.nodes) - 1)
}

func (a *arena) at(id int32) *node {
	return &a.nodes[id]
}

// trace walks parent links from id back to the root, excluding the root.
func (a *arena) trace(id int32) []domain.Point {
	var out []domain.Point
	for id != noParent && a.nodes[id].parent != noParent {
		out = append(out, a.nodes[id].pos)
		id = a.nodes[id].parent
	}
	return out
}
