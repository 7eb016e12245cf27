package search

import (
	"container/heap"

	"github.com/aretw0/wayfinder/pkg/domain"
)

type frontier interface {
	push(id int32)
	pop() int32
	len() int
}

func newFrontier(mode domain.Mode, a *arena) frontier {
	switch mode {
	case domain.DFS:
		return &stack{}
	case domain.GreedyBFS, domain.AStar:
		return &ranked{arena: a}
	default:
		return &queue{}
	}
}

type queue struct {
	ids  []int32
	head int
}

func (q *queue) push(id int32) { q.ids = append(q.ids, id) }
func (q *queue) len() int      { return len(q.ids) - q.head }

func (q *queue) pop() int32 {
	id := q.ids[q.head]
	q.head++
	// Reclaim the consumed prefix once it dominates the buffer.
	if q.head > 1024 && q.head*2 > len(q.ids) {
		q.ids = append(q.ids[:0], q.ids[q.head:]...)
		q.head = 0
	}
	return id
}

type stack struct {
	ids []int32
}

func (s *stack) push(id int32) { s.ids = append(s.ids, id) }
func (s *stack) len() int      { return len(s.ids) }

func (s *stack) pop() int32 {
	id := s.ids[len(s.ids)-1]
	s.ids = s.ids[:len(s.ids)-1]
	return id
}

// ranked pops the lowest rating first. Equal ratings leave in insertion
// order; arena ids grow monotonically so they serve as the sequence number.
type ranked struct {
	arena *arena
	ids   []int32
}

func (r *ranked) push(id int32) { heap.Push(r, id) }
func (r *ranked) pop() int32    { return heap.Pop(r).(int32) }
func (r *ranked) len() int      { return len(r.ids) }

func (r *ranked) Len() int { return len(r.ids) }

func (r *ranked) Less(i, j int) bool {
	a, b := r.arena.at(r.ids[i]), r.arena.at(r.ids[j])
	if a.rating != b.rating {
		return a.rating < b.rating
	}
	return r.ids[i] < r.ids[j]
}

func (r *ranked) Swap(i, j int) { r.ids[i], r.ids[j] = r.ids[j], r.ids[i] }

func (r *ranked) Push(x any) { r.ids = append(r.ids, x.(int32)) }

func (r *ranked) Pop() any {
	old := r.ids
	n := len(old)
	id := old[n-1]
	r.ids = old[:n-1]
	return id
}
