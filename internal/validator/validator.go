package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Report collects the problems found in a maze.
type Report struct {
	// Errors make the maze unsolvable as is.
	Errors []string
	// Warnings are worth a look but do not block a search.
	Warnings []string
	// Reachable counts the cells the agent can walk to, Destination included.
	Reachable int
}

// Err returns nil when there are no errors.
func (r Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(r.Errors), strings.Join(r.Errors, "\n- "))
}

// Inspect checks both markers and crawls the grid from Start to decide
// whether Destination can be reached. Explored and Path cells left over from a
// previous search are treated as Empty.
func Inspect(g *domain.Grid) Report {
	var r Report

	start, hasStart := g.Start()
	dest, hasDest := g.Destination()
	if !hasStart {
		r.Errors = append(r.Errors, "no start cell")
	}
	if !hasDest {
		r.Errors = append(r.Errors, "no destination cell")
	}
	if n := g.Count(domain.Explored) + g.Count(domain.Path); n > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d cells hold search output from a previous run", n))
	}
	if !hasStart {
		return r
	}

	visited := map[domain.Point]bool{start: true}
	queue := []domain.Point{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range []domain.Point{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0}} {
			next := current.Add(d)
			if visited[next] || !g.InBounds(next.X, next.Y) || g.Get(next) == domain.Wall {
				continue
			}
			visited[next] = true
			if g.Get(next) != domain.Destination {
				queue = append(queue, next)
			}
		}
	}
	r.Reachable = len(visited) - 1

	if hasDest && !visited[dest] {
		r.Errors = append(r.Errors, fmt.Sprintf("destination %s is not reachable from start %s", dest, start))
	}
	return r
}

// ValidateGrid returns Inspect(g).Err().
func ValidateGrid(g *domain.Grid) error {
	return Inspect(g).Err()
}
