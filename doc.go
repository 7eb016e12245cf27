/*
Package wayfinder edits grid mazes and solves them with classic frontier searches.

A maze is a fixed-size grid of cells (Empty, Wall, Explored, Path, Start,
Destination) with at most one Start and one Destination. The search engine walks
the four axis-aligned neighbours of each cell and supports four strategies:
breadth-first (BFS), depth-first (DFS), greedy best-first (Greedy BFS) and A*.

# Architecture

The Service is the entry point. It keeps mazes in a ports.MazeStore (memory,
file or redis), serialises edits and searches on the same maze, and fires
domain.SearchHooks around every search so metrics and logs can observe it.
The same Service backs the console editor, the HTTP API and the MCP server.

# Usage

	svc := wayfinder.New(wayfinder.WithStore(file.New("mazes")))

	ctx := context.Background()
	if _, err := svc.Create(ctx, "demo", 5, 5); err != nil {
		log.Fatal(err)
	}

	_, err := svc.Edit(ctx, "demo", func(g *domain.Grid) error {
		g.SetStart(0, 0)
		g.SetDestination(4, 4)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	res, err := svc.Solve(ctx, "demo", domain.AStar, wayfinder.SolveOptions{Persist: true})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Explored cells: %d, Path: %d cells.\n", res.Explored(), len(res.Path))

# Text format

Mazes are stored as one line per row and one digit per cell, see package gridfile.
*/
package wayfinder
