package tui

import (
	"github.com/charmbracelet/glamour"
)

// HelpMarkdown documents the console editor commands.
const HelpMarkdown = `# Wayfinder editor

| Command | Effect |
|---|---|
| ` + "`wall x y`" + ` | Put a wall at column x, row y |
| ` + "`start x y`" + ` | Move the start marker |
| ` + "`dest x y`" + ` | Move the destination marker |
| ` + "`erase x y`" + ` | Reset a cell to empty |
| ` + "`draw`" + ` | Cycle the drawing mode (Walls, Agent, Destination) |
| ` + "`paint x y`" + ` | Apply the drawing mode at a cell |
| ` + "`mode [name]`" + ` | Cycle or set the search mode (BFS, DFS, Greedy BFS, A*) |
| ` + "`solve`" + ` | Search from start to destination and animate it |
| ` + "`clear`" + ` | Empty the whole grid |
| ` + "`clear-explored`" + ` | Remove search results only |
| ` + "`save [name]`" + ` / ` + "`load [name]`" + ` | Persist or restore the maze |
| ` + "`show`" + ` | Redraw the grid |
| ` + "`help`" + ` | Show this table |
| ` + "`quit`" + ` | Leave the editor |

Coordinates are zero-based; the top-left cell is ` + "`0 0`" + `.
`

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}
	return r.Render
}

// RenderHelp returns HelpMarkdown rendered for the terminal, or the raw
// markdown when rendering fails.
func RenderHelp() string {
	out, err := NewRenderer()(HelpMarkdown)
	if err != nil {
		return HelpMarkdown
	}
	return out
}
