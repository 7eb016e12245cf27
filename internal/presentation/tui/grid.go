package tui

import (
	"io"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/muesli/termenv"
)

// Glyphs of the colour renderer.
const (
	glyphWall   = "■"
	glyphTrail  = "◆"
	glyphMarker = "●"
	glyphEmpty  = " "
)

// Palette colours: wall blue, explored yellow, path purple, start green, destination red.
const (
	colorWall        = "#3b82f6"
	colorExplored    = "#facc15"
	colorPath        = "#a855f7"
	colorStart       = "#22c55e"
	colorDestination = "#ef4444"
)

// GridRenderer turns a grid into printable text, one line per row.
type GridRenderer interface {
	Render(g *domain.Grid) string
}

// ColorRenderer draws cells as coloured glyphs separated by spaces.
type ColorRenderer struct {
	cells [6]string
}

// NewColorRenderer prepares the styled glyphs for out's colour profile.
// A profile without colour support degrades to plain glyphs.
func NewColorRenderer(out *termenv.Output) *ColorRenderer {
	style := func(glyph, hex string) string {
		return out.String(glyph).Foreground(out.Color(hex)).Bold().String()
	}
	r := &ColorRenderer{}
	r.cells[domain.Empty] = glyphEmpty
	r.cells[domain.Wall] = style(glyphWall, colorWall)
	r.cells[domain.Explored] = style(glyphTrail, colorExplored)
	r.cells[domain.Path] = style(glyphTrail, colorPath)
	r.cells[domain.Start] = style(glyphMarker, colorStart)
	r.cells[domain.Destination] = style(glyphMarker, colorDestination)
	return r
}

// NewColorRendererFor is NewColorRenderer for an arbitrary writer with the
// colour profile detected from it.
func NewColorRendererFor(w io.Writer) *ColorRenderer {
	return NewColorRenderer(termenv.NewOutput(w))
}

func (r *ColorRenderer) Render(g *domain.Grid) string {
	return renderCells(g, func(c domain.Cell) string { return r.cells[c] })
}

// PlainRenderer prints the cell digits separated by spaces.
type PlainRenderer struct{}

func (PlainRenderer) Render(g *domain.Grid) string {
	return renderCells(g, func(c domain.Cell) string { return string(c.Digit()) })
}

func renderCells(g *domain.Grid, cell func(domain.Cell) string) string {
	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cell(g.At(x, y)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
