package tui_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/internal/search"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/gridfile"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *domain.Grid {
	t.Helper()
	g, err := gridfile.Unmarshal([]byte("410\n235\n"))
	require.NoError(t, err)
	return g
}

func TestPlainRenderer(t *testing.T) {
	out := tui.PlainRenderer{}.Render(sample(t))
	assert.Equal(t, "4 1 0\n2 3 5\n", out)
}

func TestColorRenderer_AsciiProfile(t *testing.T) {
	var buf bytes.Buffer
	r := tui.NewColorRenderer(termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii)))
	assert.Equal(t, "● ■  \n◆ ◆ ●\n", r.Render(sample(t)))
}

func TestColorRenderer_TrueColor(t *testing.T) {
	var buf bytes.Buffer
	r := tui.NewColorRenderer(termenv.NewOutput(&buf, termenv.WithProfile(termenv.TrueColor)))
	out := r.Render(sample(t))
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "■")
}

func TestAnimator_PlaysMovesThenPath(t *testing.T) {
	g, err := gridfile.Unmarshal([]byte("400\n005\n"))
	require.NoError(t, err)
	res, err := search.FindPath(g, domain.BFS)
	require.NoError(t, err)

	var buf bytes.Buffer
	a := tui.NewAnimator(&buf, tui.WithRenderer(tui.PlainRenderer{}), tui.WithDelays(0, 0))
	require.NoError(t, a.Play(context.Background(), g, res))

	frames := strings.Count(buf.String(), "4 ")
	assert.Equal(t, 1+len(res.Moves)+len(res.Path), frames, "one frame per painted cell plus the first")
	assert.True(t, strings.HasSuffix(buf.String(), tui.PlainRenderer{}.Render(paint(g, res))))
	assert.Zero(t, g.Count(domain.Explored), "the caller's grid is untouched")
}

func TestAnimator_Cancel(t *testing.T) {
	g := domain.MustGrid(30, 30)
	g.SetStart(0, 0)
	g.SetDestination(29, 29)
	res, err := search.FindPath(g, domain.BFS)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	a := tui.NewAnimator(&buf, tui.WithRenderer(tui.PlainRenderer{}), tui.WithDelays(10*time.Millisecond, 10*time.Millisecond))
	err = a.Play(ctx, g, res)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, tui.IsTerminal(&bytes.Buffer{}))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "v1.0.0")
	assert.Contains(t, buf.String(), "maze editor and path finder v1.0.0")
}

func TestRenderHelp(t *testing.T) {
	out := tui.RenderHelp()
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "quit")
}

func paint(g *domain.Grid, res *domain.Result) *domain.Grid {
	out := g.Clone()
	res.ApplyTo(out)
	return out
}
