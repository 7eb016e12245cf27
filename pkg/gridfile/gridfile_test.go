package gridfile_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/gridfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	g := domain.MustGrid(5, 3)
	g.SetWall(1, 0)
	g.SetWall(1, 1)
	g.SetStart(0, 0)
	g.SetDestination(4, 2)
	g.Paint([]domain.Point{{X: 2, Y: 0}}, domain.Explored)
	g.Paint([]domain.Point{{X: 3, Y: 2}}, domain.Path)

	var buf bytes.Buffer
	require.NoError(t, gridfile.Encode(&buf, g))
	assert.Equal(t, "41200\n01000\n00035\n", buf.String())

	loaded := domain.MustGrid(5, 3)
	require.NoError(t, gridfile.Decode(&buf, loaded))
	assert.True(t, g.Equal(loaded), "decoded grid must match the original")

	start, ok := loaded.Start()
	assert.True(t, ok)
	assert.Equal(t, domain.Pt(0, 0), start)
	dest, ok := loaded.Destination()
	assert.True(t, ok)
	assert.Equal(t, domain.Pt(4, 2), dest)
}

func TestDecode_ClipsToGrid(t *testing.T) {
	g := domain.MustGrid(3, 2)
	input := "1111x\n4\n5555\n"

	require.NoError(t, gridfile.Decode(strings.NewReader(input), g))

	assert.Equal(t, []domain.Cell{domain.Wall, domain.Wall, domain.Wall}, g.Row(0))
	assert.Equal(t, []domain.Cell{domain.Start, domain.Empty, domain.Empty}, g.Row(1))
	_, ok := g.Destination()
	assert.False(t, ok, "rows beyond the grid are ignored")
}

func TestDecode_FailureLeavesGridIntact(t *testing.T) {
	g := domain.MustGrid(3, 2)
	g.SetStart(0, 0)
	g.SetWall(2, 1)
	before := g.Clone()

	err := gridfile.Decode(strings.NewReader("000\n0a0\n"), g)

	var syntax *gridfile.SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, 2, syntax.Line)
	assert.Equal(t, 2, syntax.Column)
	assert.Equal(t, 'a', syntax.Char)
	assert.True(t, g.Equal(before))

	err = gridfile.Decode(strings.NewReader("009\n"), g)
	assert.Error(t, err, "digits above 5 are not cells")
	assert.True(t, g.Equal(before))
}

func TestDecode_DuplicateStartKeepsLast(t *testing.T) {
	g := domain.MustGrid(3, 1)
	require.NoError(t, gridfile.Decode(strings.NewReader("404\n"), g))

	assert.Equal(t, 1, g.Count(domain.Start))
	p, _ := g.Start()
	assert.Equal(t, domain.Pt(2, 0), p)
}

func TestParse(t *testing.T) {
	g, err := gridfile.Parse(strings.NewReader("4010\r\n0\n0005\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, domain.Wall, g.At(2, 0))

	_, err = gridfile.Parse(strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, gridfile.ErrEmpty)
}

func TestRows(t *testing.T) {
	g := domain.MustGrid(2, 2)
	g.SetStart(0, 1)
	rows := gridfile.EncodeRows(g)
	assert.Equal(t, []string{"00", "40"}, rows)

	other := domain.MustGrid(2, 2)
	require.NoError(t, gridfile.DecodeRows(rows, other))
	assert.True(t, g.Equal(other))
}
