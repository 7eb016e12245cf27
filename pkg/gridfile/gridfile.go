// Package gridfile reads and writes the plain-text maze format.
//
// A maze file holds one line per grid row and one ASCII digit per column,
// mapping directly to domain.Cell (0 Empty, 1 Wall, 2 Explored, 3 Path,
// 4 Start, 5 Destination). There is no header and no column delimiter.
package gridfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Ext is the conventional file extension for maze files.
const Ext = ".txt"

// ErrEmpty is returned by Parse when the input holds no rows.
var ErrEmpty = errors.New("gridfile: empty maze")

// SyntaxError reports a character that is not a cell digit.
type SyntaxError struct {
	Line   int // 1-based
	Column int // 1-based
	Char   rune
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("gridfile: invalid cell %q at line %d, column %d", e.Char, e.Line, e.Column)
}

// Decode loads r into g.
//
// Rows and columns beyond g's dimensions are ignored; short rows leave the
// remaining cells Empty. Start and Destination digits restore the grid
// markers. On any error g is left untouched.
func Decode(r io.Reader, g *domain.Grid) error {
	lines, err := readLines(r)
	if err != nil {
		return err
	}
	return decodeLines(lines, g)
}

// DecodeRows is Decode for rows already split into strings.
func DecodeRows(rows []string, g *domain.Grid) error {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.TrimSpace(row)
	}
	return decodeLines(lines, g)
}

// Parse reads a maze whose dimensions are taken from the content:
// the height is the number of rows, the width the longest row.
func Parse(r io.Reader) (*domain.Grid, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	if len(lines) == 0 || width == 0 {
		return nil, ErrEmpty
	}
	g, err := domain.NewGrid(width, len(lines))
	if err != nil {
		return nil, err
	}
	if err := decodeLines(lines, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Unmarshal is Parse over a byte slice.
func Unmarshal(data []byte) (*domain.Grid, error) {
	return Parse(bytes.NewReader(data))
}

// Encode writes g to w, one line per row.
func Encode(w io.Writer, g *domain.Grid) error {
	bw := bufio.NewWriter(w)
	for _, row := range EncodeRows(g) {
		if _, err := bw.WriteString(row); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Marshal returns the text form of g.
func Marshal(g *domain.Grid) []byte {
	var buf bytes.Buffer
	_ = Encode(&buf, g)
	return buf.Bytes()
}

// EncodeRows returns every row of g as a digit string.
func EncodeRows(g *domain.Grid) []string {
	rows := make([]string, g.Height())
	line := make([]byte, g.Width())
	for y := range rows {
		for x := 0; x < g.Width(); x++ {
			line[x] = g.At(x, y).Digit()
		}
		rows[y] = string(line)
	}
	return rows
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gridfile: read: %w", err)
	}
	return lines, nil
}

func decodeLines(lines []string, g *domain.Grid) error {
	fresh := domain.MustGrid(g.Width(), g.Height())
	for y, line := range lines {
		if y >= g.Height() {
			break
		}
		for x, ch := range []rune(line) {
			if x >= g.Width() {
				break
			}
			c, ok := domain.ParseCell(ch)
			if !ok {
				return &SyntaxError{Line: y + 1, Column: x + 1, Char: ch}
			}
			fresh.Set(x, y, c)
		}
	}
	*g = *fresh
	return nil
}
