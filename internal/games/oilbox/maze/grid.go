// Package maze holds the slide-maze rules: the grid model, the
// slide-until-blocked transition, the solvability check, the random
// generator that uses it, and the hint pathfinder.
package maze

import (
	"fmt"
	"strings"
)

// Kind is the state of a single grid cell.
type Kind uint8

const (
	Empty Kind = iota
	Wall
	Start
	Goal
)

var kindRunes = [...]rune{Empty: '.', Wall: '#', Start: 'S', Goal: 'G'}

// Rune returns the ASCII representation used by String and Parse.
func (k Kind) Rune() rune {
	if int(k) < len(kindRunes) {
		return kindRunes[k]
	}
	return '?'
}

// Cell is a (row, col) grid coordinate. Row grows downward.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// At is a convenience constructor for Cell.
func At(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// Step returns the neighbouring cell in direction d.
func (c Cell) Step(d Dir) Cell {
	dr, dc := d.Delta()
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is a rectangular matrix of cells stored row-major: index = row*cols + col.
type Grid struct {
	rows  int
	cols  int
	cells []Kind
}

// NewGrid creates a grid with every cell Empty.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Kind, rows*cols),
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Index flattens a cell into its row-major index.
func (g *Grid) Index(c Cell) int {
	return c.Row*g.cols + c.Col
}

// CellAt is the inverse of Index.
func (g *Grid) CellAt(idx int) Cell {
	return Cell{Row: idx / g.cols, Col: idx % g.cols}
}

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the kind of cell c. Out-of-bounds cells read as Wall.
func (g *Grid) At(c Cell) Kind {
	if !g.InBounds(c) {
		return Wall
	}
	return g.cells[g.Index(c)]
}

// Set changes the kind of cell c. Out-of-bounds writes are ignored.
func (g *Grid) Set(c Cell, k Kind) {
	if g.InBounds(c) {
		g.cells[g.Index(c)] = k
	}
}

// IsWall reports whether c is an in-bounds Wall cell.
func (g *Grid) IsWall(c Cell) bool {
	return g.InBounds(c) && g.cells[g.Index(c)] == Wall
}

// Walls lists every Wall cell in row-major order.
func (g *Grid) Walls() []Cell {
	var walls []Cell
	for i, k := range g.cells {
		if k == Wall {
			walls = append(walls, g.CellAt(i))
		}
	}
	return walls
}

// Find returns the first cell of kind k in row-major order.
func (g *Grid) Find(k Kind) (Cell, bool) {
	for i, kk := range g.cells {
		if kk == k {
			return g.CellAt(i), true
		}
	}
	return Cell{}, false
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{rows: g.rows, cols: g.cols, cells: make([]Kind, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// String renders the grid as ASCII rows using Kind.Rune.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(len(g.cells) + g.rows)
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			sb.WriteRune(g.cells[r*g.cols+c].Rune())
		}
	}
	return sb.String()
}

// Layout renders the grid as one string per row, the inverse of ParseRows.
func (g *Grid) Layout() []string {
	return strings.Split(g.String(), "\n")
}

// Parse reads an ASCII grid ('.', '#', 'S', 'G'; blank lines ignored).
// Rows must all have the same width.
func Parse(s string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	return ParseRows(rows)
}

// ParseRows builds a grid from ASCII rows.
func ParseRows(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("maze: empty layout")
	}
	cols := len([]rune(rows[0]))
	g := NewGrid(len(rows), cols)
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != cols {
			return nil, fmt.Errorf("maze: row %d has width %d, want %d", r, len(runes), cols)
		}
		for c, ch := range runes {
			k, ok := parseKind(ch)
			if !ok {
				return nil, fmt.Errorf("maze: unknown cell %q at (%d,%d)", ch, r, c)
			}
			g.cells[r*cols+c] = k
		}
	}
	return g, nil
}

func parseKind(ch rune) (Kind, bool) {
	for k, r := range kindRunes {
		if r == ch {
			return Kind(k), true
		}
	}
	return Empty, false
}
