package oilbox

import (
	"github.com/vovakirdan/oilbox/internal/core"
	"github.com/vovakirdan/oilbox/internal/games/oilbox/maze"
)

// Point is a pixel position; one cell is TileSize pixels square.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Player is the oil box. Pos moves toward the move target each tick and
// snaps back to StartPos on restart or after falling off the map.
type Player struct {
	Pos      Point
	StartPos Point
}

// moveTarget is an in-flight slide.
type moveTarget struct {
	dir          maze.Dir
	cell         maze.Cell
	from         Point
	to           Point
	exitedBounds bool
}

// distance is the total number of pixels the slide covers.
func (m *moveTarget) distance() int {
	return core.Abs(m.to.X-m.from.X) + core.Abs(m.to.Y-m.from.Y)
}

// cellToPoint converts a grid cell to its top-left pixel.
func cellToPoint(c maze.Cell, tile int) Point {
	return Point{X: c.Col * tile, Y: c.Row * tile}
}

// pointToCell rounds a pixel position to the nearest cell.
func pointToCell(p Point, tile int) maze.Cell {
	return maze.Cell{
		Row: (p.Y + tile/2) / tile,
		Col: (p.X + tile/2) / tile,
	}
}

// stepToward advances pos by speed pixels along the slide axis and clamps at
// the target. It reports whether the target has been reached.
func stepToward(pos *Point, m *moveTarget, speed int) bool {
	switch m.dir {
	case maze.Up:
		pos.Y -= speed
		if pos.Y <= m.to.Y {
			pos.Y = m.to.Y
		}
	case maze.Down:
		pos.Y += speed
		if pos.Y >= m.to.Y {
			pos.Y = m.to.Y
		}
	case maze.Left:
		pos.X -= speed
		if pos.X <= m.to.X {
			pos.X = m.to.X
		}
	case maze.Right:
		pos.X += speed
		if pos.X >= m.to.X {
			pos.X = m.to.X
		}
	}
	return *pos == m.to
}
