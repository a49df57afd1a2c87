package maze

// MoveOutcome is the result of a slide. It is one of Invalid, Landed or
// LandedOutOfBounds.
type MoveOutcome interface {
	moveOutcome()
}

// Invalid means the very first step was blocked; the piece cannot move.
type Invalid struct{}

// Landed means the slide stopped in front of a wall.
type Landed struct {
	Cell Cell
}

// LandedOutOfBounds means the slide stopped because the next step left
// the grid. Cell is the last in-bounds cell visited.
type LandedOutOfBounds struct {
	Cell Cell
}

func (Invalid) moveOutcome()           {}
func (Landed) moveOutcome()            {}
func (LandedOutOfBounds) moveOutcome() {}

// Landing unpacks an outcome. ok is false for Invalid.
func Landing(o MoveOutcome) (cell Cell, exitedBounds, ok bool) {
	switch o := o.(type) {
	case Landed:
		return o.Cell, false, true
	case LandedOutOfBounds:
		return o.Cell, true, true
	}
	return Cell{}, false, false
}

// Slide moves from `from` one cell at a time in direction d until the next
// cell is out of bounds or a Wall. Start and Goal cells never block.
func Slide(g *Grid, from Cell, d Dir) MoveOutcome {
	cur := from
	moved := false
	for {
		next := cur.Step(d)
		if !g.InBounds(next) {
			if !moved {
				return Invalid{}
			}
			return LandedOutOfBounds{Cell: cur}
		}
		if g.cells[g.Index(next)] == Wall {
			if !moved {
				return Invalid{}
			}
			return Landed{Cell: cur}
		}
		cur = next
		moved = true
	}
}
